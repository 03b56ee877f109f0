package bootstrap

import "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/api"

// API is the HTTP API for the market data service.
type API struct {
	Handler *api.API
}

// registerAPI registers the HTTP API.
func (b *Bootstrap) registerAPI() {
	b.API.Handler = api.NewAPI(b.Usecase.OrderBookUsecase, b.Usecase.Ingestor, b.Usecase.ArchiveUsecase, b.Logger)
}
