package api

import (
	"net/http"

	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	"github.com/muhammadchandra19/marketdepth/pkg/util"
	archivev1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/archive/v1"
	feedv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/feed/v1"
	orderbookv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/orderbook/v1"
)

const requestIDHeader = "X-Request-ID"

// API serves the HTTP read and admin surface.
type API struct {
	orderbook orderbookv1.Usecase
	feed      feedv1.Ingestor
	archive   archivev1.Usecase
	logger    logger.Interface
}

// NewAPI creates the API. archive may be nil, which leaves the archive routes unregistered.
func NewAPI(orderbook orderbookv1.Usecase, feed feedv1.Ingestor, archive archivev1.Usecase, logger logger.Interface) *API {
	return &API{
		orderbook: orderbook,
		feed:      feed,
		archive:   archive,
		logger:    logger,
	}
}

// Routes returns the API handler.
func (a *API) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/instruments/{id}/tick", a.GetLatestTick)
	mux.HandleFunc("GET /v1/instruments/{id}/orderbook", a.GetOrderBook)
	mux.HandleFunc("GET /v1/instruments/{id}/history", a.GetPriceHistory)
	mux.HandleFunc("GET /v1/instruments/{id}/ticks", a.GetHistoricalTicks)
	mux.HandleFunc("GET /v1/instruments", a.GetMultipleInstruments)
	mux.HandleFunc("PUT /v1/instruments/{id}/depth", a.SetDepthLevel)

	mux.HandleFunc("POST /v1/subscriptions", a.Subscribe)
	mux.HandleFunc("DELETE /v1/subscriptions", a.Unsubscribe)
	mux.HandleFunc("GET /v1/feed/stats", a.GetFeedStats)

	if a.archive != nil {
		mux.HandleFunc("GET /v1/archive/{id}/ticks", a.GetArchivedTicks)
	}

	return withRequestID(mux)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := util.WithRequestID(r.Context(), r.Header.Get(requestIDHeader))
		w.Header().Set(requestIDHeader, util.GetRequestID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
