package bootstrap

import (
	streamv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1"
	"github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/infrastructure/kafka"
	tickInfra "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/infrastructure/questdb/tick"
)

// Repository is the repository for the market data service.
type Repository struct {
	Store          streamv1.Store
	TickRepository tickInfra.TickRepository
	Publisher      *kafka.Publisher
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() {
	b.Repository.Store = b.Store
	if b.QuestDB != nil {
		b.Repository.TickRepository = tickInfra.NewRepository(b.QuestDB)
	}
	if b.Kafka != nil {
		b.Repository.Publisher = kafka.NewPublisher(b.Kafka, b.Logger)
	}
}
