package bootstrap

import (
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	"github.com/muhammadchandra19/marketdepth/pkg/questdb"
	feedv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/feed/v1"
	streamv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1"
	"github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/infrastructure/kafka"
	"github.com/muhammadchandra19/marketdepth/services/market-data-service/pkg/config"
)

// Bootstrap is the bootstrap for the market data service.
type Bootstrap struct {
	Usecase    Usecase
	Logger     logger.Interface
	API        API
	Repository Repository

	Store   streamv1.Store
	Dialer  feedv1.Dialer
	QuestDB questdb.QuestDBClient
	Kafka   kafka.MessageWriter
	Feed    config.FeedConfig
}

// BoostrapConfig is the config for the bootstrap.
type BoostrapConfig struct {
	Logger logger.Interface
	Store  streamv1.Store
	Dialer feedv1.Dialer
	Feed   config.FeedConfig

	// QuestDB enables the tick archive when set.
	QuestDB questdb.QuestDBClient
	// Kafka enables the tick publisher when set.
	Kafka kafka.MessageWriter
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config BoostrapConfig) (Bootstrap, error) {
	b.Logger = config.Logger
	b.Store = config.Store
	b.Dialer = config.Dialer
	b.Feed = config.Feed
	b.QuestDB = config.QuestDB
	b.Kafka = config.Kafka

	b.registerRepository()
	if err := b.registerUsecase(); err != nil {
		return Bootstrap{}, err
	}
	b.registerAPI()

	return *b, nil
}
