package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/muhammadchandra19/marketdepth/pkg/grpclib/health"
	"github.com/muhammadchandra19/marketdepth/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	"github.com/muhammadchandra19/marketdepth/pkg/questdb"
	"github.com/muhammadchandra19/marketdepth/pkg/redis"
	"github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/bootstrap"
	streamv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1"
	"github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/infrastructure/kafka"
	memoryStream "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/infrastructure/memory/stream"
	pebbleStream "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/infrastructure/pebble/stream"
	"github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/infrastructure/redis/cache"
	redisStream "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/infrastructure/redis/stream"
	"github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/infrastructure/upstream"
	"github.com/muhammadchandra19/marketdepth/services/market-data-service/pkg/config"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

const healthInterval = 5 * time.Second

// Server runs the HTTP API, the gRPC health service and the feed ingestor.
type Server struct {
	GRPC *grpc.Server
	HTTP *http.Server

	config    *config.Config
	logger    logger.Interface
	health    *health.Server
	bootstrap bootstrap.Bootstrap

	store   streamv1.Store
	questdb questdb.QuestDBClient
	kafka   *kafka.Publisher

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer opens the configured backends and wires the service.
func NewServer(ctx context.Context, cfg *config.Config, log logger.Interface) (*Server, error) {
	s := &Server{
		GRPC:   grpc.NewServer(),
		config: cfg,
		logger: log,
		health: health.NewServer(),
	}

	store, err := s.openStore(ctx)
	if err != nil {
		return nil, err
	}
	s.store = store

	bootstrapConfig := bootstrap.BoostrapConfig{
		Logger: log,
		Store:  store,
		Dialer: upstream.NewDialer(upstream.Config{
			URL:          cfg.Feed.URL,
			APIKey:       cfg.Feed.APIKey,
			AccessToken:  cfg.Feed.AccessToken,
			PingInterval: cfg.Feed.PingInterval,
			ReadTimeout:  cfg.Feed.ReadTimeout,
		}, log),
		Feed: cfg.Feed,
	}

	if cfg.QuestDB.Enabled {
		client, err := questdb.NewClient(ctx, cfg.QuestDB.Client)
		if err != nil {
			s.closeStore()
			return nil, errors.TracerFromError(err)
		}
		s.questdb = client
		bootstrapConfig.QuestDB = client
	}
	if cfg.Kafka.Enabled {
		bootstrapConfig.Kafka = kafka.NewWriter(kafka.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
	}

	b := &bootstrap.Bootstrap{}
	s.bootstrap, err = b.Init(bootstrapConfig)
	if err != nil {
		s.closeBackends()
		return nil, err
	}
	s.kafka = s.bootstrap.Repository.Publisher

	if repo := s.bootstrap.Repository.TickRepository; repo != nil {
		if err := repo.EnsureSchema(ctx); err != nil {
			s.closeBackends()
			return nil, err
		}
	}

	s.health.Register(s.GRPC)
	if cfg.App.Environment == "development" {
		reflection.Register(s.GRPC)
	}

	hc := healthcheck.HealthCheck{Probe: store.Ping, Timeout: cfg.Store.OpTimeout}
	s.HTTP = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           hc.Handler(s.bootstrap.API.Handler.Routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s, nil
}

func (s *Server) openStore(ctx context.Context) (streamv1.Store, error) {
	cfg := s.config.Store

	switch cfg.Backend {
	case config.BackendMemory:
		return memoryStream.NewStore(cfg.Retention), nil

	case config.BackendPebble:
		return pebbleStream.Open(pebbleStream.Config{
			Dir:       cfg.PebbleDir,
			Retention: cfg.Retention,
			FS:        vfs.Default,
			Sync:      cfg.PebbleSync,
		})

	default:
		client := redis.NewClient(s.logger, &s.config.Redis)
		if err := client.Connect(ctx); err != nil {
			s.logger.Error(errors.TracerFromError(err))
			if !client.Reconnect(ctx) {
				return nil, err
			}
		}

		var store streamv1.Store = redisStream.NewStore(client, redisStream.Config{
			KeyPrefix: cfg.KeyPrefix,
			OpTimeout: cfg.OpTimeout,
			Retention: cfg.Retention,
		})
		if cfg.LatestCacheEnabled && cfg.LatestCacheTTL > 0 {
			store = cache.NewLatestStore(store, client, s.logger, cfg.KeyPrefix, cfg.LatestCacheTTL)
		}
		return store, nil
	}
}

// Start serves HTTP and gRPC and runs the feed until Stop.
func (s *Server) Start(ctx context.Context) error {
	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.App.GRPCPort))
	if err != nil {
		return errors.TracerFromError(err)
	}
	httpListener, err := net.Listen("tcp", s.HTTP.Addr)
	if err != nil {
		grpcListener.Close()
		return errors.TracerFromError(err)
	}

	ctx, s.cancel = context.WithCancel(ctx)

	s.run(func() {
		if err := s.GRPC.Serve(grpcListener); err != nil {
			s.logger.Error(errors.TracerFromError(err), logger.NewField("server", "grpc"))
		}
	})
	s.run(func() {
		if err := s.HTTP.Serve(httpListener); err != nil && err != http.ErrServerClosed {
			s.logger.Error(errors.TracerFromError(err), logger.NewField("server", "http"))
		}
	})
	s.run(func() {
		s.health.Watch(ctx, s.config.App.Name, healthInterval, s.config.Store.OpTimeout, s.store.Ping)
	})

	if s.config.Feed.URL == "" {
		s.logger.Warn("feed url is empty, ingestion disabled")
	} else {
		ingestor := s.bootstrap.Usecase.Ingestor
		if len(s.config.Feed.Instruments) > 0 {
			if err := ingestor.Subscribe(ctx, s.config.Feed.Instruments, s.config.Feed.InitialDepth); err != nil {
				s.logger.Error(err, logger.NewField("instruments", len(s.config.Feed.Instruments)))
			}
		}
		s.run(func() {
			if err := ingestor.Run(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error(errors.TracerFromError(err), logger.NewField("component", "feed"))
			}
		})
	}

	s.logger.Info("market data service started",
		logger.NewField("http_port", s.config.App.Port),
		logger.NewField("grpc_port", s.config.App.GRPCPort),
		logger.NewField("store", s.config.Store.Backend),
	)
	return nil
}

func (s *Server) run(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// Stop stops the feed, drains the servers within ctx and closes the backends.
func (s *Server) Stop(ctx context.Context) {
	if s.cancel != nil {
		s.cancel()
	}
	s.health.Shutdown()

	if err := s.HTTP.Shutdown(ctx); err != nil {
		s.logger.Error(errors.TracerFromError(err), logger.NewField("server", "http"))
	}

	stopped := make(chan struct{})
	go func() {
		s.GRPC.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		s.GRPC.Stop()
	}

	s.wg.Wait()
	s.closeBackends()
}

func (s *Server) closeBackends() {
	if s.kafka != nil {
		if err := s.kafka.Close(); err != nil {
			s.logger.Error(errors.TracerFromError(err), logger.NewField("component", "kafka"))
		}
	}
	if s.questdb != nil {
		s.questdb.Close()
	}
	s.closeStore()
}

func (s *Server) closeStore() {
	if err := s.store.Close(); err != nil {
		s.logger.Error(errors.TracerFromError(err), logger.NewField("component", "store"))
	}
}
