package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/marketdepth/pkg/questdb"
	"github.com/muhammadchandra19/marketdepth/pkg/redis"
	normalizerv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/normalizer/v1"
	streamv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// Store backends.
const (
	BackendRedis  = "redis"
	BackendPebble = "pebble"
	BackendMemory = "memory"
)

// Config represents the application configuration.
type Config struct {
	App      AppConfig      `envPrefix:"APP_"`
	Store    StoreConfig    `envPrefix:"STORE_"`
	Redis    redis.Config   `envPrefix:"REDIS_"`
	Feed     FeedConfig     `envPrefix:"FEED_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	QuestDB  QuestDBConfig  `envPrefix:"QUESTDB_"`
	Profiler ProfilerConfig `envPrefix:"PROFILER_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name            string        `env:"NAME" envDefault:"market-data-service"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	Port            int           `env:"PORT" envDefault:"8080"`
	GRPCPort        int           `env:"GRPC_PORT" envDefault:"8880"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// StoreConfig selects and tunes the tick stream store.
type StoreConfig struct {
	Backend   string        `env:"BACKEND" envDefault:"redis"`
	OpTimeout time.Duration `env:"OP_TIMEOUT" envDefault:"2s"`
	KeyPrefix string        `env:"KEY_PREFIX" envDefault:"market_data:"`
	Retention streamv1.Retention

	PebbleDir  string `env:"PEBBLE_DIR" envDefault:"data/ticks"`
	PebbleSync bool   `env:"PEBBLE_SYNC" envDefault:"false"`

	LatestCacheEnabled bool          `env:"LATEST_CACHE_ENABLED" envDefault:"true"`
	LatestCacheTTL     time.Duration `env:"LATEST_CACHE_TTL" envDefault:"60s"`
}

// FeedConfig represents the upstream feed configuration.
type FeedConfig struct {
	URL         string `env:"URL"`
	APIKey      string `env:"API_KEY"`
	AccessToken string `env:"ACCESS_TOKEN"`

	DefaultDepth        int           `env:"DEFAULT_DEPTH" envDefault:"1"`
	PaddingPolicy       string        `env:"PADDING_POLICY" envDefault:"pad"`
	ReceiptTimeFallback bool          `env:"RECEIPT_TIME_FALLBACK" envDefault:"true"`
	QueueSize           int           `env:"QUEUE_SIZE" envDefault:"4096"`
	EnqueueWait         time.Duration `env:"ENQUEUE_WAIT" envDefault:"50ms"`
	MaxSubscriptions    int           `env:"MAX_SUBSCRIPTIONS" envDefault:"3000"`
	SinkTimeout         time.Duration `env:"SINK_TIMEOUT" envDefault:"2s"`

	BackoffBase   time.Duration `env:"BACKOFF_BASE" envDefault:"1s"`
	BackoffMax    time.Duration `env:"BACKOFF_MAX" envDefault:"30s"`
	BackoffJitter float64       `env:"BACKOFF_JITTER" envDefault:"0.2"`

	Instruments  []string `env:"INSTRUMENTS" envSeparator:","`
	InitialDepth int      `env:"INITIAL_DEPTH" envDefault:"1"`

	PingInterval time.Duration `env:"PING_INTERVAL" envDefault:"15s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"60s"`
}

// KafkaConfig represents the tick publisher configuration.
type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"market-ticks"`
}

// QuestDBConfig represents the tick archive configuration.
type QuestDBConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"false"`
	Client  questdb.Config
}

// ProfilerConfig represents the continuous profiler configuration.
type ProfilerConfig struct {
	Enabled         bool   `env:"ENABLED" envDefault:"false"`
	ServerAddress   string `env:"SERVER_ADDRESS" envDefault:"http://localhost:4040"`
	ApplicationName string `env:"APPLICATION_NAME" envDefault:"market-data-service"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if !slices.Contains([]string{BackendRedis, BackendPebble, BackendMemory}, c.Store.Backend) {
		return fmt.Errorf("invalid STORE_BACKEND %q", c.Store.Backend)
	}
	if c.Store.Retention.Depth1Cap <= 0 || c.Store.Retention.Depth5Cap <= 0 {
		return fmt.Errorf("store caps must be positive")
	}
	if !tickv1.ValidDepth(c.Feed.DefaultDepth) {
		return fmt.Errorf("invalid FEED_DEFAULT_DEPTH %d", c.Feed.DefaultDepth)
	}
	if !tickv1.ValidDepth(c.Feed.InitialDepth) {
		return fmt.Errorf("invalid FEED_INITIAL_DEPTH %d", c.Feed.InitialDepth)
	}
	if _, err := normalizerv1.ParsePaddingPolicy(c.Feed.PaddingPolicy); err != nil {
		return fmt.Errorf("invalid FEED_PADDING_POLICY: %w", err)
	}
	if c.Feed.QueueSize <= 0 {
		return fmt.Errorf("FEED_QUEUE_SIZE must be positive")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	return nil
}
