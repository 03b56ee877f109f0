package redis

import (
	"context"
	"time"

	"github.com/muhammadchandra19/marketdepth/pkg/backoff"
	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type client struct {
	logger    logger.Interface
	config    *Config
	universal redis.UniversalClient
}

// NewClient creates a new Redis client with the provided logger and configuration.
func NewClient(logger logger.Interface, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

func (c *client) Connect(ctx context.Context) error {
	if c.config == nil {
		return errors.NewErrorDetails("Redis config is nil", errors.RedisConfigError.String(), "connect")
	}
	if err := c.config.Validate(); err != nil {
		return err
	}

	var universal redis.UniversalClient
	switch c.config.Mode {
	case Standalone:
		universal = redis.NewClient(&redis.Options{
			Addr:            c.config.Addrs[0],
			Username:        c.config.Username,
			Password:        c.config.Password,
			DB:              c.config.DB,
			MaxRetries:      c.config.commandRetries(),
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ReadTimeout,
			WriteTimeout:    c.config.WriteTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	case Cluster:
		universal = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:           c.config.Addrs,
			Username:        c.config.Username,
			Password:        c.config.Password,
			MaxRetries:      c.config.commandRetries(),
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ReadTimeout,
			WriteTimeout:    c.config.WriteTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	}

	if err := universal.Ping(ctx).Err(); err != nil {
		_ = universal.Close()
		return errors.NewErrorDetails("Failed to connect to Redis", errors.RedisConnectionError.String(), "connect").WithCause(err)
	}

	if c.universal != nil {
		_ = c.universal.Close()
	}
	c.universal = universal
	return nil
}

// Reconnect retries Connect with exponential backoff until it succeeds, the
// retry budget is spent or ctx ends.
func (c *client) Reconnect(ctx context.Context) bool {
	policy := backoff.Backoff{
		Base:   c.config.MinRetryBackoff,
		Max:    c.config.MaxRetryBackoff,
		Factor: 2,
		Jitter: 0.5,
	}

	for attempt := 1; attempt <= c.config.ReconnectMaxRetries; attempt++ {
		c.logger.Info("Reconnecting to Redis", logger.Field{
			Key:   "attempt",
			Value: attempt,
		})

		if !policy.Sleep(ctx, attempt) {
			c.logger.Info("Reconnect cancelled", logger.Field{
				Key:   "reason",
				Value: ctx.Err(),
			})
			return false
		}

		connectCtx, cancel := context.WithTimeout(ctx, c.config.ConnectTimeout)
		err := c.Connect(connectCtx)
		cancel()
		if err == nil {
			c.logger.Info("Reconnected to Redis successfully", logger.Field{
				Key:   "attempt",
				Value: attempt,
			})
			return true
		}
		c.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "attempt",
			Value: attempt,
		})
	}

	return false
}

func (c *client) Disconnect(ctx context.Context) error {
	if c.universal == nil {
		return nil
	}
	if err := c.universal.Close(); err != nil {
		return errors.NewErrorDetails("Failed to close Redis client", errors.RedisDisconnectionError.String(), "disconnect").WithCause(err)
	}
	return nil
}

func (c *client) Ping(ctx context.Context) error {
	if c.universal == nil {
		return notConnected("ping")
	}
	if err := c.universal.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails("Failed to ping Redis", errors.RedisPingError.String(), "ping").WithCause(err)
	}
	return nil
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	if c.universal == nil {
		return "", notConnected("get")
	}
	val, err := c.universal.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewErrorDetails("Failed to get value from Redis", errors.RedisGetError.String(), "get").WithCause(err)
	}
	return val, nil
}

func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if c.universal == nil {
		return notConnected("set")
	}
	if err := c.universal.Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.NewErrorDetails("Failed to set value in Redis", errors.RedisSetError.String(), "set").WithCause(err)
	}
	return nil
}

func (c *client) Del(ctx context.Context, keys ...string) (int64, error) {
	if c.universal == nil {
		return 0, notConnected("del")
	}
	deleted, err := c.universal.Del(ctx, keys...).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to delete keys from Redis", errors.RedisDelError.String(), "del").WithCause(err)
	}
	return deleted, nil
}

func (c *client) XAdd(ctx context.Context, args *redis.XAddArgs) (string, error) {
	if c.universal == nil {
		return "", notConnected("xadd")
	}
	streamID, err := c.universal.XAdd(ctx, args).Result()
	if err != nil {
		return "", errors.NewErrorDetails("Failed to add entry to stream", errors.RedisXAddError.String(), "xadd").WithCause(err)
	}
	return streamID, nil
}

func (c *client) XLen(ctx context.Context, stream string) (int64, error) {
	if c.universal == nil {
		return 0, notConnected("xlen")
	}
	length, err := c.universal.XLen(ctx, stream).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to get stream length", errors.RedisXLenError.String(), "xlen").WithCause(err)
	}
	return length, nil
}

func (c *client) XRevRangeN(ctx context.Context, stream, start, stop string, count int64) ([]redis.XMessage, error) {
	if c.universal == nil {
		return nil, notConnected("xrevrange")
	}
	messages, err := c.universal.XRevRangeN(ctx, stream, start, stop, count).Result()
	if err != nil {
		return nil, errors.NewErrorDetails("Failed to read stream range", errors.RedisXRangeError.String(), "xrevrange").WithCause(err)
	}
	return messages, nil
}

func notConnected(op string) error {
	return errors.NewErrorDetails("Redis client is not connected", errors.RedisConnectionError.String(), op)
}
