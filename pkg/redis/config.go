package redis

import (
	"time"

	"github.com/muhammadchandra19/marketdepth/pkg/errors"
)

// Mode represents the mode of the Redis client.
type Mode string

const (
	// Standalone Mode is for a single Redis instance.
	Standalone Mode = "standalone"
	// Cluster Mode is for a Redis cluster setup.
	Cluster Mode = "cluster"
)

// Config holds the configuration for the Redis client.
type Config struct {
	Mode     Mode   `env:"MODE" envDefault:"standalone"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`

	Addrs []string `env:"ADDRS" envSeparator:"," envDefault:"localhost:6379"`

	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"2s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"2s"`
	MaxRetries      int           `env:"MAX_RETRIES" envDefault:"0"`
	MinRetryBackoff time.Duration `env:"MIN_RETRY_BACKOFF" envDefault:"100ms"`
	MaxRetryBackoff time.Duration `env:"MAX_RETRY_BACKOFF" envDefault:"2s"`
	PoolSize        int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns    int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"10m"`
	PoolTimeout     time.Duration `env:"POOL_TIMEOUT" envDefault:"4s"`

	ReconnectMaxRetries int `env:"RECONNECT_MAX_RETRIES" envDefault:"3"`
}

// DefaultConfig returns a default configuration for the Redis client.
func DefaultConfig() *Config {
	return &Config{
		Mode:                Standalone,
		Addrs:               []string{"localhost:6379"},
		ConnectTimeout:      5 * time.Second,
		ReadTimeout:         2 * time.Second,
		WriteTimeout:        2 * time.Second,
		MaxRetries:          0,
		MinRetryBackoff:     100 * time.Millisecond,
		MaxRetryBackoff:     2 * time.Second,
		PoolSize:            10,
		MinIdleConns:        2,
		MaxIdleConns:        10,
		ConnMaxLifetime:     30 * time.Minute,
		ConnMaxIdleTime:     10 * time.Minute,
		PoolTimeout:         4 * time.Second,
		ReconnectMaxRetries: 3,
	}
}

// Validate checks the configuration before a connection is attempted.
func (c *Config) Validate() error {
	switch {
	case len(c.Addrs) == 0:
		return configError("Redis addresses are empty", "addrs")
	case c.Mode != Standalone && c.Mode != Cluster:
		return configError("Invalid Redis mode", "mode")
	case c.ConnectTimeout <= 0:
		return configError("Invalid Redis connect timeout", "connect_timeout")
	case c.ReadTimeout <= 0 || c.WriteTimeout <= 0:
		return configError("Invalid Redis read/write timeout", "read_timeout")
	case c.PoolSize <= 0:
		return configError("Invalid Redis pool size", "pool_size")
	case c.MinIdleConns < 0 || c.MaxIdleConns < 0:
		return configError("Invalid Redis idle connections", "max_idle_conns")
	case c.ConnMaxLifetime <= 0:
		return configError("Invalid Redis connection max lifetime", "conn_max_lifetime")
	case c.ConnMaxIdleTime <= 0:
		return configError("Invalid Redis connection max idle time", "conn_max_idle_time")
	case c.PoolTimeout <= 0:
		return configError("Invalid Redis pool timeout", "pool_timeout")
	case c.MaxRetries < 0:
		return configError("Invalid Redis max retries", "max_retries")
	case c.MinRetryBackoff < 0 || c.MaxRetryBackoff < 0:
		return configError("Invalid Redis retry backoff", "retry_backoff")
	}
	return nil
}

// commandRetries maps MaxRetries onto go-redis, where 0 means its own default
// of 3 and -1 disables resending. A command is never resent unless asked for,
// so a lost XADD reply surfaces to the caller instead of writing twice.
func (c *Config) commandRetries() int {
	if c.MaxRetries == 0 {
		return -1
	}
	return c.MaxRetries
}

func configError(message, field string) error {
	return errors.NewErrorDetails(message, errors.RedisConfigError.String(), field)
}
