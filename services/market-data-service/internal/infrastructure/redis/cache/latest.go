package cache

import (
	"context"
	"time"

	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	"github.com/muhammadchandra19/marketdepth/pkg/redis"
	streamv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

const (
	DefaultKeyPrefix = "market_data:"
	DefaultTTL       = 60 * time.Second
)

// LatestStore wraps a stream store and keeps a JSON copy of each
// instrument's newest tick under "<prefix><id>:latest".
// A cache write failure never fails the append.
type LatestStore struct {
	streamv1.Store

	client redis.Client
	logger logger.Interface
	prefix string
	ttl    time.Duration
}

// NewLatestStore decorates next with a latest-tick cache.
func NewLatestStore(next streamv1.Store, client redis.Client, log logger.Interface, prefix string, ttl time.Duration) *LatestStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &LatestStore{
		Store:  next,
		client: client,
		logger: log,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *LatestStore) key(instrumentID string) string {
	return s.prefix + instrumentID + ":latest"
}

func (s *LatestStore) Append(ctx context.Context, tick *tickv1.Tick) (uint64, error) {
	seq, err := s.Store.Append(ctx, tick)
	if err != nil {
		return 0, err
	}

	key := s.key(tick.InstrumentID)
	cached := tick.Clone()
	cached.Sequence = seq
	payload, err := tickv1.Marshal(cached)
	if err == nil {
		err = s.client.Set(ctx, key, payload, s.ttl)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "latest tick cache write failed",
			logger.NewField("instrument_id", tick.InstrumentID),
			logger.NewField("error", err.Error()),
		)
		// An older cached tick must not outlive a newer appended one.
		s.evict(ctx, key, tick.InstrumentID)
	}
	return seq, nil
}

func (s *LatestStore) evict(ctx context.Context, key, instrumentID string) {
	if _, err := s.client.Del(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "latest tick cache eviction failed",
			logger.NewField("instrument_id", instrumentID),
			logger.NewField("error", err.Error()),
		)
	}
}

// ReadLatest serves from the cache and falls back to the stream on a miss,
// a cache error or an undecodable value. Undecodable values are evicted.
func (s *LatestStore) ReadLatest(ctx context.Context, instrumentID string) (*tickv1.Tick, error) {
	key := s.key(instrumentID)
	payload, err := s.client.Get(ctx, key)
	if err == nil && payload != "" {
		tick, err := tickv1.Unmarshal([]byte(payload))
		if err == nil {
			return tick, nil
		}
		s.evict(ctx, key, instrumentID)
	}
	return s.Store.ReadLatest(ctx, instrumentID)
}
