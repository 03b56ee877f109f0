package stream

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/muhammadchandra19/marketdepth/pkg/redis"
	streamv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
	v9 "github.com/redis/go-redis/v9"
)

const (
	// DefaultKeyPrefix namespaces the per-instrument streams.
	DefaultKeyPrefix = "market_data:"

	pageSize = 500
	seqBits  = 20
)

// Config holds the Redis stream store settings.
type Config struct {
	KeyPrefix string
	OpTimeout time.Duration
	Retention streamv1.Retention
}

// Store keeps one capped Redis stream per instrument. Eviction is done by
// XADD MAXLEN in the same command as the append.
type Store struct {
	client redis.Client
	config Config
}

// NewStore creates a Redis-backed stream store.
func NewStore(client redis.Client, config Config) *Store {
	if config.KeyPrefix == "" {
		config.KeyPrefix = DefaultKeyPrefix
	}
	if config.OpTimeout <= 0 {
		config.OpTimeout = 2 * time.Second
	}
	if config.Retention == (streamv1.Retention{}) {
		config.Retention = streamv1.DefaultRetention()
	}
	return &Store{client: client, config: config}
}

// Key returns the stream key of an instrument.
func (s *Store) Key(instrumentID string) string {
	return s.config.KeyPrefix + instrumentID
}

// Append adds the tick and trims the stream to the cap of the tick's depth level.
func (s *Store) Append(ctx context.Context, tick *tickv1.Tick) (uint64, error) {
	if err := tick.CheckShape(); err != nil {
		return 0, err
	}
	fields, err := tickv1.ToFields(tick)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.OpTimeout)
	defer cancel()

	id, err := s.client.XAdd(ctx, &v9.XAddArgs{
		Stream: s.Key(tick.InstrumentID),
		MaxLen: s.config.Retention.CapFor(tick.DepthLevel),
		Values: fields,
	})
	if err != nil {
		return 0, tickv1.ErrStoreUnavailable("append", err)
	}
	return ParseSequence(id)
}

// ReadLatest returns the newest entry of the instrument's stream.
func (s *Store) ReadLatest(ctx context.Context, instrumentID string) (*tickv1.Tick, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.OpTimeout)
	defer cancel()

	messages, err := s.client.XRevRangeN(ctx, s.Key(instrumentID), "+", "-", 1)
	if err != nil {
		return nil, tickv1.ErrStoreUnavailable("read_latest", err)
	}
	if len(messages) == 0 {
		return nil, tickv1.ErrNotFound(instrumentID)
	}
	return decode(messages[0])
}

// ReadRange walks the stream newest to oldest in pages until LastN matches are
// collected or the stream is exhausted, then returns them oldest first.
// Entries trimmed while paging are simply not seen.
func (s *Store) ReadRange(ctx context.Context, instrumentID string, r streamv1.Range) ([]*tickv1.Tick, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.OpTimeout)
	defer cancel()

	key := s.Key(instrumentID)
	count := int64(pageSize)
	if r.LastN > 0 && r.LastN < pageSize && r.Since == nil && r.Until == nil {
		count = int64(r.LastN)
	}

	var ticks []*tickv1.Tick
	stop := "+"
	for {
		messages, err := s.client.XRevRangeN(ctx, key, stop, "-", count)
		if err != nil {
			return nil, tickv1.ErrStoreUnavailable("read_range", err)
		}

		for _, msg := range messages {
			tick, err := decode(msg)
			if err != nil {
				return nil, err
			}
			if !r.Contains(tick.Timestamp) {
				continue
			}
			ticks = append(ticks, tick)
			if r.LastN > 0 && len(ticks) == r.LastN {
				slices.Reverse(ticks)
				return ticks, nil
			}
		}

		if int64(len(messages)) < count {
			break
		}
		stop = "(" + messages[len(messages)-1].ID
	}

	slices.Reverse(ticks)
	return ticks, nil
}

// Len returns the number of retained entries.
func (s *Store) Len(ctx context.Context, instrumentID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.OpTimeout)
	defer cancel()

	n, err := s.client.XLen(ctx, s.Key(instrumentID))
	if err != nil {
		return 0, tickv1.ErrStoreUnavailable("len", err)
	}
	return n, nil
}

// Ping checks that Redis answers within the operation timeout.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.OpTimeout)
	defer cancel()

	if err := s.client.Ping(ctx); err != nil {
		return tickv1.ErrStoreUnavailable("ping", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.OpTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// ParseSequence maps a stream id "<ms>-<n>" to a uint64 that grows with the id.
// The low 20 bits hold n, which is saturated.
func ParseSequence(id string) (uint64, error) {
	msPart, nPart, ok := strings.Cut(id, "-")
	if !ok {
		return 0, fmt.Errorf("invalid stream id %q", id)
	}
	ms, err := strconv.ParseUint(msPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid stream id %q: %w", id, err)
	}
	n, err := strconv.ParseUint(nPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid stream id %q: %w", id, err)
	}
	return ms<<seqBits | min(n, 1<<seqBits-1), nil
}

func decode(msg v9.XMessage) (*tickv1.Tick, error) {
	tick, err := tickv1.FromFields(msg.Values)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	seq, err := ParseSequence(msg.ID)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	tick.Sequence = seq
	return tick, nil
}
