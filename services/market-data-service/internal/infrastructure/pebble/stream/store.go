package stream

import (
	"context"
	"encoding/binary"
	"fmt"
	"net/url"
	"slices"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	streamv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// Config holds the pebble store settings.
type Config struct {
	Dir       string
	Retention streamv1.Retention
	// FS overrides the filesystem, vfs.NewMem() in tests.
	FS vfs.FS
	// Sync makes every append durable before it returns.
	Sync bool
}

// series tracks the retained window [first, last] of one instrument.
// first == 0 means empty.
type series struct {
	mu     sync.Mutex
	loaded bool
	first  uint64
	last   uint64
}

func (s *series) len() int64 {
	if s.first == 0 {
		return 0
	}
	return int64(s.last - s.first + 1)
}

// Store is an embedded capped log. Entries live under
// "tick/<escaped id>/<%020d seq>" and "meta/<escaped id>" holds first and last.
type Store struct {
	db        *pebble.DB
	retention streamv1.Retention
	writeOpts *pebble.WriteOptions

	// state guards closed; operations hold it shared so Close waits for them.
	state  sync.RWMutex
	closed bool

	mu     sync.Mutex
	series map[string]*series
}

// Open opens (or creates) the store at config.Dir.
func Open(config Config) (*Store, error) {
	opts := &pebble.Options{}
	if config.FS != nil {
		opts.FS = config.FS
	}
	db, err := pebble.Open(config.Dir, opts)
	if err != nil {
		return nil, tickv1.ErrStoreUnavailable("open", err)
	}

	retention := config.Retention
	if retention == (streamv1.Retention{}) {
		retention = streamv1.DefaultRetention()
	}
	writeOpts := pebble.NoSync
	if config.Sync {
		writeOpts = pebble.Sync
	}

	return &Store{
		db:        db,
		retention: retention,
		writeOpts: writeOpts,
		series:    make(map[string]*series),
	}, nil
}

func prefix(instrumentID string) string {
	return "tick/" + url.PathEscape(instrumentID) + "/"
}

func tickKey(instrumentID string, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefix(instrumentID), seq))
}

func metaKey(instrumentID string) []byte {
	return []byte("meta/" + url.PathEscape(instrumentID))
}

func (s *Store) seriesFor(instrumentID string) *series {
	s.mu.Lock()
	defer s.mu.Unlock()

	sr, ok := s.series[instrumentID]
	if !ok {
		sr = &series{}
		s.series[instrumentID] = sr
	}
	return sr
}

// load reads the meta record once. Callers hold sr.mu.
func (s *Store) load(instrumentID string, sr *series) error {
	if sr.loaded {
		return nil
	}
	val, closer, err := s.db.Get(metaKey(instrumentID))
	if err == pebble.ErrNotFound {
		sr.loaded = true
		return nil
	}
	if err != nil {
		return err
	}
	defer closer.Close()

	if len(val) != 16 {
		return fmt.Errorf("invalid meta record length %d", len(val))
	}
	sr.first = binary.BigEndian.Uint64(val[:8])
	sr.last = binary.BigEndian.Uint64(val[8:])
	sr.loaded = true
	return nil
}

func encodeMeta(first, last uint64) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[:8], first)
	binary.BigEndian.PutUint64(buf[8:], last)
	return buf
}

// Append writes the tick and evicts the oldest entries past the cap of the
// tick's depth level in the same batch.
func (s *Store) Append(ctx context.Context, tick *tickv1.Tick) (uint64, error) {
	if err := tick.CheckShape(); err != nil {
		return 0, err
	}
	s.state.RLock()
	defer s.state.RUnlock()
	if s.closed {
		return 0, tickv1.ErrStoreUnavailable("append", pebble.ErrClosed)
	}

	sr := s.seriesFor(tick.InstrumentID)
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if err := s.load(tick.InstrumentID, sr); err != nil {
		return 0, tickv1.ErrStoreUnavailable("append", err)
	}

	seq := sr.last + 1
	stored := tick.Clone()
	stored.Sequence = seq
	value, err := tickv1.Marshal(stored)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}

	first := sr.first
	if first == 0 {
		first = seq
	}
	newFirst := first
	if capacity := uint64(s.retention.CapFor(tick.DepthLevel)); seq-first+1 > capacity {
		newFirst = seq - capacity + 1
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(tickKey(tick.InstrumentID, seq), value, nil); err != nil {
		return 0, tickv1.ErrStoreUnavailable("append", err)
	}
	if newFirst > first {
		if err := batch.DeleteRange(tickKey(tick.InstrumentID, first), tickKey(tick.InstrumentID, newFirst), nil); err != nil {
			return 0, tickv1.ErrStoreUnavailable("append", err)
		}
	}
	if err := batch.Set(metaKey(tick.InstrumentID), encodeMeta(newFirst, seq), nil); err != nil {
		return 0, tickv1.ErrStoreUnavailable("append", err)
	}
	if err := batch.Commit(s.writeOpts); err != nil {
		return 0, tickv1.ErrStoreUnavailable("append", err)
	}

	sr.first, sr.last = newFirst, seq
	return seq, nil
}

// ReadLatest returns the newest entry of the instrument.
func (s *Store) ReadLatest(ctx context.Context, instrumentID string) (*tickv1.Tick, error) {
	var latest *tickv1.Tick
	err := s.scanBackward(instrumentID, func(tick *tickv1.Tick) bool {
		latest = tick
		return false
	})
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, tickv1.ErrNotFound(instrumentID)
	}
	return latest, nil
}

// ReadRange returns matching entries oldest first.
func (s *Store) ReadRange(ctx context.Context, instrumentID string, r streamv1.Range) ([]*tickv1.Tick, error) {
	var ticks []*tickv1.Tick
	err := s.scanBackward(instrumentID, func(tick *tickv1.Tick) bool {
		if r.Contains(tick.Timestamp) {
			ticks = append(ticks, tick)
		}
		return r.LastN == 0 || len(ticks) < r.LastN
	})
	if err != nil {
		return nil, err
	}
	slices.Reverse(ticks)
	return ticks, nil
}

func (s *Store) scanBackward(instrumentID string, fn func(*tickv1.Tick) bool) error {
	s.state.RLock()
	defer s.state.RUnlock()
	if s.closed {
		return tickv1.ErrStoreUnavailable("read", pebble.ErrClosed)
	}

	p := prefix(instrumentID)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(p),
		UpperBound: []byte(p + "~"),
	})
	if err != nil {
		return tickv1.ErrStoreUnavailable("read", err)
	}
	defer iter.Close()

	for iter.Last(); iter.Valid(); iter.Prev() {
		tick, err := tickv1.Unmarshal(iter.Value())
		if err != nil {
			return errors.TracerFromError(err)
		}
		if !fn(tick) {
			break
		}
	}
	if err := iter.Error(); err != nil {
		return tickv1.ErrStoreUnavailable("read", err)
	}
	return nil
}

// Len returns the number of retained entries.
func (s *Store) Len(ctx context.Context, instrumentID string) (int64, error) {
	s.state.RLock()
	defer s.state.RUnlock()
	if s.closed {
		return 0, tickv1.ErrStoreUnavailable("len", pebble.ErrClosed)
	}

	sr := s.seriesFor(instrumentID)
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if err := s.load(instrumentID, sr); err != nil {
		return 0, tickv1.ErrStoreUnavailable("len", err)
	}
	return sr.len(), nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.state.RLock()
	defer s.state.RUnlock()
	if s.closed {
		return tickv1.ErrStoreUnavailable("ping", pebble.ErrClosed)
	}
	return nil
}

func (s *Store) Close() error {
	s.state.Lock()
	defer s.state.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
