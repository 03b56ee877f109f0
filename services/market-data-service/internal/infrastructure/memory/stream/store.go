package stream

import (
	"context"
	"slices"
	"sync"

	"github.com/google/btree"
	streamv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

const degree = 32

type entry struct {
	seq  uint64
	tick *tickv1.Tick
}

func lessEntry(a, b entry) bool {
	return a.seq < b.seq
}

type series struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[entry]
	next uint64
}

// Store is an in-process capped log, one sequence-ordered btree per instrument.
// Nothing survives a restart.
type Store struct {
	retention streamv1.Retention

	mu     sync.RWMutex
	series map[string]*series
}

// NewStore creates an empty in-memory store.
func NewStore(retention streamv1.Retention) *Store {
	if retention == (streamv1.Retention{}) {
		retention = streamv1.DefaultRetention()
	}
	return &Store{
		retention: retention,
		series:    make(map[string]*series),
	}
}

func (s *Store) get(instrumentID string) (*series, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sr, ok := s.series[instrumentID]
	return sr, ok
}

func (s *Store) getOrCreate(instrumentID string) *series {
	if sr, ok := s.get(instrumentID); ok {
		return sr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sr, ok := s.series[instrumentID]
	if !ok {
		sr = &series{tree: btree.NewG(degree, lessEntry)}
		s.series[instrumentID] = sr
	}
	return sr
}

func (s *Store) Append(ctx context.Context, tick *tickv1.Tick) (uint64, error) {
	if err := tick.CheckShape(); err != nil {
		return 0, err
	}

	sr := s.getOrCreate(tick.InstrumentID)
	sr.mu.Lock()
	defer sr.mu.Unlock()

	sr.next++
	stored := tick.Clone()
	stored.Sequence = sr.next
	sr.tree.ReplaceOrInsert(entry{seq: sr.next, tick: stored})

	capacity := int(s.retention.CapFor(tick.DepthLevel))
	for sr.tree.Len() > capacity {
		sr.tree.DeleteMin()
	}
	return sr.next, nil
}

func (s *Store) ReadLatest(ctx context.Context, instrumentID string) (*tickv1.Tick, error) {
	sr, ok := s.get(instrumentID)
	if !ok {
		return nil, tickv1.ErrNotFound(instrumentID)
	}

	sr.mu.RLock()
	defer sr.mu.RUnlock()

	latest, ok := sr.tree.Max()
	if !ok {
		return nil, tickv1.ErrNotFound(instrumentID)
	}
	return latest.tick.Clone(), nil
}

func (s *Store) ReadRange(ctx context.Context, instrumentID string, r streamv1.Range) ([]*tickv1.Tick, error) {
	sr, ok := s.get(instrumentID)
	if !ok {
		return []*tickv1.Tick{}, nil
	}

	sr.mu.RLock()
	defer sr.mu.RUnlock()

	ticks := []*tickv1.Tick{}
	sr.tree.Descend(func(e entry) bool {
		if r.Contains(e.tick.Timestamp) {
			ticks = append(ticks, e.tick.Clone())
		}
		return r.LastN == 0 || len(ticks) < r.LastN
	})
	slices.Reverse(ticks)
	return ticks, nil
}

func (s *Store) Len(ctx context.Context, instrumentID string) (int64, error) {
	sr, ok := s.get(instrumentID)
	if !ok {
		return 0, nil
	}

	sr.mu.RLock()
	defer sr.mu.RUnlock()
	return int64(sr.tree.Len()), nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}
