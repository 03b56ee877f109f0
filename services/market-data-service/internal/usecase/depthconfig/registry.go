package depthconfig

import (
	"maps"
	"sync"

	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// Registry is the in-process depth level assignment. It is not persisted.
type Registry struct {
	mu           sync.RWMutex
	levels       map[string]int
	defaultLevel int
	logger       logger.Interface
}

// NewRegistry creates a registry with the given default level.
func NewRegistry(defaultLevel int, logger logger.Interface) (*Registry, error) {
	if !tickv1.ValidDepth(defaultLevel) {
		return nil, tickv1.ErrInvalidDepthLevel(defaultLevel)
	}
	return &Registry{
		levels:       make(map[string]int),
		defaultLevel: defaultLevel,
		logger:       logger,
	}, nil
}

// Get returns the configured level for the instrument or the default.
func (r *Registry) Get(instrumentID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if level, ok := r.levels[instrumentID]; ok {
		return level
	}
	return r.defaultLevel
}

// Set assigns a depth level. It applies to ticks normalized after the call returns.
func (r *Registry) Set(instrumentID string, level int) error {
	if !tickv1.ValidDepth(level) {
		return tickv1.ErrInvalidDepthLevel(level)
	}

	r.mu.Lock()
	previous, known := r.levels[instrumentID]
	r.levels[instrumentID] = level
	r.mu.Unlock()

	if !known || previous != level {
		r.logger.Info("depth level changed",
			logger.NewField("instrument_id", instrumentID),
			logger.NewField("previous", previous),
			logger.NewField("depth_level", level),
		)
	}
	return nil
}

// Default returns the process-wide default level.
func (r *Registry) Default() int {
	return r.defaultLevel
}

// Snapshot returns a copy of the explicit assignments.
func (r *Registry) Snapshot() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.levels)
}
