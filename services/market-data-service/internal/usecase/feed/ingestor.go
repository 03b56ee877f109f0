package feed

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/muhammadchandra19/marketdepth/pkg/backoff"
	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	depthconfigv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/depthconfig/v1"
	feedv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/feed/v1"
	normalizerv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/normalizer/v1"
	sinkv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/sink/v1"
	streamv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/stream/v1"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

// Config holds the ingestion settings.
type Config struct {
	QueueSize        int
	EnqueueWait      time.Duration
	MaxSubscriptions int
	SinkTimeout      time.Duration
	Backoff          backoff.Backoff
}

// DefaultConfig returns the stock ingestion settings.
func DefaultConfig() Config {
	return Config{
		QueueSize:        4096,
		EnqueueWait:      50 * time.Millisecond,
		MaxSubscriptions: 3000,
		SinkTimeout:      2 * time.Second,
		Backoff:          backoff.Default(),
	}
}

type frame struct {
	data       []byte
	receivedAt time.Time
}

// Ingestor owns one upstream connection at a time. Frames are read by a
// connection goroutine into a bounded queue and processed by a single consumer,
// so ticks reach the store in delivery order.
type Ingestor struct {
	dialer     feedv1.Dialer
	normalizer normalizerv1.Normalizer
	registry   depthconfigv1.Registry
	store      streamv1.Store
	sinks      []sinkv1.TickSink
	logger     logger.Interface
	config     Config
	now        func() time.Time

	mu    sync.Mutex
	subs  map[string]int
	conn  feedv1.Conn
	state feedv1.State

	stats counters
}

// NewIngestor creates an ingestor in the disconnected state.
func NewIngestor(
	dialer feedv1.Dialer,
	normalizer normalizerv1.Normalizer,
	registry depthconfigv1.Registry,
	store streamv1.Store,
	logger logger.Interface,
	config Config,
	sinks ...sinkv1.TickSink,
) *Ingestor {
	defaults := DefaultConfig()
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.EnqueueWait <= 0 {
		config.EnqueueWait = defaults.EnqueueWait
	}
	if config.MaxSubscriptions <= 0 {
		config.MaxSubscriptions = defaults.MaxSubscriptions
	}
	if config.SinkTimeout <= 0 {
		config.SinkTimeout = defaults.SinkTimeout
	}

	return &Ingestor{
		dialer:     dialer,
		normalizer: normalizer,
		registry:   registry,
		store:      store,
		sinks:      sinks,
		logger:     logger,
		config:     config,
		now:        time.Now,
		subs:       make(map[string]int),
		state:      feedv1.StateDisconnected,
	}
}

// Run connects and streams until ctx is done, reconnecting with backoff after
// every transport failure. It returns nil on cancellation.
func (i *Ingestor) Run(ctx context.Context) error {
	attempt := 0
	for {
		if ctx.Err() != nil {
			i.setState(feedv1.StateDisconnected)
			return nil
		}

		if attempt > 0 {
			i.stats.reconnects.Add(1)
		}
		i.setState(feedv1.StateConnecting)

		conn, err := i.dialer.Dial(ctx)
		if err == nil {
			streamed, sessionErr := i.session(ctx, conn)
			if streamed {
				attempt = 0
			}
			err = sessionErr
		}
		i.setState(feedv1.StateDisconnected)

		if ctx.Err() != nil {
			return nil
		}

		attempt++
		delay := i.config.Backoff.Next(attempt)
		if err != nil {
			i.logger.Error(errors.TracerFromError(err), logger.NewField("attempt", attempt))
		}
		i.logger.Info("reconnecting to upstream feed",
			logger.NewField("attempt", attempt),
			logger.NewField("delay", delay.String()),
		)
		if !backoff.Wait(ctx, delay) {
			i.setState(feedv1.StateDisconnected)
			return nil
		}
	}
}

// session runs one connection until it fails or ctx is done. Frames already
// queued when the connection ends are still processed. streamed reports
// whether at least one frame was received.
func (i *Ingestor) session(ctx context.Context, conn feedv1.Conn) (streamed bool, err error) {
	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(sessionCtx, func() {
		_ = conn.Close()
	})
	defer stop()
	defer func() {
		i.mu.Lock()
		i.conn = nil
		i.mu.Unlock()
		_ = conn.Close()
	}()

	if err := i.resubscribe(sessionCtx, conn); err != nil {
		return false, err
	}
	i.setState(feedv1.StateSubscribed)

	queue := make(chan frame, i.config.QueueSize)
	var readErr error
	go func() {
		defer close(queue)
		for {
			data, err := conn.ReadFrame(sessionCtx)
			if err != nil {
				readErr = err
				return
			}
			i.enqueue(sessionCtx, queue, frame{data: data, receivedAt: i.now()})
		}
	}()

	// Appends outlive cancellation so the queue drains on shutdown. The
	// store bounds each call with its own timeout, sinks with SinkTimeout.
	processCtx := context.WithoutCancel(ctx)
	for f := range queue {
		if !streamed {
			streamed = true
			i.setState(feedv1.StateStreaming)
		}
		i.process(processCtx, f)
	}
	return streamed, readErr
}

// resubscribe registers the connection and replays the desired subscription set on it.
func (i *Ingestor) resubscribe(ctx context.Context, conn feedv1.Conn) error {
	i.mu.Lock()
	i.conn = conn
	byMode := make(map[feedv1.Mode][]string)
	for id, depth := range i.subs {
		mode := feedv1.ModeFor(depth)
		byMode[mode] = append(byMode[mode], id)
	}
	i.mu.Unlock()

	for _, mode := range []feedv1.Mode{feedv1.ModeQuote, feedv1.ModeFull} {
		ids := byMode[mode]
		if len(ids) == 0 {
			continue
		}
		slices.Sort(ids)
		if err := conn.Subscribe(ctx, ids, mode); err != nil {
			return err
		}
		i.logger.Info("subscribed upstream",
			logger.NewField("mode", string(mode)),
			logger.NewField("instruments", len(ids)),
		)
	}
	return nil
}

func (i *Ingestor) enqueue(ctx context.Context, queue chan<- frame, f frame) {
	select {
	case queue <- f:
		return
	default:
	}

	timer := time.NewTimer(i.config.EnqueueWait)
	defer timer.Stop()

	select {
	case queue <- f:
	case <-timer.C:
		i.stats.dropped.Add(1)
		i.logger.Warn(feedv1.ErrQueueFull().Error(), logger.NewField("queue_size", i.config.QueueSize))
	case <-ctx.Done():
		i.stats.dropped.Add(1)
	}
}

// process decodes, normalizes, appends and fans out one frame. No failure here
// ends the session.
func (i *Ingestor) process(ctx context.Context, f frame) {
	payloads, err := tickv1.DecodeFrame(f.data)
	if err != nil {
		i.stats.received.Add(1)
		i.stats.malformed.Add(1)
		i.logger.Warn("malformed frame", logger.NewField("reason", err.Error()))
		return
	}

	for _, payload := range payloads {
		i.stats.received.Add(1)
		i.processPayload(ctx, payload, f.receivedAt)
	}
}

func (i *Ingestor) processPayload(ctx context.Context, payload *tickv1.ProviderTick, receivedAt time.Time) {
	tick, outcome, err := i.normalizer.Normalize(payload, receivedAt)
	if err != nil {
		i.stats.malformed.Add(1)
		instrumentID := ""
		if payload != nil {
			instrumentID = string(payload.InstrumentToken)
		}
		i.logger.Warn("malformed tick",
			logger.NewField("instrument_id", instrumentID),
			logger.NewField("reason", err.Error()),
		)
		return
	}

	if outcome.Truncated {
		i.stats.truncated.Add(1)
		i.logger.Warn("depth truncated",
			logger.NewField("instrument_id", tick.InstrumentID),
			logger.NewField("provided_depth", outcome.ProvidedDepth),
			logger.NewField("configured_depth", outcome.ConfiguredDepth),
		)
	}
	if outcome.Padded {
		i.stats.padded.Add(1)
		i.logger.Warn("depth padded",
			logger.NewField("instrument_id", tick.InstrumentID),
			logger.NewField("provided_depth", outcome.ProvidedDepth),
			logger.NewField("configured_depth", outcome.ConfiguredDepth),
		)
	}

	seq, err := i.store.Append(ctx, tick)
	if err != nil {
		i.stats.appendFailed.Add(1)
		i.logger.Error(errors.TracerFromError(err), logger.NewField("instrument_id", tick.InstrumentID))
		return
	}
	tick.Sequence = seq
	i.stats.accepted.Add(1)

	for _, sink := range i.sinks {
		if err := i.consume(ctx, sink, tick); err != nil {
			i.stats.sinkFailed.Add(1)
			i.logger.Error(errors.TracerFromError(err),
				logger.NewField("sink", sink.Name()),
				logger.NewField("instrument_id", tick.InstrumentID),
			)
		}
	}
}

// consume hands tick to one sink, bounded by SinkTimeout.
func (i *Ingestor) consume(ctx context.Context, sink sinkv1.TickSink, tick *tickv1.Tick) error {
	ctx, cancel := context.WithTimeout(ctx, i.config.SinkTimeout)
	defer cancel()
	return sink.Consume(ctx, tick)
}

// Subscribe adds instruments to the desired set at the given depth level and
// updates their registry entries. Instruments already subscribed do not count
// against the limit again. The upstream request is sent when a session is
// live; otherwise it is replayed on the next connect.
func (i *Ingestor) Subscribe(ctx context.Context, instrumentIDs []string, depthLevel int) error {
	if !tickv1.ValidDepth(depthLevel) {
		return tickv1.ErrInvalidDepthLevel(depthLevel)
	}
	ids := cleanIDs(instrumentIDs)
	if len(ids) == 0 {
		return errors.NewErrorDetails("no instrument ids given", errors.GeneralBadRequestError.String(), "instrument_ids")
	}

	i.mu.Lock()
	added := 0
	for _, id := range ids {
		if _, ok := i.subs[id]; !ok {
			added++
		}
	}
	if total := len(i.subs) + added; total > i.config.MaxSubscriptions {
		i.mu.Unlock()
		return feedv1.ErrSubscriptionLimit(i.config.MaxSubscriptions, total)
	}
	for _, id := range ids {
		if err := i.registry.Set(id, depthLevel); err != nil {
			i.mu.Unlock()
			return err
		}
		i.subs[id] = depthLevel
	}
	conn := i.conn
	total := len(i.subs)
	i.mu.Unlock()

	i.logger.InfoContext(ctx, "subscription changed",
		logger.NewField("added", added),
		logger.NewField("depth_level", depthLevel),
		logger.NewField("total", total),
	)

	i.send(ctx, conn, func(c feedv1.Conn) error {
		return c.Subscribe(ctx, ids, feedv1.ModeFor(depthLevel))
	})
	return nil
}

// Unsubscribe removes instruments from the desired set. Their depth level
// assignment is kept.
func (i *Ingestor) Unsubscribe(ctx context.Context, instrumentIDs []string) error {
	ids := cleanIDs(instrumentIDs)

	i.mu.Lock()
	removed := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := i.subs[id]; ok {
			delete(i.subs, id)
			removed = append(removed, id)
		}
	}
	conn := i.conn
	total := len(i.subs)
	i.mu.Unlock()

	if len(removed) == 0 {
		return nil
	}
	i.logger.InfoContext(ctx, "subscription changed",
		logger.NewField("removed", len(removed)),
		logger.NewField("total", total),
	)

	i.send(ctx, conn, func(c feedv1.Conn) error {
		return c.Unsubscribe(ctx, removed)
	})
	return nil
}

// SetDepthLevel changes the instrument's depth level without reconnecting.
// A subscribed instrument also has its upstream mode switched.
func (i *Ingestor) SetDepthLevel(ctx context.Context, instrumentID string, depthLevel int) error {
	if err := i.registry.Set(instrumentID, depthLevel); err != nil {
		return err
	}

	i.mu.Lock()
	previous, subscribed := i.subs[instrumentID]
	if subscribed {
		i.subs[instrumentID] = depthLevel
	}
	conn := i.conn
	i.mu.Unlock()

	if subscribed && feedv1.ModeFor(previous) != feedv1.ModeFor(depthLevel) {
		i.send(ctx, conn, func(c feedv1.Conn) error {
			return c.Subscribe(ctx, []string{instrumentID}, feedv1.ModeFor(depthLevel))
		})
	}
	return nil
}

// send issues a control request on the live session. Failures are logged; the
// desired set is replayed on the next connect.
func (i *Ingestor) send(ctx context.Context, conn feedv1.Conn, fn func(feedv1.Conn) error) {
	if conn == nil {
		i.logger.InfoContext(ctx, feedv1.ErrNotConnected().Error()+", request deferred to next connect")
		return
	}
	if err := fn(conn); err != nil {
		i.logger.ErrorContext(ctx, errors.TracerFromError(err))
	}
}

// Status returns the current state, counters and subscription set.
func (i *Ingestor) Status() feedv1.Status {
	i.mu.Lock()
	defer i.mu.Unlock()
	return feedv1.Status{
		State:         i.state,
		Stats:         i.stats.snapshot(),
		Subscriptions: maps.Clone(i.subs),
	}
}

func (i *Ingestor) setState(state feedv1.State) {
	i.mu.Lock()
	previous := i.state
	i.state = state
	i.mu.Unlock()

	if previous != state {
		i.logger.Info("feed state changed",
			logger.NewField("from", string(previous)),
			logger.NewField("to", string(state)),
		)
	}
}

func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
