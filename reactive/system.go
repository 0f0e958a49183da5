package reactive

import (
	"log/slog"
	"sync/atomic"
)

const DefaultMaxFlushPasses = 100

// ErrorHandler receives failures from getters, effects and the flush loop.
// For flush level failures the NodeInfo is the zero value.
type ErrorHandler func(from NodeInfo, err error)

// ReactiveSystem is the tracking context every node belongs to. It holds the
// active subscriber, the batch depth and the pending effect queue.
//
// A ReactiveSystem is single threaded: all reads, writes and flushes must
// happen on one goroutine at a time. Stats may be read concurrently.
type ReactiveSystem struct {
	activeSub  *node
	owner      *node
	pauseStack []*node
	running    []*node

	batchDepth int
	flushing   bool
	queue      []*node
	spare      []*node

	manualFlush bool
	maxPasses   int
	onError     ErrorHandler
	logger      *slog.Logger

	nextID uint64
	runs   uint64
	stats  stats
}

type stats struct {
	writes     atomic.Uint64
	recomputes atomic.Uint64
	effectRuns atomic.Uint64
	flushes    atomic.Uint64
	errors     atomic.Uint64
	pending    atomic.Int64
}

// Stats is a snapshot of the engine counters.
type Stats struct {
	Writes         uint64
	Recomputes     uint64
	EffectRuns     uint64
	Flushes        uint64
	Errors         uint64
	PendingEffects int64
}

type SystemOption func(*ReactiveSystem)

// WithErrorHandler routes failures to fn instead of the logger.
func WithErrorHandler(fn ErrorHandler) SystemOption {
	return func(rs *ReactiveSystem) {
		rs.onError = fn
	}
}

func WithLogger(logger *slog.Logger) SystemOption {
	return func(rs *ReactiveSystem) {
		if logger != nil {
			rs.logger = logger
		}
	}
}

// WithManualFlush stops writes from running effects. Queued effects only run
// when Flush is called.
func WithManualFlush() SystemOption {
	return func(rs *ReactiveSystem) {
		rs.manualFlush = true
	}
}

// WithMaxFlushPasses bounds how many rounds of effects a single flush may
// run before giving up with a FlushLimitError.
func WithMaxFlushPasses(n int) SystemOption {
	return func(rs *ReactiveSystem) {
		if n > 0 {
			rs.maxPasses = n
		}
	}
}

func New(opts ...SystemOption) *ReactiveSystem {
	rs := &ReactiveSystem{
		maxPasses: DefaultMaxFlushPasses,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

func (rs *ReactiveSystem) newNode(kind Kind, label string) *node {
	rs.nextID++
	return &node{
		rs:    rs,
		id:    rs.nextID,
		kind:  kind,
		label: label,
	}
}

func (rs *ReactiveSystem) Stats() Stats {
	return Stats{
		Writes:         rs.stats.writes.Load(),
		Recomputes:     rs.stats.recomputes.Load(),
		EffectRuns:     rs.stats.effectRuns.Load(),
		Flushes:        rs.stats.flushes.Load(),
		Errors:         rs.stats.errors.Load(),
		PendingEffects: rs.stats.pending.Load(),
	}
}

// Pending reports how many effects are waiting for the next flush.
func (rs *ReactiveSystem) Pending() int {
	return len(rs.queue)
}

func (rs *ReactiveSystem) StartBatch() {
	rs.batchDepth++
}

func (rs *ReactiveSystem) EndBatch() {
	if rs.batchDepth == 0 {
		panic("reactive: EndBatch called without StartBatch")
	}
	rs.batchDepth--
	if rs.batchDepth == 0 {
		rs.autoFlush()
	}
}

// Batch runs cb and defers effects until the outermost batch closes. Writes
// inside the batch still mark the graph immediately, so derived reads see
// fully resolved values.
func (rs *ReactiveSystem) Batch(cb func()) {
	rs.StartBatch()
	defer rs.EndBatch()
	cb()
}

func (rs *ReactiveSystem) PauseTracking() {
	rs.pauseStack = append(rs.pauseStack, rs.activeSub)
	rs.activeSub = nil
}

func (rs *ReactiveSystem) ResumeTracking() {
	lastIdx := len(rs.pauseStack) - 1
	if lastIdx < 0 {
		panic("reactive: ResumeTracking called without PauseTracking")
	}
	rs.activeSub = rs.pauseStack[lastIdx]
	rs.pauseStack = rs.pauseStack[:lastIdx]
}

// Untracked runs fn without an active subscriber, so reads inside it create
// no dependency edges.
func (rs *ReactiveSystem) Untracked(fn func()) {
	prevSub := rs.activeSub
	rs.activeSub = nil
	defer func() {
		rs.activeSub = prevSub
	}()
	fn()
}

// Untrack is the value returning form of Untracked.
func Untrack[T any](rs *ReactiveSystem, fn func() T) (t T) {
	rs.Untracked(func() {
		t = fn()
	})
	return t
}

func (rs *ReactiveSystem) report(from *node, err error) {
	rs.stats.errors.Add(1)
	var info NodeInfo
	if from != nil {
		info = from.info()
	}
	if rs.onError != nil {
		rs.onError(info, err)
		return
	}
	rs.logger.Error("reactive node failed",
		slog.Uint64("node", info.ID),
		slog.String("kind", info.Kind.String()),
		slog.String("label", info.Label),
		slog.Any("err", err),
	)
}
