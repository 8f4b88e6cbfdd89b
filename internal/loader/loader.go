package loader

import (
	"context"
	"sync"

	"bookview/internal/logger"
	"bookview/internal/metrics"
)

// State is the observable outcome of the most recent load.
type State[T any] struct {
	Value   *T
	Loading bool
	Error   string
}

// Fetcher resolves one key.
type Fetcher[K comparable, T any] func(ctx context.Context, key K) (T, error)

// Loader tracks one key at a time. Every Load, Reset and Close starts a new
// generation; a fetch result is committed only if its generation is still
// current when it arrives, so the last requested key always wins.
//
// In-flight fetches are not cancelled when superseded. They run against the
// base context passed to New and their results are discarded.
type Loader[K comparable, T any] struct {
	ctx      context.Context
	fetch    Fetcher[K, T]
	describe func(error) string

	mu      sync.Mutex
	gen     uint64
	key     K
	hasKey  bool
	closed  bool
	state   State[T]
	settled chan struct{}
}

// New returns an idle loader. describe turns a fetch error into the text
// stored in State.Error.
func New[K comparable, T any](ctx context.Context, fetch Fetcher[K, T], describe func(error) string) *Loader[K, T] {
	if ctx == nil {
		ctx = context.Background()
	}
	if describe == nil {
		describe = func(err error) string { return err.Error() }
	}
	return &Loader[K, T]{
		ctx:      ctx,
		fetch:    fetch,
		describe: describe,
	}
}

// Load starts fetching key unless key is already the active one.
func (l *Loader[K, T]) Load(key K) {
	l.mu.Lock()
	if l.closed || (l.hasKey && l.key == key) {
		l.mu.Unlock()
		return
	}

	l.gen++
	gen := l.gen
	l.key = key
	l.hasKey = true
	l.settle()
	l.settled = make(chan struct{})
	l.state = State[T]{Loading: true}
	l.mu.Unlock()

	go l.run(gen, key)
}

// Reset clears the active key and state without issuing a request.
func (l *Loader[K, T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.gen++
	var zero K
	l.key = zero
	l.hasKey = false
	l.settle()
	l.state = State[T]{}
}

// Close invalidates any pending fetch. Nothing is committed afterwards and
// further Load calls are ignored.
func (l *Loader[K, T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.gen++
	l.settle()
}

// State returns a snapshot of the current state.
func (l *Loader[K, T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Key returns the active key and whether one is set.
func (l *Loader[K, T]) Key() (K, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.key, l.hasKey
}

// Wait blocks until the current generation is no longer loading, then
// returns the state.
func (l *Loader[K, T]) Wait(ctx context.Context) (State[T], error) {
	for {
		l.mu.Lock()
		if !l.state.Loading || l.settled == nil {
			st := l.state
			l.mu.Unlock()
			return st, nil
		}
		ch := l.settled
		l.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return l.State(), ctx.Err()
		}
	}
}

func (l *Loader[K, T]) run(gen uint64, key K) {
	v, err := l.fetch(l.ctx, key)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		metrics.StaleResponsesDropped.Inc()
		logger.For(l.ctx).WithField("key", key).Debug("Dropping stale fetch result")
		return
	}
	if err != nil {
		l.state = State[T]{Error: l.describe(err)}
	} else {
		l.state = State[T]{Value: &v}
	}
	l.settle()
}

// settle wakes waiters of the current generation. Caller holds l.mu.
func (l *Loader[K, T]) settle() {
	if l.settled != nil {
		close(l.settled)
		l.settled = nil
	}
}
