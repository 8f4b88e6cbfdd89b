package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookview/internal/book"
	"bookview/internal/metrics"
)

// gatedFetcher blocks each key until its gate is released.
type gatedFetcher struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	calls []string
	errs  map[string]error
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{gates: map[string]chan struct{}{}, errs: map[string]error{}}
}

func (f *gatedFetcher) gate(key string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.gates[key]
	if !ok {
		ch = make(chan struct{})
		f.gates[key] = ch
	}
	return ch
}

func (f *gatedFetcher) release(key string) { close(f.gate(key)) }

func (f *gatedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *gatedFetcher) fetch(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, key)
	err := f.errs[key]
	f.mu.Unlock()

	<-f.gate(key)
	if err != nil {
		return "", err
	}
	return "value-" + key, nil
}

func waitSettled(t *testing.T, l *Loader[string, string]) State[string] {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	st, err := l.Wait(ctx)
	require.NoError(t, err)
	return st
}

func TestLoader_LoadCommitsValue(t *testing.T) {
	f := newGatedFetcher()
	l := New[string, string](context.Background(), f.fetch, nil)

	l.Load("a")
	st := l.State()
	assert.True(t, st.Loading)
	assert.Nil(t, st.Value)
	assert.Empty(t, st.Error)

	f.release("a")
	st = waitSettled(t, l)
	assert.False(t, st.Loading)
	require.NotNil(t, st.Value)
	assert.Equal(t, "value-a", *st.Value)

	key, ok := l.Key()
	assert.True(t, ok)
	assert.Equal(t, "a", key)
}

func TestLoader_StaleResponseDropped(t *testing.T) {
	f := newGatedFetcher()
	l := New[string, string](context.Background(), f.fetch, nil)

	dropped := testutil.ToFloat64(metrics.StaleResponsesDropped)

	l.Load("slow")
	l.Load("fast")

	f.release("fast")
	st := waitSettled(t, l)
	require.NotNil(t, st.Value)
	assert.Equal(t, "value-fast", *st.Value)

	f.release("slow")
	assert.Eventually(t, func() bool { return f.callCount() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.StaleResponsesDropped) >= dropped+1
	}, time.Second, 5*time.Millisecond)

	st = l.State()
	require.NotNil(t, st.Value)
	assert.Equal(t, "value-fast", *st.Value)
}

func TestLoader_LateResultAfterResetDropped(t *testing.T) {
	f := newGatedFetcher()
	l := New[string, string](context.Background(), f.fetch, nil)
	dropped := testutil.ToFloat64(metrics.StaleResponsesDropped)

	l.Load("a")
	l.Reset()
	f.release("a")

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.StaleResponsesDropped) >= dropped+1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, State[string]{}, l.State())
	_, ok := l.Key()
	assert.False(t, ok)
}

func TestLoader_SameKeyIsNoop(t *testing.T) {
	f := newGatedFetcher()
	l := New[string, string](context.Background(), f.fetch, nil)

	l.Load("a")
	l.Load("a")
	f.release("a")
	waitSettled(t, l)
	l.Load("a")

	assert.Equal(t, 1, f.callCount())
}

func TestLoader_ResetIssuesNoRequest(t *testing.T) {
	f := newGatedFetcher()
	l := New[string, string](context.Background(), f.fetch, nil)

	l.Reset()
	assert.Equal(t, State[string]{}, l.State())
	assert.Equal(t, 0, f.callCount())

	l.Load("a")
	l.Reset()
	f.release("a")
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, State[string]{}, l.State())
	_, ok := l.Key()
	assert.False(t, ok)
}

func TestLoader_ResetThenSameKeyRefetches(t *testing.T) {
	f := newGatedFetcher()
	l := New[string, string](context.Background(), f.fetch, nil)
	f.release("a")

	l.Load("a")
	waitSettled(t, l)
	l.Reset()
	l.Load("a")
	waitSettled(t, l)

	assert.Equal(t, 2, f.callCount())
}

func TestLoader_CloseDropsPending(t *testing.T) {
	f := newGatedFetcher()
	l := New[string, string](context.Background(), f.fetch, nil)

	l.Load("a")
	l.Close()
	f.release("a")
	time.Sleep(20 * time.Millisecond)

	st := l.State()
	assert.Nil(t, st.Value)

	l.Load("b")
	assert.Equal(t, 1, f.callCount())

	st, err := l.Wait(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st.Value)
}

func TestLoader_ErrorDescribed(t *testing.T) {
	f := newGatedFetcher()
	f.errs["bad"] = errors.New("boom")
	l := New[string, string](context.Background(), f.fetch, func(err error) string {
		return "described: " + err.Error()
	})

	l.Load("bad")
	f.release("bad")
	st := waitSettled(t, l)

	assert.False(t, st.Loading)
	assert.Nil(t, st.Value)
	assert.Equal(t, "described: boom", st.Error)
}

func TestLoader_WaitHonoursContext(t *testing.T) {
	f := newGatedFetcher()
	l := New[string, string](context.Background(), f.fetch, nil)
	l.Load("never")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	st, err := l.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, st.Loading)
	f.release("never")
}

type stubLookup struct {
	details map[string]book.BookDetails
	err     error
}

func (s stubLookup) Lookup(_ context.Context, isbn string) (book.BookDetails, error) {
	if s.err != nil {
		return book.BookDetails{}, s.err
	}
	d, ok := s.details[isbn]
	if !ok {
		return book.BookDetails{}, book.ErrNotFound
	}
	return d, nil
}

func TestNewBookDetails(t *testing.T) {
	tests := []struct {
		name      string
		lookup    stubLookup
		isbn      string
		wantTitle string
		wantError string
	}{
		{
			name:      "found",
			lookup:    stubLookup{details: map[string]book.BookDetails{"9783442236862": {Title: "Snow Crash"}}},
			isbn:      "9783442236862",
			wantTitle: "Snow Crash",
		},
		{
			name:      "not found",
			lookup:    stubLookup{},
			isbn:      "0",
			wantError: MsgNotFound,
		},
		{
			name:      "unavailable",
			lookup:    stubLookup{err: fmt.Errorf("%w: %w", book.ErrUnavailable, errors.New("dial tcp: refused"))},
			isbn:      "1",
			wantError: MsgLoadFailed,
		},
		{
			name:      "other error keeps its message",
			lookup:    stubLookup{err: errors.New("weird")},
			isbn:      "1",
			wantError: "weird",
		},
		{
			name:      "empty message",
			lookup:    stubLookup{err: errors.New("")},
			isbn:      "1",
			wantError: MsgLoadFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewBookDetails(context.Background(), tt.lookup)
			defer l.Close()

			l.Load(tt.isbn)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			st, err := l.Wait(ctx)
			require.NoError(t, err)

			if tt.wantError != "" {
				assert.Nil(t, st.Value)
				assert.Equal(t, tt.wantError, st.Error)
				return
			}
			require.NotNil(t, st.Value)
			assert.Equal(t, tt.wantTitle, st.Value.Title)
			assert.Empty(t, st.Error)
		})
	}
}
