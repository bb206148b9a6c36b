package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivam-bit/highlight/internal/types"
)

type fakeSource struct {
	mu      sync.Mutex
	all     []*types.Session
	calls   []types.SessionsQuery
	failErr error
}

func newFakeSource(n int) *fakeSource {
	sessions := make([]*types.Session, 0, n)
	for i := 0; i < n; i++ {
		sessions = append(sessions, &types.Session{
			ID:       fmt.Sprintf("%d", i+1),
			SecureID: fmt.Sprintf("s%02d", i+1),
			Viewed:   i%2 == 1,
		})
	}
	return &fakeSource{all: sessions}
}

func (f *fakeSource) GetSessions(_ context.Context, query types.SessionsQuery) (*types.SessionResults, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, query)
	if f.failErr != nil {
		return nil, f.failErr
	}
	end := query.Count
	if end > len(f.all) {
		end = len(f.all)
	}
	return &types.SessionResults{
		Sessions:   append([]*types.Session{}, f.all[:end]...),
		TotalCount: len(f.all),
	}, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	f.failErr = err
	f.mu.Unlock()
}

func testScope() Scope {
	return Scope{
		ProjectID: "1",
		Params:    types.EmptySessionsSearchParams(),
		Lifecycle: types.SessionLifecycleCompleted,
	}
}

func collect(l *Loader) []*types.Session {
	var out []*types.Session
	for session := range l.FilteredView() {
		out = append(out, session)
	}
	return out
}

func TestOnSearchParamsChangedFetchesInitialPrefix(t *testing.T) {
	src := newFakeSource(25)
	loader := NewLoader(src)

	require.NoError(t, loader.OnSearchParamsChanged(context.Background(), testScope()))

	require.Equal(t, 1, src.callCount())
	assert.Equal(t, InitialCount, src.calls[0].Count)
	assert.Equal(t, types.SessionLifecycleCompleted, src.calls[0].Lifecycle)
	res := loader.Results()
	assert.Len(t, res.Sessions, 10)
	assert.Equal(t, 25, res.TotalCount)
	assert.True(t, loader.HasNextPage())
}

func TestRequestMoreRefetchesWholePrefix(t *testing.T) {
	src := newFakeSource(25)
	loader := NewLoader(src)
	ctx := context.Background()
	require.NoError(t, loader.OnSearchParamsChanged(ctx, testScope()))

	require.NoError(t, loader.RequestMore(ctx))
	require.NoError(t, loader.RequestMore(ctx))

	require.Equal(t, 3, src.callCount())
	assert.Equal(t, 20, src.calls[1].Count)
	assert.Equal(t, 30, src.calls[2].Count)
	res := loader.Results()
	assert.Len(t, res.Sessions, 25)
	assert.Equal(t, "s01", res.Sessions[0].SecureID)
	assert.False(t, loader.HasNextPage())
}

func TestRequestMoreIsNoOpWhenAllLoaded(t *testing.T) {
	src := newFakeSource(7)
	loader := NewLoader(src)
	ctx := context.Background()
	require.NoError(t, loader.OnSearchParamsChanged(ctx, testScope()))

	err := loader.RequestMore(ctx)

	assert.ErrorIs(t, err, ErrNoMorePages)
	assert.Equal(t, 1, src.callCount())
	assert.Equal(t, InitialCount, loader.Count())
}

func TestRequestMoreWithoutScope(t *testing.T) {
	loader := NewLoader(newFakeSource(3))
	assert.ErrorIs(t, loader.RequestMore(context.Background()), ErrNoScope)
}

func TestRequestMoreWhileInFlightIssuesNoSecondFetch(t *testing.T) {
	src := newFakeSource(40)
	loader := NewLoader(src)
	ctx := context.Background()
	require.NoError(t, loader.OnSearchParamsChanged(ctx, testScope()))

	first, err := loader.BeginMore()
	require.NoError(t, err)
	_, err = loader.BeginMore()
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, loader.RequestMore(ctx), ErrBusy)

	require.NoError(t, first.Run(ctx))
	assert.Equal(t, 2, src.callCount())
	assert.Equal(t, 20, loader.Count())
}

func TestConcurrentRequestMoreCollapses(t *testing.T) {
	src := newFakeSource(100)
	loader := NewLoader(src)
	ctx := context.Background()
	require.NoError(t, loader.OnSearchParamsChanged(ctx, testScope()))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		started []*Request
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if req, err := loader.BeginMore(); err == nil {
				mu.Lock()
				started = append(started, req)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, started, 1)
	require.NoError(t, started[0].Run(ctx))
	assert.Equal(t, 20, loader.Count())
}

func TestStaleResponseAfterResetIsDiscarded(t *testing.T) {
	src := newFakeSource(30)
	loader := NewLoader(src)
	ctx := context.Background()

	old := loader.BeginReset(testScope())
	scope := testScope()
	scope.Params.Identified = true
	fresh := loader.BeginReset(scope)

	require.NoError(t, fresh.Run(ctx))
	assert.ErrorIs(t, old.Run(ctx), ErrStale)

	assert.Equal(t, uint64(2), loader.Version())
	assert.True(t, src.calls[1].Params.Identified)
	assert.Len(t, loader.Results().Sessions, 10)
	assert.False(t, loader.Loading())
}

func TestResetDuringLoadMoreDropsOldPage(t *testing.T) {
	src := newFakeSource(30)
	loader := NewLoader(src)
	ctx := context.Background()
	require.NoError(t, loader.OnSearchParamsChanged(ctx, testScope()))

	more, err := loader.BeginMore()
	require.NoError(t, err)
	reset := loader.BeginReset(testScope())

	assert.ErrorIs(t, more.Run(ctx), ErrStale)
	assert.True(t, loader.Loading())
	assert.Empty(t, loader.Results().Sessions)

	require.NoError(t, reset.Run(ctx))
	assert.Equal(t, InitialCount, loader.Count())
	assert.Len(t, loader.Results().Sessions, 10)
}

func TestFailedFetchKeepsPreviousResults(t *testing.T) {
	src := newFakeSource(30)
	loader := NewLoader(src)
	ctx := context.Background()
	require.NoError(t, loader.OnSearchParamsChanged(ctx, testScope()))

	boom := errors.New("boom")
	src.setErr(boom)
	err := loader.RequestMore(ctx)

	require.ErrorIs(t, err, boom)
	res := loader.Results()
	assert.Len(t, res.Sessions, 10)
	assert.Equal(t, 30, res.TotalCount)
	assert.Equal(t, InitialCount, loader.Count())
	assert.False(t, loader.Loading())
	snap := loader.Snapshot()
	assert.ErrorIs(t, snap.Err, boom)
	assert.False(t, snap.ShowEmpty)

	src.setErr(nil)
	require.NoError(t, loader.RequestMore(ctx))
	assert.Len(t, loader.Results().Sessions, 20)
	assert.NoError(t, loader.Snapshot().Err)
}

func TestFilteredViewHidesViewedWhenIdle(t *testing.T) {
	src := newFakeSource(10)
	loader := NewLoader(src)
	scope := testScope()
	scope.Params.HideViewed = true
	require.NoError(t, loader.OnSearchParamsChanged(context.Background(), scope))

	view := collect(loader)

	require.Len(t, view, 5)
	for _, session := range view {
		assert.False(t, session.Viewed)
	}
	assert.Len(t, loader.Results().Sessions, 10, "cache is not mutated")
}

func TestFilteredViewReturnsFullListWhileLoading(t *testing.T) {
	src := newFakeSource(30)
	loader := NewLoader(src)
	scope := testScope()
	scope.Params.HideViewed = true
	ctx := context.Background()
	require.NoError(t, loader.OnSearchParamsChanged(ctx, scope))

	req, err := loader.BeginMore()
	require.NoError(t, err)
	assert.Len(t, collect(loader), 10)

	require.NoError(t, req.Run(ctx))
	assert.Len(t, collect(loader), 10)
	assert.Len(t, loader.Results().Sessions, 20)
}

func TestFilteredViewStopsEarly(t *testing.T) {
	loader := NewLoader(newFakeSource(10))
	require.NoError(t, loader.OnSearchParamsChanged(context.Background(), testScope()))

	seen := 0
	for range loader.FilteredView() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestSnapshotFlags(t *testing.T) {
	src := newFakeSource(12)
	loader := NewLoader(src)
	ctx := context.Background()

	snap := loader.Snapshot()
	assert.False(t, snap.ShowEmpty)
	assert.False(t, snap.TotalKnown())

	req := loader.BeginReset(testScope())
	snap = loader.Snapshot()
	assert.True(t, snap.Loading)
	assert.True(t, snap.ShowSkeleton)
	assert.False(t, snap.ShowEmpty)
	require.NoError(t, req.Run(ctx))

	snap = loader.Snapshot()
	assert.False(t, snap.ShowSkeleton)
	assert.True(t, snap.TotalKnown())
	assert.True(t, snap.ShowTrailingSkeleton)

	more, err := loader.BeginMore()
	require.NoError(t, err)
	snap = loader.Snapshot()
	assert.True(t, snap.Loading)
	assert.False(t, snap.ShowSkeleton, "load-more is not a first load")
	require.NoError(t, more.Run(ctx))

	snap = loader.Snapshot()
	assert.False(t, snap.ShowTrailingSkeleton)
	assert.Len(t, snap.Sessions, 12)
	assert.Equal(t, 12, snap.TotalCount)
}

func TestSnapshotShowsEmptyForNoResults(t *testing.T) {
	loader := NewLoader(newFakeSource(0))
	require.NoError(t, loader.OnSearchParamsChanged(context.Background(), testScope()))

	snap := loader.Snapshot()
	assert.True(t, snap.ShowEmpty)
	assert.Equal(t, 0, snap.TotalCount)
	assert.False(t, loader.HasNextPage())
}

func TestRefetchKeepsPrefix(t *testing.T) {
	src := newFakeSource(30)
	loader := NewLoader(src)
	ctx := context.Background()
	require.NoError(t, loader.OnSearchParamsChanged(ctx, testScope()))
	require.NoError(t, loader.RequestMore(ctx))

	req, err := loader.Refetch()
	require.NoError(t, err)
	assert.Equal(t, 20, req.Count())
	require.NoError(t, req.Run(ctx))
	assert.Equal(t, 20, src.calls[2].Count)
}
