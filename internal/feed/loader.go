// Package feed keeps a growing prefix of a server-ordered session feed in
// sync with the active search parameters.
package feed

import (
	"context"
	"errors"
	"iter"
	"sync"

	"github.com/shivam-bit/highlight/internal/logging"
	"github.com/shivam-bit/highlight/internal/types"
)

const (
	InitialCount = 10
	PageStep     = 10
)

var (
	ErrBusy        = errors.New("feed: fetch already in flight")
	ErrNoMorePages = errors.New("feed: no more sessions")
	ErrStale       = errors.New("feed: response superseded by newer search")
	ErrNoScope     = errors.New("feed: search scope not set")
)

// SessionSource is the remote session query service.
type SessionSource interface {
	GetSessions(ctx context.Context, query types.SessionsQuery) (*types.SessionResults, error)
}

// Scope is the parameter set a result set belongs to.
type Scope struct {
	ProjectID string
	Params    types.SearchParams
	Lifecycle types.SessionLifecycle
	Starred   bool
}

// Loader owns the single cached result set. Only fetch completion writes to
// it; every fetch is tagged with the scope version it was issued under.
type Loader struct {
	source SessionSource
	logger logging.Logger

	mu          sync.Mutex
	scope       Scope
	hasScope    bool
	version     uint64
	count       int
	results     types.SessionResults
	loading     bool
	inflightSeq uint64
	nextSeq     uint64
	firstLoad   bool
	called      bool
	lastErr     error
}

type LoaderOption func(*Loader)

func WithLogger(logger logging.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func NewLoader(source SessionSource, opts ...LoaderOption) *Loader {
	l := &Loader{
		source:    source,
		logger:    logging.Nop(),
		count:     InitialCount,
		results:   types.EmptySessionResults(),
		firstLoad: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Request is one pending fetch of the prefix [0, Count).
type Request struct {
	loader   *Loader
	seq      uint64
	version  uint64
	count    int
	previous int
	query    types.SessionsQuery
}

func (r *Request) Version() uint64 { return r.version }
func (r *Request) Count() int      { return r.count }

// Run performs the fetch and commits the result if it is still current.
func (r *Request) Run(ctx context.Context) error {
	if r == nil || r.loader == nil {
		return nil
	}
	res, err := r.loader.source.GetSessions(ctx, r.query)
	return r.loader.complete(r, res, err)
}

// BeginReset starts a new scope: the requested prefix returns to
// InitialCount, the cached result set is discarded and the next load is
// treated as a first load. Any in-flight fetch becomes stale.
func (l *Loader) BeginReset(scope Scope) *Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scope = cloneScope(scope)
	l.hasScope = true
	l.version++
	l.count = InitialCount
	l.results = types.EmptySessionResults()
	l.firstLoad = true
	l.lastErr = nil
	return l.beginLocked(l.count, l.count)
}

// BeginMore grows the requested prefix by PageStep. It returns ErrBusy while
// a fetch is in flight and ErrNoMorePages once every session is loaded.
func (l *Loader) BeginMore() (*Request, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.hasScope {
		return nil, ErrNoScope
	}
	if l.loading {
		return nil, ErrBusy
	}
	if !l.results.HasNextPage() {
		return nil, ErrNoMorePages
	}
	previous := l.count
	l.count += PageStep
	return l.beginLocked(l.count, previous), nil
}

// Refetch re-requests the current prefix without changing the scope.
func (l *Loader) Refetch() (*Request, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.hasScope {
		return nil, ErrNoScope
	}
	if l.loading {
		return nil, ErrBusy
	}
	return l.beginLocked(l.count, l.count), nil
}

func (l *Loader) OnSearchParamsChanged(ctx context.Context, scope Scope) error {
	return l.BeginReset(scope).Run(ctx)
}

func (l *Loader) RequestMore(ctx context.Context) error {
	req, err := l.BeginMore()
	if err != nil {
		return err
	}
	return req.Run(ctx)
}

func (l *Loader) beginLocked(count, previous int) *Request {
	l.nextSeq++
	req := &Request{
		loader:   l,
		seq:      l.nextSeq,
		version:  l.version,
		count:    count,
		previous: previous,
		query: types.SessionsQuery{
			ProjectID: l.scope.ProjectID,
			Params:    l.scope.Params.Clone(),
			Count:     count,
			Lifecycle: l.scope.Lifecycle,
			Starred:   l.scope.Starred,
		},
	}
	l.loading = true
	l.called = true
	l.inflightSeq = req.seq
	return req
}

func (l *Loader) complete(req *Request, res *types.SessionResults, err error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if req.version != l.version || req.seq != l.inflightSeq {
		l.logger.Debug("discarding stale session page",
			logging.F("request_version", req.version),
			logging.F("current_version", l.version),
			logging.F("count", req.count),
		)
		return ErrStale
	}
	l.loading = false
	if err != nil {
		if l.count == req.count {
			l.count = req.previous
		}
		l.lastErr = err
		l.logger.Warn("session page fetch failed",
			logging.F("count", req.count),
			logging.F("err", err),
		)
		return err
	}
	if res == nil {
		res = &types.SessionResults{TotalCount: 0}
	}
	sessions := append([]*types.Session{}, res.Sessions...)
	total := res.TotalCount
	if total < len(sessions) {
		total = len(sessions)
	}
	l.results = types.SessionResults{Sessions: sessions, TotalCount: total}
	l.firstLoad = false
	l.lastErr = nil
	l.logger.Debug("session page loaded",
		logging.F("count", req.count),
		logging.F("received", len(sessions)),
		logging.F("total", total),
	)
	return nil
}

// HasNextPage reports whether the server holds sessions beyond the prefix.
func (l *Loader) HasNextPage() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.results.HasNextPage()
}

func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *Loader) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

func (l *Loader) Version() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// Results returns a copy of the cached result set.
func (l *Loader) Results() types.SessionResults {
	l.mu.Lock()
	defer l.mu.Unlock()
	return types.SessionResults{
		Sessions:   append([]*types.Session{}, l.results.Sessions...),
		TotalCount: l.results.TotalCount,
	}
}

// FilteredView yields the sessions to render. While a fetch is in flight the
// previous full sequence is yielded unfiltered so the list does not flicker;
// otherwise viewed sessions are skipped when the scope hides them.
func (l *Loader) FilteredView() iter.Seq[*types.Session] {
	l.mu.Lock()
	sessions, hideViewed := l.viewLocked()
	l.mu.Unlock()
	return filtered(sessions, hideViewed)
}

func (l *Loader) viewLocked() ([]*types.Session, bool) {
	return l.results.Sessions, l.scope.Params.HideViewed && !l.loading
}

func filtered(sessions []*types.Session, hideViewed bool) iter.Seq[*types.Session] {
	return func(yield func(*types.Session) bool) {
		for _, session := range sessions {
			if session == nil {
				continue
			}
			if hideViewed && session.Viewed {
				continue
			}
			if !yield(session) {
				return
			}
		}
	}
}

// Snapshot is the derived presentation state of the feed.
type Snapshot struct {
	Sessions             []*types.Session
	TotalCount           int
	Count                int
	Version              uint64
	Loading              bool
	ShowSkeleton         bool
	ShowEmpty            bool
	ShowTrailingSkeleton bool
	Err                  error
}

func (s Snapshot) TotalKnown() bool {
	return s.TotalCount != types.UnknownTotalCount
}

func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	view := make([]*types.Session, 0, len(l.results.Sessions))
	for session := range filtered(l.viewLocked()) {
		view = append(view, session)
	}
	return Snapshot{
		Sessions:             view,
		TotalCount:           l.results.TotalCount,
		Count:                l.count,
		Version:              l.version,
		Loading:              l.loading,
		ShowSkeleton:         l.loading && l.firstLoad,
		ShowEmpty:            l.called && !l.loading && len(l.results.Sessions) == 0 && l.lastErr == nil,
		ShowTrailingSkeleton: l.results.HasNextPage(),
		Err:                  l.lastErr,
	}
}

func cloneScope(scope Scope) Scope {
	scope.Params = scope.Params.Clone()
	return scope
}
