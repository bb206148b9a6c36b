// Package searchparams holds the shared session search state read and
// written by the feed, quick search and sidebar toggles.
package searchparams

import (
	"strings"
	"sync"

	"github.com/shivam-bit/highlight/internal/types"
)

// Change describes the store state after an update that affects which
// sessions the feed should request.
type Change struct {
	Version   uint64
	Params    types.SearchParams
	SegmentID string
	Starred   bool
}

type Store struct {
	mu         sync.RWMutex
	params     types.SearchParams
	existing   types.SearchParams
	segmentID  string
	starred    bool
	errorQuery *types.QueryBuilderInput
	version    uint64

	nextSubscriberID int
	subscribers      map[int]func(Change)
}

func New(initial types.SearchParams) *Store {
	return &Store{
		params:      initial.Clone(),
		existing:    initial.Clone(),
		version:     1,
		subscribers: map[int]func(Change){},
	}
}

// Restore seeds the store from persisted app state without notifying.
func (s *Store) Restore(state *types.AppState) {
	if state == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = state.SearchParams.Clone()
	s.existing = state.SearchParams.Clone()
	s.segmentID = strings.TrimSpace(state.SegmentID)
	s.starred = state.ShowStarred
	s.version++
}

func (s *Store) Params() types.SearchParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.Clone()
}

// Update applies fn to a copy of the current params and commits the result.
// It reports whether anything changed.
func (s *Store) Update(fn func(*types.SearchParams)) bool {
	if fn == nil {
		return false
	}
	s.mu.Lock()
	next := s.params.Clone()
	fn(&next)
	if next.Equal(s.params) {
		s.mu.Unlock()
		return false
	}
	s.params = next
	change := s.bumpLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()
	notify(subs, change)
	return true
}

func (s *Store) Replace(params types.SearchParams) bool {
	return s.Update(func(p *types.SearchParams) {
		*p = params.Clone()
	})
}

func (s *Store) SetShowLiveSessions(show bool) bool {
	return s.Update(func(p *types.SearchParams) {
		p.ShowLiveSessions = show
	})
}

func (s *Store) ToggleShowLiveSessions() bool {
	return s.Update(func(p *types.SearchParams) {
		p.ShowLiveSessions = !p.ShowLiveSessions
	})
}

func (s *Store) ToggleHideViewed() bool {
	return s.Update(func(p *types.SearchParams) {
		p.HideViewed = !p.HideViewed
	})
}

func (s *Store) SegmentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.segmentID
}

func (s *Store) SetSegment(id string) bool {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	if s.segmentID == id {
		s.mu.Unlock()
		return false
	}
	s.segmentID = id
	change := s.bumpLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()
	notify(subs, change)
	return true
}

func (s *Store) ShowStarred() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.starred
}

func (s *Store) SetShowStarred(starred bool) bool {
	s.mu.Lock()
	if s.starred == starred {
		s.mu.Unlock()
		return false
	}
	s.starred = starred
	change := s.bumpLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()
	notify(subs, change)
	return true
}

// ExistingParams returns the params the search inputs were last seeded with.
func (s *Store) ExistingParams() types.SearchParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.existing.Clone()
}

func (s *Store) SetExistingParams(params types.SearchParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.existing = params.Clone()
}

// ErrorQuery returns the pending query builder input for the errors view.
func (s *Store) ErrorQuery() *types.QueryBuilderInput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.errorQuery == nil {
		return nil
	}
	out := *s.errorQuery
	out.Rules = append([]types.QueryRule{}, s.errorQuery.Rules...)
	return &out
}

func (s *Store) SetErrorQuery(input *types.QueryBuilderInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if input == nil {
		s.errorQuery = nil
		return
	}
	copied := *input
	copied.Rules = append([]types.QueryRule{}, input.Rules...)
	s.errorQuery = &copied
}

// Version increases every time params, segment or starred change.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) Snapshot() Change {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.changeLocked()
}

// Lifecycle resolves the session lifecycle the feed should request.
func (s *Store) Lifecycle() types.SessionLifecycle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SelectLifecycle(s.segmentID == types.LiveSegmentID, s.params.ShowLiveSessions)
}

// Subscribe registers fn for every effective change. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSubscriberID
	s.nextSubscriberID++
	s.subscribers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// AppState merges the store's state into base for persistence.
func (s *Store) AppState(base types.AppState) types.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	base.SearchParams = s.params.Clone()
	base.SegmentID = s.segmentID
	base.ShowStarred = s.starred
	return base
}

func (s *Store) bumpLocked() Change {
	s.version++
	return s.changeLocked()
}

func (s *Store) changeLocked() Change {
	return Change{
		Version:   s.version,
		Params:    s.params.Clone(),
		SegmentID: s.segmentID,
		Starred:   s.starred,
	}
}

func (s *Store) subscribersLocked() []func(Change) {
	out := make([]func(Change), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Change), change Change) {
	for _, fn := range subs {
		fn(change)
	}
}
