package quicksearch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/shivam-bit/highlight/internal/logging"
	"github.com/shivam-bit/highlight/internal/types"
)

var ErrSuperseded = errors.New("quicksearch: superseded by a newer search")

// FieldSource is the quick-field search service.
type FieldSource interface {
	QuickFieldsSearch(ctx context.Context, projectID string, count int, query string) ([]types.QuickSearchOption, error)
}

// Result is one completed search.
type Result struct {
	Seq    uint64
	Query  string
	Groups []types.SuggestionGroup
}

// Searcher runs quick-field searches. Only the newest invocation delivers a
// result; older ones are cancelled and report ErrSuperseded.
type Searcher struct {
	source    FieldSource
	projectID string
	logger    logging.Logger

	seq    atomic.Uint64
	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewSearcher(source FieldSource, projectID string, logger logging.Logger) *Searcher {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Searcher{source: source, projectID: projectID, logger: logger}
}

// Begin tags a new search and cancels any search still in flight.
func (s *Searcher) Begin(ctx context.Context) (uint64, context.Context) {
	seq := s.seq.Add(1)
	reqCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()
	return seq, reqCtx
}

func (s *Searcher) IsCurrent(seq uint64) bool {
	return s.seq.Load() == seq
}

// Search fetches options for query and allocates them into groups.
func (s *Searcher) Search(ctx context.Context, query string) (Result, error) {
	seq, reqCtx := s.Begin(ctx)
	return s.Run(reqCtx, seq, query)
}

// Run performs the search tagged seq, as returned by Begin.
func (s *Searcher) Run(ctx context.Context, seq uint64, query string) (Result, error) {
	options, err := s.source.QuickFieldsSearch(ctx, s.projectID, ResultCount, query)
	if !s.IsCurrent(seq) {
		s.logger.Debug("dropping superseded quick search",
			logging.F("seq", seq),
			logging.F("query", query),
		)
		return Result{}, ErrSuperseded
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Seq: seq, Query: query, Groups: Allocate(options, ResultCount)}, nil
}

// Close cancels the in-flight search, if any.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
