package devserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"

	"github.com/shivam-bit/highlight/internal/logging"
	"github.com/shivam-bit/highlight/internal/types"
)

const errorFieldType = "error-field"

const defaultQuickFieldsCount = 10

// Server serves the session query and search index API from an in-memory
// fixture.
type Server struct {
	mu          sync.RWMutex
	projectID   string
	integrated  bool
	billing     types.BillingDetails
	unprocessed int
	sessions    []*types.Session
	fields      []types.QuickSearchOption
	failures    map[string]int

	token   string
	latency time.Duration
	logger  logging.Logger
	router  chi.Router
}

type Option func(*Server)

func WithToken(token string) Option {
	return func(s *Server) {
		s.token = strings.TrimSpace(token)
	}
}

// WithLatency delays every API response, to make loading states visible.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(fixture *Fixture, opts ...Option) *Server {
	if fixture == nil {
		fixture = &Fixture{ProjectID: "1"}
	}
	sessions := fixture.buildSessions()
	s := &Server{
		projectID:   fixture.ProjectID,
		integrated:  fixture.Integrated,
		billing:     fixture.billingDetails(),
		unprocessed: fixture.UnprocessedCount,
		sessions:    sessions,
		fields:      fixture.buildFields(sessions),
		failures:    map[string]int{},
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ProjectID() string {
	return s.projectID
}

func (s *Server) SetUnprocessedCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unprocessed = n
}

func (s *Server) SetBilling(details types.BillingDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.billing = details
}

// FailNext makes the next n requests to the named route fail with a 503.
// Route names are "sessions", "unprocessed", "billing", "integrated" and
// "quick_fields".
func (s *Server) FailNext(route string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = n
}

// ListenAndServe serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	s.logger.Info("devserver listening", logging.F("addr", listener.Addr().String()), logging.F("project", s.projectID))
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "version": "devserver"})
	})
	r.Route("/v1/projects/{projectID}", func(r chi.Router) {
		r.Use(s.authorize)
		r.Use(s.delay)
		r.With(s.injectFailure("sessions")).Post("/sessions/search", s.handleSessionsSearch)
		r.With(s.injectFailure("unprocessed")).Get("/sessions/unprocessed_count", s.handleUnprocessedCount)
		r.With(s.injectFailure("billing")).Get("/billing", s.handleBilling)
		r.With(s.injectFailure("integrated")).Get("/integrated", s.handleIntegrated)
		r.With(s.injectFailure("quick_fields")).Get("/quick_fields", s.handleQuickFields)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("devserver request",
			logging.F("method", r.Method),
			logging.F("path", r.URL.Path),
			logging.F("status", ww.Status()),
			logging.F("request_id", r.Header.Get("X-Request-ID")),
			logging.F("duration", time.Since(start)),
		)
	})
}

func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if chi.URLParam(r, "projectID") != s.projectID {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.latency > 0 {
			select {
			case <-time.After(s.latency):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailure(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			remaining := s.failures[route]
			if remaining > 0 {
				s.failures[route] = remaining - 1
			}
			s.mu.Unlock()
			if remaining > 0 {
				writeError(w, http.StatusServiceUnavailable, route+" unavailable")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type sessionsSearchRequest struct {
	Params    types.SearchParams     `json:"params"`
	Count     int                    `json:"count"`
	Lifecycle types.SessionLifecycle `json:"lifecycle"`
	Starred   bool                   `json:"starred"`
}

func (s *Server) handleSessionsSearch(w http.ResponseWriter, r *http.Request) {
	var req sessionsSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count < 0 {
		writeError(w, http.StatusBadRequest, "count must not be negative")
		return
	}
	s.mu.RLock()
	matched := filterSessions(s.sessions, req)
	s.mu.RUnlock()

	page := matched
	if req.Count < len(page) {
		page = page[:req.Count]
	}
	writeJSON(w, http.StatusOK, types.SessionResults{Sessions: page, TotalCount: len(matched)})
}

func (s *Server) handleUnprocessedCount(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	count := s.unprocessed
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (s *Server) handleBilling(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	billing := s.billing
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, billing)
}

func (s *Server) handleIntegrated(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	integrated := s.integrated
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]bool{"integrated": integrated})
}

func (s *Server) handleQuickFields(w http.ResponseWriter, r *http.Request) {
	count := defaultQuickFieldsCount
	if raw := strings.TrimSpace(r.URL.Query().Get("count")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid count")
			return
		}
		count = parsed
	}
	query := r.URL.Query().Get("query")
	s.mu.RLock()
	fields := matchFields(s.fields, query, count)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"fields": fields})
}

func filterSessions(sessions []*types.Session, req sessionsSearchRequest) []*types.Session {
	rules := parseRules(req.Params.Query)
	out := make([]*types.Session, 0, len(sessions))
	for _, session := range sessions {
		switch req.Lifecycle {
		case types.SessionLifecycleLive:
			if session.Processed {
				continue
			}
		case types.SessionLifecycleAll:
		default:
			if !session.Processed {
				continue
			}
		}
		if req.Starred && !session.Starred {
			continue
		}
		if req.Params.Identified && session.Identifier == "" {
			continue
		}
		if req.Params.Browser != "" && !strings.EqualFold(req.Params.Browser, session.BrowserName) {
			continue
		}
		if req.Params.OS != "" && !strings.EqualFold(req.Params.OS, session.OSName) {
			continue
		}
		if !matchesRules(session, rules) {
			continue
		}
		out = append(out, session)
	}
	return out
}

func parseRules(raw string) []types.QueryRule {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var input types.QueryBuilderInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return nil
	}
	return input.Rules
}

func matchesRules(session *types.Session, rules []types.QueryRule) bool {
	for _, rule := range rules {
		if rule.Op() != types.RuleOpIs {
			continue
		}
		value, ok := session.Fields[strings.ToLower(rule.Field())]
		if !ok || !strings.EqualFold(value, rule.Value()) {
			return false
		}
	}
	return true
}

// matchFields returns up to count matches per category, sessions first.
func matchFields(fields []types.QuickSearchOption, query string, count int) []types.QuickSearchOption {
	query = strings.ToLower(strings.TrimSpace(query))
	sessions := make([]types.QuickSearchOption, 0, count)
	errs := make([]types.QuickSearchOption, 0, count)
	for _, field := range fields {
		if query != "" &&
			!strings.Contains(strings.ToLower(field.Value), query) &&
			!strings.Contains(strings.ToLower(field.Name), query) {
			continue
		}
		if field.Type == errorFieldType {
			if len(errs) < count {
				errs = append(errs, field)
			}
			continue
		}
		if len(sessions) < count {
			sessions = append(sessions, field)
		}
	}
	return append(sessions, errs...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
