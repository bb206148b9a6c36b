package app

import (
	"context"
	"strings"
)

const (
	requestScopeFeed        = "feed"
	requestScopeQuickSearch = "quick_search"
	requestScopeStartup     = "startup"
)

type requestScope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// replaceRequestScope cancels the named scope and starts a fresh one.
func (m *Model) replaceRequestScope(name string) context.Context {
	name = strings.TrimSpace(name)
	if m == nil || name == "" {
		return context.Background()
	}
	m.cancelRequestScope(name)
	if m.requestScopes == nil {
		m.requestScopes = map[string]requestScope{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.requestScopes[name] = requestScope{ctx: ctx, cancel: cancel}
	return ctx
}

// requestScopeContext returns the live context of name, creating it if
// needed.
func (m *Model) requestScopeContext(name string) context.Context {
	name = strings.TrimSpace(name)
	if m == nil || name == "" {
		return context.Background()
	}
	if scope, ok := m.requestScopes[name]; ok && scope.ctx != nil && scope.ctx.Err() == nil {
		return scope.ctx
	}
	return m.replaceRequestScope(name)
}

func (m *Model) cancelRequestScope(name string) {
	if m == nil || m.requestScopes == nil {
		return
	}
	scope, ok := m.requestScopes[name]
	if !ok {
		return
	}
	if scope.cancel != nil {
		scope.cancel()
	}
	delete(m.requestScopes, name)
}

func (m *Model) cancelAllRequestScopes() {
	if m == nil {
		return
	}
	for name := range m.requestScopes {
		m.cancelRequestScope(name)
	}
}
