// Package navigation tracks the route the client is showing.
package navigation

import (
	"net/url"
	"strings"
	"sync"
)

const defaultHistoryLimit = 256

type Navigator interface {
	Push(path string)
}

func SessionsPath(projectID string) string {
	return "/" + url.PathEscape(strings.TrimSpace(projectID)) + "/sessions"
}

func ErrorsPath(projectID string) string {
	return "/" + url.PathEscape(strings.TrimSpace(projectID)) + "/errors"
}

func SessionPath(projectID, secureID string) string {
	return SessionsPath(projectID) + "/" + url.PathEscape(strings.TrimSpace(secureID))
}

// History is a bounded back/forward stack of visited paths. Pushing after
// going back drops the forward entries.
type History struct {
	mu        sync.Mutex
	entries   []string
	index     int
	limit     int
	listeners []func(string)
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &History{index: -1, limit: limit}
}

// OnChange registers fn to be called with the new current path.
func (h *History) OnChange(fn func(string)) {
	if h == nil || fn == nil {
		return
	}
	h.mu.Lock()
	h.listeners = append(h.listeners, fn)
	h.mu.Unlock()
}

func (h *History) Push(path string) {
	path = strings.TrimSpace(path)
	if h == nil || path == "" {
		return
	}
	h.mu.Lock()
	if h.index >= 0 && h.index < len(h.entries) && h.entries[h.index] == path {
		h.mu.Unlock()
		return
	}
	if h.index >= 0 && h.index+1 < len(h.entries) {
		h.entries = append([]string(nil), h.entries[:h.index+1]...)
	}
	h.entries = append(h.entries, path)
	if len(h.entries) > h.limit {
		trim := len(h.entries) - h.limit
		h.entries = append([]string(nil), h.entries[trim:]...)
	}
	h.index = len(h.entries) - 1
	listeners := h.listenersLocked()
	h.mu.Unlock()
	notify(listeners, path)
}

func (h *History) Current() (string, bool) {
	if h == nil {
		return "", false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index < 0 || h.index >= len(h.entries) {
		return "", false
	}
	return h.entries[h.index], true
}

func (h *History) Back() (string, bool) {
	return h.move(-1)
}

func (h *History) Forward() (string, bool) {
	return h.move(1)
}

func (h *History) move(step int) (string, bool) {
	if h == nil {
		return "", false
	}
	h.mu.Lock()
	next := h.index + step
	if h.index < 0 || next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return "", false
	}
	h.index = next
	path := h.entries[next]
	listeners := h.listenersLocked()
	h.mu.Unlock()
	notify(listeners, path)
	return path, true
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) listenersLocked() []func(string) {
	return append([]func(string){}, h.listeners...)
}

func notify(listeners []func(string), path string) {
	for _, fn := range listeners {
		fn(path)
	}
}
