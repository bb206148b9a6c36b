package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	assert.Equal(t, "/1/sessions", SessionsPath("1"))
	assert.Equal(t, "/1/errors", ErrorsPath(" 1 "))
	assert.Equal(t, "/1/sessions/abc", SessionPath("1", "abc"))
}

func TestHistoryBackForward(t *testing.T) {
	h := NewHistory(0)
	_, ok := h.Current()
	assert.False(t, ok)

	h.Push("/1/sessions")
	h.Push("/1/sessions")
	h.Push("/1/errors")
	assert.Equal(t, 2, h.Len())

	path, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, "/1/sessions", path)
	_, ok = h.Back()
	assert.False(t, ok)

	path, ok = h.Forward()
	require.True(t, ok)
	assert.Equal(t, "/1/errors", path)
	_, ok = h.Forward()
	assert.False(t, ok)
}

func TestHistoryPushDropsForwardEntries(t *testing.T) {
	h := NewHistory(10)
	h.Push("/a")
	h.Push("/b")
	h.Push("/c")
	h.Back()
	h.Back()
	h.Push("/d")

	assert.Equal(t, 2, h.Len())
	_, ok := h.Forward()
	assert.False(t, ok)
	cur, _ := h.Current()
	assert.Equal(t, "/d", cur)
}

func TestHistoryIsBounded(t *testing.T) {
	h := NewHistory(2)
	h.Push("/a")
	h.Push("/b")
	h.Push("/c")

	assert.Equal(t, 2, h.Len())
	path, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, "/b", path)
	_, ok = h.Back()
	assert.False(t, ok)
}

func TestHistoryNotifiesListeners(t *testing.T) {
	h := NewHistory(4)
	var seen []string
	h.OnChange(func(p string) { seen = append(seen, p) })

	h.Push("/a")
	h.Push("")
	h.Push("/b")
	h.Back()

	assert.Equal(t, []string{"/a", "/b", "/a"}, seen)
}
