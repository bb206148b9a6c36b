package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesFieldsAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Info)

	logger.Debug("hidden", F("k", "v"))
	logger.Info("feed loaded", F("count", 20), F("project", "p1"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "feed loaded")
	assert.Contains(t, out, "count=20")
	assert.Contains(t, out, "project=p1")
}

func TestLoggerWithCarriesContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Debug).With(F("component", "feed"))

	logger.Warn("fetch failed", F("err", errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "component=feed")
	assert.Contains(t, out, "boom")
}

func TestEnabled(t *testing.T) {
	logger := New(&bytes.Buffer{}, Warn)
	assert.False(t, logger.Enabled(Info))
	assert.True(t, logger.Enabled(Error))
	assert.False(t, Nop().Enabled(Error))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"":        Info,
		"bogus":   Info,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseLevel(raw), raw)
	}
}

func TestNewRequestID(t *testing.T) {
	id := NewRequestID()
	require.Len(t, id, 16)
	assert.Equal(t, strings.ToLower(id), id)
	assert.NotEqual(t, id, NewRequestID())
}
