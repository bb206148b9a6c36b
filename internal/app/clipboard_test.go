package app

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubClipboard(t *testing.T, system, osc func(string) error) {
	t.Helper()
	prevSystem, prevOSC := clipboardWriteAll, clipboardWriteOSC52
	clipboardWriteAll, clipboardWriteOSC52 = system, osc
	t.Cleanup(func() {
		clipboardWriteAll, clipboardWriteOSC52 = prevSystem, prevOSC
	})
}

func TestCopyFallsBackToOSC52(t *testing.T) {
	var copied string
	stubClipboard(t,
		func(string) error { return errors.New("exit status 1") },
		func(text string) error { copied = text; return nil },
	)

	method, err := copyTextToClipboard("/1/sessions/abc")

	require.NoError(t, err)
	assert.Equal(t, clipboardMethodOSC52, method)
	assert.Equal(t, "/1/sessions/abc", copied)
}

func TestCopyReportsBothFailures(t *testing.T) {
	stubClipboard(t,
		func(string) error { return errors.New("no xclip") },
		func(string) error { return errors.New("no tty") },
	)

	_, err := copyTextToClipboard("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tty")
}

func TestCopySessionLinkKey(t *testing.T) {
	var copied string
	stubClipboard(t,
		func(text string) error { copied = text; return nil },
		func(string) error { return nil },
	)
	m := newTestModel(t, newFakeAPI(2), nil)

	press(t, m, "y")

	assert.Equal(t, "/1/sessions/sec-01", copied)
	assert.Equal(t, "copied session link", m.toastText)
}

func TestWriteOSC52Sequence(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")
	var buf bytes.Buffer

	require.NoError(t, writeOSC52Sequence(&buf, "hi"))
	assert.Contains(t, buf.String(), "\x1b]52;c;aGk=")
}
