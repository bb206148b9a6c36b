package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/shivam-bit/highlight/internal/types"
)

func TestKeybindingOverridesRemapToDefaults(t *testing.T) {
	k := NewKeybindings(map[string]string{
		KeyCommandToggleLive: "ctrl+l",
		"feed.unknown":       "x",
		KeyCommandRefresh:    " ",
	})

	assert.Equal(t, "ctrl+l", k.KeyFor(KeyCommandToggleLive))
	assert.Equal(t, "r", k.KeyFor(KeyCommandRefresh))
	assert.Equal(t, "l", k.Remap("ctrl+l"))
	assert.Equal(t, "x", k.Remap("x"))
}

func TestKeybindingAmbiguousOverridesAreDropped(t *testing.T) {
	k := NewKeybindings(map[string]string{
		KeyCommandToggleLive:    "ctrl+t",
		KeyCommandToggleStarred: "ctrl+t",
	})
	assert.Equal(t, "ctrl+t", k.Remap("ctrl+t"))
}

func TestModelUsesKeymapOverrides(t *testing.T) {
	api := newFakeAPI(3)
	m := NewModel(Options{
		API:       api,
		ProjectID: "1",
		Keymap:    &types.Keymap{Bindings: map[string]string{KeyCommandToggleViewed: "H"}},
	})
	run(t, m, m.resetFeed())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("H")})
	run(t, m, cmd)

	assert.True(t, m.params.Params().HideViewed)
	assert.True(t, api.lastQuery().Params.HideViewed)
}

func TestKnownKeybindingCommandsSorted(t *testing.T) {
	commands := KnownKeybindingCommands()
	assert.Len(t, commands, len(defaultKeybindingByCommand))
	assert.IsNonDecreasing(t, commands)
}
