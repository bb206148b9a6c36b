package app

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	KeyCommandQuit            = "ui.quit"
	KeyCommandOpenSearch      = "ui.openSearch"
	KeyCommandOpenDocs        = "ui.openDocs"
	KeyCommandBack            = "ui.back"
	KeyCommandHistoryBack     = "ui.historyBack"
	KeyCommandHistoryForward  = "ui.historyForward"
	KeyCommandRefresh         = "feed.refresh"
	KeyCommandLoadMore        = "feed.loadMore"
	KeyCommandOpenSession     = "feed.openSession"
	KeyCommandCopySessionLink = "feed.copyLink"
	KeyCommandToggleLive      = "feed.toggleLive"
	KeyCommandToggleViewed    = "feed.toggleHideViewed"
	KeyCommandToggleStarred   = "feed.toggleStarred"
	KeyCommandToggleLiveSeg   = "feed.toggleLiveSegment"
	KeyCommandToggleAutoplay  = "player.toggleAutoplay"
	KeyCommandToggleDetails   = "player.toggleDetails"
	KeyCommandUp              = "ui.up"
	KeyCommandDown            = "ui.down"
	KeyCommandTop             = "ui.top"
	KeyCommandBottom          = "ui.bottom"
	KeyCommandSelect          = "ui.select"
)

var defaultKeybindingByCommand = map[string]string{
	KeyCommandQuit:            "q",
	KeyCommandOpenSearch:      "/",
	KeyCommandOpenDocs:        "?",
	KeyCommandBack:            "esc",
	KeyCommandHistoryBack:     "alt+left",
	KeyCommandHistoryForward:  "alt+right",
	KeyCommandRefresh:         "r",
	KeyCommandLoadMore:        "m",
	KeyCommandOpenSession:     "enter",
	KeyCommandCopySessionLink: "y",
	KeyCommandToggleLive:      "l",
	KeyCommandToggleViewed:    "v",
	KeyCommandToggleStarred:   "s",
	KeyCommandToggleLiveSeg:   "L",
	KeyCommandToggleAutoplay:  "a",
	KeyCommandToggleDetails:   "d",
	KeyCommandUp:              "up",
	KeyCommandDown:            "down",
	KeyCommandTop:             "g",
	KeyCommandBottom:          "G",
	KeyCommandSelect:          "enter",
}

// Keybindings resolves commands to keys. Overridden keys are remapped back
// to the default key of their command so the update loop only matches
// defaults.
type Keybindings struct {
	byCommand map[string]string
	remap     map[string]string
}

func DefaultKeybindings() *Keybindings {
	return NewKeybindings(nil)
}

func NewKeybindings(overrides map[string]string) *Keybindings {
	byCommand := make(map[string]string, len(defaultKeybindingByCommand))
	for command, key := range defaultKeybindingByCommand {
		byCommand[command] = key
	}
	for command, key := range overrides {
		command = strings.TrimSpace(command)
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, ok := defaultKeybindingByCommand[command]; !ok {
			continue
		}
		byCommand[command] = key
	}
	remap := map[string]string{}
	ambiguous := map[string]struct{}{}
	for _, command := range KnownKeybindingCommands() {
		defaultKey := defaultKeybindingByCommand[command]
		key := byCommand[command]
		if key == defaultKey {
			continue
		}
		if _, bad := ambiguous[key]; bad {
			continue
		}
		if existing, ok := remap[key]; ok && existing != defaultKey {
			delete(remap, key)
			ambiguous[key] = struct{}{}
			continue
		}
		remap[key] = defaultKey
	}
	return &Keybindings{byCommand: byCommand, remap: remap}
}

func (k *Keybindings) KeyFor(command string) string {
	if k != nil {
		if key := strings.TrimSpace(k.byCommand[command]); key != "" {
			return key
		}
	}
	return defaultKeybindingByCommand[command]
}

// Remap translates a pressed key into the default key it stands for.
func (k *Keybindings) Remap(key string) string {
	key = strings.TrimSpace(key)
	if k != nil {
		if canonical, ok := k.remap[key]; ok && canonical != "" {
			return canonical
		}
	}
	return key
}

func KnownKeybindingCommands() []string {
	keys := make([]string, 0, len(defaultKeybindingByCommand))
	for command := range defaultKeybindingByCommand {
		keys = append(keys, command)
	}
	sort.Strings(keys)
	return keys
}

func (m *Model) keyString(msg tea.KeyMsg) string {
	return m.keybindings.Remap(msg.String())
}

func (m *Model) keyMatches(key, command string) bool {
	return key == defaultKeybindingByCommand[command]
}
