package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shivam-bit/highlight/internal/feed"
	"github.com/shivam-bit/highlight/internal/navigation"
	"github.com/shivam-bit/highlight/internal/types"
)

const liveSessionsToast = "Showing live sessions"

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	switch m.mode {
	case uiModeSearch:
		return m.handleSearchKey(msg)
	case uiModeDocs:
		return m.handleDocsKey(msg)
	}
	key := m.keyString(msg)
	switch {
	case m.keyMatches(key, KeyCommandQuit):
		return tea.Quit
	case m.keyMatches(key, KeyCommandOpenSearch):
		return m.openSearch()
	case m.keyMatches(key, KeyCommandOpenDocs):
		m.openDocs()
		return nil
	case m.keyMatches(key, KeyCommandHistoryBack), m.keyMatches(key, KeyCommandBack):
		m.history.Back()
		return nil
	case m.keyMatches(key, KeyCommandHistoryForward):
		m.history.Forward()
		return nil
	case m.keyMatches(key, KeyCommandToggleAutoplay):
		m.player.AutoPlaySessions = !m.player.AutoPlaySessions
		return m.saveState()
	case m.keyMatches(key, KeyCommandToggleDetails):
		m.player.ShowDetailedSessionView = !m.player.ShowDetailedSessionView
		return m.saveState()
	}
	if !m.onFeedRoute() {
		return nil
	}
	return m.handleFeedKey(key)
}

func (m *Model) handleFeedKey(key string) tea.Cmd {
	switch {
	case m.keyMatches(key, KeyCommandUp):
		m.moveCursor(-1)
	case m.keyMatches(key, KeyCommandDown):
		m.moveCursor(1)
		return m.checkScroll()
	case m.keyMatches(key, KeyCommandTop):
		m.cursor = 0
		m.clampCursor()
	case m.keyMatches(key, KeyCommandBottom):
		m.cursor = len(m.loader.Snapshot().Sessions) - 1
		m.clampCursor()
		return m.checkScroll()
	case m.keyMatches(key, KeyCommandOpenSession):
		if session := m.selectedSession(); session != nil {
			m.history.Push(navigation.SessionPath(m.projectID, session.SecureID))
		}
	case m.keyMatches(key, KeyCommandCopySessionLink):
		if session := m.selectedSession(); session != nil {
			m.copyWithToast(navigation.SessionPath(m.projectID, session.SecureID), "copied session link")
		}
	case m.keyMatches(key, KeyCommandToggleLive):
		m.params.ToggleShowLiveSessions()
		if m.params.Params().ShowLiveSessions {
			m.showInfoToast(liveSessionsToast)
		}
	case m.keyMatches(key, KeyCommandToggleViewed):
		m.params.ToggleHideViewed()
	case m.keyMatches(key, KeyCommandToggleStarred):
		m.params.SetShowStarred(!m.params.ShowStarred())
	case m.keyMatches(key, KeyCommandToggleLiveSeg):
		if m.params.SegmentID() == types.LiveSegmentID {
			m.params.SetSegment("")
		} else {
			m.params.SetSegment(types.LiveSegmentID)
		}
	case m.keyMatches(key, KeyCommandRefresh):
		return tea.Batch(m.refetch(), liveCountCmd(m.live))
	case m.keyMatches(key, KeyCommandLoadMore):
		return m.loadMore()
	}
	return nil
}

func (m *Model) handleDocsKey(msg tea.KeyMsg) tea.Cmd {
	key := m.keyString(msg)
	if m.keyMatches(key, KeyCommandBack) || m.keyMatches(key, KeyCommandQuit) || m.keyMatches(key, KeyCommandOpenDocs) {
		m.mode = uiModeBrowse
		return nil
	}
	var cmd tea.Cmd
	m.docs, cmd = m.docs.Update(msg)
	return cmd
}

func (m *Model) openDocs() {
	m.mode = uiModeDocs
	m.docs.SetContent(RenderMarkdown(m.docsMarkdown, m.width))
	m.docs.GotoTop()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	rows := len(m.loader.Snapshot().Sessions)
	if m.cursor >= rows {
		m.cursor = rows - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.feedRowsVisible()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if visible > 0 && m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m *Model) selectedSession() *types.Session {
	sessions := m.loader.Snapshot().Sessions
	if m.cursor < 0 || m.cursor >= len(sessions) {
		return nil
	}
	return sessions[m.cursor]
}

func (m *Model) liveBadge() (int, bool) {
	return m.liveCount, feed.ShowLiveBadge(m.liveCount, m.params.Params().ShowLiveSessions)
}
