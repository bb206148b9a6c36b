package app

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shivam-bit/highlight/internal/app/sanitizer"
	"github.com/shivam-bit/highlight/internal/logging"
	"github.com/shivam-bit/highlight/internal/quicksearch"
)

func (m *Model) openSearch() tea.Cmd {
	m.mode = uiModeSearch
	m.optionCursor = 0
	return m.searchInput.Focus()
}

func (m *Model) closeSearch() {
	m.mode = uiModeBrowse
	m.searchInput.Blur()
	m.searchInput.SetValue("")
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeSearch()
		return nil
	case "up", "ctrl+p":
		if m.optionCursor > 0 {
			m.optionCursor--
		}
		return nil
	case "down", "ctrl+n":
		if m.optionCursor < len(m.options)-1 {
			m.optionCursor++
		}
		return nil
	case "enter":
		return m.selectOption()
	}
	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if query := m.searchInput.Value(); query != before {
		m.searchSeq++
		return tea.Batch(cmd, searchDebounceCmd(m.searchDebounce, m.searchSeq, query))
	}
	return cmd
}

func (m *Model) beginQuickSearch(query string) tea.Cmd {
	if m.api == nil {
		return nil
	}
	m.searching = true
	seq, ctx := m.searcher.Begin(m.requestScopeContext(requestScopeQuickSearch))
	return quickSearchCmd(ctx, m.searcher, seq, query)
}

func (m *Model) handleQuickSearch(msg quickSearchMsg) {
	if errors.Is(msg.err, quicksearch.ErrSuperseded) || errors.Is(msg.err, context.Canceled) {
		return
	}
	m.searching = false
	if msg.err != nil {
		m.logger.Warn("quick search failed", logging.F("err", msg.err))
		m.showErrorToast("search failed: " + msg.err.Error())
		return
	}
	if !m.searcher.IsCurrent(msg.result.Seq) {
		return
	}
	m.searchQuery = msg.result.Query
	m.suggestions = msg.result.Groups
	m.options = quicksearch.Flatten(msg.result.Groups)
	if m.optionCursor >= len(m.options) {
		m.optionCursor = max(0, len(m.options)-1)
	}
}

func (m *Model) selectOption() tea.Cmd {
	if m.optionCursor < 0 || m.optionCursor >= len(m.options) {
		return nil
	}
	opt := m.options[m.optionCursor]
	sel, err := m.selector.Select(opt)
	m.closeSearch()
	if err != nil {
		m.showErrorToast(err.Error())
		return nil
	}
	m.logger.Info("quick search selection",
		logging.F("key", quicksearch.FieldKey(opt)),
		logging.F("path", sel.Path),
	)
	return nil
}

func (m *Model) renderSearch(width int) string {
	var lines []string
	lines = append(lines, searchFrameStyle.Width(max(10, width-2)).Render(m.searchInput.View()))
	if m.searching {
		lines = append(lines, statusStyle.Render(m.spinner.View()+" searching"))
	}
	if len(m.options) == 0 {
		if msg := quicksearch.NoOptionsMessage(m.searchQuery); msg != "" && !m.searching {
			lines = append(lines, statusStyle.Render(msg))
		}
		return strings.Join(lines, "\n")
	}
	index := 0
	for _, group := range m.suggestions {
		lines = append(lines, groupHeadingStyle.Render(group.Label)+" "+groupTooltipStyle.Render(group.Tooltip))
		for _, opt := range group.Options {
			line := m.renderOption(opt.Name, opt.Value, width-2)
			if index == m.optionCursor {
				line = selectedStyle.Render("› ") + line
			} else {
				line = "  " + line
			}
			lines = append(lines, line)
			index++
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderOption(name, value string, width int) string {
	prefix := ""
	if name = sanitizer.Line(name, 24); name != "" {
		prefix = optionNameStyle.Render(name + ": ")
	}
	value = sanitizer.Line(value, max(8, width-len(name)-4))
	return prefix + quicksearch.Highlight(value, m.searchInput.Value(), func(s string) string {
		return matchStyle.Render(s)
	})
}
