package app

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/shivam-bit/highlight/internal/app/sanitizer"
	"github.com/shivam-bit/highlight/internal/feed"
	"github.com/shivam-bit/highlight/internal/navigation"
	"github.com/shivam-bit/highlight/internal/types"
)

const (
	skeletonRows    = 6
	chromeLines     = 5
	identifierWidth = 28
	locationWidth   = 18
	clientWidth     = 20
)

func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	if m.mode == uiModeDocs {
		return strings.Join([]string{
			headerStyle.Render("Quickstart"),
			m.docs.View(),
			helpStyle.Render("esc close · ↑/↓ scroll"),
		}, "\n")
	}
	var sections []string
	sections = append(sections, m.renderHeader(width))
	if m.mode == uiModeSearch {
		sections = append(sections, m.renderSearch(width))
	}
	route := m.route()
	switch {
	case route == navigation.ErrorsPath(m.projectID):
		sections = append(sections, m.renderErrors(width))
	case strings.HasPrefix(route, navigation.SessionsPath(m.projectID)+"/"):
		sections = append(sections, m.renderSessionDetail(width, strings.TrimPrefix(route, navigation.SessionsPath(m.projectID)+"/")))
	default:
		sections = append(sections, m.renderFeed(width))
	}
	sections = append(sections, m.renderFooter(width))
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader(width int) string {
	title := headerStyle.Render("highlight") + statusStyle.Render(" · "+m.route())
	toggles := []string{
		toggleLabel("live", m.params.Params().ShowLiveSessions),
		toggleLabel("hide viewed", m.params.Params().HideViewed),
		toggleLabel("starred", m.params.ShowStarred()),
		toggleLabel("autoplay", m.player.AutoPlaySessions),
		toggleLabel("details", m.player.ShowDetailedSessionView),
	}
	return truncateToWidth(title, width) + "\n" + strings.Join(toggles, " ")
}

func toggleLabel(name string, on bool) string {
	if on {
		return toggleOnStyle.Render("[x] " + name)
	}
	return toggleOffStyle.Render("[ ] " + name)
}

func (m *Model) renderFeed(width int) string {
	snap := m.loader.Snapshot()
	var lines []string
	heading := "Sessions"
	if snap.TotalKnown() {
		heading += " " + feed.FormatNumber(snap.TotalCount)
	}
	heading = headerStyle.Render(heading)
	if count, ok := m.liveBadge(); ok {
		heading += " " + liveBadgeStyle.Render(fmt.Sprintf("(%s live)", feed.FormatNumber(count)))
	}
	lines = append(lines, heading, dividerStyle.Render(strings.Repeat("─", width)))

	switch {
	case snap.ShowSkeleton:
		for i := 0; i < skeletonRows; i++ {
			lines = append(lines, skeletonStyle.Render(strings.Repeat("░", max(4, width-4))))
		}
		return strings.Join(lines, "\n")
	case snap.ShowEmpty:
		lines = append(lines, statusStyle.Render("No sessions found. Try widening the search or turning on live sessions."))
		return strings.Join(lines, "\n")
	}

	visible := m.feedRowsVisible()
	end := min(len(snap.Sessions), m.offset+visible)
	for i := m.offset; i < end; i++ {
		row := m.renderSessionRow(snap.Sessions[i], width-2)
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("› "+row))
			continue
		}
		lines = append(lines, "  "+row)
	}
	if snap.ShowTrailingSkeleton && end == len(snap.Sessions) {
		if snap.Loading {
			lines = append(lines, statusStyle.Render(m.spinner.View()+" loading more sessions"))
		} else {
			lines = append(lines, skeletonStyle.Render(strings.Repeat("░", max(4, width/2))))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) feedRowsVisible() int {
	height := m.height
	if height <= 0 {
		height = 24
	}
	return max(1, height-chromeLines-3)
}

func (m *Model) renderSessionRow(session *types.Session, width int) string {
	identifier := sanitizer.Line(session.Identifier, identifierWidth)
	if identifier == "" {
		identifier = "#" + sanitizer.Line(session.SecureID, identifierWidth-1)
	}
	location := sanitizer.Line(joinNonEmpty(", ", session.City, session.Country), locationWidth)
	client := sanitizer.Line(joinNonEmpty(" / ", session.BrowserName, session.OSName), clientWidth)
	cols := []string{
		runewidth.FillRight(identifier, identifierWidth),
		runewidth.FillRight(location, locationWidth),
		runewidth.FillRight(client, clientWidth),
		formatActiveLength(session.ActiveLength),
		formatAgo(m.now(), session.CreatedAt),
	}
	row := strings.Join(cols, " ")
	if session.Starred {
		row = "★ " + row
	}
	if !session.Processed {
		row += " " + liveBadgeStyle.Render("live")
	}
	row = truncateToWidth(row, width)
	if session.Viewed {
		return viewedSessionStyle.Render(row)
	}
	return sessionStyle.Render(row)
}

func (m *Model) renderSessionDetail(width int, secureID string) string {
	var session *types.Session
	for _, candidate := range m.loader.Snapshot().Sessions {
		if candidate.SecureID == secureID {
			session = candidate
			break
		}
	}
	lines := []string{headerStyle.Render("Session " + sanitizer.Line(secureID, width-8))}
	if session == nil {
		return strings.Join(append(lines, statusStyle.Render("Session is no longer in the feed.")), "\n")
	}
	lines = append(lines,
		"identifier  "+sanitizer.Line(session.Identifier, width-12),
		"location    "+sanitizer.Line(joinNonEmpty(", ", session.City, session.Country), width-12),
		"client      "+sanitizer.Line(joinNonEmpty(" / ", session.BrowserName, session.OSName), width-12),
		"length      "+formatActiveLength(session.ActiveLength),
		"autoplay    "+onOff(m.player.AutoPlaySessions),
	)
	if m.player.ShowDetailedSessionView && len(session.Fields) > 0 {
		keys := make([]string, 0, len(session.Fields))
		for key := range session.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		lines = append(lines, dividerStyle.Render(strings.Repeat("─", width)))
		for _, key := range keys {
			lines = append(lines, optionNameStyle.Render(runewidth.FillRight(sanitizer.Line(key, 24), 24))+" "+sanitizer.Line(session.Fields[key], width-26))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderErrors(width int) string {
	lines := []string{headerStyle.Render("Errors")}
	query := m.params.ErrorQuery()
	if query == nil || len(query.Rules) == 0 {
		return strings.Join(append(lines, statusStyle.Render("No error filter set.")), "\n")
	}
	for _, rule := range query.Rules {
		text := fmt.Sprintf("%s %s %s", rule.Field(), rule.Op(), rule.Value())
		lines = append(lines, "  "+sanitizer.Line(text, width-2))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter(width int) string {
	help := helpStyle.Render("/ search · l live · v hide viewed · s starred · y copy link · ? docs · q quit")
	lines := []string{truncateToWidth(help, width)}
	if toast := m.toastLine(width); toast != "" {
		lines = append(lines, toast)
	} else if m.status != "" {
		lines = append(lines, statusStyle.Render(truncateToWidth(m.status, width)))
	}
	return strings.Join(lines, "\n")
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, sep)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// formatActiveLength renders a millisecond duration as "1h 2m", "3m 4s" or
// "5s".
func formatActiveLength(ms int64) string {
	d := (time.Duration(ms) * time.Millisecond).Round(time.Second)
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, mins)
	case mins > 0:
		return fmt.Sprintf("%dm %ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

func formatAgo(now, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
