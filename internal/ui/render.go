package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/ramanasai/daytodo/internal/version"
	"github.com/ramanasai/daytodo/internal/view"
)

const (
	minSidebarWidth = 24
	editorHint      = "enter save • alt+enter new line • esc cancel"
)

func (m Model) sidebarWidth() int {
	return max(minSidebarWidth, m.width/4)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading…"
	}
	top := m.renderTopBar()
	status := m.renderStatusBar()
	// top bar, status bar and the pane borders
	bodyH := max(3, m.height-4)

	sw := m.sidebarWidth()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(sw, bodyH),
		m.renderTodos(m.width-sw, bodyH),
	)
	base := lipgloss.JoinVertical(lipgloss.Left, top, body, status)

	switch m.mode {
	case modeAdd:
		return overlayCenter(base, m.modal("Add todo to "+m.page.Title, m.editor.View()+"\n\n"+m.theme.Dim.Render(editorHint)))
	case modeEdit:
		return overlayCenter(base, m.modal("Edit todo", m.editor.View()+"\n\n"+m.theme.Dim.Render(editorHint)))
	case modeSearch:
		return overlayCenter(base, m.modal("Search all dates", m.input.View()+"\n\n"+m.theme.Dim.Render("enter search • esc cancel")))
	case modeRename:
		return overlayCenter(base, m.modal("Rename "+m.pendingDisplay, m.input.View()+"\n\n"+m.theme.Dim.Render("enter save • esc cancel")))
	case modeConfirmDelete:
		body := fmt.Sprintf("Delete all todos of %q?\nThis cannot be undone.\n\n%s",
			m.pendingDisplay, m.theme.Dim.Render("y confirm • n cancel"))
		return overlayCenter(base, m.modal("Delete date", body))
	case modeMenu:
		return overlayCenter(base, m.renderMenu())
	case modeJump:
		return overlayCenter(base, m.modal("Jump to date", m.jump.View(m.theme)))
	case modeHelp:
		body := m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" + m.theme.Dim.Render(version.GetVersionInfo())
		return overlayCenter(base, m.modal("Keys", body))
	}
	return base
}

func (m Model) renderTopBar() string {
	left := "daytodo"
	if m.state.Searching() {
		left += " · search"
	}
	right := m.theme.Dim.Render("today " + m.svc.Formatter().Display(m.today))
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return m.theme.TopBar.Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderStatusBar() string {
	var text string
	switch {
	case m.notice != "" && m.noticeErr:
		text = m.theme.Error.Render(m.notice)
	case m.notice != "":
		text = m.theme.Success.Render(m.notice)
	case m.page.Warning != "":
		text = m.theme.Warning.Render(m.page.Warning)
	default:
		text = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return m.theme.StatusBar.Width(m.width).Render(text)
}

func (m Model) pane(focused bool) lipgloss.Style {
	if focused {
		return m.theme.BorderFocus
	}
	return m.theme.BorderDim
}

func (m Model) renderSidebar(w, h int) string {
	inner := max(1, w-4)
	title := "Dates"
	if m.page.Fallback {
		title += " (offline)"
	}
	lines := []string{m.theme.PanelTitle.Render(title)}
	for i, it := range m.page.Sidebar {
		lines = append(lines, m.sidebarLine(i, it, inner))
	}
	return m.pane(m.focus == focusDates).Width(w - 2).Height(h).Render(strings.Join(clip(lines, h), "\n"))
}

func (m Model) sidebarLine(i int, it view.SidebarItem, width int) string {
	mark := "  "
	if it.Pinned {
		mark = m.theme.Pinned.Render("★ ")
	}
	count := ""
	if it.Count > 0 {
		count = fmt.Sprintf("%d", it.Count)
	}
	label := truncate(it.Label, max(1, width-len(count)-3))
	gap := max(1, width-2-lipgloss.Width(label)-len(count))
	if it.Active {
		label = m.theme.Active.Render(label)
	}
	line := mark + label + strings.Repeat(" ", gap) + m.theme.Dim.Render(count)
	if m.focus == focusDates && i == m.dateCursor {
		line = m.theme.Cursor.Render(line)
	}
	return line
}

func (m Model) renderTodos(w, h int) string {
	inner := max(1, w-4)
	lines := []string{m.theme.PanelTitle.Render(m.page.Title)}
	if !m.loaded {
		lines = append(lines, m.theme.Dim.Render("loading…"))
	} else if len(m.page.Rows) == 0 {
		lines = append(lines, "", m.theme.Dim.Render(m.page.Empty))
	}

	visible := max(1, h-1)
	start := 0
	if m.todoCursor >= visible {
		start = m.todoCursor - visible + 1
	}
	for i := start; i < len(m.page.Rows) && i < start+visible; i++ {
		lines = append(lines, m.todoLine(i, m.page.Rows[i], inner))
	}
	return m.pane(m.focus == focusTodos).Width(w - 2).Height(h).Render(strings.Join(clip(lines, h), "\n"))
}

func (m Model) todoLine(i int, r view.Row, width int) string {
	box := "[ ] "
	if r.Completed {
		box = "[x] "
	}
	var meta []string
	if r.Origin != "" {
		meta = append(meta, m.theme.Origin.Render(r.Origin))
	}
	if r.Stamp != "" {
		meta = append(meta, m.theme.Dim.Render(r.Stamp))
	}
	suffix := strings.Join(meta, " ")
	room := max(1, width-len(box)-lipgloss.Width(suffix)-1)

	var content string
	if len(r.Segments) > 0 {
		content = m.renderSegments(r, room)
	} else {
		content = truncate(oneLine(r.Content), room)
		if r.Completed {
			content = m.theme.Done.Render(content)
		}
	}
	gap := max(1, width-len(box)-lipgloss.Width(content)-lipgloss.Width(suffix))
	line := box + content + strings.Repeat(" ", gap) + suffix
	if m.focus == focusTodos && i == m.todoCursor {
		line = m.theme.Cursor.Render(line)
	}
	return line
}

func (m Model) renderSegments(r view.Row, room int) string {
	var b strings.Builder
	used := 0
	for _, seg := range r.Segments {
		if used >= room {
			break
		}
		text := truncate(oneLine(seg.Text), room-used)
		used += lipgloss.Width(text)
		switch {
		case seg.Match:
			b.WriteString(m.theme.Highlight.Render(text))
		case r.Completed:
			b.WriteString(m.theme.Done.Render(text))
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}

func (m Model) renderMenu() string {
	target, _ := m.menu.Target()
	pin := "Pin"
	if m.pinned(target) {
		pin = "Unpin"
	}
	items := []string{
		"c  Copy date",
		"r  Rename",
		"d  Delete date",
		"p  " + pin,
	}
	body := strings.Join(items, "\n") + "\n\n" + m.theme.Dim.Render("esc close")
	return m.modal(m.displayOf(target), body)
}

func (m Model) modal(title, content string) string {
	return m.theme.ModalBox.Render(m.theme.ModalTitle.Render(title) + "\n\n" + content)
}

func overlayCenter(base, modal string) string {
	baseH := lipgloss.Height(base)
	mh := lipgloss.Height(modal)
	topPad := max(0, (baseH-mh)/3)
	return lipgloss.JoinVertical(lipgloss.Left, strings.Repeat("\n", topPad), lipgloss.PlaceHorizontal(lipgloss.Width(base), lipgloss.Center, modal), "")
}

func clip(lines []string, h int) []string {
	if len(lines) > h {
		return lines[:h]
	}
	return lines
}

func truncate(s string, n int) string {
	return xansi.Truncate(s, n, "…")
}
