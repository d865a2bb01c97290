package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/formscope/pkg/overlay"
	"github.com/entrhq/formscope/pkg/types"
)

// Init requests the first audit run and starts the spinner.
func (m *model) Init() tea.Cmd {
	m.requestAudit()
	return m.spinner.Tick
}

// Update handles all state updates for the results view.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case types.Event:
		m.handleEvent(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleEvent applies a notification from the host.
func (m *model) handleEvent(e types.Event) {
	switch e.Type {
	case types.EventTypeAuditDetails:
		if e.Details == nil {
			return
		}
		m.setDetails(*e.Details)
		m.setStatus(fmt.Sprintf("Audit complete: %d findings", len(e.Details.Results)), false)
	case types.EventTypeAuditError:
		m.loading = false
		m.setStatus(fmt.Sprintf("Audit failed: %v", e.Error), true)
	case types.EventTypeHighlightError:
		m.setStatus(fmt.Sprintf("Could not highlight element: %v", e.Error), true)
	case types.EventTypeNavigate:
		m.leaveList()
		m.navigate(e.Route)
	}
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.send(types.NewHideEvent(overlay.TypeHover))
		m.send(types.NewHideEvent(overlay.TypeClick))
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(1)

	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(-1)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Select):
		m.highlightCurrent(overlay.TypeClick, true)

	case key.Matches(msg, m.keys.Clear):
		m.send(types.NewHideEvent(overlay.TypeClick))

	case key.Matches(msg, m.keys.Copy):
		m.copySelector()

	case key.Matches(msg, m.keys.Reload):
		if m.requestAudit() {
			return m, m.spinner.Tick
		}

	case msg.String() == "pgdown":
		m.snippet.LineDown(m.snippet.Height / 2)

	case msg.String() == "pgup":
		m.snippet.LineUp(m.snippet.Height / 2)
	}
	return m, nil
}

// requestAudit asks the host for a fresh audit run. It reports whether a
// request was sent.
func (m *model) requestAudit() bool {
	if m.loading {
		return false
	}
	if !m.send(types.NewAuditRequestEvent()) {
		return false
	}
	m.loading = true
	m.setStatus("Running audit...", false)
	return true
}

// switchTab activates the neighbouring tab, wrapping at both ends.
func (m *model) switchTab(delta int) {
	n := len(m.selector.Tabs())
	next := (m.selector.Active() + delta + n) % n
	m.leaveList()
	_, route := m.selector.SelectTab(next)
	m.route, m.found = route, true
	m.resetCursor()
}

// moveCursor moves within the active list and hover-highlights the row.
func (m *model) moveCursor(delta int) {
	n := m.listLen()
	if n == 0 {
		return
	}
	c := m.cursor + delta
	if c < 0 || c >= n {
		return
	}
	m.cursor = c
	m.refreshSnippet()
	m.highlightCurrent(overlay.TypeHover, false)
}

// leaveList hides the hover overlay when focus leaves the active list.
func (m *model) leaveList() {
	if m.listLen() > 0 {
		m.send(types.NewHideEvent(overlay.TypeHover))
	}
}

func (m *model) highlightCurrent(t overlay.Type, scrollIntoView bool) {
	selector := m.currentSelector()
	if selector == "" {
		if t == overlay.TypeClick && m.listLen() > 0 {
			m.setStatus("This finding has no element to highlight", false)
		}
		return
	}
	m.send(types.NewHighlightEvent(selector, t, scrollIntoView))
}

func (m *model) copySelector() {
	selector := m.currentSelector()
	if selector == "" {
		return
	}
	if err := m.copy(selector); err != nil {
		m.setStatus(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %s", selector), false)
}

// send forwards a request to the host. Requests are sent from the update
// loop so the host sees them in the order the user made them.
func (m *model) send(e types.Event) bool {
	if m.channels == nil {
		return false
	}
	if !m.channels.Send(m.ctx, e) {
		if m.logger != nil {
			m.logger.Warnf("dropped %s request: %v", e.Type, m.ctx.Err())
		}
		return false
	}
	return true
}

func (m *model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.snippet.Width = width - 4
	m.snippet.Height = max(3, height/3)
	m.ready = true
}
