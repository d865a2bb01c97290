package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/formscope/pkg/audit"
)

// chromeHeight is the number of lines taken by everything but the list.
const chromeHeight = 8

// View renders the entire TUI interface.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.buildHeader(),
		m.buildSummary(),
		m.buildTabBar(),
		"",
		m.buildBody(),
		"",
		m.buildStatus(),
		m.help.View(m.keys),
	)
}

func (m *model) buildHeader() string {
	header := headerStyle.Render("◆ formscope")
	if m.pageURL != "" {
		header += tipsStyle.Render("  " + m.pageURL)
	}
	return header
}

// buildSummary renders the score and the finding counts of each group.
func (m *model) buildSummary() string {
	if !m.loaded {
		if m.loading {
			return fmt.Sprintf("%s %s", m.spinner.View(), tipsStyle.Render("Running audit..."))
		}
		return tipsStyle.Render("No audit results yet")
	}
	score := scoreStyle(m.details.Score).Render(fmt.Sprintf("Score %.0f", m.details.Score))
	counts := tipsStyle.Render(fmt.Sprintf(" • %s • %s",
		plural(len(m.groups.Recommendations), "recommendation"),
		plural(len(m.groups.CommonMistakes), "common mistake")))
	if m.loading {
		counts += " " + m.spinner.View()
	}
	return score + counts
}

func (m *model) buildTabBar() string {
	tabs := m.selector.Tabs()
	rendered := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		label := tab.Name
		if n, ok := m.tabCount(tab.Route); ok {
			label = fmt.Sprintf("%s (%d)", tab.Name, n)
		}
		if i == m.selector.Active() {
			rendered = append(rendered, activeTabStyle.Render(label))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *model) tabCount(route string) (int, bool) {
	if !m.loaded {
		return 0, false
	}
	switch route {
	case audit.RouteRecommendations:
		return len(m.groups.Recommendations), true
	case audit.RouteMistakes:
		return len(m.groups.CommonMistakes), true
	}
	return 0, false
}

func (m *model) buildBody() string {
	if !m.found {
		return errorStyle.Render(fmt.Sprintf("  Nothing here: %s is not a results view. Press tab to open one.", m.route))
	}
	if !m.loaded {
		return ""
	}
	switch m.route {
	case audit.RouteRecommendations:
		return m.buildFindings(m.groups.Recommendations, "No recommendations. Nice work!")
	case audit.RouteMistakes:
		return m.buildFindings(m.groups.CommonMistakes, "No common mistakes found.")
	case audit.RouteDetails:
		return m.buildDetails()
	}
	return ""
}

// buildFindings renders a finding list. The finding under the cursor is
// expanded with its description and elements.
func (m *model) buildFindings(findings []audit.Finding, empty string) string {
	if len(findings) == 0 {
		return passStyle.Render("  " + empty)
	}

	start, end := m.window(len(findings), m.height-chromeHeight-4)
	var b strings.Builder
	for i := start; i < end; i++ {
		f := findings[i]
		b.WriteString(m.row(i, findingTitle(f)))
		b.WriteString("\n")
		if i != m.cursor {
			continue
		}
		if f.Description != "" {
			b.WriteString(descriptionStyle.Width(max(20, m.width-4)).Render(f.Description))
			b.WriteString("\n")
		}
		for _, item := range f.Items {
			b.WriteString(elementStyle.Render("↳ " + describeItem(item)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildDetails renders the element list with the markup of the selected
// element underneath.
func (m *model) buildDetails() string {
	if len(m.elements) == 0 {
		return tipsStyle.Render("  No form elements were reported.")
	}

	start, end := m.window(len(m.elements), m.height-chromeHeight-m.snippet.Height-2)
	var b strings.Builder
	for i := start; i < end; i++ {
		el := m.elements[i]
		line := describeItem(audit.Item{Selector: el.Selector, HTML: el.HTML})
		line += tipsStyle.Render(fmt.Sprintf("  %s", plural(len(el.Findings), "finding")))
		b.WriteString(m.row(i, line))
		b.WriteString("\n")
	}
	b.WriteString(panelStyle.Width(max(20, m.width-2)).Render(m.snippet.View()))
	return b.String()
}

func (m *model) row(i int, text string) string {
	if i == m.cursor {
		return cursorStyle.Render("› ") + titleStyle.Render(text)
	}
	return "  " + text
}

// window returns the visible slice bounds of a list of n rows that keeps
// the cursor on screen.
func (m *model) window(n, rows int) (int, int) {
	if rows < 1 {
		rows = 1
	}
	if n <= rows {
		return 0, n
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	return start, start + rows
}

func (m *model) buildStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsErr {
		return statusBarStyle.Foreground(salmonPink).Render(m.status)
	}
	return statusBarStyle.Render(m.status)
}

func findingTitle(f audit.Finding) string {
	switch {
	case f.Title != "":
		return f.Title
	case f.Name != "":
		return f.Name
	}
	return "(untitled finding)"
}

// describeItem summarizes an item by its markup, falling back to the
// selector.
func describeItem(item audit.Item) string {
	if d := audit.DescribeElement(item.HTML); d != "" {
		return d
	}
	return item.Selector
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
