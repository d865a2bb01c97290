package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/entrhq/formscope/pkg/audit"
	"github.com/entrhq/formscope/pkg/logging"
	"github.com/entrhq/formscope/pkg/types"
)

// model represents the state of the results view.
type model struct {
	// Bubble Tea components
	snippet viewport.Model // highlighted markup on the Form details tab
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	// Host integration
	ctx      context.Context
	channels *types.Channels
	logger   *logging.Logger
	copy     func(string) error

	// Navigation
	selector *audit.TabSelector
	route    string
	found    bool

	// Audit state
	details  audit.Details
	groups   audit.Groups
	elements []element
	loading  bool
	loaded   bool

	// Row under the cursor in the active list
	cursor int

	// Status line
	status      string
	statusIsErr bool

	// Window dimensions
	width  int
	height int
	ready  bool

	pageURL string
}

// element is one page element referenced by at least one finding.
type element struct {
	Selector string
	HTML     string
	Findings []string
}

// modelOptions carries what the executor hands to a new model.
type modelOptions struct {
	Channels   *types.Channels
	Logger     *logging.Logger
	StartRoute string
	PageURL    string
}

func newModel(ctx context.Context, opts modelOptions) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = headerStyle

	m := &model{
		snippet:  viewport.New(80, 8),
		spinner:  s,
		help:     help.New(),
		keys:     defaultKeyMap(),
		ctx:      ctx,
		channels: opts.Channels,
		logger:   opts.Logger,
		copy:     clipboard.WriteAll,
		pageURL:  opts.PageURL,
	}
	start := opts.StartRoute
	if start == "" {
		start = "/"
	}
	m.selector = audit.NewTabSelector(audit.DefaultTabs, start)
	m.navigate(start)
	return m
}

// navigate resolves path through the entry redirects and recomputes the
// active tab from the resulting route.
func (m *model) navigate(path string) {
	m.route, m.found = audit.ResolveRoute(path)
	m.selector.Navigate(m.route)
	m.resetCursor()
}

// setDetails replaces the displayed results wholesale.
func (m *model) setDetails(details audit.Details) {
	m.details = details
	m.groups = audit.Categorize(details.Results)
	m.elements = collectElements(details.Results)
	m.loading = false
	m.loaded = true
	m.resetCursor()
}

func (m *model) resetCursor() {
	m.cursor = 0
	m.refreshSnippet()
}

// listLen returns the number of rows in the active list.
func (m *model) listLen() int {
	if !m.found {
		return 0
	}
	switch m.route {
	case audit.RouteRecommendations:
		return len(m.groups.Recommendations)
	case audit.RouteMistakes:
		return len(m.groups.CommonMistakes)
	case audit.RouteDetails:
		return len(m.elements)
	}
	return 0
}

// currentSelector returns the selector of the row under the cursor, or ""
// when it has none.
func (m *model) currentSelector() string {
	if m.cursor >= m.listLen() {
		return ""
	}
	switch m.route {
	case audit.RouteRecommendations:
		return firstSelector(m.groups.Recommendations[m.cursor])
	case audit.RouteMistakes:
		return firstSelector(m.groups.CommonMistakes[m.cursor])
	case audit.RouteDetails:
		return m.elements[m.cursor].Selector
	}
	return ""
}

func (m *model) refreshSnippet() {
	if m.route != audit.RouteDetails || m.cursor >= len(m.elements) {
		m.snippet.SetContent("")
		return
	}
	m.snippet.SetContent(highlightHTML(m.elements[m.cursor].HTML))
	m.snippet.GotoTop()
}

func (m *model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusIsErr = isErr
}

func firstSelector(f audit.Finding) string {
	for _, item := range f.Items {
		if item.Selector != "" {
			return item.Selector
		}
	}
	return ""
}

// collectElements lists the distinct elements referenced by results in
// first-seen order.
func collectElements(results []audit.Finding) []element {
	var out []element
	index := make(map[string]int)
	for _, f := range results {
		label := f.Title
		if label == "" {
			label = f.Name
		}
		for _, item := range f.Items {
			if item.Selector == "" {
				continue
			}
			i, ok := index[item.Selector]
			if !ok {
				i = len(out)
				index[item.Selector] = i
				out = append(out, element{Selector: item.Selector, HTML: item.HTML})
			}
			out[i].Findings = append(out[i].Findings, label)
		}
	}
	return out
}
