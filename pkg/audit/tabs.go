package audit

// Routes of the result views.
const (
	RouteRecommendations = "/recommendations.html"
	RouteMistakes        = "/mistakes.html"
	RouteDetails         = "/details.html"
)

// Tab is one entry in the result tab bar.
type Tab struct {
	Name  string
	Route string
}

// DefaultTabs is the fixed, ordered tab list of the results view.
var DefaultTabs = []Tab{
	{Name: "Recommendations", Route: RouteRecommendations},
	{Name: "Common mistakes", Route: RouteMistakes},
	{Name: "Form details", Route: RouteDetails},
}

// redirects maps entry routes to the view they open.
var redirects = map[string]string{
	"/":           RouteRecommendations,
	"/index.html": RouteRecommendations,
}

// InitialTabIndex returns the index of the first tab whose route equals
// currentPath, or 0 when none matches.
func InitialTabIndex(currentPath string, tabs []Tab) int {
	for i, tab := range tabs {
		if tab.Route == currentPath {
			return i
		}
	}
	return 0
}

// ResolveRoute applies entry redirects to path and reports whether the
// result is a known view route.
func ResolveRoute(path string) (string, bool) {
	if to, ok := redirects[path]; ok {
		path = to
	}
	for _, tab := range DefaultTabs {
		if tab.Route == path {
			return path, true
		}
	}
	return path, false
}

// TabSelector tracks which tab is active. The current route is injected by
// the caller rather than read from ambient navigation state.
type TabSelector struct {
	tabs   []Tab
	active int
}

// NewTabSelector creates a selector over tabs whose active tab is the one
// matching currentPath.
func NewTabSelector(tabs []Tab, currentPath string) *TabSelector {
	return &TabSelector{
		tabs:   tabs,
		active: InitialTabIndex(currentPath, tabs),
	}
}

// Tabs returns the fixed tab list.
func (s *TabSelector) Tabs() []Tab {
	return s.tabs
}

// Active returns the active tab index.
func (s *TabSelector) Active() int {
	return s.active
}

// SelectTab activates the tab at index and returns the route the caller
// should navigate to. index must come from Tabs; it is not range-checked.
func (s *TabSelector) SelectTab(index int) (int, string) {
	s.active = index
	return s.active, s.tabs[index].Route
}

// Navigate recomputes the active tab after navigation to path happened
// elsewhere.
func (s *TabSelector) Navigate(path string) int {
	s.active = InitialTabIndex(path, s.tabs)
	return s.active
}
