package audit

// TypeError marks a finding as a recommendation. Any other type is a common
// mistake.
const TypeError = "error"

// Finding is one reported issue about a page's forms.
type Finding struct {
	Type        string `json:"type" yaml:"type"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Items       []Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// Item is a page element a finding refers to.
type Item struct {
	// Selector locates the element in the live page
	Selector string `json:"selector" yaml:"selector"`

	// HTML is the element's outer HTML at audit time
	HTML string `json:"html,omitempty" yaml:"html,omitempty"`
}

// IsRecommendation reports whether f is classified as a recommendation.
func (f Finding) IsRecommendation() bool {
	return f.Type == TypeError
}

// Details is the output of one audit run. A new value replaces the previous
// one wholesale.
type Details struct {
	Score   float64   `json:"score" yaml:"score"`
	Results []Finding `json:"results" yaml:"results"`
}

// Groups holds findings split by classification.
type Groups struct {
	Recommendations []Finding
	CommonMistakes  []Finding
}

// Total returns the number of findings across both groups.
func (g Groups) Total() int {
	return len(g.Recommendations) + len(g.CommonMistakes)
}

// Categorize partitions results into recommendations and common mistakes in
// a single pass. Relative order is preserved within each group.
func Categorize(results []Finding) Groups {
	var g Groups
	for _, f := range results {
		if f.IsRecommendation() {
			g.Recommendations = append(g.Recommendations, f)
		} else {
			g.CommonMistakes = append(g.CommonMistakes, f)
		}
	}
	return g
}
