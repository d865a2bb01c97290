package audit

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Suppressor drops findings whose name matches any configured pattern.
type Suppressor struct {
	patterns []glob.Glob
}

// NewSuppressor compiles the given glob patterns.
func NewSuppressor(patterns []string) (*Suppressor, error) {
	s := &Suppressor{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid suppress pattern '%s': %w", pattern, err)
		}
		s.patterns = append(s.patterns, g)
	}
	return s, nil
}

// Suppressed reports whether the finding is hidden.
func (s *Suppressor) Suppressed(f Finding) bool {
	for _, pattern := range s.patterns {
		if pattern.Match(f.Name) {
			return true
		}
	}
	return false
}

// Apply returns details with suppressed findings removed. Order of the
// remaining findings is kept. The input is not modified.
func (s *Suppressor) Apply(details Details) Details {
	if s == nil || len(s.patterns) == 0 {
		return details
	}

	kept := make([]Finding, 0, len(details.Results))
	for _, f := range details.Results {
		if !s.Suppressed(f) {
			kept = append(kept, f)
		}
	}
	return Details{Score: details.Score, Results: kept}
}
