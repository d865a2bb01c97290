// Package audit classifies form audit findings and tracks which result tab
// is active.
//
// Findings of type "error" are recommendations; everything else is a common
// mistake. The tab state is a pure function of an injected route, so callers
// own navigation.
package audit
