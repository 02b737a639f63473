// Package textmatch implements the case-insensitive substring search used by
// the inventory and category listings.
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher tests strings against a folded search term. A Matcher is not safe
// for concurrent use.
type Matcher struct {
	folder cases.Caser
	term   string
}

// New returns a matcher for term. Surrounding whitespace is ignored.
func New(term string) *Matcher {
	folder := cases.Fold()
	return &Matcher{
		folder: folder,
		term:   folder.String(strings.TrimSpace(term)),
	}
}

// Empty reports whether the term is blank, in which case everything matches.
func (m *Matcher) Empty() bool {
	return m.term == ""
}

// Any reports whether any of fields contains the term, ignoring case.
func (m *Matcher) Any(fields ...string) bool {
	if m.term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(m.folder.String(f), m.term) {
			return true
		}
	}
	return false
}

// Filter returns the elements of items for which fields(item) matches.
func Filter[T any](term string, items []T, fields func(T) []string) []T {
	m := New(term)
	if m.Empty() {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if m.Any(fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}
