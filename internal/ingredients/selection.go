// Package ingredients holds the ingredient selection that feeds the
// recommender, plus the palettes and suggestions offered to the user.
package ingredients

import (
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	punctuation = regexp.MustCompile(`[^\w\s]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// NormalizeName lower-cases, trims, strips punctuation, collapses
// whitespace and title-cases each word. "  TOMATOES!! " becomes "Tomatoes".
func NormalizeName(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = punctuation.ReplaceAllString(s, "")
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	if s == "" {
		return ""
	}
	// Casers carry state, so each call gets its own.
	return cases.Title(language.English).String(s)
}

// Selection is an ordered set of normalized ingredient names. Membership is
// always decided on the normalized form. Safe for concurrent use.
type Selection struct {
	mu    sync.RWMutex
	items []string
}

// NewSelection creates a selection seeded with names.
func NewSelection(names ...string) *Selection {
	s := &Selection{}
	s.Seed(names)
	return s
}

// Toggle adds name if absent and removes it if present. It reports whether
// the ingredient is selected afterwards.
func (s *Selection) Toggle(name string) bool {
	n := NormalizeName(name)
	if n == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(n); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		return false
	}
	s.items = append(s.items, n)
	return true
}

// AddCustom splits text on commas and unions the normalized tokens into the
// selection. It returns the names that were newly added.
func (s *Selection) AddCustom(text string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added []string
	for _, tok := range strings.Split(text, ",") {
		n := NormalizeName(tok)
		if n == "" || s.indexOf(n) >= 0 {
			continue
		}
		s.items = append(s.items, n)
		added = append(added, n)
	}
	return added
}

// Remove drops name if selected.
func (s *Selection) Remove(name string) bool {
	n := NormalizeName(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(n); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	}
	return false
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Seed replaces the selection with names, normalized and de-duplicated.
func (s *Selection) Seed(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	for _, name := range names {
		if n := NormalizeName(name); n != "" && s.indexOf(n) < 0 {
			s.items = append(s.items, n)
		}
	}
}

// Contains reports whether name is selected.
func (s *Selection) Contains(name string) bool {
	n := NormalizeName(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(n) >= 0
}

// Items returns a copy of the selection in insertion order.
func (s *Selection) Items() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.items...)
}

// Len returns how many ingredients are selected.
func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Selection) indexOf(n string) int {
	for i, it := range s.items {
		if it == n {
			return i
		}
	}
	return -1
}
