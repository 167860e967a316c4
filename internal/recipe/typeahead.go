package recipe

import "strings"

// Trending are the dishes offered by the header search before anything is typed.
var Trending = []string{
	"Thalipeeth", "Biryani", "Masala Dosa", "Palak Paneer", "Chana masala",
	"Kaju curry", "Rice Kheer", "Soft Idli", "Dhokla", "Aloo Paratha",
}

const maxSuggestions = 10

// Typeahead suggests dish names for the header search box.
type Typeahead struct {
	names []string
}

// NewTypeahead creates a typeahead over names, or Trending when none are given.
func NewTypeahead(names ...string) *Typeahead {
	if len(names) == 0 {
		names = Trending
	}
	return &Typeahead{names: append([]string(nil), names...)}
}

// Suggest returns up to ten names containing query, case-insensitively.
// An empty query returns the first ten names.
func (t *Typeahead) Suggest(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, maxSuggestions)
	for _, n := range t.names {
		if q == "" || strings.Contains(strings.ToLower(n), q) {
			out = append(out, n)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}
