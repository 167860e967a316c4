// Package substitute finds replacements for an ingredient, falling back to
// a built-in table when the backend has none.
package substitute

import (
	"context"
	"fmt"
	"strings"

	"github.com/hammamikhairi/cookmate/internal/api"
	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

const (
	defaultRatio = "1:1"
	defaultNotes = "Suitable substitutes with similar properties"
)

// Popular are the quick-search ingredients.
var Popular = []string{
	"Garam Masala",
	"Ghee",
	"Paneer",
	"Curry Leaves",
	"Turmeric",
	"Cumin",
	"Cardamom",
	"Tamarind",
}

// Source is the slice of the backend client the finder needs.
type Source interface {
	Substitutes(ctx context.Context, ingredient string) ([]api.SubstitutePayload, error)
}

var _ Source = (*api.Client)(nil)

// Result is one search outcome. Fallback is set when the built-in table
// answered; Reason then says why the backend did not.
type Result struct {
	Query    string
	Matches  []domain.Substitute
	Fallback bool
	Reason   string
}

// Finder looks up substitutes.
type Finder struct {
	src Source
	log *logger.Logger
}

// NewFinder creates a Finder.
func NewFinder(src Source, log *logger.Logger) *Finder {
	return &Finder{src: src, log: log}
}

// Find returns substitutes for ingredient. Backend failures are not
// returned; they switch the result to the fallback table.
func (f *Finder) Find(ctx context.Context, ingredient string) (*Result, error) {
	query := strings.TrimSpace(ingredient)
	if query == "" {
		return nil, fmt.Errorf("substitute: empty ingredient: %w", domain.ErrInvalidInput)
	}

	rows, err := f.src.Substitutes(ctx, query)
	if err == nil && len(rows) > 0 {
		return &Result{Query: query, Matches: []domain.Substitute{group(query, rows)}}, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	reason := fmt.Sprintf("No substitutes found in database for %q", query)
	if err != nil {
		reason = api.UserMessage(err)
		f.log.Warn("substitute: backend lookup for %q failed: %v", query, err)
	}
	return &Result{
		Query:    query,
		Matches:  Lookup(query),
		Fallback: true,
		Reason:   reason,
	}, nil
}

// group folds the backend rows into one entry for query.
func group(query string, rows []api.SubstitutePayload) domain.Substitute {
	s := domain.Substitute{Ingredient: query, Ratio: defaultRatio, Notes: defaultNotes}
	for _, r := range rows {
		if name := strings.TrimSpace(r.SubstituteName); name != "" {
			s.Substitutes = append(s.Substitutes, name)
		}
	}
	if len(rows) > 0 && strings.TrimSpace(rows[0].Reason) != "" {
		s.Notes = strings.TrimSpace(rows[0].Reason)
	}
	return s
}
