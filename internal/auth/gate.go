// Package auth tracks who is logged in and which pages require it.
package auth

import "github.com/hammamikhairi/cookmate/internal/domain"

// Gate decides which pages need a logged-in user.
type Gate struct {
	protected map[domain.Page]bool
}

// NewGate creates a gate protecting the given pages. With no pages it uses
// DefaultProtected.
func NewGate(pages ...domain.Page) *Gate {
	if len(pages) == 0 {
		pages = DefaultProtected
	}
	g := &Gate{protected: make(map[domain.Page]bool, len(pages))}
	for _, p := range pages {
		g.protected[p] = true
	}
	return g
}

// DefaultProtected are the pages behind login.
var DefaultProtected = []domain.Page{
	domain.PageRecipes,
	domain.PageRecipeDetail,
	domain.PageAddRecipe,
	domain.PageRecommender,
	domain.PageFavorites,
	domain.PageSubstitute,
}

// Protected reports whether page requires login.
func (g *Gate) Protected(page domain.Page) bool {
	return g.protected[page]
}

// CanEnter reports whether a user in the given login state may open page.
func (g *Gate) CanEnter(page domain.Page, loggedIn bool) bool {
	return loggedIn || !g.protected[page]
}
