// Package recipe turns loosely-typed backend records into display recipes
// and keeps the browsable catalog.
package recipe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

// SortOrder orders catalog listings.
type SortOrder string

const (
	SortPopular SortOrder = "popular" // most reviews first
	SortRating  SortOrder = "rating"  // highest rating first
	SortTime    SortOrder = "time"    // quickest first
)

// ParseSortOrder maps user input to a SortOrder, defaulting to popular.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortPopular:
		return SortPopular, true
	case SortRating:
		return SortRating, true
	case SortTime:
		return SortTime, true
	}
	return SortPopular, false
}

// CategoryAll disables the category filter.
const CategoryAll = "all"

// Filter narrows a catalog listing. Zero values match everything.
type Filter struct {
	Category string // "all", or a domain.Category
	Query    string // substring of name, cuisine or any tag
	Cuisine  string
	Meal     string
	Diet     string // substring of any tag
	Sort     SortOrder
}

// Catalog holds display recipes loaded from the backend plus any the user
// added this session. Safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	fetcher domain.RecipeFetcher
	recipes []domain.Recipe
	index   map[int]int
	added   []domain.Recipe
	log     *logger.Logger
}

// NewCatalog creates an empty catalog backed by fetcher.
func NewCatalog(fetcher domain.RecipeFetcher, log *logger.Logger) *Catalog {
	return &Catalog{
		fetcher: fetcher,
		index:   make(map[int]int),
		log:     log,
	}
}

// Refresh reloads every recipe from the backend. On failure the previous
// contents are kept.
func (c *Catalog) Refresh(ctx context.Context) (int, error) {
	raws, err := c.fetcher.Recipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("recipe: refresh: %w", err)
	}

	recipes := make([]domain.Recipe, 0, len(raws))
	for _, raw := range raws {
		recipes = append(recipes, ToDisplay(raw))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.recipes = recipes
	c.reindex()
	c.log.Debug("catalog refreshed, count=%d", len(recipes))
	return len(recipes), nil
}

// Add records a recipe the user created this session. It is listed before
// backend recipes until the next refresh returns it.
func (c *Catalog) Add(r domain.Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.added = append([]domain.Recipe{r}, c.added...)
	c.reindex()
	c.log.Info("recipe added locally: %s (id=%d)", r.Name, r.ID)
}

// reindex must be called with mu held.
func (c *Catalog) reindex() {
	c.index = make(map[int]int, len(c.recipes))
	for i, r := range c.recipes {
		c.index[r.ID] = i
	}
	kept := c.added[:0]
	for _, r := range c.added {
		if _, dup := c.index[r.ID]; !dup {
			kept = append(kept, r)
		}
	}
	c.added = kept
}

// List returns every recipe, user-added first, then in backend order.
func (c *Catalog) List() []domain.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Recipe, 0, len(c.added)+len(c.recipes))
	out = append(out, c.added...)
	out = append(out, c.recipes...)
	return out
}

// Len returns the number of recipes held.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.added) + len(c.recipes)
}

// Get returns a recipe by id.
func (c *Catalog) Get(id int) (domain.Recipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i, ok := c.index[id]; ok {
		return c.recipes[i], nil
	}
	for _, r := range c.added {
		if r.ID == id {
			return r, nil
		}
	}
	c.log.Debug("recipe not found: %d", id)
	return domain.Recipe{}, domain.ErrNotFound
}

// Detail fetches the full record for id. When the backend fails the cached
// entry is returned instead, if there is one.
func (c *Catalog) Detail(ctx context.Context, id int) (domain.Recipe, error) {
	raw, err := c.fetcher.RecipeDetail(ctx, id)
	if err != nil {
		if cached, cerr := c.Get(id); cerr == nil {
			c.log.Warn("recipe detail %d unavailable, using cached entry: %v", id, err)
			return cached, nil
		}
		return domain.Recipe{}, fmt.Errorf("recipe: detail %d: %w", id, err)
	}
	if raw.Identifier() <= 0 {
		raw.RecipeID = domain.FlexInt(id)
	}

	r := ToDisplay(*raw)
	c.mu.Lock()
	if i, ok := c.index[r.ID]; ok {
		c.recipes[i] = r
	}
	c.mu.Unlock()
	return r, nil
}

// Query returns the recipes matching f, sorted by f.Sort.
func (c *Catalog) Query(f Filter) []domain.Recipe {
	all := c.List()

	var out []domain.Recipe
	for _, r := range all {
		if matches(r, f) {
			out = append(out, r)
		}
	}

	order := f.Sort
	if order == "" {
		order = SortPopular
	}
	sort.SliceStable(out, func(i, j int) bool {
		switch order {
		case SortRating:
			return out[i].Rating > out[j].Rating
		case SortTime:
			return out[i].CookTime < out[j].CookTime
		default:
			return out[i].Reviews > out[j].Reviews
		}
	})
	return out
}

// CategoryCounts returns how many recipes sit in each category, plus "all".
func (c *Catalog) CategoryCounts() map[string]int {
	counts := map[string]int{CategoryAll: 0}
	for _, cat := range domain.Categories {
		counts[string(cat)] = 0
	}
	for _, r := range c.List() {
		counts[CategoryAll]++
		counts[string(r.Category)]++
	}
	return counts
}

func matches(r domain.Recipe, f Filter) bool {
	if f.Category != "" && f.Category != CategoryAll && string(r.Category) != strings.ToLower(f.Category) {
		return false
	}
	if q := strings.ToLower(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(r.Cuisine), q) &&
			!anyTagContains(r.Tags, q) {
			return false
		}
	}
	if f.Cuisine != "" && !strings.Contains(strings.ToLower(r.Cuisine), strings.ToLower(f.Cuisine)) {
		return false
	}
	if f.Meal != "" && string(r.Category) != strings.ToLower(f.Meal) {
		return false
	}
	if f.Diet != "" && !anyTagContains(r.Tags, strings.ToLower(f.Diet)) {
		return false
	}
	return true
}

func anyTagContains(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
