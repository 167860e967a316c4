package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

type fakeFetcher struct {
	recipes   []domain.RawRecipe
	detail    map[int]domain.RawRecipe
	listErr   error
	detailErr error
}

func (f *fakeFetcher) Recipes(ctx context.Context) ([]domain.RawRecipe, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.recipes, nil
}

func (f *fakeFetcher) RecipeDetail(ctx context.Context, id int) (*domain.RawRecipe, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	r, ok := f.detail[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func setupCatalog(t *testing.T) (*Catalog, *fakeFetcher) {
	t.Helper()
	f := &fakeFetcher{
		recipes: []domain.RawRecipe{
			{RecipeID: 1, Title: "Masala Chai", CookingTime: 10},
			{RecipeID: 2, Title: "Chicken Curry", CookingTime: 60, Ingredients: []byte(`["chicken"]`)},
			{RecipeID: 3, Title: "Masala Dosa", CookingTime: 40, Cuisine: "South Indian"},
			{RecipeID: 4, Title: "Veg Pulao", CookingTime: 30},
		},
		detail: map[int]domain.RawRecipe{},
	}
	c := NewCatalog(f, logger.New(logger.LevelOff, nil))
	n, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 recipes, got %d", n)
	}
	return c, f
}

func TestCatalogGet(t *testing.T) {
	c, _ := setupCatalog(t)

	tests := []struct {
		id      int
		wantErr error
	}{
		{1, nil},
		{3, nil},
		{99, domain.ErrNotFound},
	}

	for _, tt := range tests {
		r, err := c.Get(tt.id)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("id %d: expected %v, got %v", tt.id, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("id %d: unexpected error: %v", tt.id, err)
		}
		if r.ID != tt.id {
			t.Fatalf("expected id %d, got %d", tt.id, r.ID)
		}
	}
}

func TestCatalogQuery(t *testing.T) {
	c, _ := setupCatalog(t)

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []int
	}{
		{"beverages", Filter{Category: "beverages"}, []int{1}},
		{"dinner", Filter{Category: "dinner"}, []int{2}},
		{"query by cuisine", Filter{Query: "south"}, []int{3}},
		{"diet tag", Filter{Diet: "non-veg"}, []int{2}},
		{"meal", Filter{Meal: "Lunch"}, []int{4}},
		{"time sort", Filter{Sort: SortTime}, []int{1, 4, 3, 2}},
		{"no match", Filter{Query: "pizza"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Query(tt.filter)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d results, got %d", len(tt.wantIDs), len(got))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Fatalf("position %d: expected id %d, got %d", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestCatalogSortByPopularity(t *testing.T) {
	c, _ := setupCatalog(t)
	got := c.Query(Filter{})
	for i := 1; i < len(got); i++ {
		if got[i-1].Reviews < got[i].Reviews {
			t.Fatalf("not sorted by reviews: %d before %d", got[i-1].Reviews, got[i].Reviews)
		}
	}
}

func TestCatalogCategoryCounts(t *testing.T) {
	c, _ := setupCatalog(t)
	counts := c.CategoryCounts()
	want := map[string]int{"all": 4, "breakfast": 1, "lunch": 1, "dinner": 1, "beverages": 1}
	for k, v := range want {
		if counts[k] != v {
			t.Fatalf("count[%s]: expected %d, got %d", k, v, counts[k])
		}
	}
}

func TestCatalogDetail(t *testing.T) {
	c, f := setupCatalog(t)
	ctx := context.Background()

	f.detail[2] = domain.RawRecipe{Title: "Chicken Curry", Instructions: []byte(`"1. Brown 2. Simmer"`)}
	r, err := c.Detail(ctx, 2)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if r.ID != 2 {
		t.Fatalf("expected requested id to be kept, got %d", r.ID)
	}
	if len(r.Instructions) != 2 {
		t.Fatalf("expected 2 steps, got %q", r.Instructions)
	}

	f.detailErr = domain.ErrUnreachable
	cached, err := c.Detail(ctx, 3)
	if err != nil {
		t.Fatalf("expected cached fallback, got %v", err)
	}
	if cached.Name != "Masala Dosa" {
		t.Fatalf("unexpected cached recipe %q", cached.Name)
	}

	if _, err := c.Detail(ctx, 404); !errors.Is(err, domain.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestCatalogAddAndRefreshFailure(t *testing.T) {
	c, f := setupCatalog(t)
	c.Add(domain.Recipe{ID: 50, Name: "Mango Lassi", Category: domain.CategoryBeverages})

	if c.Len() != 5 {
		t.Fatalf("expected 5 recipes, got %d", c.Len())
	}
	if first := c.List()[0]; first.ID != 50 {
		t.Fatalf("expected user recipe first, got %d", first.ID)
	}

	f.listErr = domain.ErrUnreachable
	if _, err := c.Refresh(context.Background()); !errors.Is(err, domain.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	if c.Len() != 5 {
		t.Fatalf("failed refresh dropped recipes: %d", c.Len())
	}

	f.listErr = nil
	f.recipes = append(f.recipes, domain.RawRecipe{RecipeID: 50, Title: "Mango Lassi"})
	if _, err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if c.Len() != 5 {
		t.Fatalf("expected backend copy to replace local one, got %d recipes", c.Len())
	}
}
