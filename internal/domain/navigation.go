package domain

// Page names a view of the client.
type Page string

const (
	PageHome         Page = "home"
	PageRecipes      Page = "recipes"
	PageAddRecipe    Page = "add-recipe"
	PageRecommender  Page = "recipe-recommender"
	PageRecipeDetail Page = "recipe-detail"
	PageSubstitute   Page = "substitute"
	PageFavorites    Page = "favorites"
	PageAbout        Page = "about"
)

// Pages is the closed set of views the client can render.
var Pages = []Page{
	PageHome, PageRecipes, PageAddRecipe, PageRecommender,
	PageRecipeDetail, PageSubstitute, PageFavorites, PageAbout,
}

// Known reports whether p is one of Pages.
func (p Page) Known() bool {
	for _, k := range Pages {
		if p == k {
			return true
		}
	}
	return false
}

// String returns the page identifier.
func (p Page) String() string { return string(p) }

// NavState is the router's state. SelectedRecipeID is zero when nothing is
// selected.
type NavState struct {
	Page             Page
	SelectedRecipeID int
	SeedIngredients  []string
}
