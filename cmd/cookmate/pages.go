package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/ingredients"
	"github.com/hammamikhairi/cookmate/internal/recipe"
	"github.com/hammamikhairi/cookmate/internal/recommend"
	"github.com/hammamikhairi/cookmate/internal/substitute"
)

const draftUsage = "new <title> | <cuisine> | <minutes> | <Easy|Medium|Hard> | <ing1; ing2> | <step1; step2> [| desc=... | servings=4 | meal=dinner | diet=Vegan | tags=a,b | image=path]"

// render draws the current page.
func (a *cliApp) render(ctx context.Context) {
	switch a.engine.Render() {
	case domain.PageRecipes:
		a.renderRecipes()
	case domain.PageRecipeDetail:
		a.renderDetail(ctx, a.engine.State().SelectedRecipeID)
	case domain.PageFavorites:
		a.renderFavorites()
	case domain.PageRecommender:
		a.renderRecommender()
	case domain.PageSubstitute:
		a.renderSubstitute()
	case domain.PageAddRecipe:
		a.renderAddRecipe()
	case domain.PageAbout:
		a.renderAbout()
	default:
		a.renderHome()
	}
}

func (a *cliApp) renderHome() {
	i, slide := a.hero.Current()
	a.ui.PrintHeading(slide.Heading)
	a.ui.PrintText(slide.Tagline)
	a.ui.PrintHint(slideDots(i, a.hero.Len()))
	a.ui.Println("")

	a.mu.Lock()
	trending := a.typeahead.Suggest("")
	a.mu.Unlock()
	a.ui.PrintHint("Trending: " + strings.Join(trending, " · "))
	a.ui.PrintHint("Try: search tomatoes, onions, rice   ·   recipes   ·   help")
}

func (a *cliApp) renderRecipes() {
	a.mu.Lock()
	f := a.filter
	a.mu.Unlock()

	list := a.catalog.Query(f)
	counts := a.catalog.CategoryCounts()

	header := "Recipes"
	if f.Category != "" && f.Category != recipe.CategoryAll {
		header += " · " + f.Category
	}
	if f.Query != "" {
		header += fmt.Sprintf(" · %q", f.Query)
	}
	a.ui.PrintHeading(header)

	var tabs []string
	tabs = append(tabs, fmt.Sprintf("all (%d)", counts[recipe.CategoryAll]))
	for _, c := range domain.Categories {
		tabs = append(tabs, fmt.Sprintf("%s (%d)", c, counts[string(c)]))
	}
	a.ui.PrintHint(strings.Join(tabs, "  "))

	if len(list) == 0 {
		if a.catalog.Len() == 0 {
			a.ui.PrintHint("No recipes loaded yet. Type 'refresh' to try again.")
		} else {
			a.ui.PrintHint("No recipes match. Try 'filter all' or 'find' with no text.")
		}
		return
	}
	a.printRecipeList(list)
	a.ui.PrintHint("Type a number to open a recipe · filter <category> · sort <popular|rating|time> · find <text>")
}

func (a *cliApp) printRecipeList(list []domain.Recipe) {
	ids := make([]int, 0, len(list))
	for i, r := range list {
		title := r.Name
		if a.favs.Has(r.ID) {
			title += " ♥"
		}
		a.ui.PrintItem(i+1, title, recipeMeta(r))
		ids = append(ids, r.ID)
	}
	a.mu.Lock()
	a.lastList = ids
	a.mu.Unlock()
}

func (a *cliApp) renderDetail(ctx context.Context, id int) {
	r, err := a.catalog.Detail(ctx, id)
	if err != nil {
		a.mu.Lock()
		rec, ok := a.recs[id]
		a.mu.Unlock()
		if ok {
			a.renderRecommendationDetail(rec)
			return
		}
		a.fail(err)
		a.ui.PrintHint("Type 'back' to return to the list.")
		return
	}

	title := r.Name
	if a.favs.Has(r.ID) {
		title += " ♥"
	}
	a.ui.PrintHeading(title)
	a.ui.PrintHint(recipeMeta(r))
	if r.PrepTime > 0 || r.Servings > 0 || r.Calories > 0 {
		a.ui.PrintHint(fmt.Sprintf("prep %d mins · serves %d · %d kcal", r.PrepTime, r.Servings, r.Calories))
	}
	a.ui.PrintText(r.Description)
	a.ui.PrintHint(strings.Join(r.Tags, " · "))
	a.ui.Println("")

	a.ui.PrintHeading("Ingredients")
	for _, ing := range r.Ingredients {
		a.ui.PrintText("• " + ing)
	}
	a.ui.Println("")

	a.ui.PrintHeading("Instructions")
	for i, step := range r.Instructions {
		a.ui.PrintItem(i+1, step, "")
	}
	a.ui.Println("")
	a.ui.PrintHint(fmt.Sprintf("fav %d · back", r.ID))
}

func (a *cliApp) renderRecommendationDetail(r domain.Recommendation) {
	a.ui.PrintHeading(r.Name)
	a.ui.PrintHint(fmt.Sprintf("%s · %s · %s · ★%.1f", r.Cuisine, r.Time, r.Difficulty, r.Rating))
	a.ui.PrintText(r.Description)
	a.ui.Println("")
	a.ui.PrintHeading("Ingredients")
	for _, ing := range r.Ingredients {
		a.ui.PrintText("• " + ing)
	}
	a.ui.Println("")
	a.ui.PrintHeading("Instructions")
	for i, step := range r.Instructions {
		a.ui.PrintItem(i+1, step, "")
	}
}

func (a *cliApp) renderFavorites() {
	a.ui.PrintHeading("Favorites")
	ids := a.favs.List()
	if len(ids) == 0 {
		a.ui.PrintHint("No favorites yet. Open a recipe and type 'fav <id>'.")
		return
	}
	list := make([]domain.Recipe, 0, len(ids))
	for _, id := range ids {
		r, err := a.catalog.Get(id)
		if err != nil {
			r = domain.Recipe{ID: id, Name: fmt.Sprintf("Recipe #%d", id)}
		}
		list = append(list, r)
	}
	a.printRecipeList(list)
	a.ui.PrintHint("Type a number to open a recipe · unfav <id>")
}

func (a *cliApp) renderRecommender() {
	a.ui.PrintHeading("What's in your kitchen?")
	a.showSelection()
	a.ui.PrintHint("toggle <item> · add a, b · remove <item> · palette · recommend [subs] · clear")
}

func (a *cliApp) showSelection() {
	items := a.selection.Items()
	if len(items) == 0 {
		a.ui.PrintHint("No ingredients selected.")
		return
	}
	a.ui.PrintText(fmt.Sprintf("Selected (%d): %s", len(items), strings.Join(items, ", ")))
}

func (a *cliApp) showPalette() {
	for _, c := range ingredients.Palette {
		chips := make([]string, 0, len(c.Items))
		for _, item := range c.Items {
			if a.selection.Contains(item) {
				chips = append(chips, "["+item+"]")
			} else {
				chips = append(chips, item)
			}
		}
		a.ui.PrintHeading(c.Name)
		a.ui.PrintText(strings.Join(chips, " · "))
	}
}

func (a *cliApp) showRecommendations(res *recommend.Result) {
	if len(res.Recommendations) == 0 {
		msg := res.Message
		if msg == "" {
			msg = "No recipes found for those ingredients."
		}
		a.ui.PrintHint(msg)
		return
	}

	title := "Recommended recipes"
	if res.WithSubstitutes {
		title += " (with substitutes)"
	}
	a.ui.PrintHeading(title)
	for i, r := range res.Recommendations {
		status := "missing a few"
		switch {
		case r.CanMake:
			status = "you can make this"
		case r.CanMakeWithSubstitutes:
			status = "with substitutes"
		}
		a.ui.PrintItem(i+1, r.Name, fmt.Sprintf("%.0f%% match · %s · %s · %s", r.MatchPercentage, r.Time, r.Difficulty, status))
		if len(r.MissingIngredients) > 0 {
			a.ui.PrintHint("    missing: " + strings.Join(r.MissingIngredients, ", "))
		}
		for ing, subs := range r.Substitutes {
			a.ui.PrintHint(fmt.Sprintf("    %s → %s", ing, strings.Join(subs, ", ")))
		}
	}
	a.ui.PrintHint("Type a number to open a recipe.")
}

func (a *cliApp) renderSubstitute() {
	a.ui.PrintHeading("Ingredient substitutes")
	a.ui.PrintHint("Popular: " + strings.Join(substitute.Popular, " · "))
	a.ui.PrintHint("subs <ingredient>")
}

func (a *cliApp) showSubstitutes(res *substitute.Result) {
	a.ui.PrintHeading(fmt.Sprintf("Substitutes for %s", res.Query))
	if res.Fallback {
		a.ui.PrintHint(res.Reason + ". Showing common substitutes.")
	}
	if len(res.Matches) == 0 {
		a.ui.PrintHint("No substitutes known for that ingredient.")
		return
	}
	for _, m := range res.Matches {
		a.ui.PrintText(fmt.Sprintf("%s → %s", m.Ingredient, strings.Join(m.Substitutes, ", ")))
		if m.Ratio != "" {
			a.ui.PrintHint("    ratio: " + m.Ratio)
		}
		if m.Notes != "" {
			a.ui.PrintHint("    " + m.Notes)
		}
	}
}

func (a *cliApp) renderAddRecipe() {
	a.ui.PrintHeading("Add a recipe")
	a.ui.PrintHint(draftUsage)
	a.ui.PrintHint("Example: new Lemon Rice | Indian | 25 | Easy | rice; lemon; peanuts | cook rice; temper spices; mix")
}

func (a *cliApp) renderAbout() {
	a.ui.PrintHeading("About CookMate")
	a.ui.PrintText("CookMate finds Indian recipes you can cook with what is already in your kitchen.")
	a.ui.PrintText("Pick ingredients, get ranked matches, swap what you are missing, and save favorites.")
	a.ui.PrintHint("Backend: " + a.client.BaseURL())
}

func (a *cliApp) showProfile(u domain.User) {
	a.ui.PrintHeading("Profile")
	a.ui.PrintText("Name:  " + u.Name)
	a.ui.PrintText("Email: " + u.Email)
	if u.DietPreference != "" {
		a.ui.PrintText("Diet:  " + u.DietPreference)
	}
	if !u.JoinDate.IsZero() {
		a.ui.PrintHint("Member since " + u.JoinDate.Format("January 2006"))
	}
	a.ui.PrintHint(fmt.Sprintf("%d favorites · profile <name> <email> to update", a.favs.Len()))
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeading("Pages")
	a.ui.PrintText("home · recipes · recommender · substitutes · favorites · add recipe · about · back")
	a.ui.PrintHeading("Recipes")
	a.ui.PrintText("view <id> · <number> · filter <category> · sort <popular|rating|time> · find <text> · refresh")
	a.ui.PrintText("fav <id> · unfav <id> · suggest <prefix>")
	a.ui.PrintHeading("Ingredients")
	a.ui.PrintText("search a, b · toggle <item> · add a, b · remove <item> · clear · palette · recommend [subs]")
	a.ui.PrintText("subs <ingredient>")
	a.ui.PrintHeading("Account")
	a.ui.PrintText("login <email> <password> · signup <username> <email> <password> [diet] · logout")
	a.ui.PrintText("profile [<name> <email>] · newsletter <email> · new <recipe>")
	a.ui.PrintHeading("Home")
	a.ui.PrintText("next · prev · slide <n> · help · quit")
}

// recipeMeta is the dimmed line under a recipe title.
func recipeMeta(r domain.Recipe) string {
	parts := []string{fmt.Sprintf("#%d", r.ID)}
	if r.Cuisine != "" {
		parts = append(parts, r.Cuisine)
	}
	if r.CookTime > 0 {
		parts = append(parts, fmt.Sprintf("%d mins", r.CookTime))
	}
	if r.Difficulty != "" {
		parts = append(parts, string(r.Difficulty))
	}
	if r.Rating > 0 {
		parts = append(parts, fmt.Sprintf("★%.1f (%d)", r.Rating, r.Reviews))
	}
	return strings.Join(parts, " · ")
}

// slideDots renders the carousel position, e.g. "○ ● ○ ○ ○".
func slideDots(current, n int) string {
	dots := make([]string, n)
	for i := range dots {
		dots[i] = "○"
		if i == current {
			dots[i] = "●"
		}
	}
	return strings.Join(dots, " ")
}
