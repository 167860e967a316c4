package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/hammamikhairi/cookmate/internal/api"
	"github.com/hammamikhairi/cookmate/internal/auth"
	"github.com/hammamikhairi/cookmate/internal/carousel"
	"github.com/hammamikhairi/cookmate/internal/display"
	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/engine"
	"github.com/hammamikhairi/cookmate/internal/favorites"
	"github.com/hammamikhairi/cookmate/internal/ingredients"
	"github.com/hammamikhairi/cookmate/internal/logger"
	"github.com/hammamikhairi/cookmate/internal/notice"
	"github.com/hammamikhairi/cookmate/internal/recipe"
	"github.com/hammamikhairi/cookmate/internal/recommend"
	"github.com/hammamikhairi/cookmate/internal/substitute"
)

type cliApp struct {
	client    *api.Client
	session   *auth.Session
	engine    *engine.Engine
	catalog   *recipe.Catalog
	favs      *favorites.Synced
	selection *ingredients.Selection
	recommend *recommend.Recommender
	finder    *substitute.Finder
	hero      *carousel.Carousel
	board     *notice.Board
	parser    domain.IntentParser
	notifier  domain.Notifier
	log       *logger.Logger
	ui        *display.UI

	mu        sync.Mutex
	typeahead *recipe.Typeahead
	filter    recipe.Filter
	lastList  []int                         // recipe ids of the last numbered listing
	recs      map[int]domain.Recommendation // last recommendations by id
	pending   domain.Page                   // page the login prompt interrupted
	seed      []string                      // ingredients of the interrupted search
}

func (a *cliApp) run(ctx context.Context) {
	a.ui.PrintChat("Welcome to CookMate. What's in your kitchen today?")
	a.ui.Println("")
	a.render(ctx)

	uiCh := a.ui.InputChan()

	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		intent, err := a.parser.Parse(ctx, input, a.engine.Render())
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
		if quit := a.handleIntent(ctx, intent); quit {
			return
		}
	}
}

// handleIntent dispatches one command. It reports whether the app should exit.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentQuit:
		a.ui.PrintChat("Happy cooking!")
		return true
	case domain.IntentNavigate:
		a.navigate(ctx, domain.Page(intent.Payload))
	case domain.IntentViewRecipe:
		a.viewRecipe(ctx, intent.Payload)
	case domain.IntentSelect:
		a.selectItem(ctx, intent.Payload)
	case domain.IntentBack:
		a.back(ctx)
	case domain.IntentSearch:
		a.search(ctx, intent.Payload)
	case domain.IntentToggle:
		a.toggle(intent.Payload)
	case domain.IntentAddCustom:
		a.addCustom(intent.Payload)
	case domain.IntentRemove:
		a.remove(intent.Payload)
	case domain.IntentClear:
		a.selection.Clear()
		a.ui.PrintChat("Selection cleared. Start a new search.")
	case domain.IntentRecommend:
		go a.runRecommend(ctx, intent.Payload == "subs")
	case domain.IntentFavorite:
		a.favorite(ctx, intent.Payload, true)
	case domain.IntentUnfavorite:
		a.favorite(ctx, intent.Payload, false)
	case domain.IntentFilter:
		a.setCategory(ctx, intent.Payload)
	case domain.IntentSort:
		a.setSort(ctx, intent.Payload)
	case domain.IntentFind:
		a.find(ctx, intent.Payload)
	case domain.IntentSubstitute:
		a.substitute(ctx, intent.Payload)
	case domain.IntentLogin:
		a.login(ctx, intent.Payload)
	case domain.IntentSignup:
		a.signup(ctx, intent.Payload)
	case domain.IntentLogout:
		a.logout(ctx)
	case domain.IntentProfile:
		a.profile(ctx, intent.Payload)
	case domain.IntentNewsletter:
		a.newsletter(ctx, intent.Payload)
	case domain.IntentNewRecipe:
		a.newRecipe(ctx, intent.Payload)
	case domain.IntentSlide:
		a.slide(intent.Payload)
	case domain.IntentSuggest:
		a.suggest(intent.Payload)
	case domain.IntentRefresh:
		a.refresh(ctx)
	case domain.IntentPalette:
		a.showPalette()
	case domain.IntentUnknown:
		a.ui.PrintChat(fmt.Sprintf("Sorry, I didn't catch %q. Type 'help' for commands.", intent.Payload))
	}
	return false
}

// status feeds the display's status bar. It runs on the UI goroutine.
func (a *cliApp) status() display.Status {
	page := a.engine.Render()
	s := display.Status{
		Page:      string(page),
		Favorites: a.favs.Len(),
		Selected:  a.selection.Len(),
		Notices:   a.board.Active(),
	}
	if u, ok := a.session.CurrentUser(); ok {
		s.User = displayName(u)
	}
	if page == domain.PageHome {
		_, slide := a.hero.Current()
		s.Heading = slide.Heading
	}
	return s
}

// fail prints err inline the way the backend client words it.
func (a *cliApp) fail(err error) {
	a.ui.PrintUrgent(api.UserMessage(err))
}

// ── Navigation ───────────────────────────────────────────────────

func (a *cliApp) navigate(ctx context.Context, page domain.Page) {
	if a.engine.Navigate(page) == engine.Committed {
		a.render(ctx)
	}
}

func (a *cliApp) viewRecipe(ctx context.Context, payload string) {
	id, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("%q is not a recipe number.", payload))
		return
	}
	switch a.engine.ViewRecipe(id) {
	case engine.Committed:
		a.render(ctx)
	case engine.Ignored:
		a.ui.PrintUrgent("Recipe ids start at 1.")
	}
}

func (a *cliApp) selectItem(ctx context.Context, payload string) {
	n, err := strconv.Atoi(payload)
	if err != nil {
		return
	}
	a.mu.Lock()
	list := a.lastList
	a.mu.Unlock()
	if n < 1 || n > len(list) {
		a.ui.PrintHint(fmt.Sprintf("Pick a number between 1 and %d.", len(list)))
		return
	}
	a.viewRecipe(ctx, strconv.Itoa(list[n-1]))
}

func (a *cliApp) back(ctx context.Context) {
	if a.engine.Render() == domain.PageRecipeDetail {
		if a.engine.BackFromDetail() == engine.Committed {
			a.render(ctx)
		}
		return
	}
	a.navigate(ctx, domain.PageHome)
}

// promptLogin runs when a protected page is requested while logged out.
func (a *cliApp) promptLogin(requested domain.Page) {
	a.mu.Lock()
	a.pending = requested
	a.seed = nil
	a.mu.Unlock()
	a.ui.PrintUrgent("Please log in to continue.")
	a.ui.PrintHint("login <email> <password>   or   signup <username> <email> <password> [diet]")
}

// transitioned starts every page on a fresh listing. A search seeds the
// selection; any other move clears it. Recommendations stay only while a
// recommended recipe is open.
func (a *cliApp) transitioned(s domain.NavState) {
	a.mu.Lock()
	a.lastList = nil
	if s.Page != domain.PageRecipeDetail {
		a.recs = nil
	}
	a.mu.Unlock()
	if len(s.SeedIngredients) > 0 {
		a.selection.Seed(s.SeedIngredients)
	} else {
		a.selection.Clear()
	}
	a.ui.Println("")
}

func (a *cliApp) sessionChanged(ctx context.Context, loggedIn bool) {
	if !loggedIn {
		a.favs.Reset()
		return
	}
	if err := a.favs.Load(ctx); err != nil && !errors.Is(err, domain.ErrNotLoggedIn) {
		a.log.Warn("loading favorites: %v", err)
	}
}

// ── Ingredients and recommendations ─────────────────────────────

func (a *cliApp) search(ctx context.Context, payload string) {
	names := splitList(payload)
	if len(names) == 0 {
		a.ui.PrintHint("search <ingredient>, <ingredient>, ...")
		return
	}
	switch a.engine.Search(names) {
	case engine.Committed:
		a.render(ctx)
		go a.runRecommend(ctx, false)
	case engine.LoginRequired:
		a.mu.Lock()
		a.seed = names
		a.mu.Unlock()
	}
}

func (a *cliApp) toggle(name string) {
	if a.selection.Toggle(name) {
		a.ui.PrintChat(fmt.Sprintf("Added %s.", ingredients.NormalizeName(name)))
	} else {
		a.ui.PrintChat(fmt.Sprintf("Removed %s.", ingredients.NormalizeName(name)))
	}
	a.showSelection()
}

func (a *cliApp) addCustom(payload string) {
	added := a.selection.AddCustom(payload)
	if len(added) == 0 {
		a.ui.PrintHint("Nothing new to add.")
		return
	}
	a.ui.PrintChat("Added " + strings.Join(added, ", ") + ".")
	a.showSelection()
}

func (a *cliApp) remove(name string) {
	if !a.selection.Remove(name) {
		a.ui.PrintHint(fmt.Sprintf("%s is not selected.", name))
		return
	}
	a.showSelection()
}

func (a *cliApp) runRecommend(ctx context.Context, withSubs bool) {
	a.ui.PrintHint("Finding recipes...")
	res, err := a.recommend.Recommend(ctx, a.selection.Items(), withSubs)
	switch {
	case errors.Is(err, domain.ErrStaleResponse):
		a.log.Debug("dropping superseded recommendations")
		return
	case errors.Is(err, domain.ErrNoIngredients):
		a.ui.PrintUrgent("Please select at least one ingredient.")
		return
	case err != nil:
		a.fail(err)
		return
	}

	recs := make(map[int]domain.Recommendation, len(res.Recommendations))
	ids := make([]int, 0, len(res.Recommendations))
	for _, r := range res.Recommendations {
		recs[r.ID] = r
		ids = append(ids, r.ID)
	}
	a.mu.Lock()
	a.recs = recs
	a.lastList = ids
	a.mu.Unlock()

	a.showRecommendations(res)
}

// ── Favorites and catalog ───────────────────────────────────────

func (a *cliApp) favorite(ctx context.Context, payload string, add bool) {
	id, err := strconv.Atoi(payload)
	if err != nil {
		return
	}
	if add {
		err = a.favs.Add(ctx, id)
	} else {
		err = a.favs.Remove(ctx, id)
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		a.fail(err)
		return
	}
	if err != nil {
		// The failure hook has already reported sync errors.
		a.log.Debug("favorite %d: %v", id, err)
		return
	}
	if add {
		a.ui.PrintChat(fmt.Sprintf("Saved #%d to favorites.", id))
	} else {
		a.ui.PrintChat(fmt.Sprintf("Removed #%d from favorites.", id))
	}
}

func (a *cliApp) setCategory(ctx context.Context, category string) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category != recipe.CategoryAll && !knownCategory(category) {
		a.ui.PrintUrgent(fmt.Sprintf("Unknown category %q. Try all, breakfast, lunch, dinner or beverages.", category))
		return
	}
	a.mu.Lock()
	a.filter.Category = category
	a.mu.Unlock()
	a.showCatalog(ctx)
}

func (a *cliApp) setSort(ctx context.Context, order string) {
	o, ok := recipe.ParseSortOrder(order)
	if !ok {
		a.ui.PrintUrgent(fmt.Sprintf("Unknown sort %q. Try popular, rating or time.", order))
		return
	}
	a.mu.Lock()
	a.filter.Sort = o
	a.mu.Unlock()
	a.showCatalog(ctx)
}

func (a *cliApp) find(ctx context.Context, query string) {
	a.mu.Lock()
	a.filter.Query = strings.TrimSpace(query)
	a.mu.Unlock()
	a.showCatalog(ctx)
}

// showCatalog lists the catalog, opening the recipes page first if needed.
func (a *cliApp) showCatalog(ctx context.Context) {
	if a.engine.Render() != domain.PageRecipes {
		a.navigate(ctx, domain.PageRecipes)
		return
	}
	a.renderRecipes()
}

func (a *cliApp) refresh(ctx context.Context) {
	n, err := a.catalog.Refresh(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	a.rebuildTypeahead()
	a.notifier.Notify(ctx, fmt.Sprintf("Loaded %d recipes.", n))
}

func (a *cliApp) rebuildTypeahead() {
	names := append([]string(nil), recipe.Trending...)
	for _, r := range a.catalog.List() {
		names = append(names, r.Name)
	}
	t := recipe.NewTypeahead(names...)
	a.mu.Lock()
	a.typeahead = t
	a.mu.Unlock()
}

func (a *cliApp) suggest(prefix string) {
	a.mu.Lock()
	t := a.typeahead
	a.mu.Unlock()

	dishes := t.Suggest(prefix)
	if len(dishes) > 0 {
		a.ui.PrintHeading("Dishes")
		a.ui.PrintText(strings.Join(dishes, " · "))
	}
	pantry := ingredients.Suggest(prefix, a.selection)
	if len(pantry) > 0 {
		a.ui.PrintHeading("Pantry")
		a.ui.PrintText(strings.Join(pantry, " · "))
	}
	if len(dishes) == 0 && len(pantry) == 0 {
		a.ui.PrintHint("No suggestions.")
	}
}

// ── Substitutes ──────────────────────────────────────────────────

func (a *cliApp) substitute(ctx context.Context, ingredient string) {
	if a.engine.Render() != domain.PageSubstitute {
		if a.engine.Navigate(domain.PageSubstitute) != engine.Committed {
			return
		}
	}
	res, err := a.finder.Find(ctx, ingredient)
	if err != nil {
		a.fail(err)
		return
	}
	a.showSubstitutes(res)
}

// ── Account ──────────────────────────────────────────────────────

func (a *cliApp) login(ctx context.Context, payload string) {
	f := strings.Fields(payload)
	if len(f) != 2 {
		a.ui.PrintHint("login <email> <password>")
		return
	}
	user, err := a.session.Login(ctx, auth.LoginInput{Email: f[0], Password: f[1]})
	if err != nil {
		a.fail(err)
		return
	}
	a.ui.PrintChat(fmt.Sprintf("Welcome back, %s!", displayName(user)))
	a.resumePending(ctx)
}

func (a *cliApp) signup(ctx context.Context, payload string) {
	f := strings.Fields(payload)
	if len(f) < 3 || len(f) > 4 {
		a.ui.PrintHint("signup <username> <email> <password> [vegetarian|non-vegetarian|vegan|eggetarian]")
		return
	}
	in := auth.SignupInput{Username: f[0], Email: f[1], Password: f[2]}
	if len(f) == 4 {
		in.DietPreference = f[3]
	}
	user, err := a.session.Signup(ctx, in)
	if err != nil {
		a.fail(err)
		return
	}
	a.ui.PrintChat(fmt.Sprintf("Welcome to CookMate, %s!", displayName(user)))
	a.resumePending(ctx)
}

// resumePending opens the page a login prompt interrupted, rerunning the
// search when one was interrupted.
func (a *cliApp) resumePending(ctx context.Context) {
	out, searched := a.replayPending()
	if out != engine.Committed {
		return
	}
	a.render(ctx)
	if searched {
		go a.runRecommend(ctx, false)
	}
}

// replayPending repeats the interrupted transition and forgets it.
func (a *cliApp) replayPending() (engine.Outcome, bool) {
	a.mu.Lock()
	page, seed := a.pending, a.seed
	a.pending, a.seed = "", nil
	a.mu.Unlock()
	switch {
	case len(seed) > 0:
		return a.engine.Search(seed), true
	case page != "":
		return a.engine.Navigate(page), false
	}
	return engine.Ignored, false
}

func (a *cliApp) logout(ctx context.Context) {
	if !a.session.IsLoggedIn() {
		a.ui.PrintHint("You are not logged in.")
		return
	}
	a.session.Logout(ctx)
	a.engine.Logout()
	a.ui.PrintChat("Logged out.")
	a.render(ctx)
}

func (a *cliApp) profile(ctx context.Context, payload string) {
	user, ok := a.session.CurrentUser()
	if !ok {
		a.promptLogin("")
		return
	}
	if strings.TrimSpace(payload) == "" {
		a.showProfile(user)
		return
	}
	name, email, ok := profileArgs(payload)
	if !ok {
		a.ui.PrintHint("profile <name> <email>")
		return
	}
	updated, err := a.session.UpdateProfile(ctx, name, email)
	if err != nil {
		a.fail(err)
		return
	}
	a.notifier.Notify(ctx, "Profile updated.")
	a.showProfile(updated)
}

func (a *cliApp) newsletter(ctx context.Context, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		a.ui.PrintHint("newsletter <email>")
		return
	}
	msg, err := a.client.SendRecipes(ctx, email)
	if err != nil {
		a.fail(err)
		return
	}
	a.notifier.Notify(ctx, msg)
}

func (a *cliApp) newRecipe(ctx context.Context, payload string) {
	if strings.TrimSpace(payload) == "" {
		a.navigate(ctx, domain.PageAddRecipe)
		return
	}
	user, ok := a.session.CurrentUser()
	if !ok {
		a.promptLogin(domain.PageAddRecipe)
		return
	}

	draft, err := recipe.ParseDraft(payload)
	if err == nil {
		err = draft.Validate()
	}
	if err != nil {
		a.fail(err)
		a.ui.PrintHint(draftUsage)
		return
	}

	id, err := a.client.AddRecipe(ctx, draft.Submission(user.NumericID()))
	if err != nil {
		a.fail(err)
		return
	}
	a.notifier.Notify(ctx, fmt.Sprintf("Recipe %q added.", draft.Title))

	if _, err := a.catalog.Refresh(ctx); err != nil {
		a.log.Warn("refresh after add: %v", err)
		preview := draft.Preview()
		if id > 0 {
			preview.ID = id
		}
		a.catalog.Add(preview)
	}
	a.rebuildTypeahead()
	a.navigate(ctx, domain.PageRecipes)
}

// ── Hero carousel ────────────────────────────────────────────────

func (a *cliApp) slide(payload string) {
	var accepted bool
	switch payload {
	case "next":
		accepted = a.hero.Next()
	case "prev":
		accepted = a.hero.Prev()
	default:
		n, err := strconv.Atoi(payload)
		if err != nil || n < 1 || n > a.hero.Len() {
			a.ui.PrintHint(fmt.Sprintf("Slides are numbered 1 to %d.", a.hero.Len()))
			return
		}
		accepted = a.hero.GoTo(n - 1)
	}
	if !accepted {
		a.log.Debug("carousel busy, slide %q dropped", payload)
	}
}

// ── Helpers ──────────────────────────────────────────────────────

// splitList splits comma separated input, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// profileArgs reads "name words... email": the last field is the email.
func profileArgs(s string) (name, email string, ok bool) {
	f := strings.Fields(s)
	if len(f) < 2 {
		return "", "", false
	}
	return strings.Join(f[:len(f)-1], " "), f[len(f)-1], true
}

func knownCategory(s string) bool {
	for _, c := range domain.Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

func displayName(u domain.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
