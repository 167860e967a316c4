package engine

import (
	"reflect"
	"testing"

	"github.com/hammamikhairi/cookmate/internal/auth"
	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

type fakeIdentity struct {
	loggedIn bool
}

func (f *fakeIdentity) CurrentUser() (domain.User, bool) {
	if !f.loggedIn {
		return domain.User{}, false
	}
	return domain.User{ID: "1", Name: "Asha"}, true
}

type recorder struct {
	prompts     []domain.Page
	transitions []domain.NavState
}

func setupEngine(t *testing.T, loggedIn bool) (*Engine, *fakeIdentity, *recorder) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	id := &fakeIdentity{loggedIn: loggedIn}
	rec := &recorder{}
	eng := New(auth.NewGate(), id, log,
		WithLoginPrompt(func(p domain.Page) { rec.prompts = append(rec.prompts, p) }),
		WithTransitionHook(func(s domain.NavState) { rec.transitions = append(rec.transitions, s) }),
	)
	return eng, id, rec
}

func TestNavigateGate(t *testing.T) {
	tests := []struct {
		name     string
		loggedIn bool
		page     domain.Page
		want     Outcome
		wantPage domain.Page
	}{
		{"public page logged out", false, domain.PageAbout, Committed, domain.PageAbout},
		{"protected page logged out", false, domain.PageFavorites, LoginRequired, domain.PageHome},
		{"protected page logged in", true, domain.PageFavorites, Committed, domain.PageFavorites},
		{"substitute logged out", false, domain.PageSubstitute, LoginRequired, domain.PageHome},
		{"home logged out", false, domain.PageHome, Committed, domain.PageHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, _, rec := setupEngine(t, tt.loggedIn)
			got := eng.Navigate(tt.page)
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
			if eng.State().Page != tt.wantPage {
				t.Fatalf("expected page %s, got %s", tt.wantPage, eng.State().Page)
			}
			if tt.want == LoginRequired {
				if len(rec.prompts) != 1 || rec.prompts[0] != tt.page {
					t.Fatalf("expected login prompt for %s, got %v", tt.page, rec.prompts)
				}
				if len(rec.transitions) != 0 {
					t.Fatalf("expected no transitions, got %d", len(rec.transitions))
				}
			}
		})
	}
}

func TestViewRecipe(t *testing.T) {
	eng, _, rec := setupEngine(t, true)

	for _, id := range []int{0, -3} {
		if got := eng.ViewRecipe(id); got != Ignored {
			t.Fatalf("ViewRecipe(%d): expected ignored, got %s", id, got)
		}
	}
	if eng.State().Page != domain.PageHome {
		t.Fatalf("expected page unchanged, got %s", eng.State().Page)
	}

	if got := eng.ViewRecipe(42); got != Committed {
		t.Fatalf("expected committed, got %s", got)
	}
	s := eng.State()
	if s.Page != domain.PageRecipeDetail || s.SelectedRecipeID != 42 {
		t.Fatalf("unexpected state %+v", s)
	}
	if len(rec.transitions) != 1 {
		t.Fatalf("expected one transition, got %d", len(rec.transitions))
	}
}

func TestViewRecipeZeroLoggedOutDoesNotPrompt(t *testing.T) {
	eng, _, rec := setupEngine(t, false)
	if got := eng.ViewRecipe(0); got != Ignored {
		t.Fatalf("expected ignored, got %s", got)
	}
	if len(rec.prompts) != 0 {
		t.Fatalf("expected no prompt, got %v", rec.prompts)
	}
}

func TestSearchSeedsIngredients(t *testing.T) {
	eng, _, _ := setupEngine(t, true)

	seed := []string{"Tomato", "Onion"}
	if got := eng.Search(seed); got != Committed {
		t.Fatalf("expected committed, got %s", got)
	}
	seed[0] = "Changed"

	s := eng.State()
	if s.Page != domain.PageRecommender {
		t.Fatalf("expected recommender, got %s", s.Page)
	}
	if !reflect.DeepEqual(s.SeedIngredients, []string{"Tomato", "Onion"}) {
		t.Fatalf("unexpected seed %v", s.SeedIngredients)
	}

	eng.Navigate(domain.PageRecommender)
	if len(eng.State().SeedIngredients) != 0 {
		t.Fatal("plain navigation should clear the seed")
	}
}

func TestBackFromDetail(t *testing.T) {
	eng, _, _ := setupEngine(t, true)
	eng.ViewRecipe(7)

	if got := eng.BackFromDetail(); got != Committed {
		t.Fatalf("expected committed, got %s", got)
	}
	s := eng.State()
	if s.Page != domain.PageRecipes || s.SelectedRecipeID != 0 {
		t.Fatalf("unexpected state %+v", s)
	}
}

func TestLogout(t *testing.T) {
	eng, id, rec := setupEngine(t, true)
	eng.ViewRecipe(7)

	id.loggedIn = false
	eng.Logout()

	s := eng.State()
	if s.Page != domain.PageHome || s.SelectedRecipeID != 0 {
		t.Fatalf("unexpected state after logout %+v", s)
	}
	if last := rec.transitions[len(rec.transitions)-1]; last.Page != domain.PageHome {
		t.Fatalf("expected transition hook on logout, got %+v", last)
	}
}

func TestRenderFallsBackToHome(t *testing.T) {
	eng, _, _ := setupEngine(t, false)
	eng.Navigate(domain.Page("nowhere"))

	if eng.State().Page != domain.Page("nowhere") {
		t.Fatalf("expected stored page to stay, got %s", eng.State().Page)
	}
	if eng.Render() != domain.PageHome {
		t.Fatalf("expected home rendering, got %s", eng.Render())
	}
}
