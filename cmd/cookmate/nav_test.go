package main

import (
	"context"
	"reflect"
	"testing"

	"github.com/hammamikhairi/cookmate/internal/auth"
	"github.com/hammamikhairi/cookmate/internal/display"
	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/engine"
	"github.com/hammamikhairi/cookmate/internal/ingredients"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

type stubIdentity struct {
	loggedIn bool
}

func (s *stubIdentity) CurrentUser() (domain.User, bool) {
	if !s.loggedIn {
		return domain.User{}, false
	}
	return domain.User{ID: "1", Name: "Asha"}, true
}

func setupApp(t *testing.T, loggedIn bool) (*cliApp, *stubIdentity) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	a := &cliApp{
		selection: ingredients.NewSelection(),
		ui:        display.NewUI(nil),
		log:       log,
	}
	id := &stubIdentity{loggedIn: loggedIn}
	a.engine = engine.New(auth.NewGate(), id, log,
		engine.WithLoginPrompt(a.promptLogin),
		engine.WithTransitionHook(a.transitioned),
	)
	return a, id
}

func TestPlainNavigationClearsSelection(t *testing.T) {
	a, _ := setupApp(t, true)

	if out := a.engine.Search([]string{"tomato"}); out != engine.Committed {
		t.Fatalf("search: expected committed, got %v", out)
	}
	a.selection.Toggle("onion")
	if got := a.selection.Items(); !reflect.DeepEqual(got, []string{"Tomato", "Onion"}) {
		t.Fatalf("selection after search = %v", got)
	}
	a.recs = map[int]domain.Recommendation{4: {ID: 4}}

	a.engine.Navigate(domain.PageHome)
	a.engine.Navigate(domain.PageRecommender)

	if n := a.selection.Len(); n != 0 {
		t.Fatalf("expected empty selection after plain navigation, got %v", a.selection.Items())
	}
	if a.recs != nil {
		t.Fatalf("expected recommendations to be dropped, got %v", a.recs)
	}

	a.engine.Search([]string{"rice", "paneer"})
	if got := a.selection.Items(); !reflect.DeepEqual(got, []string{"Rice", "Paneer"}) {
		t.Fatalf("search should reseed, got %v", got)
	}
}

func TestRecommendationsSurviveOpeningDetail(t *testing.T) {
	a, _ := setupApp(t, true)
	a.engine.Search([]string{"tomato"})
	a.recs = map[int]domain.Recommendation{4: {ID: 4}}

	a.engine.ViewRecipe(4)

	if _, ok := a.recs[4]; !ok {
		t.Fatal("recommendations should stay available to the detail page")
	}
}

func TestLoggedOutSearchResumesAfterLogin(t *testing.T) {
	a, id := setupApp(t, false)

	a.search(context.Background(), "tomato, onion")
	if a.pending != domain.PageRecommender {
		t.Fatalf("pending = %q, want %q", a.pending, domain.PageRecommender)
	}
	if !reflect.DeepEqual(a.seed, []string{"tomato", "onion"}) {
		t.Fatalf("seed = %v", a.seed)
	}

	id.loggedIn = true
	out, searched := a.replayPending()
	if out != engine.Committed || !searched {
		t.Fatalf("replay = (%v, %v), want (committed, true)", out, searched)
	}
	if got := a.selection.Items(); !reflect.DeepEqual(got, []string{"Tomato", "Onion"}) {
		t.Fatalf("selection after replay = %v", got)
	}
	if st := a.engine.State(); st.Page != domain.PageRecommender {
		t.Fatalf("page after replay = %q", st.Page)
	}
	if out, _ := a.replayPending(); out != engine.Ignored {
		t.Fatalf("pending should be consumed, second replay = %v", out)
	}
}

func TestPlainPromptForgetsOlderSearch(t *testing.T) {
	a, id := setupApp(t, false)
	a.seed = []string{"rice"}

	a.engine.Navigate(domain.PageFavorites)

	id.loggedIn = true
	out, searched := a.replayPending()
	if out != engine.Committed || searched {
		t.Fatalf("replay = (%v, %v), want (committed, false)", out, searched)
	}
	if st := a.engine.State(); st.Page != domain.PageFavorites {
		t.Fatalf("page after replay = %q", st.Page)
	}
}
