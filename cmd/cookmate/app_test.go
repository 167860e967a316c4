package main

import (
	"reflect"
	"testing"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"tomatoes, onions,rice", []string{"tomatoes", "onions", "rice"}},
		{" , paneer ,, ", []string{"paneer"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestProfileArgs(t *testing.T) {
	name, email, ok := profileArgs("Asha Rao asha@example.com")
	if !ok || name != "Asha Rao" || email != "asha@example.com" {
		t.Fatalf("got (%q, %q, %v)", name, email, ok)
	}
	if _, _, ok := profileArgs("asha@example.com"); ok {
		t.Fatal("expected a single field to be rejected")
	}
}

func TestRecipeMeta(t *testing.T) {
	r := domain.Recipe{ID: 7, Cuisine: "Indian", CookTime: 25, Difficulty: domain.DifficultyEasy, Rating: 4.5, Reviews: 120}
	want := "#7 · Indian · 25 mins · Easy · ★4.5 (120)"
	if got := recipeMeta(r); got != want {
		t.Errorf("recipeMeta = %q, want %q", got, want)
	}
	if got := recipeMeta(domain.Recipe{ID: 3}); got != "#3" {
		t.Errorf("recipeMeta of bare recipe = %q", got)
	}
}

func TestSlideDots(t *testing.T) {
	if got := slideDots(1, 3); got != "○ ● ○" {
		t.Errorf("slideDots(1, 3) = %q", got)
	}
}

func TestKnownCategory(t *testing.T) {
	for _, c := range []string{"breakfast", "lunch", "dinner", "beverages"} {
		if !knownCategory(c) {
			t.Errorf("%s should be known", c)
		}
	}
	if knownCategory("dessert") {
		t.Error("dessert should not be a category")
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName(domain.User{Email: "a@b.co"}); got != "a@b.co" {
		t.Errorf("displayName falls back to email, got %q", got)
	}
	if got := displayName(domain.User{Name: "Asha", Email: "a@b.co"}); got != "Asha" {
		t.Errorf("displayName = %q", got)
	}
}
