package conversation

import (
	"context"
	"testing"

	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input       string
		wantType    domain.IntentType
		wantPayload string
	}{
		// Help and quit
		{"help", domain.IntentHelp, ""},
		{"?", domain.IntentHelp, ""},
		{"quit", domain.IntentQuit, ""},
		{"q", domain.IntentQuit, ""},

		// Navigation
		{"home", domain.IntentNavigate, "home"},
		{"go to favourites", domain.IntentNavigate, "favorites"},
		{"open about", domain.IntentNavigate, "about"},
		{"substitute", domain.IntentNavigate, "substitute"},
		{"add recipe", domain.IntentNavigate, "add-recipe"},
		{"recommender", domain.IntentNavigate, "recipe-recommender"},
		{"back", domain.IntentBack, ""},

		// Recipes
		{"view 42", domain.IntentViewRecipe, "42"},
		{"view #7", domain.IntentViewRecipe, "7"},
		{"3", domain.IntentSelect, "3"},
		{"fav 12", domain.IntentFavorite, "12"},
		{"unfavorite 12", domain.IntentUnfavorite, "12"},
		{"filter dinner", domain.IntentFilter, "dinner"},
		{"sort by rating", domain.IntentSort, "rating"},
		{"find paneer tikka", domain.IntentFind, "paneer tikka"},
		{"find", domain.IntentFind, ""},
		{"new Kheer | Indian | 40 | Easy | rice; milk | boil", domain.IntentNewRecipe, "Kheer | Indian | 40 | Easy | rice; milk | boil"},

		// Ingredients
		{"search Tomato, onion", domain.IntentSearch, "Tomato, onion"},
		{"toggle Green Chili", domain.IntentToggle, "Green Chili"},
		{"add rice, dal", domain.IntentAddCustom, "rice, dal"},
		{"rm rice", domain.IntentRemove, "rice"},
		{"new search", domain.IntentClear, ""},
		{"recommend", domain.IntentRecommend, ""},
		{"recommend with subs", domain.IntentRecommend, "subs"},
		{"subs ghee", domain.IntentSubstitute, "ghee"},
		{"substitute for garam masala", domain.IntentSubstitute, "garam masala"},
		{"pantry", domain.IntentPalette, ""},

		// Account
		{"login a@b.co S3cret", domain.IntentLogin, "a@b.co S3cret"},
		{"signup ravi r@x.in hunter22 vegetarian", domain.IntentSignup, "ravi r@x.in hunter22 vegetarian"},
		{"log out", domain.IntentLogout, ""},
		{"profile", domain.IntentProfile, ""},
		{"profile Asha asha@x.in", domain.IntentProfile, "Asha asha@x.in"},
		{"newsletter me@x.in", domain.IntentNewsletter, "me@x.in"},

		// Home page
		{"next", domain.IntentSlide, "next"},
		{"previous", domain.IntentSlide, "prev"},
		{"slide 3", domain.IntentSlide, "3"},
		{"suggest bir", domain.IntentSuggest, "bir"},
		{"refresh", domain.IntentRefresh, ""},

		// Unknown
		{"flambé the cat", domain.IntentUnknown, "flambé the cat"},
		{"", domain.IntentUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input, domain.PageHome)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if intent.Type != tt.wantType {
				t.Errorf("input=%q: got type %s, want %s", tt.input, intent.Type, tt.wantType)
			}
			if intent.Payload != tt.wantPayload {
				t.Errorf("input=%q: got payload %q, want %q", tt.input, intent.Payload, tt.wantPayload)
			}
		})
	}
}
