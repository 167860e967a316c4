package recipe

import (
	"errors"
	"testing"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

func TestParseDraft(t *testing.T) {
	d, err := ParseDraft("Poha | Maharashtrian | 20 | easy | poha; onion ; peanuts | Rinse; Temper; Steam | meal=breakfast | diet=Vegetarian | tags=quick, light | servings=2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Title != "Poha" || d.Cuisine != "Maharashtrian" || d.CookingTime != 20 {
		t.Fatalf("unexpected header fields: %+v", d)
	}
	if d.Difficulty != "Easy" || d.MealType != "Breakfast" || d.Servings != 2 {
		t.Fatalf("unexpected normalised fields: %+v", d)
	}
	if len(d.Ingredients) != 3 || len(d.Instructions) != 3 || len(d.Tags) != 2 {
		t.Fatalf("unexpected lists: %+v", d)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	sub := d.Submission(9)
	if sub.UserID != 9 || sub.Title != "Poha" {
		t.Fatalf("unexpected submission %+v", sub)
	}
	if p := d.Preview(); p.Category != domain.CategoryBreakfast {
		t.Fatalf("expected breakfast preview, got %s", p.Category)
	}
}

func TestParseDraftErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "Poha | Indian | 20"},
		{"bad minutes", "Poha | Indian | soon | Easy | poha | Rinse"},
		{"bad extra", "Poha | Indian | 20 | Easy | poha | Rinse | oops"},
		{"unknown key", "Poha | Indian | 20 | Easy | poha | Rinse | colour=red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDraft(tt.line); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDraftValidate(t *testing.T) {
	valid := Draft{Title: "Dal", CookingTime: 30, Difficulty: "Medium", Ingredients: []string{"lentils"}, Instructions: []string{"Boil"}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Draft)
	}{
		{"missing title", func(d *Draft) { d.Title = "" }},
		{"no ingredients", func(d *Draft) { d.Ingredients = nil }},
		{"no steps", func(d *Draft) { d.Instructions = []string{} }},
		{"zero minutes", func(d *Draft) { d.CookingTime = 0 }},
		{"odd difficulty", func(d *Draft) { d.Difficulty = "Tricky" }},
		{"odd meal", func(d *Draft) { d.MealType = "Brunch" }},
		{"missing image", func(d *Draft) { d.ImagePath = "/does/not/exist.png" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			if err := d.Validate(); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
