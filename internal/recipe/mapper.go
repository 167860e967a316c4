package recipe

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

// UntitledName labels recipes whose title is blank.
const UntitledName = "Untitled Recipe"

// synthesizedIDBase keeps client-made ids clear of backend ids.
const synthesizedIDBase = 1_000_000

// ToDisplay converts a raw backend record into the display form.
func ToDisplay(raw domain.RawRecipe) domain.Recipe {
	c := Classify(raw)

	id := raw.Identifier()
	if id <= 0 {
		id = SynthesizeID(raw.Title.String())
	}

	name := strings.TrimSpace(raw.Title.String())
	if name == "" {
		name = UntitledName
	}

	image := strings.TrimSpace(raw.ImageURL.String())
	if image == "" {
		image = DefaultImage(name)
	}

	servings := int(raw.ServingSize)
	if servings <= 0 {
		servings = DefaultServings
	}

	rating, reviews := Popularity(id)

	return domain.Recipe{
		ID:           id,
		Name:         name,
		Image:        image,
		Category:     c.Category,
		CookTime:     c.CookTime,
		PrepTime:     int(math.Round(float64(c.CookTime) * 0.5)),
		Servings:     servings,
		Difficulty:   c.Difficulty,
		Rating:       rating,
		Reviews:      reviews,
		Cuisine:      c.Cuisine,
		Description:  c.Description,
		Tags:         c.Tags,
		Calories:     c.Calories,
		Ingredients:  NormalizeIngredients(raw.Ingredients),
		Instructions: NormalizeInstructions(raw.Instructions),
	}
}

// ToRaw turns a display recipe back into a raw record so it can be fed
// through the classifier again.
func ToRaw(r domain.Recipe) domain.RawRecipe {
	ingredients, _ := json.Marshal(r.Ingredients)
	instructions, _ := json.Marshal(r.Instructions)
	return domain.RawRecipe{
		RecipeID:     domain.FlexInt(r.ID),
		Title:        domain.FlexString(r.Name),
		Description:  domain.FlexString(r.Description),
		Ingredients:  ingredients,
		Instructions: instructions,
		CookingTime:  domain.FlexInt(r.CookTime),
		Difficulty:   domain.FlexString(r.Difficulty),
		Cuisine:      domain.FlexString(r.Cuisine),
		ImageURL:     domain.FlexString(r.Image),
		ServingSize:  domain.FlexInt(r.Servings),
	}
}

// Popularity returns the placeholder rating in [4.5, 5.0) and review count
// in [50, 150) for a recipe. Both are pure functions of the id.
func Popularity(id int) (float64, int) {
	h := xxhash.Sum64String("recipe:" + strconv.Itoa(id))
	rating := 4.5 + float64(h%50)/100
	reviews := 50 + int((h>>16)%100)
	return rating, reviews
}

// SynthesizeID derives a stable id for records the backend sent without one.
func SynthesizeID(title string) int {
	h := xxhash.Sum64String(strings.ToLower(strings.TrimSpace(title)))
	return synthesizedIDBase + int(h%synthesizedIDBase)
}
