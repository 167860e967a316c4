// Package domain defines the core types and interfaces for the recipe client.
// All other packages depend on domain; domain depends on nothing outside the
// standard library.
package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Category is the meal slot a recipe is listed under.
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategoryBeverages Category = "beverages"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryBreakfast, CategoryLunch, CategoryDinner, CategoryBeverages}

// Difficulty is the effort band shown on a recipe card.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Diet tags. Every display recipe carries exactly one of these first.
const (
	TagVegetarian    = "Vegetarian"
	TagNonVegetarian = "Non-Vegetarian"
)

// Recipe is the display form every view renders. It is always fully
// populated; see recipe.ToDisplay.
type Recipe struct {
	ID           int
	Name         string
	Image        string
	Category     Category
	CookTime     int // minutes
	PrepTime     int // minutes
	Servings     int
	Difficulty   Difficulty
	Rating       float64
	Reviews      int
	Cuisine      string
	Description  string
	Tags         []string
	Calories     int
	Ingredients  []string
	Instructions []string
}

// RawRecipe is a recipe record as the backend sends it. Ingredients and
// Instructions are left undecoded because they arrive as JSON-encoded
// strings, plain strings, arrays or objects.
type RawRecipe struct {
	RecipeID     FlexInt         `json:"recipe_id"`
	ID           FlexInt         `json:"id"`
	Title        FlexString      `json:"title"`
	Description  FlexString      `json:"description"`
	Ingredients  json.RawMessage `json:"ingredients"`
	Instructions json.RawMessage `json:"instructions"`
	CookingTime  FlexInt         `json:"cooking_time"`
	Difficulty   FlexString      `json:"difficulty"`
	Cuisine      FlexString      `json:"cuisine"`
	ImageURL     FlexString      `json:"image_url"`
	UserID       FlexInt         `json:"user_id"`
	CreatedAt    FlexString      `json:"created_at"`
	ServingSize  FlexInt         `json:"serving_size"`
}

// Identifier returns recipe_id, falling back to id.
func (r RawRecipe) Identifier() int {
	if r.RecipeID > 0 {
		return int(r.RecipeID)
	}
	return int(r.ID)
}

// FlexInt decodes a JSON number, a numeric string, or null into an int.
// Anything else decodes to zero rather than failing the whole record.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		var unq string
		if err := json.Unmarshal(data, &unq); err != nil {
			*f = 0
			return nil
		}
		s = strings.TrimSpace(unq)
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		*f = FlexInt(math.Round(math.Max(math.MinInt32, math.Min(math.MaxInt32, v))))
		return nil
	}
	*f = 0
	return nil
}

// FlexString decodes a JSON string, number, bool or null into a string.
// Numbers and bools keep their literal text; objects and arrays decode to
// empty rather than failing the whole record.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = ""
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*f = FlexString(s)
		}
	case '{', '[', 'n': // object, array, null
	default:
		*f = FlexString(data)
	}
	return nil
}

// String returns the decoded text.
func (f FlexString) String() string { return string(f) }

// NewRecipe is a user-submitted recipe as the backend's add form expects it.
type NewRecipe struct {
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
	CookingTime  int
	Servings     int
	Difficulty   string
	Cuisine      string
	MealType     string
	DietType     string
	Tags         []string
	UserID       int
	ImagePath    string
}
