package recipe

import (
	"math"
	"strings"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

// Defaults applied when the backend leaves a field blank.
const (
	DefaultCookTime = 30
	DefaultCuisine  = "Indian"
	DefaultServings = 4

	quickMinutes = 20
	slowMinutes  = 45
)

// Classification is everything the client derives from a raw record rather
// than trusting the backend's free text.
type Classification struct {
	Category    domain.Category
	Difficulty  domain.Difficulty
	Tags        []string
	Calories    int
	CookTime    int
	Description string
	Cuisine     string
}

type keywordRule struct {
	category    domain.Category
	title       []string
	description []string
	cuisine     []string
}

// categoryRules are checked in order; the first hit wins.
var categoryRules = []keywordRule{
	{
		category:    domain.CategoryBeverages,
		title:       []string{"tea", "chai", "coffee", "lassi", "juice", "drink", "smoothie", "milk", "water", "pani"},
		description: []string{"beverage", "drink"},
	},
	{
		category: domain.CategoryBreakfast,
		title:    []string{"breakfast", "dosa", "idli", "poha", "paratha", "upma", "puri", "dhokla", "vada", "chilla"},
		cuisine:  []string{"breakfast"},
	},
	{
		category: domain.CategoryDinner,
		title:    []string{"dinner", "curry", "sabzi", "kofta", "makhani", "paneer", "chicken", "mutton"},
		cuisine:  []string{"dinner"},
	},
}

var (
	meatKeywords = []string{"chicken", "meat", "fish", "egg", "mutton"}

	difficultySynonyms = map[string]domain.Difficulty{
		"easy":         domain.DifficultyEasy,
		"beginner":     domain.DifficultyEasy,
		"medium":       domain.DifficultyMedium,
		"moderate":     domain.DifficultyMedium,
		"intermediate": domain.DifficultyMedium,
		"hard":         domain.DifficultyHard,
		"expert":       domain.DifficultyHard,
		"difficult":    domain.DifficultyHard,
	}
)

// Classify derives category, difficulty, tags, calories and text defaults
// from a raw record. Missing or malformed fields fall back to defaults.
func Classify(raw domain.RawRecipe) Classification {
	cookTime := EffectiveCookTime(int(raw.CookingTime))

	cuisine := strings.TrimSpace(raw.Cuisine.String())
	if cuisine == "" {
		cuisine = DefaultCuisine
	}
	description := strings.TrimSpace(raw.Description.String())
	if description == "" {
		description = DefaultDescription(cuisine)
	}

	title := strings.ToLower(raw.Title.String())
	desc := strings.ToLower(description)
	ingredients := strings.ToLower(strings.Join(NormalizeIngredients(raw.Ingredients), " "))

	return Classification{
		Category:    classifyCategory(title, desc, strings.ToLower(cuisine)),
		Difficulty:  ClassifyDifficulty(raw.Difficulty.String(), cookTime),
		Tags:        classifyTags(title, desc, ingredients, cookTime),
		Calories:    int(math.Round(200 * float64(cookTime) / 30)),
		CookTime:    cookTime,
		Description: description,
		Cuisine:     cuisine,
	}
}

// EffectiveCookTime returns minutes, or DefaultCookTime when unknown.
func EffectiveCookTime(minutes int) int {
	if minutes <= 0 {
		return DefaultCookTime
	}
	return minutes
}

// DefaultDescription is the generated blurb for recipes without one.
func DefaultDescription(cuisine string) string {
	return "A delicious " + cuisine + " recipe that's perfect for any occasion."
}

func classifyCategory(title, desc, cuisine string) domain.Category {
	for _, rule := range categoryRules {
		if containsAny(title, rule.title) ||
			containsAny(desc, rule.description) ||
			containsAny(cuisine, rule.cuisine) {
			return rule.category
		}
	}
	return domain.CategoryLunch
}

// ClassifyDifficulty honours a recognised explicit value, otherwise bands
// by cook time.
func ClassifyDifficulty(explicit string, cookTime int) domain.Difficulty {
	if d, ok := difficultySynonyms[strings.ToLower(strings.TrimSpace(explicit))]; ok {
		return d
	}
	switch {
	case cookTime <= quickMinutes:
		return domain.DifficultyEasy
	case cookTime >= slowMinutes:
		return domain.DifficultyHard
	default:
		return domain.DifficultyMedium
	}
}

func classifyTags(title, desc, ingredients string, cookTime int) []string {
	tags := []string{domain.TagVegetarian}
	if containsAny(ingredients, meatKeywords) {
		tags[0] = domain.TagNonVegetarian
	}

	either := func(words ...string) bool {
		return containsAny(title, words) || containsAny(desc, words)
	}

	optional := []struct {
		tag string
		hit bool
	}{
		{"Quick", cookTime <= quickMinutes},
		{"Slow-cooked", cookTime >= slowMinutes},
		{"Popular", either("popular")},
		{"Healthy", strings.Contains(ingredients, "healthy") || containsAny(desc, []string{"healthy", "nutritious"})},
		{"Traditional", either("traditional")},
		{"Festive", either("festive")},
		{"Easy", containsAny(desc, []string{"quick", "easy", "simple"})},
		{"Protein-rich", strings.Contains(desc, "protein") || strings.Contains(ingredients, "protein")},
	}
	for _, o := range optional {
		if o.hit {
			tags = append(tags, o.tag)
		}
	}

	if len(tags) == 1 {
		tags = append(tags, "Traditional")
	}
	return tags
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
