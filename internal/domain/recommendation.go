package domain

// Recommendation is one ranked result from the recommender service.
type Recommendation struct {
	ID                     int
	Name                   string
	Image                  string
	Time                   string
	Rating                 float64
	Difficulty             Difficulty
	Cuisine                string
	Description            string
	Ingredients            []string
	Instructions           []string
	MatchPercentage        float64
	CanMake                bool
	HasSubstitutions       bool
	MissingIngredients     []string
	IngredientsYouHave     []string
	Substitutes            map[string][]string
	CanMakeWithSubstitutes bool
	UsabilityScore         float64
}

// Substitute groups the replacements known for one ingredient.
type Substitute struct {
	Ingredient  string
	Substitutes []string
	Ratio       string
	Notes       string
}
