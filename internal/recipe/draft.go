package recipe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

var validate = validator.New()

// Draft is a recipe the user is about to submit.
type Draft struct {
	Title        string   `validate:"required,max=200"`
	Description  string   `validate:"max=2000"`
	Cuisine      string   `validate:"max=100"`
	CookingTime  int      `validate:"min=1,max=1440"`
	Servings     int      `validate:"min=0,max=100"`
	Difficulty   string   `validate:"oneof=Easy Medium Hard"`
	MealType     string   `validate:"omitempty,oneof=Breakfast Lunch Dinner Snacks Dessert"`
	DietType     string   `validate:"omitempty,oneof=Vegetarian Vegan Non-Vegetarian Gluten-Free Low-Carb"`
	Tags         []string `validate:"dive,required"`
	Ingredients  []string `validate:"min=1,dive,required"`
	Instructions []string `validate:"min=1,dive,required"`
	ImagePath    string   `validate:"omitempty,file"`
}

// ParseDraft reads the one-line add-recipe form:
//
//	title | cuisine | minutes | difficulty | ing1; ing2 | step1; step2 [| key=value ...]
//
// Recognised keys are desc, servings, meal, diet, tags (comma separated)
// and image (a local file path).
func ParseDraft(line string) (Draft, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 6 {
		return Draft{}, fmt.Errorf("recipe: draft needs at least 6 fields, got %d: %w", len(fields), domain.ErrInvalidInput)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	minutes, err := strconv.Atoi(fields[2])
	if err != nil {
		return Draft{}, fmt.Errorf("recipe: cooking time %q: %w", fields[2], domain.ErrInvalidInput)
	}

	d := Draft{
		Title:        fields[0],
		Cuisine:      fields[1],
		CookingTime:  minutes,
		Difficulty:   string(canonicalDifficulty(fields[3])),
		Ingredients:  clean(strings.Split(fields[4], ";")),
		Instructions: clean(strings.Split(fields[5], ";")),
	}

	for _, extra := range fields[6:] {
		key, value, ok := strings.Cut(extra, "=")
		if !ok {
			return Draft{}, fmt.Errorf("recipe: field %q is not key=value: %w", extra, domain.ErrInvalidInput)
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "desc", "description":
			d.Description = value
		case "servings":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Draft{}, fmt.Errorf("recipe: servings %q: %w", value, domain.ErrInvalidInput)
			}
			d.Servings = n
		case "meal":
			d.MealType = titleWord(value)
		case "diet":
			d.DietType = value
		case "tags":
			d.Tags = clean(strings.Split(value, ","))
		case "image":
			d.ImagePath = value
		default:
			return Draft{}, fmt.Errorf("recipe: unknown field %q: %w", key, domain.ErrInvalidInput)
		}
	}
	return d, nil
}

// Validate checks the draft before it is sent.
func (d Draft) Validate() error {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("recipe: %s fails %q: %w", fe.Field(), fe.Tag(), domain.ErrInvalidInput)
		}
		return fmt.Errorf("recipe: validate draft: %w", err)
	}
	return nil
}

// Submission converts a validated draft into the backend form for userID.
func (d Draft) Submission(userID int) domain.NewRecipe {
	return domain.NewRecipe{
		Title:        d.Title,
		Description:  d.Description,
		Ingredients:  d.Ingredients,
		Instructions: d.Instructions,
		CookingTime:  d.CookingTime,
		Servings:     d.Servings,
		Difficulty:   d.Difficulty,
		Cuisine:      d.Cuisine,
		MealType:     d.MealType,
		DietType:     d.DietType,
		Tags:         d.Tags,
		UserID:       userID,
		ImagePath:    d.ImagePath,
	}
}

// Preview shows how the draft will be listed once the backend accepts it.
func (d Draft) Preview() domain.Recipe {
	return ToDisplay(ToRaw(domain.Recipe{
		Name:         d.Title,
		Description:  d.Description,
		Cuisine:      d.Cuisine,
		CookTime:     d.CookingTime,
		Servings:     d.Servings,
		Difficulty:   domain.Difficulty(d.Difficulty),
		Ingredients:  d.Ingredients,
		Instructions: d.Instructions,
	}))
}

func canonicalDifficulty(s string) domain.Difficulty {
	if d, ok := difficultySynonyms[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d
	}
	return domain.Difficulty(s)
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
