package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

// RecommendRequest is sent to the recommender endpoints.
type RecommendRequest struct {
	Ingredients []string `json:"ingredients"`
	TopN        int      `json:"top_n"`
}

// RecommendationPayload is one recommender result. Loosely typed fields stay
// raw; internal/recommend normalises them.
type RecommendationPayload struct {
	ID                     domain.FlexInt  `json:"id"`
	RecipeID               domain.FlexInt  `json:"recipe_id"`
	Name                   string          `json:"name"`
	Title                  string          `json:"title"`
	Image                  string          `json:"image"`
	ImageURL               string          `json:"image_url"`
	Time                   json.RawMessage `json:"time"`
	CookingTime            domain.FlexInt  `json:"cooking_time"`
	Rating                 *float64        `json:"rating"`
	Difficulty             string          `json:"difficulty"`
	Cuisine                string          `json:"cuisine"`
	Description            string          `json:"description"`
	Ingredients            json.RawMessage `json:"ingredients"`
	Instructions           json.RawMessage `json:"instructions"`
	MatchPercentage        float64         `json:"match_percentage"`
	HasSubstitutions       bool            `json:"has_substitutions"`
	MissingIngredients     json.RawMessage `json:"missing_ingredients"`
	IngredientsYouHave     json.RawMessage `json:"ingredients_you_have"`
	Substitutes            json.RawMessage `json:"substitutes"`
	CanMakeWithSubstitutes bool            `json:"can_make_with_substitutes"`
	UsabilityScore         *float64        `json:"usability_score"`
}

// RecommendResponse is the recommender answer.
type RecommendResponse struct {
	Success         bool                    `json:"success"`
	Recommendations []RecommendationPayload `json:"recommendations"`
	Message         string                  `json:"message"`
	Error           string                  `json:"error"`
}

// Recommend asks the ML service for recipes that use the given ingredients.
// withSubstitutes selects the substitution-aware endpoint.
func (c *Client) Recommend(ctx context.Context, req RecommendRequest, withSubstitutes bool) (*RecommendResponse, error) {
	path := "/ml/recommend/"
	if withSubstitutes {
		path = "/ml/recommend-with-subs/"
	}
	if req.Ingredients == nil {
		req.Ingredients = []string{}
	}
	var resp RecommendResponse
	if err := c.call(ctx, request{method: http.MethodPost, path: path, body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubstitutePayload is one row from the substitutes endpoint.
type SubstitutePayload struct {
	SubstituteID   domain.FlexInt `json:"substitute_id"`
	IngredientID   domain.FlexInt `json:"ingredient_id"`
	SubstituteName string         `json:"substitute_name"`
	Reason         string         `json:"reason"`
}

// Substitutes lists known substitutes for ingredient. A 404 is reported as
// an empty list.
func (c *Client) Substitutes(ctx context.Context, ingredient string) ([]SubstitutePayload, error) {
	name := strings.ToLower(strings.TrimSpace(ingredient))
	path := "/substitutes/" + url.PathEscape(name) + "/"
	var out []SubstitutePayload
	if err := c.call(ctx, request{method: http.MethodGet, path: path}, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}
