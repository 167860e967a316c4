package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

var _ domain.RecipeFetcher = (*Client)(nil)

// Recipes lists every recipe on the backend.
func (c *Client) Recipes(ctx context.Context) ([]domain.RawRecipe, error) {
	var raw json.RawMessage
	if err := c.call(ctx, request{method: http.MethodGet, path: "/recipes/"}, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var list []domain.RawRecipe
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("api: decode recipes: %w", err)
		}
		return list, nil
	}
	var wrapped struct {
		Recipes []domain.RawRecipe `json:"recipes"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("api: decode recipes: %w", err)
	}
	return wrapped.Recipes, nil
}

// detailPaths are tried in order until one yields a recipe.
var detailPaths = []string{
	"/recipes/%d/details/",
	"/recipes/%d/",
	"/api/recipes/%d/",
}

// RecipeDetail fetches one recipe, walking the detail endpoint fallbacks.
func (c *Client) RecipeDetail(ctx context.Context, id int) (*domain.RawRecipe, error) {
	var lastErr error
	for _, tmpl := range detailPaths {
		path := fmt.Sprintf(tmpl, id)
		var raw json.RawMessage
		err := c.call(ctx, request{method: http.MethodGet, path: path}, &raw)
		if err == nil {
			var r *domain.RawRecipe
			r, err = decodeDetail(raw)
			if err == nil {
				return r, nil
			}
		}
		if errors.Is(err, domain.ErrUnreachable) || ctx.Err() != nil {
			return nil, err
		}
		c.log.Debug("api: detail %s failed: %v", path, err)
		lastErr = err
	}
	return nil, fmt.Errorf("api: recipe %d: %w", id, errors.Join(domain.ErrNotFound, lastErr))
}

// decodeDetail accepts {recipe: {...}}, a bare record or an array of records.
func decodeDetail(raw json.RawMessage) (*domain.RawRecipe, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("api: empty detail response")
	}
	if raw[0] == '[' {
		var list []domain.RawRecipe
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("api: decode detail: %w", err)
		}
		if len(list) == 0 {
			return nil, domain.ErrNotFound
		}
		return &list[0], nil
	}

	var wrapped struct {
		Recipe json.RawMessage `json:"recipe"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("api: decode detail: %w", err)
	}
	if len(wrapped.Recipe) > 0 && !bytes.Equal(wrapped.Recipe, []byte("null")) {
		raw = wrapped.Recipe
	}

	var r domain.RawRecipe
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("api: decode detail: %w", err)
	}
	if r.Identifier() <= 0 && r.Title == "" {
		return nil, fmt.Errorf("api: invalid detail format")
	}
	return &r, nil
}

// AddRecipe posts a user recipe as a multipart form and returns the new id
// when the backend reports one.
func (c *Client) AddRecipe(ctx context.Context, nr domain.NewRecipe) (int, error) {
	body, contentType, err := recipeForm(nr)
	if err != nil {
		return 0, err
	}
	var resp struct {
		envelope
		RecipeID domain.FlexInt `json:"recipe_id"`
		ID       domain.FlexInt `json:"id"`
	}
	err = c.call(ctx, request{
		method:      http.MethodPost,
		path:        "/recipes/add/",
		raw:         body,
		contentType: contentType,
	}, &resp)
	if err != nil {
		return 0, err
	}
	if err := resp.check(http.StatusOK); err != nil {
		return 0, err
	}
	if resp.RecipeID > 0 {
		return int(resp.RecipeID), nil
	}
	return int(resp.ID), nil
}

func recipeForm(nr domain.NewRecipe) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	jsonField := func(v []string) string {
		if v == nil {
			v = []string{}
		}
		b, _ := json.Marshal(v)
		return string(b)
	}
	fields := [][2]string{
		{"title", nr.Title},
		{"description", nr.Description},
		{"ingredients", jsonField(nr.Ingredients)},
		{"instructions", jsonField(nr.Instructions)},
		{"cooking_time", strconv.Itoa(nr.CookingTime)},
		{"difficulty", nr.Difficulty},
		{"cuisine", nr.Cuisine},
		{"meal_type", nr.MealType},
		{"diet_type", nr.DietType},
		{"tags", jsonField(nr.Tags)},
		{"user_id", strconv.Itoa(nr.UserID)},
	}
	if nr.Servings > 0 {
		fields = append(fields, [2]string{"serving_size", strconv.Itoa(nr.Servings)})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("api: write form field %s: %w", f[0], err)
		}
	}

	if nr.ImagePath != "" {
		f, err := os.Open(nr.ImagePath)
		if err != nil {
			return nil, "", fmt.Errorf("api: open image: %w", err)
		}
		defer f.Close()
		part, err := w.CreateFormFile("image_url", filepath.Base(nr.ImagePath))
		if err != nil {
			return nil, "", fmt.Errorf("api: create image part: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", fmt.Errorf("api: copy image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("api: close form: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
