package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

var _ domain.FavoritesRemote = (*Client)(nil)

// Favorites lists the recipe ids userID has favorited.
func (c *Client) Favorites(ctx context.Context, userID int) ([]int, error) {
	var resp struct {
		envelope
		Favorites []struct {
			RecipeID domain.FlexInt `json:"recipe_id"`
		} `json:"favorites"`
	}
	path := fmt.Sprintf("/favorites/%d/", userID)
	if err := c.call(ctx, request{method: http.MethodGet, path: path}, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(http.StatusOK); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(resp.Favorites))
	for _, f := range resp.Favorites {
		if f.RecipeID > 0 {
			ids = append(ids, int(f.RecipeID))
		}
	}
	return ids, nil
}

// AddFavorite records recipeID as a favorite of userID.
func (c *Client) AddFavorite(ctx context.Context, userID, recipeID int) error {
	body := map[string]string{
		"user_id":   strconv.Itoa(userID),
		"recipe_id": strconv.Itoa(recipeID),
	}
	var resp envelope
	if err := c.call(ctx, request{method: http.MethodPost, path: "/favorites/add/", body: body}, &resp); err != nil {
		return err
	}
	return resp.check(http.StatusOK)
}

// RemoveFavorite deletes recipeID from userID's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, userID, recipeID int) error {
	path := fmt.Sprintf("/favorites/%d/%d/remove/", userID, recipeID)
	var resp envelope
	if err := c.call(ctx, request{method: http.MethodDelete, path: path}, &resp); err != nil {
		return err
	}
	return resp.check(http.StatusOK)
}
