package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

var validate = validator.New()

// ValidateEmail checks the address syntax.
func ValidateEmail(email string) error {
	if err := validate.Var(strings.TrimSpace(email), "required,email"); err != nil {
		return fmt.Errorf("api: email %q: %w", email, domain.ErrInvalidInput)
	}
	return nil
}

// SendRecipes subscribes email to the recipe newsletter and returns the
// backend's confirmation message.
func (c *Client) SendRecipes(ctx context.Context, email string) (string, error) {
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	var resp envelope
	body := map[string]string{"email": strings.TrimSpace(email)}
	if err := c.call(ctx, request{method: http.MethodPost, path: "/api/send-recipes/", body: body}, &resp); err != nil {
		return "", err
	}
	if err := resp.check(http.StatusOK); err != nil {
		return "", err
	}
	if resp.Message == "" {
		return "Recipes sent! Check your inbox.", nil
	}
	return resp.Message, nil
}

// SendWelcomeEmail asks the backend to greet a new user.
func (c *Client) SendWelcomeEmail(ctx context.Context, email, username string) error {
	body := map[string]string{"email": email, "username": username}
	var resp envelope
	if err := c.call(ctx, request{method: http.MethodPost, path: "/api/send-welcome-email/", body: body}, &resp); err != nil {
		return err
	}
	return resp.check(http.StatusOK)
}
