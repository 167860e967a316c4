package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/cookmate/internal/domain"
)

// UserPayload is a user record in any of the shapes the backend returns.
type UserPayload struct {
	UserID         domain.FlexInt `json:"user_id"`
	ID             domain.FlexInt `json:"id"`
	Name           string         `json:"name"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	DietPreference string         `json:"diet_preference"`
	JoinDate       string         `json:"joinDate"`
	CreatedAt      string         `json:"created_at"`
}

// ToUser converts the payload. The join date falls back to now when the
// backend sends none or an unparseable one.
func (p UserPayload) ToUser(now time.Time) domain.User {
	id := int(p.UserID)
	if id == 0 {
		id = int(p.ID)
	}
	name := p.Name
	if name == "" {
		name = p.Username
	}
	joined := parseDate(p.JoinDate)
	if joined.IsZero() {
		joined = parseDate(p.CreatedAt)
	}
	if joined.IsZero() {
		joined = now
	}
	u := domain.User{
		Name:           name,
		Email:          p.Email,
		DietPreference: p.DietPreference,
		JoinDate:       joined,
	}
	if id != 0 {
		u.ID = strconv.Itoa(id)
	}
	return u
}

func (p UserPayload) empty() bool {
	return p.UserID == 0 && p.ID == 0 && p.Email == ""
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// AuthResult is a successful login or signup.
type AuthResult struct {
	User  domain.User
	Token string
}

// Credentials are sent to POST /login/.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is sent to POST /signup/.
type SignupRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	DietPreference string `json:"diet_preference"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var raw json.RawMessage
	if err := c.call(ctx, request{method: http.MethodPost, path: "/login/", body: creds}, &raw); err != nil {
		return nil, err
	}
	return decodeAuth(raw)
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	var raw json.RawMessage
	if err := c.call(ctx, request{method: http.MethodPost, path: "/signup/", body: req}, &raw); err != nil {
		return nil, err
	}
	return decodeAuth(raw)
}

// Verify resolves the user behind token.
func (c *Client) Verify(ctx context.Context, token string) (domain.User, error) {
	var raw json.RawMessage
	if err := c.call(ctx, request{method: http.MethodGet, path: "/verify/", bearer: token}, &raw); err != nil {
		return domain.User{}, err
	}
	res, err := decodeAuth(raw)
	if err != nil {
		return domain.User{}, err
	}
	return res.User, nil
}

// UpdateProfile changes the name and email of userID.
func (c *Client) UpdateProfile(ctx context.Context, userID, name, email string) (domain.User, error) {
	body := map[string]string{"name": name, "email": email}
	var raw json.RawMessage
	path := "/profile/" + userID + "/update/"
	if err := c.call(ctx, request{method: http.MethodPut, path: path, body: body}, &raw); err != nil {
		return domain.User{}, err
	}
	res, err := decodeAuth(raw)
	if err != nil {
		return domain.User{}, err
	}
	return res.User, nil
}

// decodeAuth accepts {user:{...}, token} or a bare user object.
func decodeAuth(raw json.RawMessage) (*AuthResult, error) {
	var wrapped struct {
		envelope
		User  *UserPayload `json:"user"`
		Token string       `json:"token"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("api: decode user: %w", err)
	}
	if err := wrapped.check(http.StatusOK); err != nil {
		return nil, err
	}

	payload := wrapped.User
	if payload == nil {
		var bare UserPayload
		if err := json.Unmarshal(raw, &bare); err != nil {
			return nil, fmt.Errorf("api: decode user: %w", err)
		}
		payload = &bare
	}
	if payload.empty() {
		return nil, &Error{StatusCode: http.StatusOK, Message: "response did not contain a user"}
	}
	return &AuthResult{User: payload.ToUser(time.Now()), Token: wrapped.Token}, nil
}
