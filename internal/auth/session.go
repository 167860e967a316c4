package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/hammamikhairi/cookmate/internal/api"
	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

// Backend is the slice of the backend client a Session needs.
type Backend interface {
	Login(ctx context.Context, creds api.Credentials) (*api.AuthResult, error)
	Signup(ctx context.Context, req api.SignupRequest) (*api.AuthResult, error)
	Verify(ctx context.Context, token string) (domain.User, error)
	UpdateProfile(ctx context.Context, userID, name, email string) (domain.User, error)
	SendWelcomeEmail(ctx context.Context, email, username string) error
}

var _ Backend = (*api.Client)(nil)
var _ domain.Identity = (*Session)(nil)

// fallbackToken is stored when the backend returns neither a token nor a
// user id.
const fallbackToken = "temp-token"

var validate = validator.New()

// LoginInput is what the login command collects.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// SignupInput is what the signup command collects. ConfirmPassword is
// checked only when given.
type SignupInput struct {
	Username        string `validate:"required,min=2,max=64"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"omitempty,eqfield=Password"`
	DietPreference  string `validate:"omitempty,oneof=vegetarian non-vegetarian vegan eggetarian"`
}

// Option configures a Session.
type Option func(*Session)

// WithChangeHook registers fn to run after every login state change.
func WithChangeHook(fn func(user domain.User, loggedIn bool)) Option {
	return func(s *Session) { s.hooks = append(s.hooks, fn) }
}

// Session is the single source of truth for the logged-in user.
type Session struct {
	mu      sync.RWMutex
	backend Backend
	store   domain.KeyValueStore
	log     *logger.Logger
	user    *domain.User
	token   string
	hooks   []func(domain.User, bool)
}

// NewSession creates a logged-out session persisting through store.
func NewSession(backend Backend, store domain.KeyValueStore, log *logger.Logger, opts ...Option) *Session {
	s := &Session{backend: backend, store: store, log: log}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CurrentUser returns the logged-in user.
func (s *Session) CurrentUser() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// IsLoggedIn reports whether a user is logged in.
func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Token returns the bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Login authenticates and persists the session.
func (s *Session) Login(ctx context.Context, in LoginInput) (domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return domain.User{}, invalid(err)
	}
	res, err := s.backend.Login(ctx, api.Credentials{Email: in.Email, Password: in.Password})
	if err != nil {
		return domain.User{}, fmt.Errorf("auth: login: %w", err)
	}
	if err := s.establish(ctx, res); err != nil {
		return domain.User{}, err
	}
	s.log.Info("auth: logged in as %s", res.User.Email)
	return res.User, nil
}

// Signup registers, logs in and asks the backend for a welcome email. A
// failed welcome email is logged and otherwise ignored.
func (s *Session) Signup(ctx context.Context, in SignupInput) (domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.DietPreference = strings.ToLower(strings.TrimSpace(in.DietPreference))
	if err := validate.Struct(in); err != nil {
		return domain.User{}, invalid(err)
	}
	res, err := s.backend.Signup(ctx, api.SignupRequest{
		Username:       in.Username,
		Email:          in.Email,
		Password:       in.Password,
		DietPreference: in.DietPreference,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("auth: signup: %w", err)
	}
	if res.User.Name == "" {
		res.User.Name = in.Username
	}
	if err := s.backend.SendWelcomeEmail(ctx, in.Email, in.Username); err != nil {
		s.log.Warn("auth: welcome email failed: %v", err)
	}
	if err := s.establish(ctx, res); err != nil {
		return domain.User{}, err
	}
	s.log.Info("auth: signed up %s", res.User.Email)
	return res.User, nil
}

// Restore re-establishes a stored session by verifying its token. A token
// the backend rejects is cleared silently. When the backend cannot be
// reached the token is kept for the next start.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	token, err := s.store.Get(ctx, domain.KeyAuthToken)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && token == "") {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("auth: read token: %w", err)
	}

	user, err := s.backend.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnreachable) || ctx.Err() != nil {
			s.log.Warn("auth: could not verify stored session: %v", err)
			return false, nil
		}
		s.log.Debug("auth: stored token rejected: %v", err)
		s.forget(ctx)
		return false, nil
	}

	if user.ID == "" {
		if stored, ok := s.storedUser(ctx); ok {
			user.ID = stored.ID
		}
	}
	s.set(user, token)
	s.log.Info("auth: restored session for %s", user.Email)
	return true, nil
}

// Logout drops the session locally.
func (s *Session) Logout(ctx context.Context) {
	s.forget(ctx)
	s.notify(domain.User{}, false)
}

// UpdateProfile changes name and email on the backend and in the session.
func (s *Session) UpdateProfile(ctx context.Context, name, email string) (domain.User, error) {
	current, ok := s.CurrentUser()
	if !ok {
		return domain.User{}, domain.ErrNotLoggedIn
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := validate.Var(name, "required"); err != nil {
		return domain.User{}, invalid(err)
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return domain.User{}, invalid(err)
	}

	updated, err := s.backend.UpdateProfile(ctx, current.ID, name, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth: update profile: %w", err)
	}

	// Keep what the backend left out.
	if updated.ID == "" {
		updated.ID = current.ID
	}
	if updated.DietPreference == "" {
		updated.DietPreference = current.DietPreference
	}
	if !current.JoinDate.IsZero() {
		updated.JoinDate = current.JoinDate
	}

	if err := s.persistUser(ctx, updated); err != nil {
		return domain.User{}, err
	}
	s.mu.Lock()
	s.user = &updated
	s.mu.Unlock()
	return updated, nil
}

func (s *Session) establish(ctx context.Context, res *api.AuthResult) error {
	token := res.Token
	if token == "" {
		token = res.User.ID
	}
	if token == "" {
		token = fallbackToken
	}
	if err := s.store.Set(ctx, domain.KeyAuthToken, token); err != nil {
		return fmt.Errorf("auth: persist token: %w", err)
	}
	if err := s.persistUser(ctx, res.User); err != nil {
		return err
	}
	s.set(res.User, token)
	return nil
}

func (s *Session) set(user domain.User, token string) {
	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()
	s.notify(user, true)
}

func (s *Session) persistUser(ctx context.Context, user domain.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("auth: encode user: %w", err)
	}
	if err := s.store.Set(ctx, domain.KeyUser, string(b)); err != nil {
		return fmt.Errorf("auth: persist user: %w", err)
	}
	return nil
}

func (s *Session) storedUser(ctx context.Context) (domain.User, bool) {
	raw, err := s.store.Get(ctx, domain.KeyUser)
	if err != nil {
		return domain.User{}, false
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return domain.User{}, false
	}
	return u, true
}

func (s *Session) forget(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	for _, key := range []string{domain.KeyAuthToken, domain.KeyUser} {
		if err := s.store.Delete(ctx, key); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("auth: clear %s: %v", key, err)
		}
	}
}

func (s *Session) notify(user domain.User, loggedIn bool) {
	for _, fn := range s.hooks {
		fn(user, loggedIn)
	}
}

func invalid(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("auth: %s fails %q: %w", strings.ToLower(fe.Field()), fe.Tag(), domain.ErrInvalidInput)
	}
	return fmt.Errorf("auth: %v: %w", err, domain.ErrInvalidInput)
}
