package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/cookmate/internal/api"
	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
	"github.com/hammamikhairi/cookmate/internal/storage"
)

type fakeBackend struct {
	token      string
	verifyErr  error
	welcomeErr error
	welcomed   []string
	users      map[string]domain.User
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{users: map[string]domain.User{
		"asha@example.com": {ID: "7", Name: "Asha", Email: "asha@example.com"},
	}}
}

func (f *fakeBackend) Login(_ context.Context, c api.Credentials) (*api.AuthResult, error) {
	u, ok := f.users[c.Email]
	if !ok || c.Password != "secret" {
		return nil, &api.Error{StatusCode: 401, Message: "Invalid credentials"}
	}
	return &api.AuthResult{User: u, Token: f.token}, nil
}

func (f *fakeBackend) Signup(_ context.Context, r api.SignupRequest) (*api.AuthResult, error) {
	u := domain.User{ID: fmt.Sprint(len(f.users) + 10), Email: r.Email, DietPreference: r.DietPreference}
	f.users[r.Email] = u
	return &api.AuthResult{User: u, Token: f.token}, nil
}

func (f *fakeBackend) Verify(_ context.Context, token string) (domain.User, error) {
	if f.verifyErr != nil {
		return domain.User{}, f.verifyErr
	}
	for _, u := range f.users {
		if u.ID == token || token == f.token {
			return u, nil
		}
	}
	return domain.User{}, &api.Error{StatusCode: 401, Message: "invalid token"}
}

func (f *fakeBackend) UpdateProfile(_ context.Context, id, name, email string) (domain.User, error) {
	return domain.User{ID: id, Name: name, Email: email}, nil
}

func (f *fakeBackend) SendWelcomeEmail(_ context.Context, email, _ string) error {
	f.welcomed = append(f.welcomed, email)
	return f.welcomeErr
}

func setupSession(t *testing.T, b *fakeBackend, opts ...Option) (*Session, *storage.MemoryStore) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemoryStore(log)
	return NewSession(b, store, log, opts...), store
}

func TestGate(t *testing.T) {
	g := NewGate()
	tests := []struct {
		page     domain.Page
		loggedIn bool
		want     bool
	}{
		{domain.PageHome, false, true},
		{domain.PageAbout, false, true},
		{domain.PageRecipes, false, false},
		{domain.PageRecipeDetail, false, false},
		{domain.PageFavorites, false, false},
		{domain.PageSubstitute, false, false},
		{domain.PageRecommender, false, false},
		{domain.PageAddRecipe, false, false},
		{domain.PageFavorites, true, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.CanEnter(tt.page, tt.loggedIn), "%s loggedIn=%v", tt.page, tt.loggedIn)
	}
}

func TestLoginStoresUserIDWhenNoToken(t *testing.T) {
	ctx := context.Background()
	s, store := setupSession(t, newFakeBackend())

	u, err := s.Login(ctx, LoginInput{Email: "asha@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", u.Name)
	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, "7", s.Token())

	tok, err := store.Get(ctx, domain.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "7", tok)

	raw, err := store.Get(ctx, domain.KeyUser)
	require.NoError(t, err)
	assert.Contains(t, raw, `"email":"asha@example.com"`)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	s, _ := setupSession(t, newFakeBackend())

	_, err := s.Login(ctx, LoginInput{Email: "bad", Password: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = s.Login(ctx, LoginInput{Email: "asha@example.com", Password: "wrong"})
	var apiErr *api.Error
	assert.ErrorAs(t, err, &apiErr)
	assert.False(t, s.IsLoggedIn())
}

func TestSignupToleratesWelcomeFailure(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.token = "tok"
	b.welcomeErr = errors.New("smtp down")
	s, _ := setupSession(t, b)

	u, err := s.Signup(ctx, SignupInput{Username: "ravi", Email: "ravi@example.com", Password: "hunter22", DietPreference: "Vegetarian"})
	require.NoError(t, err)
	assert.Equal(t, "ravi", u.Name)
	assert.Equal(t, "vegetarian", u.DietPreference)
	assert.Equal(t, []string{"ravi@example.com"}, b.welcomed)
	assert.Equal(t, "tok", s.Token())
}

func TestSignupValidation(t *testing.T) {
	s, _ := setupSession(t, newFakeBackend())
	tests := []SignupInput{
		{Username: "", Email: "a@b.co", Password: "hunter22"},
		{Username: "ravi", Email: "nope", Password: "hunter22"},
		{Username: "ravi", Email: "a@b.co", Password: "short"},
		{Username: "ravi", Email: "a@b.co", Password: "hunter22", ConfirmPassword: "hunter23"},
		{Username: "ravi", Email: "a@b.co", Password: "hunter22", DietPreference: "carnivore"},
	}
	for _, in := range tests {
		_, err := s.Signup(context.Background(), in)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "%+v", in)
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing stored", func(t *testing.T) {
		s, _ := setupSession(t, newFakeBackend())
		ok, err := s.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("valid token", func(t *testing.T) {
		s, store := setupSession(t, newFakeBackend())
		require.NoError(t, store.Set(ctx, domain.KeyAuthToken, "7"))
		ok, err := s.Restore(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		u, _ := s.CurrentUser()
		assert.Equal(t, "Asha", u.Name)
	})

	t.Run("rejected token is cleared", func(t *testing.T) {
		s, store := setupSession(t, newFakeBackend())
		require.NoError(t, store.Set(ctx, domain.KeyAuthToken, "forged"))
		ok, err := s.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		_, err = store.Get(ctx, domain.KeyAuthToken)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("unreachable keeps token", func(t *testing.T) {
		b := newFakeBackend()
		b.verifyErr = fmt.Errorf("dial: %w", domain.ErrUnreachable)
		s, store := setupSession(t, b)
		require.NoError(t, store.Set(ctx, domain.KeyAuthToken, "7"))
		ok, err := s.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		tok, err := store.Get(ctx, domain.KeyAuthToken)
		require.NoError(t, err)
		assert.Equal(t, "7", tok)
	})
}

func TestLogoutAndHooks(t *testing.T) {
	ctx := context.Background()
	var states []bool
	s, store := setupSession(t, newFakeBackend(), WithChangeHook(func(_ domain.User, in bool) {
		states = append(states, in)
	}))

	_, err := s.Login(ctx, LoginInput{Email: "asha@example.com", Password: "secret"})
	require.NoError(t, err)
	s.Logout(ctx)

	assert.False(t, s.IsLoggedIn())
	assert.Empty(t, s.Token())
	assert.Equal(t, []bool{true, false}, states)
	_, err = store.Get(ctx, domain.KeyUser)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	s, _ := setupSession(t, newFakeBackend())

	_, err := s.UpdateProfile(ctx, "New", "new@example.com")
	assert.True(t, errors.Is(err, domain.ErrNotLoggedIn))

	_, err = s.Login(ctx, LoginInput{Email: "asha@example.com", Password: "secret"})
	require.NoError(t, err)

	u, err := s.UpdateProfile(ctx, "Asha K", "asha.k@example.com")
	require.NoError(t, err)
	assert.Equal(t, "7", u.ID)
	cur, _ := s.CurrentUser()
	assert.Equal(t, "Asha K", cur.Name)
}
