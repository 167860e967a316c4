package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

type fakeRemote struct {
	server map[int]bool
	err    error
	calls  int
}

func (f *fakeRemote) Favorites(ctx context.Context, userID int) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ids []int
	for id := range f.server {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeRemote) AddFavorite(ctx context.Context, userID, recipeID int) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.server[recipeID] = true
	return nil
}

func (f *fakeRemote) RemoveFavorite(ctx context.Context, userID, recipeID int) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	delete(f.server, recipeID)
	return nil
}

type fakeIdentity struct {
	user *domain.User
}

func (f fakeIdentity) CurrentUser() (domain.User, bool) {
	if f.user == nil {
		return domain.User{}, false
	}
	return *f.user, true
}

func setupSynced(t *testing.T, loggedIn bool) (*Synced, *fakeRemote, *[]string) {
	t.Helper()
	remote := &fakeRemote{server: map[int]bool{}}
	id := fakeIdentity{}
	if loggedIn {
		id.user = &domain.User{ID: "4", Name: "Asha"}
	}
	var failures []string
	s := NewSynced(NewStore(), remote, id, logger.New(logger.LevelOff, nil),
		WithFailureHook(func(msg string) { failures = append(failures, msg) }),
	)
	return s, remote, &failures
}

func TestSyncedAddMirrorsToServer(t *testing.T) {
	s, remote, _ := setupSynced(t, true)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, 7))
	require.NoError(t, s.Add(ctx, 7))

	assert.Equal(t, []int{7}, s.List())
	assert.True(t, remote.server[7])
	assert.Equal(t, 1, remote.calls, "duplicate add must not hit the server")
}

func TestSyncedRollsBackOnFailure(t *testing.T) {
	s, remote, failures := setupSynced(t, true)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, 1))

	remote.err = domain.ErrUnreachable
	err := s.Add(ctx, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnreachable))
	assert.False(t, s.Has(2), "failed add must be rolled back")

	err = s.Remove(ctx, 1)
	require.Error(t, err)
	assert.True(t, s.Has(1), "failed remove must be rolled back")
	assert.Len(t, *failures, 2)
}

func TestSyncedLocalWhenLoggedOut(t *testing.T) {
	s, remote, _ := setupSynced(t, false)
	ctx := context.Background()

	on, err := s.Toggle(ctx, 3)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Zero(t, remote.calls)

	on, err = s.Toggle(ctx, 3)
	require.NoError(t, err)
	assert.False(t, on)

	assert.ErrorIs(t, s.Load(ctx), domain.ErrNotLoggedIn)
	assert.ErrorIs(t, s.Add(ctx, 0), domain.ErrInvalidInput)
}

func TestSyncedLoadAndReset(t *testing.T) {
	s, remote, _ := setupSynced(t, true)
	ctx := context.Background()
	remote.server[10] = true

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, []int{10}, s.List())

	s.Reset()
	assert.Zero(t, s.Len())
}
