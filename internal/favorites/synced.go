package favorites

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

// Option configures a Synced favorites set.
type Option func(*Synced)

// WithFailureHook is called with a user-facing message whenever a server
// mutation fails and the local change is rolled back.
func WithFailureHook(fn func(msg string)) Option {
	return func(s *Synced) { s.onFailure = fn }
}

// Synced owns the local favorites set and its server mirror. Mutations are
// applied locally first and rolled back when the server refuses them.
// Without a logged-in user, changes stay local.
type Synced struct {
	store     *Store
	remote    domain.FavoritesRemote
	identity  domain.Identity
	onFailure func(msg string)
	log       *logger.Logger
}

// NewSynced wires a store to its server mirror. remote may be nil for a
// purely local set.
func NewSynced(store *Store, remote domain.FavoritesRemote, identity domain.Identity, log *logger.Logger, opts ...Option) *Synced {
	s := &Synced{
		store:     store,
		remote:    remote,
		identity:  identity,
		onFailure: func(string) {},
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the local set with the server's.
func (s *Synced) Load(ctx context.Context) error {
	uid, ok := s.userID()
	if !ok {
		return domain.ErrNotLoggedIn
	}
	ids, err := s.remote.Favorites(ctx, uid)
	if err != nil {
		return fmt.Errorf("favorites: load: %w", err)
	}
	s.store.Replace(ids)
	s.log.Debug("favorites loaded for user %d, count=%d", uid, len(ids))
	return nil
}

// Add marks id as a favorite.
func (s *Synced) Add(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("favorites: add %d: %w", id, domain.ErrInvalidInput)
	}
	if !s.store.Add(id) {
		return nil
	}

	uid, ok := s.userID()
	if !ok {
		return nil
	}
	if err := s.remote.AddFavorite(ctx, uid, id); err != nil {
		s.store.Remove(id)
		s.fail("Could not add to favorites: %v", err)
		return fmt.Errorf("favorites: add %d: %w", id, err)
	}
	s.log.Info("favorite added: recipe %d", id)
	return nil
}

// Remove unmarks id.
func (s *Synced) Remove(ctx context.Context, id int) error {
	if !s.store.Remove(id) {
		return nil
	}

	uid, ok := s.userID()
	if !ok {
		return nil
	}
	if err := s.remote.RemoveFavorite(ctx, uid, id); err != nil {
		s.store.Add(id)
		s.fail("Could not remove from favorites: %v", err)
		return fmt.Errorf("favorites: remove %d: %w", id, err)
	}
	s.log.Info("favorite removed: recipe %d", id)
	return nil
}

// Toggle flips id and reports whether it is a favorite afterwards.
func (s *Synced) Toggle(ctx context.Context, id int) (bool, error) {
	if s.store.Has(id) {
		if err := s.Remove(ctx, id); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.Add(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// Reset forgets every favorite locally, e.g. on logout.
func (s *Synced) Reset() { s.store.Replace(nil) }

// Has reports whether id is a favorite.
func (s *Synced) Has(id int) bool { return s.store.Has(id) }

// List returns favorite ids in insertion order.
func (s *Synced) List() []int { return s.store.List() }

// Len returns the number of favorites.
func (s *Synced) Len() int { return s.store.Len() }

func (s *Synced) userID() (int, bool) {
	if s.remote == nil || s.identity == nil {
		return 0, false
	}
	u, ok := s.identity.CurrentUser()
	if !ok {
		return 0, false
	}
	uid := u.NumericID()
	if uid <= 0 {
		s.log.Warn("favorites: user id %q is not numeric, keeping changes local", u.ID)
		return 0, false
	}
	return uid, true
}

func (s *Synced) fail(format string, err error) {
	msg := fmt.Sprintf(format, err)
	s.log.Warn("%s", msg)
	s.onFailure(msg)
}
