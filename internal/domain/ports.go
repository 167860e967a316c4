package domain

import "context"

// RecipeFetcher loads raw recipe records from the backend.
type RecipeFetcher interface {
	Recipes(ctx context.Context) ([]RawRecipe, error)
	RecipeDetail(ctx context.Context, id int) (*RawRecipe, error)
}

// FavoritesRemote is the server-side mirror of a user's favorites.
type FavoritesRemote interface {
	Favorites(ctx context.Context, userID int) ([]int, error)
	AddFavorite(ctx context.Context, userID, recipeID int) error
	RemoveFavorite(ctx context.Context, userID, recipeID int) error
}

// KeyValueStore persists small client-side values such as the auth token.
// Implementations can be in-memory or SQLite-backed.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Storage keys.
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
)

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string, page Page) (*Intent, error)
}

// Notifier delivers messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
