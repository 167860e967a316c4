// Package engine implements the page navigation state machine. Every
// transition passes through the auth gate.
package engine

import (
	"sync"

	"github.com/hammamikhairi/cookmate/internal/auth"
	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

// Outcome is the result of a navigation request.
type Outcome int

const (
	// Committed means the page changed.
	Committed Outcome = iota
	// LoginRequired means the page is protected and nobody is logged in.
	// Navigation state is untouched.
	LoginRequired
	// Ignored means the request was malformed and dropped.
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Committed:
		return "committed"
	case LoginRequired:
		return "login-required"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Option configures the engine.
type Option func(*Engine)

// WithLoginPrompt sets the callback run when a protected page is requested
// while logged out.
func WithLoginPrompt(fn func(requested domain.Page)) Option {
	return func(e *Engine) {
		e.loginPrompt = fn
	}
}

// WithTransitionHook registers a callback run after every committed
// transition, including logout.
func WithTransitionHook(fn func(domain.NavState)) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, fn)
	}
}

// Engine owns the navigation state. It depends only on the gate and an
// identity accessor.
type Engine struct {
	mu          sync.Mutex
	gate        *auth.Gate
	identity    domain.Identity
	log         *logger.Logger
	state       domain.NavState
	loginPrompt func(domain.Page)
	hooks       []func(domain.NavState)
}

// New creates an engine starting on the home page.
func New(gate *auth.Gate, identity domain.Identity, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		gate:     gate,
		identity: identity,
		log:      log,
		state:    domain.NavState{Page: domain.PageHome},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a copy of the navigation state.
func (e *Engine) State() domain.NavState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyState(e.state)
}

// Render returns the page to draw. Unrecognised pages draw as home; the
// stored page is left as is.
func (e *Engine) Render() domain.Page {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.Page.Known() {
		return domain.PageHome
	}
	return e.state.Page
}

// Navigate moves to page, dropping the selected recipe and seeded
// ingredients.
func (e *Engine) Navigate(page domain.Page) Outcome {
	return e.transition(domain.NavState{Page: page})
}

// Search opens the recommender seeded with ingredients.
func (e *Engine) Search(ingredients []string) Outcome {
	seed := make([]string, len(ingredients))
	copy(seed, ingredients)
	return e.transition(domain.NavState{Page: domain.PageRecommender, SeedIngredients: seed})
}

// ViewRecipe opens the detail page for id. A non-positive id is ignored
// regardless of login state.
func (e *Engine) ViewRecipe(id int) Outcome {
	if id <= 0 {
		e.log.Debug("engine: ignoring view of recipe %d", id)
		return Ignored
	}
	return e.transition(domain.NavState{Page: domain.PageRecipeDetail, SelectedRecipeID: id})
}

// BackFromDetail returns to the recipe list.
func (e *Engine) BackFromDetail() Outcome {
	return e.transition(domain.NavState{Page: domain.PageRecipes})
}

// Logout forces the home page and clears the selected recipe. It does not
// touch the session; callers log the user out first.
func (e *Engine) Logout() {
	e.mu.Lock()
	e.state = domain.NavState{Page: domain.PageHome}
	next := copyState(e.state)
	e.mu.Unlock()

	e.log.Debug("engine: logout, back to %s", next.Page)
	e.fire(next)
}

func (e *Engine) transition(next domain.NavState) Outcome {
	_, loggedIn := e.identity.CurrentUser()
	if !e.gate.CanEnter(next.Page, loggedIn) {
		e.log.Debug("engine: %s requires login", next.Page)
		if e.loginPrompt != nil {
			e.loginPrompt(next.Page)
		}
		return LoginRequired
	}

	e.mu.Lock()
	prev := e.state.Page
	e.state = next
	committed := copyState(e.state)
	e.mu.Unlock()

	e.log.Debug("engine: %s -> %s", prev, next.Page)
	e.fire(committed)
	return Committed
}

func (e *Engine) fire(s domain.NavState) {
	for _, fn := range e.hooks {
		fn(copyState(s))
	}
}

func copyState(s domain.NavState) domain.NavState {
	if s.SeedIngredients != nil {
		seed := make([]string, len(s.SeedIngredients))
		copy(seed, s.SeedIngredients)
		s.SeedIngredients = seed
	}
	return s
}
