package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrUnreachable   = errors.New("server not reachable")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoIngredients = errors.New("please select at least one ingredient")
	ErrStaleResponse = errors.New("response superseded by a newer request")
)
