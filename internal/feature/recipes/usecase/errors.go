package usecase

import "errors"

var (
	// ErrUpstream wraps every failure of the recipe/ingredient API:
	// non-2xx status, timeout, transport error, malformed body or an open breaker.
	ErrUpstream = errors.New("upstream recipe service unavailable")

	// ErrInvalidRecipeID is returned for non-positive recipe ids.
	ErrInvalidRecipeID = errors.New("invalid recipe id")

	// ErrEmptyQuery is returned when a search has nothing to search for.
	ErrEmptyQuery = errors.New("query must not be empty")
)
