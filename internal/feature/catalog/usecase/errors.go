package usecase

import "errors"

var (
	// ErrIngredientNotFound is returned when no catalog row matches.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrNameRequired is returned when an ingredient has no name.
	ErrNameRequired = errors.New("ingredient name is required")
)
