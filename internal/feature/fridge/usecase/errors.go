package usecase

import "errors"

var (
	// ErrFridgeNotFound is returned when the user has no fridge.
	ErrFridgeNotFound = errors.New("fridge not found")

	// ErrFridgeAlreadyExists is returned when the user already owns a fridge.
	ErrFridgeAlreadyExists = errors.New("fridge already exists")

	// ErrEntryNotFound is returned when no entry matches both the fridge and entry id.
	ErrEntryNotFound = errors.New("fridge ingredient not found")

	// ErrIngredientNotInResults is returned when the picked ingredient was not
	// part of the session's latest ingredient search.
	ErrIngredientNotInResults = errors.New("ingredient is not in your latest search results")
)
