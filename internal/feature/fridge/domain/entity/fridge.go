// Package entity defines the domain entities for the fridge feature.
package entity

import "time"

// Fridge belongs to exactly one user; a user has at most one fridge.
type Fridge struct {
	ID          uint
	UserID      uint
	CreatedAt   time.Time
	Ingredients []IngredientEntry
}

// IngredientEntry is one ingredient placed in a fridge. The same ingredient
// may appear more than once.
type IngredientEntry struct {
	ID           uint
	FridgeID     uint
	IngredientID int // upstream (Spoonacular) ingredient id
	Name         string
	CreatedAt    time.Time
}
