package usecase

import (
	"context"

	"cookwhat/internal/feature/fridge/domain/entity"
)

// FridgeRepository はfridgesとfridge_ingredientsの永続化を抽象化します。
type FridgeRepository interface {
	// FindByUserID returns (nil, nil) when the user has no fridge.
	FindByUserID(ctx context.Context, userID uint) (*entity.Fridge, error)

	// Create returns ErrFridgeAlreadyExists when the user already has one.
	Create(ctx context.Context, userID uint) (*entity.Fridge, error)

	// Delete removes the fridge and, through the foreign key, its entries.
	Delete(ctx context.Context, fridgeID uint) error

	// ListIngredients returns entries in insertion order.
	ListIngredients(ctx context.Context, fridgeID uint) ([]entity.IngredientEntry, error)

	AddIngredient(ctx context.Context, fridgeID uint, ingredientID int, name string) (*entity.IngredientEntry, error)

	// RemoveIngredient deletes only where both ids match.
	RemoveIngredient(ctx context.Context, fridgeID, entryID uint) error
}
