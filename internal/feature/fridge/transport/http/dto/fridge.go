// Package dto defines the HTTP request and response bodies of the fridge feature.
package dto

import (
	"time"

	"cookwhat/internal/feature/fridge/domain/entity"
)

// AddIngredientReq picks an ingredient from the latest ingredient search.
type AddIngredientReq struct {
	IngredientID int `json:"ingredient_id" binding:"required,gt=0"`
}

// EntryRes is one ingredient in a fridge.
type EntryRes struct {
	ID           uint      `json:"id"`
	IngredientID int       `json:"ingredient_id"`
	Name         string    `json:"name"`
	AddedAt      time.Time `json:"added_at"`
}

// FridgeRes is a fridge with its contents.
type FridgeRes struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Ingredients []EntryRes `json:"ingredients"`
}

// NewEntryRes converts an entry entity.
func NewEntryRes(e entity.IngredientEntry) EntryRes {
	return EntryRes{ID: e.ID, IngredientID: e.IngredientID, Name: e.Name, AddedAt: e.CreatedAt}
}

// NewEntryList converts entries, never returning nil.
func NewEntryList(entries []entity.IngredientEntry) []EntryRes {
	out := make([]EntryRes, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntryRes(e))
	}
	return out
}

// NewFridgeRes converts a fridge entity. A nil fridge yields nil.
func NewFridgeRes(f *entity.Fridge) *FridgeRes {
	if f == nil {
		return nil
	}
	return &FridgeRes{
		ID:          f.ID,
		UserID:      f.UserID,
		CreatedAt:   f.CreatedAt,
		Ingredients: NewEntryList(f.Ingredients),
	}
}
