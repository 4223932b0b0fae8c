// Package dto defines the HTTP response bodies of the recipes feature.
package dto

import "cookwhat/internal/feature/recipes/domain/entity"

// IngredientSearchRes is returned by GET /ingredients/search.
type IngredientSearchRes struct {
	Query   string                    `json:"query"`
	Results []entity.IngredientResult `json:"results"`
}

// RecipeListRes is returned by the recipe search endpoints.
type RecipeListRes struct {
	Results []entity.RecipeSummary `json:"results"`
}

// DegradedRes is returned with 502 when the recipe service fails.
type DegradedRes struct {
	Results []any  `json:"results"`
	Error   string `json:"error"`
}
