// Package entity はレシピ検索のドメインエンティティを定義します。
package entity

// IngredientResult is one hit of an upstream ingredient search.
type IngredientResult struct {
	ExternalID int    `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
}

// RecipeSummary はfindByIngredientsの1件です。
type RecipeSummary struct {
	ID                    int      `json:"id"`
	Title                 string   `json:"title"`
	Image                 string   `json:"image"`
	UsedIngredientCount   int      `json:"used_ingredient_count"`
	MissedIngredientCount int      `json:"missed_ingredient_count"`
	UsedIngredients       []string `json:"used_ingredients"`
	MissedIngredients     []string `json:"missed_ingredients"`
}

// RecipeDetail はレシピ詳細と手順をまとめたものです。
type RecipeDetail struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Image          string   `json:"image"`
	ReadyInMinutes int      `json:"ready_in_minutes"`
	Servings       int      `json:"servings"`
	SourceURL      string   `json:"source_url"`
	Summary        string   `json:"summary"`
	Ingredients    []string `json:"ingredients"`
	Instructions   []string `json:"instructions"`
}
