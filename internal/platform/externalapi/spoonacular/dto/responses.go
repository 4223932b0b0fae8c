// Package dto defines data transfer objects for the Spoonacular API responses.
package dto

// IngredientSearchResponse represents GET /food/ingredients/search.
type IngredientSearchResponse struct {
	Results []struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Image string `json:"image"`
	} `json:"results"`
	Offset       int `json:"offset"`
	Number       int `json:"number"`
	TotalResults int `json:"totalResults"`
}

// IngredientRef is an ingredient inside a recipe.
type IngredientRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Original string `json:"original"`
}

// FindByIngredientsItem is one element of GET /recipes/findByIngredients.
type FindByIngredientsItem struct {
	ID                    int             `json:"id"`
	Title                 string          `json:"title"`
	Image                 string          `json:"image"`
	UsedIngredientCount   int             `json:"usedIngredientCount"`
	MissedIngredientCount int             `json:"missedIngredientCount"`
	UsedIngredients       []IngredientRef `json:"usedIngredients"`
	MissedIngredients     []IngredientRef `json:"missedIngredients"`
}

// RecipeInformation represents GET /recipes/{id}/information.
type RecipeInformation struct {
	ID                  int             `json:"id"`
	Title               string          `json:"title"`
	Image               string          `json:"image"`
	ReadyInMinutes      int             `json:"readyInMinutes"`
	Servings            int             `json:"servings"`
	SourceURL           string          `json:"sourceUrl"`
	Summary             string          `json:"summary"`
	ExtendedIngredients []IngredientRef `json:"extendedIngredients"`
}

// AnalyzedInstruction is one block of GET /recipes/{id}/analyzedInstructions.
type AnalyzedInstruction struct {
	Name  string `json:"name"`
	Steps []struct {
		Number int    `json:"number"`
		Step   string `json:"step"`
	} `json:"steps"`
}
