// Package spoonacular provides a client for the Spoonacular food API.
package spoonacular

import "time"

const (
	// DefaultBaseURL is the public Spoonacular endpoint.
	DefaultBaseURL = "https://api.spoonacular.com"

	// IngredientImageBaseURL prefixes the bare file names returned by ingredient search.
	IngredientImageBaseURL = "https://spoonacular.com/cdn/ingredients_100x100/"
)

// Config holds configuration for the Spoonacular API client.
type Config struct {
	APIKey  string        `mapstructure:"api_key"`  // API key for authentication
	BaseURL string        `mapstructure:"base_url"` // e.g. "https://api.spoonacular.com"
	Timeout time.Duration `mapstructure:"timeout"`  // per-call timeout
}
