// Package entity defines the local ingredient catalog.
package entity

// Ingredient is a locally known ingredient. ExternalID is set for records
// picked from the upstream ingredient search and nil for seeded rows.
type Ingredient struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	ExternalID *int   `json:"external_id"`
	FoodGroup  string `json:"food_group,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}
