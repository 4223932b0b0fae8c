package di

import (
	authadapters "cookwhat/internal/feature/auth/adapters"
	authentity "cookwhat/internal/feature/auth/domain/entity"
	catalogadapters "cookwhat/internal/feature/catalog/adapters"
	fridgeadapters "cookwhat/internal/feature/fridge/adapters"
	"cookwhat/internal/platform/cache"
)

// Models lists the gorm models migrated at startup. Parents come before
// the tables that reference them.
func Models() []any {
	return []any{
		&authentity.User{},
		&authadapters.SessionModel{},
		&fridgeadapters.FridgeModel{},
		&fridgeadapters.EntryModel{},
		&catalogadapters.IngredientModel{},
		&cache.SearchSnapshot{},
	}
}
