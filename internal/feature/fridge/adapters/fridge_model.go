package adapters

import (
	"time"

	authentity "cookwhat/internal/feature/auth/domain/entity"
	"cookwhat/internal/feature/fridge/domain/entity"
)

// FridgeModel is the GORM model for the fridges table.
// The unique index on user_id enforces one fridge per user.
type FridgeModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null"`
	User      authentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (FridgeModel) TableName() string { return "fridges" }

// ToEntity converts the GORM model to a domain entity.
func (m *FridgeModel) ToEntity() *entity.Fridge {
	return &entity.Fridge{ID: m.ID, UserID: m.UserID, CreatedAt: m.CreatedAt}
}

// EntryModel is the GORM model for the fridge_ingredients table.
type EntryModel struct {
	ID           uint        `gorm:"primaryKey"`
	FridgeID     uint        `gorm:"index;not null"`
	Fridge       FridgeModel `gorm:"foreignKey:FridgeID;constraint:OnDelete:CASCADE"`
	IngredientID int         `gorm:"not null"`
	Name         string      `gorm:"size:255"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM.
func (EntryModel) TableName() string { return "fridge_ingredients" }

// ToEntity converts the GORM model to a domain entity.
func (m *EntryModel) ToEntity() entity.IngredientEntry {
	return entity.IngredientEntry{
		ID:           m.ID,
		FridgeID:     m.FridgeID,
		IngredientID: m.IngredientID,
		Name:         m.Name,
		CreatedAt:    m.CreatedAt,
	}
}
