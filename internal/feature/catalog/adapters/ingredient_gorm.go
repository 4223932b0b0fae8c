// Package adapters はcatalogフィーチャーのGORMリポジトリを提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cookwhat/internal/feature/catalog/domain/entity"
	"cookwhat/internal/feature/catalog/usecase"
)

// IngredientModel is the GORM model for the ingredients table.
type IngredientModel struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:255;not null;index"`
	ExternalID *int   `gorm:"uniqueIndex"`
	FoodGroup  string `gorm:"size:128"`
	ImageURL   string `gorm:"size:1024"`
}

// TableName returns the table name for GORM.
func (IngredientModel) TableName() string { return "ingredients" }

func (m *IngredientModel) toEntity() entity.Ingredient {
	return entity.Ingredient{
		ID:         m.ID,
		Name:       m.Name,
		ExternalID: m.ExternalID,
		FoodGroup:  m.FoodGroup,
		ImageURL:   m.ImageURL,
	}
}

type ingredientGorm struct {
	db *gorm.DB
}

var _ usecase.IngredientRepository = (*ingredientGorm)(nil)

// NewIngredientGorm はingredientGormの新しいインスタンスを生成します。
func NewIngredientGorm(db *gorm.DB) *ingredientGorm {
	return &ingredientGorm{db: db}
}

// Upsert は外部IDをキーに名前と画像を更新します。外部IDが無い行は常に追加されます。
func (r *ingredientGorm) Upsert(ctx context.Context, ing *entity.Ingredient) error {
	m := IngredientModel{
		Name:       ing.Name,
		ExternalID: ing.ExternalID,
		FoodGroup:  ing.FoodGroup,
		ImageURL:   ing.ImageURL,
	}
	tx := r.db.WithContext(ctx)
	if ing.ExternalID != nil {
		tx = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "image_url"}),
		})
	}
	if err := tx.Create(&m).Error; err != nil {
		return err
	}
	ing.ID = m.ID
	return nil
}

// escapeLike escapes LIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Search は名前の部分一致（大文字小文字を区別しない）で検索し、名前順で返します。
func (r *ingredientGorm) Search(ctx context.Context, query string, limit int) ([]entity.Ingredient, error) {
	tx := r.db.WithContext(ctx).Model(&IngredientModel{})
	if query != "" {
		pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
		tx = tx.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}

	var rows []IngredientModel
	if err := tx.Order("name ASC, id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Ingredient, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// FindByExternalID は外部IDで1件取得します。
func (r *ingredientGorm) FindByExternalID(ctx context.Context, externalID int) (*entity.Ingredient, error) {
	var m IngredientModel
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrIngredientNotFound
		}
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}
