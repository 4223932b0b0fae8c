// Package adapters はfridgeフィーチャーのGORMリポジトリを提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cookwhat/internal/feature/fridge/domain/entity"
	"cookwhat/internal/feature/fridge/usecase"
	"cookwhat/internal/platform/db"
)

type fridgeGorm struct {
	db *gorm.DB
}

// fridgeGormがFridgeRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.FridgeRepository = (*fridgeGorm)(nil)

// NewFridgeGorm はfridgeGormの新しいインスタンスを生成します。
func NewFridgeGorm(db *gorm.DB) *fridgeGorm {
	return &fridgeGorm{db: db}
}

// FindByUserID は冷蔵庫が無い場合 (nil, nil) を返します。
func (r *fridgeGorm) FindByUserID(ctx context.Context, userID uint) (*entity.Fridge, error) {
	var rows []FridgeModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].ToEntity(), nil
}

// Create は事前チェックを行わず、ユニークインデックス違反を ErrFridgeAlreadyExists に変換します。
func (r *fridgeGorm) Create(ctx context.Context, userID uint) (*entity.Fridge, error) {
	m := FridgeModel{UserID: userID}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil, usecase.ErrFridgeAlreadyExists
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Delete は冷蔵庫を削除します。中身は外部キーのカスケードで消えます。
func (r *fridgeGorm) Delete(ctx context.Context, fridgeID uint) error {
	res := r.db.WithContext(ctx).Delete(&FridgeModel{}, fridgeID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrFridgeNotFound
	}
	return nil
}

func (r *fridgeGorm) exists(tx *gorm.DB, fridgeID uint) error {
	var n int64
	if err := tx.Model(&FridgeModel{}).Where("id = ?", fridgeID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return usecase.ErrFridgeNotFound
	}
	return nil
}

// ListIngredients はID順（追加順）に中身を返します。
func (r *fridgeGorm) ListIngredients(ctx context.Context, fridgeID uint) ([]entity.IngredientEntry, error) {
	tx := r.db.WithContext(ctx)
	if err := r.exists(tx, fridgeID); err != nil {
		return nil, err
	}

	var rows []EntryModel
	if err := tx.Where("fridge_id = ?", fridgeID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.IngredientEntry, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}

// AddIngredient は重複を許して食材を追加します。
func (r *fridgeGorm) AddIngredient(ctx context.Context, fridgeID uint, ingredientID int, name string) (*entity.IngredientEntry, error) {
	m := EntryModel{FridgeID: fridgeID, IngredientID: ingredientID, Name: name}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.exists(tx, fridgeID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&m).Error
	})
	if err != nil {
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

// RemoveIngredient は冷蔵庫IDとエントリIDの両方が一致する行だけを削除します。
func (r *fridgeGorm) RemoveIngredient(ctx context.Context, fridgeID, entryID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND fridge_id = ?", entryID, fridgeID).Delete(&EntryModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrEntryNotFound
	}
	return nil
}
