package repository

import (
	"fmt"

	"gorm.io/gorm"

	"portfolio-backend/internal/model"
)

type WorkRepository struct {
	db *gorm.DB
}

func NewWorkRepository(db *gorm.DB) *WorkRepository {
	return &WorkRepository{db: db}
}

func (r *WorkRepository) Create(work *model.Work) error {
	if err := r.db.Create(work).Error; err != nil {
		return fmt.Errorf("create work failed: %w", err)
	}
	return nil
}

// ListAll returns every work newest first. Insertion order breaks ties so
// listings are stable for works created in the same instant.
func (r *WorkRepository) ListAll() ([]model.Work, error) {
	var works []model.Work
	if err := r.db.Order("created_at DESC, id DESC").Find(&works).Error; err != nil {
		return nil, fmt.Errorf("list works failed: %w", err)
	}
	return works, nil
}

func (r *WorkRepository) ListFavoritedBy(userID uint) ([]model.Work, error) {
	var works []model.Work
	err := r.db.
		Joins("INNER JOIN favorites ON favorites.work_id = works.id").
		Where("favorites.user_id = ?", userID).
		Order("works.created_at DESC, works.id DESC").
		Find(&works).Error
	if err != nil {
		return nil, fmt.Errorf("list favorited works failed: %w", err)
	}
	return works, nil
}

// DeleteWithFavorites removes the work and every favorite referencing it in
// one transaction, favorites first so no dangling relation survives. Deleting
// an absent work affects zero rows and is not an error.
func (r *WorkRepository) DeleteWithFavorites(workID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_id = ?", workID).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Work{}, workID).Error
	})
	if err != nil {
		return fmt.Errorf("delete work failed: %w", err)
	}
	return nil
}
