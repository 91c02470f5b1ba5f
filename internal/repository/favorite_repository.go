package repository

import (
	"fmt"

	"gorm.io/gorm"

	"portfolio-backend/internal/model"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Toggle flips the favorite relation for the pair and reports the resulting
// state. The delete runs first and its affected-row count decides the branch,
// so two concurrent toggles serialize on the row instead of racing a separate
// existence check; the composite unique index backstops the insert.
func (r *FavoriteRepository) Toggle(userID, workID uint) (bool, error) {
	var nowFavorite bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND work_id = ?", userID, workID).Delete(&model.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			nowFavorite = false
			return nil
		}
		nowFavorite = true
		return tx.Create(&model.Favorite{UserID: userID, WorkID: workID}).Error
	})
	if err != nil {
		return false, fmt.Errorf("toggle favorite failed: %w", err)
	}
	return nowFavorite, nil
}

// WorkIDSetByUser returns the ids of every work the user has favorited, for
// annotating work listings.
func (r *FavoriteRepository) WorkIDSetByUser(userID uint) (map[uint]struct{}, error) {
	var favorites []model.Favorite
	if err := r.db.Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("list favorites failed: %w", err)
	}
	set := make(map[uint]struct{}, len(favorites))
	for _, f := range favorites {
		set[f.WorkID] = struct{}{}
	}
	return set, nil
}

func (r *FavoriteRepository) CountByPair(userID, workID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND work_id = ?", userID, workID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count favorites failed: %w", err)
	}
	return count, nil
}
