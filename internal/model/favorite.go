package model

import "time"

// Favorite marks a work as favored by a user. The composite unique index
// guarantees at most one row per (user, work) pair.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_work" json:"user_id"`
	WorkID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_work" json:"work_id"`
	CreatedAt time.Time `json:"created_at"`
}
