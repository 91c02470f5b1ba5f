package model

import "time"

// Work is a portfolio entry. Works are created and deleted, never edited,
// so there is no updated_at column.
type Work struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"size:128;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:512;not null" json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// AnnotatedWork is a work decorated with the viewer's favorite flag for
// list responses.
type AnnotatedWork struct {
	Work
	IsFavorite bool `json:"is_favorite"`
}
