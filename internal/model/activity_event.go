package model

import "time"

const (
	ActivityUserRegistered  = "user_registered"
	ActivityWorkCreated     = "work_created"
	ActivityWorkDeleted     = "work_deleted"
	ActivityFavoriteAdded   = "favorite_added"
	ActivityFavoriteRemoved = "favorite_removed"
)

// ActivityEvent is an audit record for mutating operations. Events are
// published to the broker and persisted asynchronously by the worker.
type ActivityEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"size:32;not null;index" json:"type"`
	UserID    uint      `gorm:"index" json:"user_id"`
	WorkID    uint      `json:"work_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
