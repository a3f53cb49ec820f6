package model

import "time"

const (
	ActivityPostCreated = "post_created"
	ActivityPostUpdated = "post_updated"
	ActivityPostDeleted = "post_deleted"
	ActivityPostLiked   = "post_liked"
	ActivityPostUnliked = "post_unliked"
)

// Activity is an audit record of a post mutation. Activities are published to
// the broker by the services and persisted asynchronously by the worker.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Action    string    `gorm:"size:32;not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
