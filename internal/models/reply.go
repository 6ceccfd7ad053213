package models

import (
	"time"
)

// Reply hangs off a single parent comment. Deleting a comment does not
// cascade here on purpose: orphaned replies simply stop being joinable
// and disappear from rendered threads.
type Reply struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Rid       string    `gorm:"uniqueIndex;size:36;not null" json:"reply_id"`
	CommentID uint      `gorm:"not null;index" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
