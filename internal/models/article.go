package models

import (
	"time"
)

type Article struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Aid       string    `gorm:"uniqueIndex;size:36;not null" json:"article_id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	ImageURL  string    `json:"image_url"` // Optional
	VideoURL  string    `json:"video_url"` // Optional
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled at query time, not stored
	CommentCount  int `gorm:"-" json:"comment_count"`
	ReactionCount int `gorm:"-" json:"reaction_count"`
}
