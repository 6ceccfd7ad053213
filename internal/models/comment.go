package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Cid       string    `gorm:"uniqueIndex;size:36;not null" json:"comment_id"`
	ArticleID uint      `gorm:"not null;index" json:"-"`
	Article   Article   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
