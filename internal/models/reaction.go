package models

import (
	"time"
)

type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionLaugh ReactionType = "laugh"
	ReactionAnger ReactionType = "anger"
)

// ReactionTypes lists every valid type in display order.
var ReactionTypes = []ReactionType{ReactionLike, ReactionLove, ReactionLaugh, ReactionAnger}

func (t ReactionType) Valid() bool {
	switch t {
	case ReactionLike, ReactionLove, ReactionLaugh, ReactionAnger:
		return true
	}
	return false
}

// Reaction is one (article, actor, type) row. The composite unique index
// enforces at most one row per triple; toggling removes the row if
// present, otherwise inserts it. One actor may hold several distinct
// types on the same article.
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"-"`
	Rid       string       `gorm:"uniqueIndex;size:36;not null" json:"reaction_id"`
	ArticleID uint         `gorm:"not null;uniqueIndex:idx_article_actor_type" json:"-"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_article_actor_type" json:"-"`
	User      User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor"`
	Type      ReactionType `gorm:"type:varchar(10);not null;uniqueIndex:idx_article_actor_type" json:"reaction_type"`
	CreatedAt time.Time    `json:"created_at"`
}
