// Package feed holds the view-model shaping for the World Connect feed:
// grouping flat comment/reply rows into threads, aggregating reactions
// by user and by type, paging a backend read in fixed windows, and the
// incremental reveal state machine behind the "load more" affordance.
//
// Everything here is pure: no database, no HTTP, no rendering. Row
// types mirror the "with actor info" read views the store exposes.
package feed

import (
	"time"

	"worldconnect/internal/models"
)

// Comment is one row of the comments-with-actor-info view, already
// filtered to a single article.
type Comment struct {
	ID        string    `json:"comment_id"`
	ArticleID string    `json:"article_id"`
	ActorID   string    `json:"actor_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Reply is one row of the replies-with-actor-info view. ParentID refers
// to a Comment which may or may not be in the loaded set.
type Reply struct {
	ID        string    `json:"reply_id"`
	ParentID  string    `json:"parent_comment_id"`
	ActorID   string    `json:"actor_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Reaction is one row of the reactions-with-actor-info view.
type Reaction struct {
	ArticleID string              `json:"article_id"`
	ActorID   string              `json:"actor_id"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Type      models.ReactionType `json:"reaction_type"`
	CreatedAt time.Time           `json:"created_at"`
}

// CommentThread is a comment plus its replies, oldest reply first.
// Derived on every load, never persisted.
type CommentThread struct {
	Comment Comment `json:"comment"`
	Replies []Reply `json:"replies"`
}

// ReactionEntry is one reaction inside a user summary.
type ReactionEntry struct {
	Type      models.ReactionType `json:"reaction_type"`
	CreatedAt time.Time           `json:"created_at"`
}

// UserReactionSummary groups one actor's reactions on an article,
// newest first. A summary never exists with zero reactions: an actor
// whose rows all vanish is dropped from the result entirely.
type UserReactionSummary struct {
	ActorID   string          `json:"actor_id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Reactions []ReactionEntry `json:"reactions"`
	LatestAt  time.Time       `json:"latest_at"`
}
