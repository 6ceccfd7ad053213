// Package live is the in-process change feed: writes publish an Event,
// connected clients receive it over websocket and reload the affected
// collection.
package live

import (
	"sync"

	"go.uber.org/zap"
)

// Event describes one committed change to a watched table.
type Event struct {
	Table     string `json:"table"`                // articles, comments, replies, reactions, notifications
	Action    string `json:"action"`               // insert, update, delete
	ArticleID string `json:"article_id,omitempty"` // Public id, set for article-scoped tables
	UserID    string `json:"user_id,omitempty"`    // Receiver uid, set for notifications
}

const subscriptionBuffer = 64

// Subscription is a live handle on the change feed. Close releases it;
// closing twice is safe.
type Subscription struct {
	C chan Event

	hub       *Hub
	table     string // "" matches every table
	articleID string // "" matches every article
	userID    string // "" matches every receiver
}

func (s *Subscription) matches(ev Event) bool {
	if s.table != "" && s.table != ev.Table {
		return false
	}
	if s.articleID != "" && ev.ArticleID != "" && s.articleID != ev.ArticleID {
		return false
	}
	if s.userID != "" && ev.UserID != "" && s.userID != ev.UserID {
		return false
	}
	return true
}

func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub fans committed-change events out to subscribers. A single mutex
// guards the subscriber set; Publish never blocks on a slow consumer,
// it drops the event for that subscriber instead.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers interest in changes to table (optionally scoped
// to one article or one receiving user). Empty strings widen the match.
func (h *Hub) Subscribe(table, articleID, userID string) *Subscription {
	sub := &Subscription{
		C:         make(chan Event, subscriptionBuffer),
		hub:       h,
		table:     table,
		articleID: articleID,
		userID:    userID,
	}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.C)
}

// Publish delivers ev to every matching subscriber without blocking.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if !sub.matches(ev) {
			continue
		}
		select {
		case sub.C <- ev:
		default:
			zap.L().Warn("live subscriber too slow, dropping event",
				zap.String("table", ev.Table),
				zap.String("article_id", ev.ArticleID))
		}
	}
}

// Subscribers reports the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
