package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"worldconnect/internal/feed"
	"worldconnect/internal/middleware"
	"worldconnect/internal/models"
	"worldconnect/internal/store"
	"worldconnect/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const clientCookie = "wc_client"

type ReactionHandler struct {
	store *store.Store
}

func NewReactionHandler(st *store.Store) *ReactionHandler {
	return &ReactionHandler{store: st}
}

// Toggle flips the caller's reaction of the given type on an article.
func (h *ReactionHandler) Toggle(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	typ := models.ReactionType(c.Param("type"))
	if !typ.Valid() {
		RenderError(c, http.StatusBadRequest, "unknown reaction type")
		return
	}

	article, err := h.store.ArticleByAid(c.Param("aid"))
	if err != nil {
		NotFound(c, "article")
		return
	}

	added, err := h.store.ToggleReaction(c.Request.Context(), user, article, typ)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to toggle reaction")
		return
	}

	utils.GetCache().Delete("reaction:summary:" + article.Aid)
	utils.GetCache().Delete("article:feed:page:1")

	RenderData(c, http.StatusOK, gin.H{"type": typ, "active": added})
}

type bucketView struct {
	Type         models.ReactionType `json:"type"`
	UniqueActors int                 `json:"unique_actors"`
	Entries      []feed.Reaction     `json:"entries"`
}

type summaryView struct {
	Total   int          `json:"total"`
	Buckets []bucketView `json:"buckets"`
}

// Summary returns the four type buckets with unique-actor counts. The
// result is shared across users and cached for a minute.
func (h *ReactionHandler) Summary(c *gin.Context) {
	aid := c.Param("aid")

	cacheKey := "reaction:summary:" + aid
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if view, ok := cached.(summaryView); ok {
			RenderData(c, http.StatusOK, view)
			return
		}
	}

	article, err := h.store.ArticleByAid(aid)
	if err != nil {
		NotFound(c, "article")
		return
	}

	all, err := h.store.AllReactions(c.Request.Context(), article.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to load reactions")
		return
	}

	buckets := feed.AggregateByType(all)
	view := summaryView{Total: len(all)}
	for _, typ := range models.ReactionTypes {
		entries := buckets[typ]
		view.Buckets = append(view.Buckets, bucketView{
			Type:         typ,
			UniqueActors: feed.UniqueActors(entries),
			Entries:      entries,
		})
	}

	utils.GetCache().Set(cacheKey, view, 1*time.Minute)

	RenderData(c, http.StatusOK, view)
}

// revealSession guards one client's controller; the LRU cache itself is
// safe but the controller mutates on every step.
type revealSession struct {
	mu   sync.Mutex
	ctrl *feed.RevealController
}

type revealRequest struct {
	Filter string `json:"filter"`
	Reset  bool   `json:"reset"`
}

type revealResponse struct {
	Batch     []feed.UserReactionSummary `json:"batch"`
	Displayed int                        `json:"displayed"`
	Total     int                        `json:"total"`
	State     string                     `json:"state"`
	Filter    string                     `json:"filter"`
	NextBatch int                        `json:"next_batch"`
}

// Reveal advances the reactions-page walk for this client. The full
// collection is fetched once per session; stepping and filter changes
// work on the in-memory copy.
func (h *ReactionHandler) Reveal(c *gin.Context) {
	article, err := h.store.ArticleByAid(c.Param("aid"))
	if err != nil {
		NotFound(c, "article")
		return
	}

	var req revealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = revealRequest{}
	}
	if req.Filter == "" {
		req.Filter = feed.FilterAll
	}
	if req.Filter != feed.FilterAll && !models.ReactionType(req.Filter).Valid() {
		RenderError(c, http.StatusBadRequest, "unknown reaction filter")
		return
	}

	cacheKey := fmt.Sprintf("reaction:reveal:%s:%s", h.clientID(c), article.Aid)

	var session *revealSession
	if !req.Reset {
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			if s, ok := cached.(*revealSession); ok {
				session = s
			}
		}
	}

	if session == nil {
		all, err := h.store.AllReactions(c.Request.Context(), article.ID)
		if err != nil {
			RenderError(c, http.StatusInternalServerError, "failed to load reactions")
			return
		}
		session = &revealSession{ctrl: feed.NewRevealController(all, feed.DefaultBatchSize)}
		utils.GetCache().Set(cacheKey, session, 5*time.Minute)
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	var batch []feed.UserReactionSummary
	if req.Filter != session.ctrl.Filter() {
		batch = session.ctrl.ChangeFilter(req.Filter)
	} else {
		batch = session.ctrl.Reveal()
	}

	RenderData(c, http.StatusOK, revealResponse{
		Batch:     batch,
		Displayed: len(session.ctrl.Displayed()),
		Total:     session.ctrl.Total(),
		State:     session.ctrl.State().String(),
		Filter:    session.ctrl.Filter(),
		NextBatch: session.ctrl.NextBatch(),
	})
}

// clientID identifies the browser for reveal state, independent of
// sign-in, via a long-lived cookie.
func (h *ReactionHandler) clientID(c *gin.Context) string {
	if id, err := c.Cookie(clientCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(clientCookie, id, 60*60*24*365, "/", "", false, true)
	return id
}
