package handlers

import (
	"net/http"
	"strings"

	"worldconnect/internal/feed"
	"worldconnect/internal/middleware"
	"worldconnect/internal/models"
	"worldconnect/internal/services"
	"worldconnect/internal/store"
	"worldconnect/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	store    *store.Store
	notifier *services.Notifier
}

func NewCommentHandler(st *store.Store, notifier *services.Notifier) *CommentHandler {
	return &CommentHandler{store: st, notifier: notifier}
}

// ListThreads returns the full comment tree of one article: top-level
// comments newest first, each with its replies oldest first.
func (h *CommentHandler) ListThreads(c *gin.Context) {
	article, err := h.store.ArticleByAid(c.Param("aid"))
	if err != nil {
		NotFound(c, "article")
		return
	}

	comments, err := h.store.CommentsForArticle(c.Request.Context(), article.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to load comments")
		return
	}
	replies, err := h.store.RepliesForArticle(c.Request.Context(), article.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to load comments")
		return
	}

	RenderData(c, http.StatusOK, gin.H{
		"threads": feed.BuildThreads(comments, replies),
	})
}

type textRequest struct {
	Text string `json:"text"`
}

func (r *textRequest) clean() string {
	return strings.TrimSpace(utils.SanitizeText(r.Text))
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	article, err := h.store.ArticleByAid(c.Param("aid"))
	if err != nil {
		NotFound(c, "article")
		return
	}

	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RenderError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	text := req.clean()
	if text == "" {
		RenderError(c, http.StatusBadRequest, "comment text cannot be empty")
		return
	}

	comment, err := h.store.InsertComment(c.Request.Context(), user, article, text)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to create comment")
		return
	}

	h.notifier.NotifyComment(user, article)

	RenderData(c, http.StatusCreated, comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	comment, err := h.store.CommentByCid(c.Param("cid"))
	if err != nil {
		NotFound(c, "comment")
		return
	}
	if !user.CanModify(comment.UserID) {
		RenderError(c, http.StatusForbidden, "not allowed to edit this comment")
		return
	}

	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RenderError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	text := req.clean()
	if text == "" {
		RenderError(c, http.StatusBadRequest, "comment text cannot be empty")
		return
	}

	if err := h.store.UpdateCommentText(c.Request.Context(), comment, text); err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to update comment")
		return
	}
	comment.Text = text

	RenderData(c, http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	comment, err := h.store.CommentByCid(c.Param("cid"))
	if err != nil {
		NotFound(c, "comment")
		return
	}
	if !user.CanModify(comment.UserID) {
		RenderError(c, http.StatusForbidden, "not allowed to delete this comment")
		return
	}

	if err := h.store.DeleteComment(c.Request.Context(), comment); err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to delete comment")
		return
	}

	RenderData(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *CommentHandler) CreateReply(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	comment, err := h.store.CommentByCid(c.Param("cid"))
	if err != nil {
		NotFound(c, "comment")
		return
	}

	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RenderError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	text := req.clean()
	if text == "" {
		RenderError(c, http.StatusBadRequest, "reply text cannot be empty")
		return
	}

	reply, err := h.store.InsertReply(c.Request.Context(), user, comment, text)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to create reply")
		return
	}

	if article, err := h.store.ArticleByID(comment.ArticleID); err == nil {
		h.notifier.NotifyReply(user, comment, article.Aid)
	}

	RenderData(c, http.StatusCreated, reply)
}

func (h *CommentHandler) UpdateReply(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	reply, err := h.store.ReplyByRid(c.Param("rid"))
	if err != nil {
		NotFound(c, "reply")
		return
	}
	if !user.CanModify(reply.UserID) {
		RenderError(c, http.StatusForbidden, "not allowed to edit this reply")
		return
	}

	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RenderError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	text := req.clean()
	if text == "" {
		RenderError(c, http.StatusBadRequest, "reply text cannot be empty")
		return
	}

	if err := h.store.UpdateReplyText(c.Request.Context(), reply, text); err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to update reply")
		return
	}
	reply.Text = text

	RenderData(c, http.StatusOK, reply)
}

func (h *CommentHandler) DeleteReply(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	reply, err := h.store.ReplyByRid(c.Param("rid"))
	if err != nil {
		NotFound(c, "reply")
		return
	}
	if !user.CanModify(reply.UserID) {
		RenderError(c, http.StatusForbidden, "not allowed to delete this reply")
		return
	}

	if err := h.store.DeleteReply(c.Request.Context(), reply); err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to delete reply")
		return
	}

	RenderData(c, http.StatusOK, gin.H{"deleted": true})
}
