package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"worldconnect/internal/middleware"
	"worldconnect/internal/models"
	"worldconnect/internal/store"
	"worldconnect/internal/utils"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	store *store.Store
}

func NewArticleHandler(st *store.Store) *ArticleHandler {
	return &ArticleHandler{store: st}
}

// articleView is the feed-facing shape of one article.
type articleView struct {
	Aid           string                `json:"aid"`
	Text          string                `json:"text"`
	HTML          string                `json:"html"`
	ImageURL      string                `json:"image_url,omitempty"`
	VideoURL      string                `json:"video_url,omitempty"`
	AuthorUID     string                `json:"author_uid"`
	AuthorName    string                `json:"author_name"`
	AuthorInitial string                `json:"author_initials"`
	CommentCount  int                   `json:"comment_count"`
	ReactionCount int                   `json:"reaction_count"`
	Mine          []models.ReactionType `json:"my_reactions"`
	CreatedAt     time.Time             `json:"created_at"`
}

func toArticleView(a *models.Article) articleView {
	return articleView{
		Aid:           a.Aid,
		Text:          a.Text,
		HTML:          utils.RenderMarkdown(a.Text),
		ImageURL:      a.ImageURL,
		VideoURL:      a.VideoURL,
		AuthorUID:     a.User.UID,
		AuthorName:    utils.DisplayName(a.User.FirstName, a.User.LastName),
		AuthorInitial: utils.Initials(a.User.FirstName, a.User.LastName),
		CommentCount:  a.CommentCount,
		ReactionCount: a.ReactionCount,
		Mine:          []models.ReactionType{},
		CreatedAt:     a.CreatedAt,
	}
}

type feedPage struct {
	Articles    []articleView `json:"articles"`
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
}

// Feed returns one page of the article feed, newest first. The page is
// cached shared across users; the per-user reaction marks are injected
// after the cache hit because they change per request.
func (h *ArticleHandler) Feed(c *gin.Context) {
	page := utils.StringToInt(c.Query("page"))
	if page < 1 {
		page = 1
	}

	var result feedPage

	cacheKey := fmt.Sprintf("article:feed:page:%d", page)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if cachedPage, ok := cached.(feedPage); ok {
			result = cachedPage
		}
	}

	if result.Articles == nil {
		perPage := 20
		offset := (page - 1) * perPage

		articles, total, err := h.store.ArticleFeed(c.Request.Context(), offset, perPage)
		if err != nil {
			RenderError(c, http.StatusInternalServerError, "failed to load feed")
			return
		}
		if err := h.store.FillCounts(articles); err != nil {
			RenderError(c, http.StatusInternalServerError, "failed to load feed")
			return
		}

		totalPages := int(math.Ceil(float64(total) / float64(perPage)))
		if totalPages == 0 {
			totalPages = 1
		}

		views := make([]articleView, len(articles))
		for i := range articles {
			views[i] = toArticleView(&articles[i])
		}
		result = feedPage{
			Articles:    views,
			CurrentPage: page,
			TotalPages:  totalPages,
		}

		utils.GetCache().Set(cacheKey, result, 1*time.Minute)
	}

	// Per-user reaction marks are never cached.
	if user := CurrentUser(c); user != nil {
		mine, err := h.store.UserReactionMap(c.Request.Context(), user.ID)
		if err == nil {
			marked := make([]articleView, len(result.Articles))
			copy(marked, result.Articles)
			for i := range marked {
				if types, ok := mine[marked[i].Aid]; ok {
					marked[i].Mine = types
				}
			}
			result.Articles = marked
		}
	}

	RenderData(c, http.StatusOK, result)
}

func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.store.ArticleByAid(c.Param("aid"))
	if err != nil {
		NotFound(c, "article")
		return
	}
	list := []models.Article{*article}
	if err := h.store.FillCounts(list); err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to load article")
		return
	}
	RenderData(c, http.StatusOK, toArticleView(&list[0]))
}

type articleRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
	VideoURL string `json:"video_url"`
}

func (h *ArticleHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RenderError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" && req.ImageURL == "" && req.VideoURL == "" {
		RenderError(c, http.StatusBadRequest, "article must have text or media")
		return
	}

	article, err := h.store.CreateArticle(c.Request.Context(), user, req.Text, req.ImageURL, req.VideoURL)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to create article")
		return
	}

	utils.GetCache().Delete("article:feed:page:1")

	RenderData(c, http.StatusCreated, toArticleView(article))
}

func (h *ArticleHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	article, err := h.store.ArticleByAid(c.Param("aid"))
	if err != nil {
		NotFound(c, "article")
		return
	}
	if !user.CanModify(article.UserID) {
		RenderError(c, http.StatusForbidden, "not allowed to edit this article")
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RenderError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		RenderError(c, http.StatusBadRequest, "article text cannot be empty")
		return
	}

	if err := h.store.UpdateArticleText(c.Request.Context(), article, req.Text); err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to update article")
		return
	}
	article.Text = req.Text

	utils.GetCache().Delete("article:feed:page:1")

	RenderData(c, http.StatusOK, toArticleView(article))
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	article, err := h.store.ArticleByAid(c.Param("aid"))
	if err != nil {
		NotFound(c, "article")
		return
	}
	if !user.CanModify(article.UserID) {
		RenderError(c, http.StatusForbidden, "not allowed to delete this article")
		return
	}

	if err := h.store.DeleteArticle(c.Request.Context(), article); err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to delete article")
		return
	}

	utils.GetCache().Delete("article:feed:page:1")

	RenderData(c, http.StatusOK, gin.H{"deleted": true})
}
