// Package store is the only layer that talks to Postgres. Read methods
// materialize the "with actor info" views the feed package shapes;
// write methods publish a live.Event after the row is committed so
// connected clients know to reload.
package store

import (
	"context"

	"worldconnect/internal/feed"
	"worldconnect/internal/live"
	"worldconnect/internal/models"

	"gorm.io/gorm"
)

type Store struct {
	db  *gorm.DB
	hub *live.Hub
}

func New(db *gorm.DB, hub *live.Hub) *Store {
	return &Store{db: db, hub: hub}
}

func (s *Store) ArticleByAid(aid string) (*models.Article, error) {
	var article models.Article
	if err := s.db.Preload("User").Where("aid = ?", aid).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *Store) ArticleByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := s.db.First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *Store) CommentByCid(cid string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Where("cid = ?", cid).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *Store) ReplyByRid(rid string) (*models.Reply, error) {
	var reply models.Reply
	if err := s.db.Where("rid = ?", rid).First(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// ArticleFeed returns one page of the feed, newest first, with authors
// preloaded.
func (s *Store) ArticleFeed(ctx context.Context, offset, limit int) ([]models.Article, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Article{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []models.Article
	err := s.db.WithContext(ctx).Preload("User").
		Order("created_at DESC, id ASC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// FillCounts batch-fills the comment and reaction counters on a page of
// articles with two grouped queries.
func (s *Store) FillCounts(articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	ids := make([]uint, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}

	type countRow struct {
		ArticleID uint
		Count     int
	}

	var commentCounts []countRow
	err := s.db.Model(&models.Comment{}).
		Select("article_id, COUNT(*) as count").
		Where("article_id IN ?", ids).
		Group("article_id").
		Scan(&commentCounts).Error
	if err != nil {
		return err
	}

	var reactionCounts []countRow
	err = s.db.Model(&models.Reaction{}).
		Select("article_id, COUNT(*) as count").
		Where("article_id IN ?", ids).
		Group("article_id").
		Scan(&reactionCounts).Error
	if err != nil {
		return err
	}

	comments := make(map[uint]int, len(commentCounts))
	for _, r := range commentCounts {
		comments[r.ArticleID] = r.Count
	}
	reactions := make(map[uint]int, len(reactionCounts))
	for _, r := range reactionCounts {
		reactions[r.ArticleID] = r.Count
	}

	for i := range articles {
		articles[i].CommentCount = comments[articles[i].ID]
		articles[i].ReactionCount = reactions[articles[i].ID]
	}
	return nil
}

// CommentsForArticle materializes the comments-with-actor-info view for
// one article, newest first. The id tiebreak keeps the order stable for
// rows sharing a timestamp. Authors are joined loosely: a comment whose
// author row is gone still renders, with empty actor fields.
func (s *Store) CommentsForArticle(ctx context.Context, articleID uint) ([]feed.Comment, error) {
	rows := []feed.Comment{}
	err := s.db.WithContext(ctx).Table("comments").
		Select("comments.cid AS id, articles.aid AS article_id, users.uid AS actor_id, users.first_name, users.last_name, comments.text, comments.created_at").
		Joins("JOIN articles ON articles.id = comments.article_id").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.article_id = ?", articleID).
		Order("comments.created_at DESC, comments.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RepliesForArticle materializes the replies-with-actor-info view for
// every comment of one article, oldest first. Replies whose parent
// comment was deleted do not join and are simply absent, which is the
// same outcome the thread builder would produce.
func (s *Store) RepliesForArticle(ctx context.Context, articleID uint) ([]feed.Reply, error) {
	rows := []feed.Reply{}
	err := s.db.WithContext(ctx).Table("replies").
		Select("replies.rid AS id, comments.cid AS parent_id, users.uid AS actor_id, users.first_name, users.last_name, replies.text, replies.created_at").
		Joins("JOIN comments ON comments.id = replies.comment_id").
		Joins("LEFT JOIN users ON users.id = replies.user_id").
		Where("comments.article_id = ?", articleID).
		Order("replies.created_at ASC, replies.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReactionWindow returns an offset-windowed read over the
// reactions-with-actor-info view for one article, newest first, for use
// with feed.FetchAll.
func (s *Store) ReactionWindow(articleID uint) feed.Window[feed.Reaction] {
	return func(ctx context.Context, offset, limit int) ([]feed.Reaction, error) {
		rows := []feed.Reaction{}
		err := s.db.WithContext(ctx).Table("reactions").
			Select("articles.aid AS article_id, users.uid AS actor_id, users.first_name, users.last_name, reactions.type, reactions.created_at").
			Joins("JOIN articles ON articles.id = reactions.article_id").
			Joins("LEFT JOIN users ON users.id = reactions.user_id").
			Where("reactions.article_id = ?", articleID).
			Order("reactions.created_at DESC, reactions.id ASC").
			Offset(offset).Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		return rows, nil
	}
}

// AllReactions pulls the complete reaction collection for one article
// into memory, paging through the window until exhaustion.
func (s *Store) AllReactions(ctx context.Context, articleID uint) ([]feed.Reaction, error) {
	return feed.FetchAll(ctx, s.ReactionWindow(articleID), feed.DefaultPageSize)
}

// UserReactionMap returns the signed-in user's reactions keyed by
// public article id, for marking active reaction buttons in the feed.
func (s *Store) UserReactionMap(ctx context.Context, userID uint) (map[string][]models.ReactionType, error) {
	type row struct {
		Aid  string
		Type models.ReactionType
	}
	var rows []row
	err := s.db.WithContext(ctx).Table("reactions").
		Select("articles.aid, reactions.type").
		Joins("JOIN articles ON articles.id = reactions.article_id").
		Where("reactions.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string][]models.ReactionType, len(rows))
	for _, r := range rows {
		out[r.Aid] = append(out[r.Aid], r.Type)
	}
	return out, nil
}
