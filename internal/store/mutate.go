package store

import (
	"context"

	"worldconnect/internal/live"
	"worldconnect/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Store) publish(table, action, articleAid string) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(live.Event{
		Table:     table,
		Action:    action,
		ArticleID: articleAid,
	})
}

func (s *Store) articleAid(articleID uint) string {
	var article models.Article
	if err := s.db.Select("aid").First(&article, articleID).Error; err != nil {
		return ""
	}
	return article.Aid
}

func (s *Store) CreateArticle(ctx context.Context, user *models.User, text, imageURL, videoURL string) (*models.Article, error) {
	article := models.Article{
		Aid:      uuid.NewString(),
		UserID:   user.ID,
		Text:     text,
		ImageURL: imageURL,
		VideoURL: videoURL,
	}
	if err := s.db.WithContext(ctx).Create(&article).Error; err != nil {
		return nil, err
	}
	article.User = *user
	s.publish("articles", "insert", article.Aid)
	return &article, nil
}

func (s *Store) UpdateArticleText(ctx context.Context, article *models.Article, text string) error {
	err := s.db.WithContext(ctx).Model(article).Update("text", text).Error
	if err != nil {
		return err
	}
	s.publish("articles", "update", article.Aid)
	return nil
}

// DeleteArticle removes the article with its comments, replies and
// reactions in one transaction. Fan-out rows are deleted explicitly
// rather than with database cascades so a partial schema migration
// never strands them.
func (s *Store) DeleteArticle(ctx context.Context, article *models.Article) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.Comment{}).Select("id").Where("article_id = ?", article.ID)
		if err := tx.Where("comment_id IN (?)", sub).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(article).Error
	})
	if err != nil {
		return err
	}
	s.publish("articles", "delete", article.Aid)
	return nil
}

func (s *Store) InsertComment(ctx context.Context, user *models.User, article *models.Article, text string) (*models.Comment, error) {
	comment := models.Comment{
		Cid:       uuid.NewString(),
		ArticleID: article.ID,
		UserID:    user.ID,
		Text:      text,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	comment.User = *user
	s.publish("comments", "insert", article.Aid)
	return &comment, nil
}

func (s *Store) UpdateCommentText(ctx context.Context, comment *models.Comment, text string) error {
	err := s.db.WithContext(ctx).Model(comment).Update("text", text).Error
	if err != nil {
		return err
	}
	s.publish("comments", "update", s.articleAid(comment.ArticleID))
	return nil
}

// DeleteComment removes one comment. Its replies are left in place on
// purpose: reads join through the parent, so orphaned replies simply
// stop appearing.
func (s *Store) DeleteComment(ctx context.Context, comment *models.Comment) error {
	if err := s.db.WithContext(ctx).Delete(comment).Error; err != nil {
		return err
	}
	s.publish("comments", "delete", s.articleAid(comment.ArticleID))
	return nil
}

func (s *Store) InsertReply(ctx context.Context, user *models.User, comment *models.Comment, text string) (*models.Reply, error) {
	reply := models.Reply{
		Rid:       uuid.NewString(),
		CommentID: comment.ID,
		UserID:    user.ID,
		Text:      text,
	}
	if err := s.db.WithContext(ctx).Create(&reply).Error; err != nil {
		return nil, err
	}
	reply.User = *user
	s.publish("replies", "insert", s.articleAid(comment.ArticleID))
	return &reply, nil
}

func (s *Store) UpdateReplyText(ctx context.Context, reply *models.Reply, text string) error {
	err := s.db.WithContext(ctx).Model(reply).Update("text", text).Error
	if err != nil {
		return err
	}
	s.publish("replies", "update", s.replyArticleAid(reply))
	return nil
}

func (s *Store) DeleteReply(ctx context.Context, reply *models.Reply) error {
	if err := s.db.WithContext(ctx).Delete(reply).Error; err != nil {
		return err
	}
	s.publish("replies", "delete", s.replyArticleAid(reply))
	return nil
}

func (s *Store) replyArticleAid(reply *models.Reply) string {
	var aid string
	s.db.Table("comments").
		Select("articles.aid").
		Joins("JOIN articles ON articles.id = comments.article_id").
		Where("comments.id = ?", reply.CommentID).
		Scan(&aid)
	return aid
}

// ToggleReaction flips one (user, article, type) reaction: present rows
// are deleted, absent ones inserted. The select and write run in a
// transaction so two rapid taps cannot double-insert past the unique
// index.
func (s *Store) ToggleReaction(ctx context.Context, user *models.User, article *models.Article, typ models.ReactionType) (added bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		res := tx.Where("article_id = ? AND user_id = ? AND type = ?", article.ID, user.ID, typ).
			First(&existing)
		if res.Error == nil {
			return tx.Delete(&existing).Error
		}
		if res.Error != gorm.ErrRecordNotFound {
			return res.Error
		}
		added = true
		return tx.Create(&models.Reaction{
			Rid:       uuid.NewString(),
			ArticleID: article.ID,
			UserID:    user.ID,
			Type:      typ,
		}).Error
	})
	if err != nil {
		return false, err
	}
	action := "delete"
	if added {
		action = "insert"
	}
	s.publish("reactions", action, article.Aid)
	return added, nil
}
