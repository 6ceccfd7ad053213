package services

import (
	"fmt"
	"sync"
	"time"

	"worldconnect/internal/db"
	"worldconnect/internal/live"
	"worldconnect/internal/models"
	"worldconnect/internal/utils"

	"go.uber.org/zap"
)

// noticeTask is one queued notification.
type noticeTask struct {
	RecipientID uint
	ActorID     uint
	Type        models.NotificationType
	Reason      string
	ArticleAid  string
}

func (t noticeTask) key() string {
	return fmt.Sprintf("%d:%d:%s:%s", t.RecipientID, t.ActorID, t.Type, t.ArticleAid)
}

// Notifier creates notification rows off the request path. Tasks go
// through a buffered queue with dedup so a burst of identical events
// produces one row, and the worker flushes in small batches.
type Notifier struct {
	queue   chan noticeTask
	pending map[string]bool
	mu      sync.Mutex

	hub  *live.Hub
	mail *MailService
}

func NewNotifier(hub *live.Hub, mail *MailService) *Notifier {
	n := &Notifier{
		queue:   make(chan noticeTask, 1000),
		pending: make(map[string]bool),
		hub:     hub,
		mail:    mail,
	}
	go n.worker()
	return n
}

// NotifyComment tells the article author someone commented.
func (n *Notifier) NotifyComment(actor *models.User, article *models.Article) {
	if actor.ID == article.UserID {
		return
	}
	n.schedule(noticeTask{
		RecipientID: article.UserID,
		ActorID:     actor.ID,
		Type:        models.NotificationTypeCommentArticle,
		Reason:      utils.DisplayName(actor.FirstName, actor.LastName) + " commented on your article",
		ArticleAid:  article.Aid,
	})
}

// NotifyReply tells the comment author someone replied.
func (n *Notifier) NotifyReply(actor *models.User, comment *models.Comment, articleAid string) {
	if actor.ID == comment.UserID {
		return
	}
	n.schedule(noticeTask{
		RecipientID: comment.UserID,
		ActorID:     actor.ID,
		Type:        models.NotificationTypeReplyComment,
		Reason:      utils.DisplayName(actor.FirstName, actor.LastName) + " replied to your comment",
		ArticleAid:  articleAid,
	})
}

// schedule queues a task without blocking the caller. Duplicates still
// in flight are skipped.
func (n *Notifier) schedule(task noticeTask) {
	key := task.key()

	n.mu.Lock()
	if n.pending[key] {
		n.mu.Unlock()
		return
	}
	n.pending[key] = true
	n.mu.Unlock()

	select {
	case n.queue <- task:
	default:
		n.mu.Lock()
		delete(n.pending, key)
		n.mu.Unlock()
		zap.L().Warn("notification queue full, dropping task",
			zap.Uint("recipient", task.RecipientID),
			zap.String("type", string(task.Type)))
	}
}

func (n *Notifier) worker() {
	batch := make([]noticeTask, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case task := <-n.queue:
			batch = append(batch, task)
			if len(batch) >= 50 {
				n.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				n.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (n *Notifier) processBatch(tasks []noticeTask) {
	for _, task := range tasks {
		n.deliver(task)

		n.mu.Lock()
		delete(n.pending, task.key())
		n.mu.Unlock()
	}
}

func (n *Notifier) deliver(task noticeTask) {
	actorID := task.ActorID
	notification := models.Notification{
		UserID:    task.RecipientID,
		ActorID:   &actorID,
		Type:      task.Type,
		Reason:    task.Reason,
		ArticleID: task.ArticleAid,
	}
	if err := db.DB.Create(&notification).Error; err != nil {
		zap.L().Error("create notification",
			zap.Uint("recipient", task.RecipientID), zap.Error(err))
		return
	}

	var recipient models.User
	if err := db.DB.First(&recipient, task.RecipientID).Error; err != nil {
		return
	}

	if n.hub != nil {
		n.hub.Publish(live.Event{
			Table:     "notifications",
			Action:    "insert",
			ArticleID: task.ArticleAid,
			UserID:    recipient.UID,
		})
	}

	if n.mail != nil && task.Type == models.NotificationTypeReplyComment {
		n.mail.SendReplyNotification(recipient.Email, task.Reason, task.ArticleAid)
	}
}
