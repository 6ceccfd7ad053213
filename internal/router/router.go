package router

import (
	"worldconnect/internal/db"
	"worldconnect/internal/handlers"
	"worldconnect/internal/live"
	"worldconnect/internal/middleware"
	"worldconnect/internal/services"
	"worldconnect/internal/store"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, hub *live.Hub) {
	st := store.New(db.DB, hub)
	mail := services.NewMailService()
	notifier := services.NewNotifier(hub, mail)

	// Handlers
	authHandler := handlers.NewAuthHandler(mail)
	articleHandler := handlers.NewArticleHandler(st)
	commentHandler := handlers.NewCommentHandler(st, notifier)
	reactionHandler := handlers.NewReactionHandler(st)
	userHandler := handlers.NewUserHandler()
	notificationHandler := handlers.NewNotificationHandler()
	imageHandler := handlers.NewImageHandler()
	adminHandler := handlers.NewAdminHandler()
	liveHandler := handlers.NewLiveHandler(hub)

	// Public routes
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/me", authHandler.Me)

	r.GET("/articles", articleHandler.Feed)
	r.GET("/articles/:aid", articleHandler.Get)
	r.GET("/articles/:aid/comments", commentHandler.ListThreads)
	r.GET("/articles/:aid/reactions", reactionHandler.Summary)
	r.POST("/articles/:aid/reactions/reveal", reactionHandler.Reveal)

	r.GET("/users/:uid", userHandler.Profile)

	r.GET("/ws/live", liveHandler.Serve)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/articles", articleHandler.Create)
		authorized.PUT("/articles/:aid", articleHandler.Update)
		authorized.DELETE("/articles/:aid", articleHandler.Delete)

		authorized.POST("/articles/:aid/comments", commentHandler.CreateComment)
		authorized.PUT("/comments/:cid", commentHandler.UpdateComment)
		authorized.DELETE("/comments/:cid", commentHandler.DeleteComment)
		authorized.POST("/comments/:cid/replies", commentHandler.CreateReply)
		authorized.PUT("/replies/:rid", commentHandler.UpdateReply)
		authorized.DELETE("/replies/:rid", commentHandler.DeleteReply)

		authorized.POST("/articles/:aid/reactions/:type", reactionHandler.Toggle)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)

		authorized.POST("/upload", imageHandler.Upload)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired())
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/users", adminHandler.Users)
		admin.POST("/users/:uid/role", adminHandler.SetRole)
	}
}
