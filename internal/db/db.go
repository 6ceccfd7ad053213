package db

import (
	"os"

	"worldconnect/internal/models"
	"worldconnect/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=worldconnect port=5432 sslmode=disable TimeZone=UTC"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.L().Fatal("connect to database", zap.Error(err))
	}

	zap.L().Info("database connection established")

	err = DB.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Comment{},
		&models.Reply{},
		&models.Reaction{},
		&models.Notification{},
	)
	if err != nil {
		zap.L().Fatal("migrate database", zap.Error(err))
	}
	zap.L().Info("database migration completed")

	seedAdmin()
}

// seedAdmin creates the initial admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no admin exists yet.
func seedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	DB.Model(&models.User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		zap.L().Info("admin already seeded, skipping")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		zap.L().Error("hash admin password", zap.Error(err))
		return
	}

	admin := models.User{
		UID:       uuid.NewString(),
		Email:     email,
		Password:  hash,
		FirstName: "World",
		LastName:  "Connect",
		Role:      "admin",
	}
	if err := DB.Create(&admin).Error; err != nil {
		zap.L().Error("create admin account", zap.String("email", email), zap.Error(err))
		return
	}
	zap.L().Info("initial admin account created", zap.String("email", email))
}
