package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/config"
	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/payment"
	"github.com/stockroomhq/inventory-api/pkg/logger"
	"github.com/stockroomhq/inventory-api/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := initDatabase(cfg)

	gateway := payment.NewClient(cfg.PaystackSecretKey, cfg.PaystackBaseURL)

	r := routes.NewRouter(db, gateway, cfg)

	logger.L.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.L.Fatal("server stopped", zap.Error(err))
	}
}

func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.L.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		logger.L.Fatal("auto-migrate failed", zap.Error(err))
	}

	return db
}
