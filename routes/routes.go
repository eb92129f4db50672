package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/config"
	"github.com/stockroomhq/inventory-api/middleware"
	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/payment"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

// NewRouter builds the fully wired engine used by main and the tests.
func NewRouter(db *gorm.DB, gateway *payment.Client, cfg *config.Config) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", cfg.UploadDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Server is running"})
	})

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound,
			fmt.Sprintf("Cannot find %s on this server!", c.Request.URL.Path))
	})

	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	SetupAuthRoutes(api, db, cfg)
	SetupProductRoutes(api, db, cfg)
	SetupOrderRoutes(api, db, gateway, cfg)

	return r
}

// registerValidators installs custom binding validators on gin's engine.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return models.ValidOrderStatus(fl.Field().String())
		})
	}
}
