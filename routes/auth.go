package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authControllers "github.com/stockroomhq/inventory-api/controllers/auth"

	"github.com/stockroomhq/inventory-api/config"
	"github.com/stockroomhq/inventory-api/middleware"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authControllers.Signup(db, cfg))
		auth.POST("/login", authControllers.Login(db, cfg))
		auth.POST("/forgot-password", authControllers.ForgotPassword(db))
		auth.PATCH("/reset-password/:token", authControllers.ResetPassword(db, cfg))
	}

	protected := auth.Group("")
	protected.Use(middleware.Protect(db, cfg))
	{
		protected.GET("/me", authControllers.Me())
		protected.POST("/logout", authControllers.Logout(cfg))
		protected.PATCH("/update-password", authControllers.UpdatePassword(db, cfg))
	}
}
