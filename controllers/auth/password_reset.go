package authControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/config"
	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// ForgotPassword stores a hashed, time-limited reset token for the user.
// The plain token is returned in the response; mail delivery is left to the
// caller of the API.
func ForgotPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			response.Error(c, http.StatusNotFound, "There is no user with that email address")
			return
		}

		token, err := user.CreatePasswordResetToken()
		if err != nil {
			response.InternalError(c, err, "Error generating reset token")
			return
		}
		if err := db.Save(&user).Error; err != nil {
			response.InternalError(c, err, "Error generating reset token")
			return
		}

		response.Success(c, http.StatusOK, "Reset token generated successfully", gin.H{
			"resetToken": token,
		})
	}
}

// ResetPassword consumes a reset token and sets the new password.
func ResetPassword(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		hashed := models.HashResetToken(c.Param("token"))

		var user models.User
		err := db.Where("password_reset_token = ? AND password_reset_expires > ?", hashed, time.Now()).
			First(&user).Error
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Token is invalid or has expired")
			return
		}

		if err := user.SetPassword(req.Password); err != nil {
			response.InternalError(c, err, "Error resetting password")
			return
		}
		user.PasswordResetToken = ""
		user.PasswordResetExpires = time.Time{}
		if err := db.Save(&user).Error; err != nil {
			response.InternalError(c, err, "Error resetting password")
			return
		}

		sendToken(c, cfg, &user, http.StatusOK)
	}
}
