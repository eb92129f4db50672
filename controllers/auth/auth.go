package authControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/config"
	"github.com/stockroomhq/inventory-api/middleware"
	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

type SignupRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=50"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
}

// SignToken issues an HS256 token carrying the user id and expiry.
func SignToken(cfg *config.Config, userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTExpiresIn)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// sendToken sets the httpOnly cookie and returns the token in the body too.
func sendToken(c *gin.Context, cfg *config.Config, user *models.User, code int) {
	token, err := SignToken(cfg, user.ID)
	if err != nil {
		response.InternalError(c, err, "Error signing token")
		return
	}

	maxAge := int(cfg.JWTExpiresIn.Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("jwt", token, maxAge, "/", "", cfg.IsProduction(), true)

	response.Success(c, code, "Success", gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Signup registers a new user and logs them in.
func Signup(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		if req.Password != req.PasswordConfirm {
			response.Error(c, http.StatusBadRequest, "Passwords do not match")
			return
		}

		var existing models.User
		err := db.Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			response.Error(c, http.StatusBadRequest, "Email already in use")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			response.InternalError(c, err, "Error creating user")
			return
		}

		user := models.User{
			Name:  req.Name,
			Email: req.Email,
			Role:  models.RoleUser,
		}
		if err := user.SetPassword(req.Password); err != nil {
			response.InternalError(c, err, "Error creating user")
			return
		}
		if err := db.Create(&user).Error; err != nil {
			response.DBError(c, err, "User not found")
			return
		}

		sendToken(c, cfg, &user, http.StatusCreated)
	}
}

// Login authenticates by email and password.
func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Please provide email and password")
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if !user.CheckPassword(req.Password) {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		sendToken(c, cfg, &user, http.StatusOK)
	}
}

// Logout expires the jwt cookie.
func Logout(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("jwt", "", -1, "/", "", cfg.IsProduction(), true)
		response.Success(c, http.StatusOK, "Logged out successfully", nil)
	}
}

// Me returns the authenticated user.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		response.Success(c, http.StatusOK, "Success", gin.H{
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
		})
	}
}

// UpdatePassword changes the current user's password and re-issues a token.
func UpdatePassword(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdatePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		user := middleware.CurrentUser(c)
		if !user.CheckPassword(req.CurrentPassword) {
			response.Error(c, http.StatusUnauthorized, "Your current password is incorrect")
			return
		}
		if req.NewPassword != req.PasswordConfirm {
			response.Error(c, http.StatusBadRequest, "New passwords do not match")
			return
		}

		if err := user.SetPassword(req.NewPassword); err != nil {
			response.InternalError(c, err, "Error updating password")
			return
		}
		if err := db.Save(user).Error; err != nil {
			response.InternalError(c, err, "Error updating password")
			return
		}

		sendToken(c, cfg, user, http.StatusOK)
	}
}
