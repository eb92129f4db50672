package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/config"
	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

// CurrentUserKey is where Protect stores the authenticated user in the
// request context.
const CurrentUserKey = "currentUser"

// Protect validates the bearer token (Authorization header or jwt cookie),
// re-fetches the user and rejects tokens issued before the last password
// change.
func Protect(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "You are not logged in! Please log in to get access.")
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || claims.Subject == "" || claims.IssuedAt == nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		var user models.User
		if err := db.First(&user, uint(userID)).Error; err != nil {
			response.Error(c, http.StatusUnauthorized, "The user belonging to this token no longer exists.")
			return
		}

		if user.ChangedPasswordAfter(claims.IssuedAt.Time) {
			response.Error(c, http.StatusUnauthorized, "User recently changed password! Please log in again.")
			return
		}

		c.Set(CurrentUserKey, &user)
		c.Next()
	}
}

// RequireRole restricts a route to the listed roles. Must run after Protect.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		for _, role := range roles {
			if user != nil && user.Role == role {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "You do not have permission to perform this action")
	}
}

// CurrentUser returns the user attached by Protect, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("jwt"); err == nil {
		return cookie
	}
	return ""
}
