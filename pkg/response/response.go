package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/pkg/logger"
)

// Body is the envelope every endpoint responds with.
type Body struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a success envelope with the given status code.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Body{Status: "success", Message: message, Data: data})
}

// Error writes an operational error. The message is surfaced to the client
// verbatim. 4xx codes render as "fail", everything else as "error".
func Error(c *gin.Context, code int, message string) {
	status := "error"
	if code >= 400 && code < 500 {
		status = "fail"
	}
	c.AbortWithStatusJSON(code, Body{Status: status, Message: message})
}

// InternalError logs an unexpected error and reduces it to a generic message
// in production. Development mode echoes the underlying error.
func InternalError(c *gin.Context, err error, message string) {
	logger.L.Error(message,
		zap.Error(err),
		zap.String("path", c.FullPath()),
	)
	if gin.Mode() == gin.ReleaseMode {
		Error(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, Body{
		Status:  "error",
		Message: message,
		Data:    gin.H{"error": err.Error()},
	})
}

// DBError translates data-store error shapes into client-facing responses.
func DBError(c *gin.Context, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		Error(c, http.StatusNotFound, notFoundMessage)
	case isDuplicateKey(err):
		Error(c, http.StatusBadRequest, "Duplicate field value. Please use another value!")
	case isInvalidInput(err):
		Error(c, http.StatusBadRequest, "Invalid value provided. Please check your input!")
	default:
		InternalError(c, err, "Database error")
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	// Postgres and SQLite phrase unique violations differently.
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// isInvalidInput matches the Postgres error for a value that cannot be cast
// to the column type, e.g. a non-numeric id in a path parameter.
func isInvalidInput(err error) bool {
	return strings.Contains(err.Error(), "invalid input syntax")
}
