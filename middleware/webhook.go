package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockroomhq/inventory-api/pkg/response"
)

// PaystackWebhookAuth recomputes the HMAC-SHA512 of the raw request body with
// the Paystack secret and compares it to the X-Paystack-Signature header.
// The body is restored for the downstream handler.
func PaystackWebhookAuth(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Failed to read request body")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		mac := hmac.New(sha512.New, []byte(secretKey))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))

		provided := c.GetHeader("X-Paystack-Signature")
		if provided == "" || !hmac.Equal([]byte(expected), []byte(provided)) {
			response.Error(c, http.StatusBadRequest, "Invalid webhook signature")
			return
		}

		c.Next()
	}
}
