package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/pkg/response"
)

func TestDBError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "record not found",
			err:      gorm.ErrRecordNotFound,
			wantCode: http.StatusNotFound,
			wantMsg:  "No order found with that ID",
		},
		{
			name:     "postgres duplicate key",
			err:      errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Duplicate field value. Please use another value!",
		},
		{
			name:     "sqlite unique violation",
			err:      errors.New("UNIQUE constraint failed: users.email"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Duplicate field value. Please use another value!",
		},
		{
			name:     "postgres cast error",
			err:      errors.New(`ERROR: invalid input syntax for type bigint: "abc" (SQLSTATE 22P02)`),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid value provided. Please check your input!",
		},
		{
			name:     "unexpected error",
			err:      errors.New("connection reset by peer"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			response.DBError(c, tc.err, "No order found with that ID")

			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantMsg != "" {
				var body response.Body
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tc.wantMsg, body.Message)
			}
		})
	}
}
