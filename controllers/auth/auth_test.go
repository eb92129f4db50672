package authControllers_test

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
	"github.com/stockroomhq/inventory-api/testutil"
)

func signupBody(email string) map[string]string {
	return map[string]string{
		"name":            "Ada Lovelace",
		"email":           email,
		"password":        testutil.DefaultPassword,
		"passwordConfirm": testutil.DefaultPassword,
	}
}

func TestSignup(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	w := testutil.Request(t, r, http.MethodPost, "/api/auth/signup", "", signupBody("ada@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	var body response.Body
	testutil.Decode(t, w, &body)
	assert.Equal(t, "success", body.Status)
	data := body.Data.(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	// Token also arrives as an httpOnly cookie.
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "jwt", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	var user models.User
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, testutil.DefaultPassword, user.Password)
}

func TestSignupDuplicateEmail(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	testutil.CreateUser(t, db, "Ada", "ada@example.com", models.RoleUser)

	w := testutil.Request(t, r, http.MethodPost, "/api/auth/signup", "", signupBody("ada@example.com"))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body response.Body
	testutil.Decode(t, w, &body)
	assert.Equal(t, "Email already in use", body.Message)
}

func TestSignupPasswordMismatch(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	req := signupBody("ada@example.com")
	req["passwordConfirm"] = "somethingelse1234"

	w := testutil.Request(t, r, http.MethodPost, "/api/auth/signup", "", req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body response.Body
	testutil.Decode(t, w, &body)
	assert.Equal(t, "Passwords do not match", body.Message)
}

func TestLogin(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	testutil.CreateUser(t, db, "Ada", "ada@example.com", models.RoleUser)

	w := testutil.Request(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": testutil.DefaultPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.Request(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	user := testutil.CreateUser(t, db, "Ada", "ada@example.com", models.RoleUser)
	token := testutil.Token(t, cfg, user)

	w := testutil.Request(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body response.Body
	testutil.Decode(t, w, &body)
	data := body.Data.(map[string]interface{})
	assert.Equal(t, "ada@example.com", data["user"].(map[string]interface{})["email"])

	w = testutil.Request(t, r, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// A token issued before the last password change must be rejected.
func TestTokenInvalidAfterPasswordChange(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	user := testutil.CreateUser(t, db, "Ada", "ada@example.com", models.RoleUser)
	require.NoError(t, db.Model(user).
		Update("password_changed_at", time.Now().Add(-time.Hour)).Error)

	issuedAt := time.Now().Add(-time.Minute)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(cfg.JWTExpiresIn)),
	}
	oldToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	w := testutil.Request(t, r, http.MethodGet, "/api/auth/me", oldToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, user.SetPassword("brand-new-password"))
	require.NoError(t, db.Save(user).Error)

	w = testutil.Request(t, r, http.MethodGet, "/api/auth/me", oldToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body response.Body
	testutil.Decode(t, w, &body)
	assert.Contains(t, body.Message, "recently changed password")
}

func TestPasswordResetFlow(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	testutil.CreateUser(t, db, "Ada", "ada@example.com", models.RoleUser)

	w := testutil.Request(t, r, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": "ada@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body response.Body
	testutil.Decode(t, w, &body)
	resetToken := body.Data.(map[string]interface{})["resetToken"].(string)
	require.NotEmpty(t, resetToken)

	w = testutil.Request(t, r, http.MethodPatch, "/api/auth/reset-password/"+resetToken, "", map[string]string{
		"password": "reset-password-99",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.Request(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "reset-password-99",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Token is single-use.
	w = testutil.Request(t, r, http.MethodPatch, "/api/auth/reset-password/"+resetToken, "", map[string]string{
		"password": "another-password-99",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
