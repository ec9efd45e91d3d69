package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func runMiddleware(config JWTConfig, path, authHeader string) (*httptest.ResponseRecorder, bool, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	handler := JWTMiddleware(config)(func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)

	return rec, nextCalled, c
}

func TestJWTMiddleware(t *testing.T) {
	config := JWTConfig{
		Secret:    testSecret,
		Logger:    zap.NewNop(),
		SkipPaths: []string{"/health", "/metrics"},
	}

	t.Run("missing authorization header", func(t *testing.T) {
		rec, nextCalled, _ := runMiddleware(config, "/api/v1/organizations", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "MISSING_AUTH_HEADER")
		assert.False(t, nextCalled)
	})

	t.Run("header without bearer prefix", func(t *testing.T) {
		rec, nextCalled, _ := runMiddleware(config, "/api/v1/organizations", "Token abc")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_AUTH_FORMAT")
		assert.False(t, nextCalled)
	})

	t.Run("token signed with wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{"sub": "user-1"})
		rec, nextCalled, _ := runMiddleware(config, "/api/v1/organizations", "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
		assert.False(t, nextCalled)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		rec, nextCalled, _ := runMiddleware(config, "/api/v1/organizations", "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
		assert.False(t, nextCalled)
	})

	t.Run("token without subject", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"email": "user@example.com"})
		rec, nextCalled, _ := runMiddleware(config, "/api/v1/organizations", "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "MISSING_SUBJECT")
		assert.False(t, nextCalled)
	})

	t.Run("valid token populates context", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":   "user-1",
			"email": "user@example.com",
			"role":  "admin",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		rec, nextCalled, c := runMiddleware(config, "/api/v1/organizations", "Bearer "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, nextCalled)
		assert.Equal(t, "user-1", c.Get("user_id"))

		user, err := GetUserFromContext(c)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", user.UserID)
		assert.Equal(t, "user@example.com", user.Email)
		assert.Equal(t, "admin", user.Role)
	})

	t.Run("skip paths bypass validation", func(t *testing.T) {
		rec, nextCalled, _ := runMiddleware(config, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, nextCalled)
	})
}

func TestGetUserFromContext_NoUser(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, err := GetUserFromContext(c)
	assert.Error(t, err)
}
