package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"creatorhub/config"
	"creatorhub/internal/app/http/middleware"
	"creatorhub/testutils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID = "aaaaaaaa-1111-4111-8111-aaaaaaaaaaaa"

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	config.JWT_SECRET = "test-secret"
	m.Run()
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func identityEcho(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id":    c.GetString("user_id"),
		"is_creator": c.GetBool("is_creator"),
	})
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.GET("/me", middleware.AuthMiddleware(), identityEcho)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsWrongSignature(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.GET("/me", middleware.AuthMiddleware(), identityEcho)

	token := signToken(t, "some-other-secret", jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.GET("/me", middleware.AuthMiddleware(), identityEcho)

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.GET("/me", middleware.AuthMiddleware(), identityEcho)

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id":    userID,
		"handle":     "alice",
		"is_creator": true,
		"is_member":  true,
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID)
	assert.Contains(t, w.Body.String(), `"is_creator":true`)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.GET("/post", middleware.OptionalAuthMiddleware(), identityEcho)

	req := httptest.NewRequest(http.MethodGet, "/post", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// No header means anonymous, not an error.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)
}

func TestOptionalAuthStillRejectsGarbageTokens(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.GET("/post", middleware.OptionalAuthMiddleware(), identityEcho)

	req := httptest.NewRequest(http.MethodGet, "/post", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
