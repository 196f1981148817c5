package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trolli/internal/auth"
	"trolli/internal/middleware"
)

func setupRouter(tokens *auth.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthRequired(tokens), func(c *gin.Context) {
		username, _ := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user": username})
	})
	return r
}

func TestAuthRequired_ValidToken(t *testing.T) {
	tokens := auth.NewManager("test-secret", 1)
	r := setupRouter(tokens)

	token, err := tokens.GenerateToken("eva")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"eva"`)
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	r := setupRouter(auth.NewManager("test-secret", 1))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestAuthRequired_BadFormat(t *testing.T) {
	r := setupRouter(auth.NewManager("test-secret", 1))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Bearer {token}")
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	r := setupRouter(auth.NewManager("test-secret", 1))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestAdminOnly_RedirectsNonAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/members",
		func(c *gin.Context) { c.Set(middleware.UserKey, "eva") },
		middleware.AdminOnly(),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) },
	)

	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/api/views/boards", w.Header().Get("Location"))
}

func TestAdminOnly_PassesAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/members",
		func(c *gin.Context) { c.Set(middleware.UserKey, "admin") },
		middleware.AdminOnly(),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)

	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
