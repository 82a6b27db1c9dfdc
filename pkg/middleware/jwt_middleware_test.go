package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

func authTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-signing-key")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(), func(c *gin.Context) {
		id, ok := UserIDFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	r.GET("/admin", JWTAuthMiddleware(), RoleMiddleware("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doAuthRequest(r *gin.Engine, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := authTestRouter(t)
	userID := uuid.New()
	token, err := utils.CreateToken(userID, "user")
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		w := doAuthRequest(r, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authorization header is required")
	})

	t.Run("not bearer", func(t *testing.T) {
		w := doAuthRequest(r, "/me", "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Bearer")
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doAuthRequest(r, "/me", "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or expired token")
	})

	t.Run("valid token", func(t *testing.T) {
		w := doAuthRequest(r, "/me", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})
}

func TestRoleMiddleware(t *testing.T) {
	r := authTestRouter(t)

	userToken, err := utils.CreateToken(uuid.New(), "user")
	require.NoError(t, err)
	adminToken, err := utils.CreateToken(uuid.New(), "admin")
	require.NoError(t, err)

	w := doAuthRequest(r, "/admin", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doAuthRequest(r, "/admin", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
