package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanignacioalonso/prueba-backend-global-think/pkg/helpers"
)

func newAuthRouter(jwt *helpers.JWTManager, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	chain := append([]gin.HandlerFunc{Auth(jwt)}, guards...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(CtxUserIDKey),
			"role":    c.GetString(CtxUserRoleKey),
		})
	})
	engine.GET("/protected", chain...)
	return engine
}

func request(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request(newAuthRouter(jwt), "").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request(newAuthRouter(jwt), "not.a.jwt").Code)
	})

	t.Run("valid token populates identity", func(t *testing.T) {
		token, _, err := jwt.GenerateAccessToken("uid-1", "a@b.com", "admin")
		require.NoError(t, err)

		w := request(newAuthRouter(jwt), token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "uid-1")
		assert.Contains(t, w.Body.String(), "admin")
	})
}

func TestRequireRoles(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	adminToken, _, err := jwt.GenerateAccessToken("uid-1", "a@b.com", "admin")
	require.NoError(t, err)
	userToken, _, err := jwt.GenerateAccessToken("uid-2", "b@b.com", "user")
	require.NoError(t, err)

	adminOnly := newAuthRouter(jwt, RequireRoles("admin"))
	assert.Equal(t, http.StatusOK, request(adminOnly, adminToken).Code)
	assert.Equal(t, http.StatusForbidden, request(adminOnly, userToken).Code)

	either := newAuthRouter(jwt, RequireRoles("admin", "user"))
	assert.Equal(t, http.StatusOK, request(either, adminToken).Code)
	assert.Equal(t, http.StatusOK, request(either, userToken).Code)
}
