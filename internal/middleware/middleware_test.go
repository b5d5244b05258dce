package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"studentmart-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/probe", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("AnonymousPassesThrough", func(t *testing.T) {
		r := newRouter(Authenticate())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ValidBearerToken", func(t *testing.T) {
		token, err := user.GenerateJWT("u-1", string(user.RoleUser), "u@campus.edu")
		require.NoError(t, err)

		r := gin.New()
		r.Use(Authenticate(), RequireAuth())
		r.GET("/probe", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GarbageTokenTreatedAsAnonymous", func(t *testing.T) {
		r := newRouter(Authenticate(), RequireAuth())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	serve := func(t *testing.T, role user.Role) int {
		t.Helper()
		token, err := user.GenerateJWT("u-1", string(role), "u@campus.edu")
		require.NoError(t, err)

		r := newRouter(Authenticate(), RequireRole(user.RoleAdmin))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve(t, user.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, serve(t, user.RoleUser))

	t.Run("AnonymousGets401", func(t *testing.T) {
		r := newRouter(Authenticate(), RequireRole(user.RoleAdmin))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRateLimiter_StrictTierBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter()
	r := gin.New()
	r.Use(rl.Middleware())
	r.POST("/api/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	var last int
	for i := 0; i < burstStrict+1; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		last = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestRateLimiter_SeparateIdentities(t *testing.T) {
	rl := NewRateLimiter()
	r := gin.New()
	r.Use(rl.Middleware())
	r.POST("/api/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Exhaust one caller's strict bucket.
	for i := 0; i < burstStrict+1; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
	}

	// A different caller is unaffected.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
