package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/projects-backend/internal/httpapi/middleware"
)

func newCORSRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORS(middleware.NewOriginMatcher(origins)))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestOriginMatcher_ExactAndWildcard(t *testing.T) {
	m := middleware.NewOriginMatcher([]string{"https://app.example.com", "https://*.preview.example.com", ""})

	assert.True(t, m.Allows("https://app.example.com"))
	assert.True(t, m.Allows("https://pr-42.preview.example.com"))
	assert.False(t, m.Allows("https://evil.example.com"))
	assert.False(t, m.Allows("https://app.example.com.evil.com"))
}

func TestOriginMatcher_StarMatchesAnything(t *testing.T) {
	m := middleware.NewOriginMatcher([]string{"*"})
	assert.True(t, m.Allows("https://anything.at.all"))
}

func TestCORS_AllowedOriginEchoed(t *testing.T) {
	r := newCORSRouter([]string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rr.Header().Get("Vary"))
	assert.Equal(t, "GET,POST,PATCH,DELETE,OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", rr.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_DisallowedOriginRejectedForEveryMethod(t *testing.T) {
	r := newCORSRouter([]string{"https://app.example.com"})

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodOptions} {
		req := httptest.NewRequest(method, "/ping", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code, method)
		assert.JSONEq(t, `{"error":"Origin not allowed"}`, rr.Body.String(), method)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	r := newCORSRouter([]string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginHeaderStillStamped(t *testing.T) {
	r := newCORSRouter([]string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,POST,PATCH,DELETE,OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "86400", rr.Header().Get("Access-Control-Max-Age"))
}
