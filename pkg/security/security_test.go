package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(middlewares ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func do(r http.Handler, method, host string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ping", nil)
	req.Host = host
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAllowedHosts(t *testing.T) {
	r := newRouter(AllowedHosts([]string{"quizfy.example", ".school.test"}))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "quizfy.example:8080", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "school.test", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "cs.school.test", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "evil.example", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "notschool.test", nil).Code)

	open := newRouter(AllowedHosts(nil))
	assert.Equal(t, http.StatusOK, do(open, http.MethodGet, "anything", nil).Code)
}

func TestCORSEchoesOnlyListedOrigins(t *testing.T) {
	r := newRouter(CORS([]string{"http://localhost:3000"}))

	w := do(r, http.MethodGet, "api", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = do(r, http.MethodGet, "api", map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodOptions, "api", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSecureHeaders(t *testing.T) {
	w := do(newRouter(Secure()), http.MethodGet, "api", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))

	rl.Update(3, time.Hour)
	assert.True(t, rl.Allow("10.0.0.1"))

	r := newRouter(rl.Middleware())
	codes := []int{}
	for i := 0; i < 4; i++ {
		codes = append(codes, do(r, http.MethodGet, "api", nil).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
