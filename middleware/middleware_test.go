package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pestcontrol/models"
	"pestcontrol/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func adminRouter(verifier AuthVerifier) *gin.Engine {
	r := gin.New()
	r.GET("/admin", AdminAuthMiddleware(verifier), func(c *gin.Context) {
		admin, ok := AdminFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, admin)
	})
	return r
}

func TestAdminAuthMiddleware(t *testing.T) {
	verifier := utils.NewJWTVerifier("secret", time.Hour)
	r := adminRouter(verifier)

	adminToken, _, err := verifier.GenerateToken(models.AdminClaims{AdminID: "a1", Email: "a@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)
	otherToken, _, err := verifier.GenerateToken(models.AdminClaims{AdminID: "u1", Role: "editor"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + otherToken, http.StatusUnauthorized},
		{"valid admin", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAdminAuthMiddlewareExpiredToken(t *testing.T) {
	verifier := utils.NewJWTVerifier("secret", time.Nanosecond)
	token, _, err := verifier.GenerateToken(models.AdminClaims{AdminID: "a1", Role: models.RoleAdmin})
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	adminRouter(verifier).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestRateLimiterStoreExpiresIdleClients(t *testing.T) {
	store := newRateLimiterStore(1, 50*time.Millisecond)

	assert.True(t, store.getLimiter("10.0.0.1").Allow())
	assert.False(t, store.getLimiter("10.0.0.1").Allow())
	store.getLimiter("10.0.0.2")
	assert.Equal(t, 2, store.size())

	assert.Eventually(t, func() bool { return store.size() == 0 }, time.Second, 10*time.Millisecond)
	assert.True(t, store.getLimiter("10.0.0.1").Allow(), "an expired client starts with a fresh budget")
}

func TestRateLimiterStoreKeepsActiveClients(t *testing.T) {
	store := newRateLimiterStore(1, 200*time.Millisecond)
	first := store.getLimiter("10.0.0.1")
	for i := 0; i < 5; i++ {
		time.Sleep(60 * time.Millisecond)
		assert.Same(t, first, store.getLimiter("10.0.0.1"))
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// A different client has its own budget.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "10.0.0.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetClientIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.168.1.5:5555"
	assert.Equal(t, "192.168.1.5", getClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", " 1.2.3.4 ,5.6.7.8")
	assert.Equal(t, "1.2.3.4", getClientIP(c))
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Get("logger")
		assert.True(t, ok)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
