package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/pkg/token"
)

func init() { gin.SetMode(gin.TestMode) }

func viewerEcho(c *gin.Context) {
	fromCtx := personalize.FromContext(c.Request.Context())
	id, _ := Viewer(c).ID()
	ctxID, _ := fromCtx.ID()
	c.JSON(http.StatusOK, gin.H{"id": id, "ctx": ctxID})
}

func TestOptionalAuth(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour)
	r := gin.New()
	r.GET("/", OptionalAuth(tokens), viewerEcho)

	raw, _, err := tokens.Issue("u1", "alice")
	require.NoError(t, err)

	cases := []struct {
		header string
		want   string
	}{
		{"", `{"ctx":"","id":""}`},
		{"Bearer garbage", `{"ctx":"","id":""}`},
		{"Bearer " + raw, `{"ctx":"u1","id":"u1"}`},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, c.want, w.Body.String())
	}
}

func TestRequireAuth(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour)
	r := gin.New()
	r.GET("/", RequireAuth(tokens), viewerEcho)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"statusCode":401,"error":"unauthorized request"}`, w.Body.String())

	raw, _, err := tokens.Issue("u1", "alice")
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+raw)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(NewIPRateLimiter(0.001, 2)), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "fixed")
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed", w.Header().Get(RequestIDHeader))
}

func TestViewerDefaultsToGuest(t *testing.T) {
	r := gin.New()
	r.GET("/", viewerEcho)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ctx":"","id":""}`, w.Body.String())
}
