package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"editorial/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticAuth map[string]string

func (s staticAuth) Authenticate(token string) (string, bool) {
	id, ok := s[token]
	return id, ok
}

func perform(r http.Handler, method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminCookie(value string) *http.Cookie {
	return &http.Cookie{Name: utils.AdminCookieName, Value: value}
}

func newLimiter(t *testing.T, max int, window time.Duration) *Limiter {
	t.Helper()
	l := NewLimiter(max, window)
	t.Cleanup(l.Stop)
	return l
}

func TestAdminRequired(t *testing.T) {
	r := gin.New()
	reached := 0
	r.GET("/private", AdminRequired(staticAuth{"good": "admin-1"}), func(c *gin.Context) {
		reached++
		c.String(http.StatusOK, AdminIDFromContext(c))
	})

	w := perform(r, http.MethodGet, "/private", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/private", adminCookie("forged"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, reached)

	w = perform(r, http.MethodGet, "/private", adminCookie("good"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-1", w.Body.String())
	assert.Equal(t, 1, reached)
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/validation", func(c *gin.Context) {
		_ = c.Error(utils.NewValidationError("Validation failed", map[string]string{"title": "is required"}))
	})
	r.GET("/conflict", func(c *gin.Context) {
		_ = c.Error(utils.NewConflictError("Slug already exists"))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("connection reset"))
	})
	r.GET("/config", func(c *gin.Context) {
		_ = c.Error(utils.NewConfigurationError("ADMIN_AUTHOR_ID is missing in env."))
	})

	w := perform(r, http.MethodGet, "/validation", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Validation failed","details":{"title":"is required"}}`, w.Body.String())

	w = perform(r, http.MethodGet, "/conflict", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Slug already exists"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Server error"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/config", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"ADMIN_AUTHOR_ID is missing in env."}`, w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := perform(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Server error"}`, w.Body.String())
}

func TestLimiter(t *testing.T) {
	l := newLimiter(t, 2, time.Hour)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))

	assert.True(t, l.Check("c"))
	l.Record("c")
	l.Record("c")
	assert.False(t, l.Check("c"))
}

func TestLimiterWindowExpires(t *testing.T) {
	l := newLimiter(t, 1, 50*time.Millisecond)

	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("a"))
	time.Sleep(80 * time.Millisecond)
	assert.True(t, l.Allow("a"))
}

func TestLimiterSweepAndStop(t *testing.T) {
	l := newLimiter(t, 1, 20*time.Millisecond)
	l.Record("a")
	time.Sleep(40 * time.Millisecond)
	l.sweep()

	l.mu.Lock()
	assert.Empty(t, l.hits)
	l.mu.Unlock()

	l.Stop()
	l.Stop()
	select {
	case <-l.done:
	default:
		t.Fatal("Stop did not close the done channel")
	}
}

func TestLimitFailuresOnlyCountsRejections(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.POST("/login", LimitFailures(newLimiter(t, 2, time.Hour)), func(c *gin.Context) {
		if c.Query("ok") == "1" {
			c.Status(http.StatusOK)
			return
		}
		_ = c.Error(utils.ErrInvalidCredentials)
	})

	for i := 0; i < 5; i++ {
		w := perform(r, http.MethodPost, "/login?ok=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodPost, "/login", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodPost, "/login", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(r, http.MethodPost, "/login", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(r, http.MethodPost, "/login?ok=1", nil).Code)
}

func TestLimitRequests(t *testing.T) {
	r := gin.New()
	r.POST("/submit", LimitRequests(newLimiter(t, 1, time.Hour)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, perform(r, http.MethodPost, "/submit", nil).Code)
	w := perform(r, http.MethodPost, "/submit", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://editorial.example"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://editorial.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://editorial.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAdminPages(t *testing.T) {
	r := gin.New()
	admin := r.Group("/admin", AdminPages())
	admin.GET("/*path", func(c *gin.Context) { c.String(http.StatusOK, "page") })

	w := perform(r, http.MethodGet, "/admin/posts", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = perform(r, http.MethodGet, "/admin/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/admin/login", adminCookie("anything"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	w = perform(r, http.MethodGet, "/admin/posts", adminCookie("anything"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTracingRecordsServerSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r := gin.New()
	r.Use(TracingWith(tp))
	r.Use(ErrorHandler())
	r.GET("/traced/:id", func(c *gin.Context) {
		assert.True(t, trace.SpanFromContext(c.Request.Context()).SpanContext().IsValid())
		c.Status(http.StatusAccepted)
	})
	r.GET("/broken", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	assert.Equal(t, http.StatusAccepted, perform(r, http.MethodGet, "/traced/1", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, perform(r, http.MethodGet, "/broken", nil).Code)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "GET /traced/:id", ok.Name())
	assert.Equal(t, trace.SpanKindServer, ok.SpanKind())
	assert.Contains(t, ok.Attributes(), attribute.String("http.route", "/traced/:id"))
	assert.Contains(t, ok.Attributes(), attribute.Int("http.status_code", http.StatusAccepted))
	assert.Equal(t, codes.Unset, ok.Status().Code)

	failed := spans[1]
	assert.Equal(t, "GET /broken", failed.Name())
	assert.Contains(t, failed.Attributes(), attribute.Int("http.status_code", http.StatusInternalServerError))
	assert.Equal(t, codes.Error, failed.Status().Code)
	require.NotEmpty(t, failed.Events())
	assert.Equal(t, "exception", failed.Events()[0].Name)
}
