package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/intradaypulse/internal/domain/dto"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != 200 {
		t.Fatalf("code=%d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler)
	r.GET("/", func(c *gin.Context) { _ = c.Error(assertErr{}) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != 500 {
		t.Fatalf("code=%d", w.Code)
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != 500 {
		t.Fatalf("code=%d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	cases := []struct {
		name   string
		reqs   int
		lim    int
		expect int
	}{
		{name: "within limit", reqs: 2, lim: 3, expect: http.StatusOK},
		{name: "exceed limit", reqs: 5, lim: 3, expect: http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RateLimiter(tc.lim, time.Minute))
			r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
			var last *httptest.ResponseRecorder
			for i := 0; i < tc.reqs; i++ {
				last = httptest.NewRecorder()
				r.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/", nil))
			}
			if last.Code != tc.expect {
				t.Fatalf("expected %d, got %d", tc.expect, last.Code)
			}
			if tc.expect == http.StatusTooManyRequests {
				if last.Header().Get("Retry-After") == "" {
					t.Fatalf("expected Retry-After header")
				}
				var body dto.ErrorResponse
				if err := json.Unmarshal(last.Body.Bytes(), &body); err != nil {
					t.Fatalf("429 body is not an ErrorResponse: %v", err)
				}
				if body.Message != "rate limit exceeded" || body.Timestamp.IsZero() {
					t.Fatalf("unexpected 429 body: %+v", body)
				}
			}
		})
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	now := time.Date(2024, 10, 15, 9, 30, 0, 0, time.UTC)
	rl := &rateLimiter{clients: map[string]*client{}, limit: 1, window: time.Minute, now: func() time.Time { return now }}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(rl.handle)
	r.GET("/", func(c *gin.Context) { c.String(200, "ok") })

	hit := func() int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w.Code
	}

	if code := hit(); code != http.StatusOK {
		t.Fatalf("first request: %d", code)
	}
	if code := hit(); code != http.StatusTooManyRequests {
		t.Fatalf("second request: %d", code)
	}
	now = now.Add(2 * time.Minute)
	if code := hit(); code != http.StatusOK {
		t.Fatalf("after window: %d", code)
	}
}

func TestRateLimiter_Prune(t *testing.T) {
	now := time.Now()
	rl := &rateLimiter{clients: map[string]*client{
		"old": {windowStart: now.Add(-time.Hour), count: 3},
		"new": {windowStart: now, count: 1},
	}, limit: 5, window: time.Minute}
	rl.prune(now)
	if _, ok := rl.clients["old"]; ok {
		t.Fatalf("expired client not pruned")
	}
	if _, ok := rl.clients["new"]; !ok {
		t.Fatalf("active client pruned")
	}
}

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(20 * time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		if _, ok := c.Request.Context().Deadline(); !ok {
			c.String(500, "no deadline")
			return
		}
		<-c.Request.Context().Done()
		c.String(504, "timeout")
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != 504 {
		t.Fatalf("code=%d", w.Code)
	}
}

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/err", func(c *gin.Context) {
		AbortWithError(c, http.StatusBadRequest, "bad stuff", assertErr{})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatalf("expected content-type set")
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Fatalf("error detail leaked: %s", w.Body.String())
	}
}
