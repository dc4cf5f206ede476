package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/intradaypulse/internal/domain/dto"
	"github.com/guttosm/intradaypulse/internal/logger"
)

// RequestLogger is a Gin middleware that logs method, path, status code,
// request latency, and request ID (if available).
//
// Example log output:
//
//	request_id=123e4567-e89b-12d3-a456-426614174000 method=GET path=/api/v1/intraday/IBM status=200 latency_ms=812
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		ev := logger.L().Info()
		if status >= http.StatusInternalServerError {
			ev = logger.L().Error()
		}
		ev.
			Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// rateLimiter is a fixed-window, per-IP, in-memory limiter. Each call to
// RateLimiter owns its own store.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

// RateLimiter limits inbound requests per client IP. It protects this service;
// it does not budget calls against the upstream provider's quota.
//
// Behavior:
//   - Allows up to limit requests per window for each IP.
//   - Expired entries are pruned whenever the store grows past 1024 clients.
//   - If limit exceeded, returns HTTP 429 Too Many Requests with a Retry-After header.
//
// Usage:
//
//	router.Use(middleware.RateLimiter(60, time.Minute))
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	rl := &rateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
	return rl.handle
}

func (rl *rateLimiter) handle(c *gin.Context) {
	ip := c.ClientIP()
	now := rl.now()

	rl.mu.Lock()
	if len(rl.clients) > 1024 {
		rl.prune(now)
	}
	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) > rl.window {
		cl = &client{windowStart: now}
		rl.clients[ip] = cl
	}
	cl.count++
	exceeded := cl.count > rl.limit
	retryAfter := rl.window - now.Sub(cl.windowStart)
	rl.mu.Unlock()

	if exceeded {
		c.Header("Retry-After", formatSeconds(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
		return
	}

	c.Next()
}

// prune drops clients whose window has expired. Caller holds mu.
func (rl *rateLimiter) prune(now time.Time) {
	for ip, cl := range rl.clients {
		if now.Sub(cl.windowStart) > rl.window {
			delete(rl.clients, ip)
		}
	}
}

func formatSeconds(d time.Duration) string {
	s := int(d.Seconds())
	if s < 1 {
		s = 1
	}
	return strconv.Itoa(s)
}
