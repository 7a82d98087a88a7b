package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware blocks write operations in demo mode.
// Read-only operations (GET) are always allowed, as are the allowlisted
// paths that only record activity or sign the user in and out.
type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "This action is disabled in demo mode",
			"demo_mode": true,
		})
	}
}

// allowedPaths are prefixes writable in demo mode. Favourites and reading
// progress stay writable so visitors can try them.
var allowedPaths = []string{
	"/api/auth/login",
	"/api/auth/logout",
	"/api/analytics/events",
	"/api/books/",
}

func isAllowedPath(path string) bool {
	for _, allowed := range allowedPaths {
		if strings.HasPrefix(path, allowed) {
			return true
		}
	}
	if !strings.HasPrefix(path, "/api/quotes/") {
		return false
	}
	return strings.HasSuffix(path, "/favourite") || strings.HasSuffix(path, "/favourite/toggle")
}

// ContextKeyDemoMode marks requests served in demo mode.
const ContextKeyDemoMode = "demo_mode"

// InjectContext adds the demo mode flag to the request context.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDemoMode, m.enabled)
		c.Next()
	}
}
