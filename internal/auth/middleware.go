package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hikam/internal/config"
	"github.com/mrlokans/hikam/internal/entities"
)

const (
	contextKeyUser     = "auth_user"
	contextKeyUserID   = "auth_user_id"
	contextKeyAuthType = "auth_type"
)

// AuthType records how a request was authenticated.
type AuthType string

const (
	AuthTypeNone    AuthType = "none"
	AuthTypeSession AuthType = "session"
	AuthTypeBearer  AuthType = "bearer"
)

// DefaultUserID owns all data when authentication is disabled.
const DefaultUserID = uint(0)

// Middleware resolves the caller of each request.
type Middleware struct {
	service  *Service
	sessions *SessionManager
	mode     config.AuthMode
	public   map[string]bool
}

func NewMiddleware(service *Service, sessions *SessionManager, cfg config.Auth) *Middleware {
	return &Middleware{
		service:  service,
		sessions: sessions,
		mode:     cfg.Mode,
		public: map[string]bool{
			"/health":            true,
			"/ping":              true,
			"/api/auth/login":    true,
			"/api/auth/register": true,
			"/api/auth/status":   true,
		},
	}
}

// Handler authenticates with a Bearer token first, then the session cookie.
// Unauthenticated requests to non-public paths get 401.
func (m *Middleware) Handler() gin.HandlerFunc {
	if m.mode != config.AuthModeLocal {
		return func(c *gin.Context) {
			c.Set(contextKeyUserID, DefaultUserID)
			c.Set(contextKeyAuthType, AuthTypeNone)
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if user := m.bearerUser(c); user != nil {
			setUser(c, user, AuthTypeBearer)
			c.Next()
			return
		}
		if user := m.sessionUser(c); user != nil {
			setUser(c, user, AuthTypeSession)
			c.Next()
			return
		}
		if m.public[c.Request.URL.Path] {
			c.Set(contextKeyAuthType, AuthTypeNone)
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
}

func (m *Middleware) bearerUser(c *gin.Context) *entities.User {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return nil
	}
	user, err := m.service.ValidateToken(strings.TrimSpace(token))
	if err != nil {
		return nil
	}
	return user
}

func (m *Middleware) sessionUser(c *gin.Context) *entities.User {
	if m.sessions == nil {
		return nil
	}
	userID := m.sessions.UserID(c.Request.Context())
	if userID == 0 {
		return nil
	}
	user, err := m.service.GetUserByID(userID)
	if err != nil {
		return nil
	}
	return user
}

// RequireRole rejects authenticated users outside roles. It is a no-op when
// authentication is disabled.
func (m *Middleware) RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	allowed := make(map[entities.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if m.mode != config.AuthModeLocal {
			c.Next()
			return
		}
		user := CurrentUser(c)
		if user == nil || !allowed[user.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

func setUser(c *gin.Context, user *entities.User, authType AuthType) {
	c.Set(contextKeyUser, user)
	c.Set(contextKeyUserID, user.ID)
	c.Set(contextKeyAuthType, authType)
}

// GetUserID is DefaultUserID when no user is attached to the request.
func GetUserID(c *gin.Context) uint {
	if id, ok := c.Get(contextKeyUserID); ok {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return DefaultUserID
}

// CurrentUser is nil for anonymous requests and when authentication is disabled.
func CurrentUser(c *gin.Context) *entities.User {
	if v, ok := c.Get(contextKeyUser); ok {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}

func GetAuthType(c *gin.Context) AuthType {
	if v, ok := c.Get(contextKeyAuthType); ok {
		if t, ok := v.(AuthType); ok {
			return t
		}
	}
	return AuthTypeNone
}
