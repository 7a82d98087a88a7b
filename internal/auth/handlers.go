package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Controller serves the /api/auth endpoints.
type Controller struct {
	service  *Service
	sessions *SessionManager
	limiter  *RateLimiter
}

func NewController(service *Service, sessions *SessionManager, limiter *RateLimiter) *Controller {
	return &Controller{service: service, sessions: sessions, limiter: limiter}
}

// RegisterRoutes mounts the auth endpoints on group, normally /api/auth.
func (ac *Controller) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/status", ac.Status)
	group.POST("/register", ac.Register)
	if ac.limiter != nil {
		group.POST("/login", ac.limiter.Middleware(), ac.Login)
	} else {
		group.POST("/login", ac.Login)
	}
	group.POST("/logout", ac.Logout)
	group.GET("/me", ac.Me)
	group.POST("/token", ac.CreateToken)
	group.DELETE("/token", ac.RevokeToken)
	group.PUT("/password", ac.ChangePassword)
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type passwordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (ac *Controller) Status(c *gin.Context) {
	hasUsers, err := ac.service.HasUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mode":          ac.service.Mode(),
		"has_users":     hasUsers,
		"authenticated": CurrentUser(c) != nil,
	})
}

// Register creates an account and signs it in.
func (ac *Controller) Register(c *gin.Context) {
	var req RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := ac.service.Register(req)
	switch {
	case errors.Is(err, ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrUsernameInvalid), errors.Is(err, ErrEmailInvalid),
		errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("[AUTH] Failed to register %q: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	if ac.sessions != nil {
		if err := ac.sessions.Login(c.Request.Context(), user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
			return
		}
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (ac *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login and password are required"})
		return
	}

	ip := c.ClientIP()
	user, err := ac.service.Authenticate(req.Login, req.Password)
	switch {
	case errors.Is(err, ErrAccountLocked):
		c.JSON(http.StatusLocked, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrInvalidCredentials):
		if ac.limiter != nil {
			ac.limiter.Fail(ip)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("[AUTH] Login failed for %q: %v", req.Login, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if ac.limiter != nil {
		ac.limiter.Reset(ip)
	}
	if ac.sessions != nil {
		if err := ac.sessions.Login(c.Request.Context(), user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (ac *Controller) Logout(c *gin.Context) {
	if ac.sessions != nil {
		if err := ac.sessions.Logout(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end session"})
			return
		}
	}
	c.Status(http.StatusNoContent)
}

func (ac *Controller) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "auth_type": GetAuthType(c)})
}

// CreateToken issues an API token. The plaintext is only ever returned here.
func (ac *Controller) CreateToken(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	token, err := ac.service.GenerateToken(user.ID)
	if err != nil {
		log.Printf("[AUTH] Failed to issue token for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func (ac *Controller) RevokeToken(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if err := ac.service.RevokeToken(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (ac *Controller) ChangePassword(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "old_password and new_password are required"})
		return
	}

	err := ac.service.ChangePassword(user.ID, req.OldPassword, req.NewPassword)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusForbidden, gin.H{"error": "current password is incorrect"})
	case errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change password"})
	default:
		c.Status(http.StatusNoContent)
	}
}
