package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/hikam/internal/config"
)

type testServer struct {
	router  *gin.Engine
	service *Service
	limiter *RateLimiter
}

func setupTestServer(t *testing.T, cfg config.Auth) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	service := NewService(db, cfg)
	sessions, err := NewSessionManager(sqlDB, cfg)
	require.NoError(t, err)
	limiter := NewRateLimiter(RateLimitConfig{MaxAttempts: 3, Window: time.Minute, Lockout: time.Minute})
	t.Cleanup(limiter.Stop)

	router := gin.New()
	router.Use(SecurityHeaders(), sessions.LoadAndSave(), NewMiddleware(service, sessions, cfg).Handler())
	NewController(service, sessions, limiter).RegisterRoutes(router.Group("/api/auth"))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/api/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "auth_type": GetAuthType(c)})
	})

	return &testServer{router: router, service: service, limiter: limiter}
}

func (s *testServer) do(t *testing.T, method, path string, body any, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.1:1234"
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAuthDisabledUsesDefaultUser(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = config.AuthModeNone
	s := setupTestServer(t, cfg)

	w := s.do(t, http.MethodGet, "/api/whoami", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(DefaultUserID), body["user_id"])
	assert.Equal(t, string(AuthTypeNone), body["auth_type"])
}

func TestProtectedRouteRequiresAuth(t *testing.T) {
	s := setupTestServer(t, testConfig())

	w := s.do(t, http.MethodGet, "/api/whoami", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestRegisterLoginLogout(t *testing.T) {
	s := setupTestServer(t, testConfig())

	w := s.do(t, http.MethodPost, "/api/auth/register", RegisterInput{
		Username: "reader", Email: "reader@example.com", Password: testPassword,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotNil(t, sessionCookie(t, w))

	w = s.do(t, http.MethodPost, "/api/auth/register", RegisterInput{
		Username: "reader", Email: "reader@example.com", Password: testPassword,
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/login", loginRequest{Login: "reader", Password: testPassword}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)
	withCookie := func(r *http.Request) { r.AddCookie(cookie) }

	w = s.do(t, http.MethodGet, "/api/auth/me", nil, withCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(AuthTypeSession), decode(t, w)["auth_type"])

	w = s.do(t, http.MethodPost, "/api/auth/logout", nil, withCookie)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/auth/me", nil, withCookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken(t *testing.T) {
	s := setupTestServer(t, testConfig())
	user, err := s.service.CreateUser("reader", "reader@example.com", testPassword, "viewer")
	require.NoError(t, err)
	token, err := s.service.GenerateToken(user.ID)
	require.NoError(t, err)

	bearer := func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
	w := s.do(t, http.MethodGet, "/api/whoami", nil, bearer)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(user.ID), body["user_id"])
	assert.Equal(t, string(AuthTypeBearer), body["auth_type"])

	w = s.do(t, http.MethodPost, "/api/auth/token", nil, bearer)
	require.Equal(t, http.StatusCreated, w.Code)
	rotated := decode(t, w)["token"].(string)
	assert.NotEqual(t, token, rotated)

	w = s.do(t, http.MethodGet, "/api/whoami", nil, bearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxLoginAttempts = 100
	s := setupTestServer(t, cfg)
	_, err := s.service.CreateUser("reader", "reader@example.com", testPassword, "viewer")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		w := s.do(t, http.MethodPost, "/api/auth/login", loginRequest{Login: "reader", Password: "wrong-password"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := s.do(t, http.MethodPost, "/api/auth/login", loginRequest{Login: "reader", Password: testPassword}, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiterWindow(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{MaxAttempts: 2, Window: time.Minute, Lockout: time.Minute})
	defer rl.Stop()
	now := time.Now()
	rl.now = func() time.Time { return now }

	assert.False(t, rl.Fail("ip"))
	now = now.Add(2 * time.Minute)
	assert.False(t, rl.Fail("ip"), "window restarted")
	assert.True(t, rl.Fail("ip"))

	allowed, wait := rl.Allow("ip")
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, wait)

	rl.Reset("ip")
	allowed, _ = rl.Allow("ip")
	assert.True(t, allowed)
}
