package auth

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/hikam/internal/config"
	"github.com/mrlokans/hikam/internal/entities"
)

const (
	sessionCookieName = "hikam_session"

	sessionKeyUserID  = "user_id"
	sessionKeyLoginAt = "login_at"
)

const sessionsSchema = `CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	expiry REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`

// SessionManager keeps browser sessions in the application's SQLite database.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates the sessions table if needed. sqlDB is the
// connection behind gorm.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	if _, err := sqlDB.Exec(sessionsSchema); err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	lifetime := cfg.SessionLifetime
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2
	sm.Cookie.Name = sessionCookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// Login renews the session token, guarding against fixation, and binds it to user.
func (sm *SessionManager) Login(ctx context.Context, user *entities.User) error {
	if err := sm.RenewToken(ctx); err != nil {
		return err
	}
	sm.Put(ctx, sessionKeyUserID, int(user.ID))
	sm.Put(ctx, sessionKeyLoginAt, time.Now().Unix())
	return nil
}

func (sm *SessionManager) Logout(ctx context.Context) error {
	return sm.Destroy(ctx)
}

// UserID is 0 for anonymous sessions.
func (sm *SessionManager) UserID(ctx context.Context) uint {
	return uint(sm.GetInt(ctx, sessionKeyUserID))
}

// LoginAt is zero for anonymous sessions.
func (sm *SessionManager) LoginAt(ctx context.Context) time.Time {
	unix := sm.GetInt64(ctx, sessionKeyLoginAt)
	if unix == 0 {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}
