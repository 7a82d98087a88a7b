// Package auth provides accounts, sessions and API tokens for the quotes API.
//
// Two modes are supported, selected with AUTH_MODE:
//   - "none": every request acts as DefaultUserID (default)
//   - "local": users register and log in; browsers hold an scs session cookie
//     stored in SQLite, API clients send "Authorization: Bearer <token>"
//
// # Usage
//
//	service := auth.NewService(db.DB, cfg.Auth)
//	sessions, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	router.Use(sessions.LoadAndSave(), auth.NewMiddleware(service, sessions, cfg.Auth).Handler())
//	auth.NewController(service, sessions, auth.NewRateLimiter(auth.DefaultRateLimitConfig())).
//		RegisterRoutes(router.Group("/api/auth"))
//
// Handlers read the caller with auth.GetUserID(c).
package auth
