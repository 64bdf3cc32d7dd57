// Package auth decides who may change the content of the portfolio.
//
// A caller is either Anonymous or Authenticated. Login moves a caller to
// Authenticated when the presented credentials match one of two sources:
//   - the operator credential pair from the config, recorded as SuperAdmin
//   - a stored User whose Argon2id hash verifies, recorded by username
//
// The resulting identity label lives in the server side session, see
// internal/web/session. Logout and inactivity move the caller back to Anonymous.
//
// # Middleware
//
// RequireAuthenticated guards every mutating route and the user listing.
// It answers 401 with the generic "Unauthorized access" error, renews the
// session window on success and never lets an anonymous request reach the handler.
// Sessions of stored users are checked against the user on every request, so
// deleting a user or changing their password ends their sessions.
//
// Example usage:
//
//	authService := auth.NewService(cfg.Operator, store)
//
//	who, err := authService.Authenticate(ctx, username, password)
//
//	api.Post("/achievements", auth.RequireAuthenticated(sessions, authService), handler)
package auth
