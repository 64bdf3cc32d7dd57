// Package auth guards the pages of the static admin front end.
//
// The json api enforces sessions itself, see internal/auth. This middleware
// only decides which html page an anonymous or logged in browser gets:
//   - anonymous requests for the admin panel are redirected to the login page
//   - logged in requests for the login page are redirected to the admin panel
//
// Usage:
//
//	app.Use(authmiddleware.New(sessions))
package auth
