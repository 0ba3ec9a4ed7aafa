// Package auth guards the write side of the API.
//
// The admin panel authenticates with a single bearer token. Only its bcrypt
// hash is configured:
//
//	ADMIN_TOKEN_HASH=$2a$12$...   # empty disables the guard
//
// Generate a token and its hash with:
//
//	naat-api admin-token
//
// Requests send the token as "Authorization: Bearer <token>" or in the
// X-Admin-Token header. Reads outside /api/admin and the public submission
// forms stay open; form posts are rate limited per client IP instead.
//
// # Usage
//
//	guard := auth.NewAdminGuard(cfg.Auth.AdminTokenHash)
//	router.Use(auth.SecurityHeadersMiddleware())
//	router.Use(guard.Handler(isPublicWrite))
package auth
