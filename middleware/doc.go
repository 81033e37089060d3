// Package middleware provides net/http wrappers around the authkit session
// gate. RequireAuth rejects unauthenticated requests with the subsystem's
// JSON failure envelope, OptionalAuth attaches an identity when one can be
// established and otherwise lets the request proceed, and RequireRefreshToken
// gates the refresh endpoint on a verified refresh credential read from the
// request body.
package middleware
