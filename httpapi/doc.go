// Package httpapi exposes the credential subsystem over HTTP: login, refresh,
// logout, and the protected profile route, plus a health endpoint. It is the
// collaborator-facing surface; everything of substance delegates to the
// authkit engine.
package httpapi
