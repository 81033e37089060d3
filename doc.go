// Package authkit is a stateless credential subsystem for HTTP APIs: it
// issues, verifies, rotates, and revokes signed session credentials, backed by
// a low-latency key-value store for revocation state.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]. The only in-process state is the immutable secret pair;
// all cross-request coordination (blacklists, logout watermarks) lives in the
// external store, relying on its per-key atomicity.
//
// # Architecture boundaries
//
// authkit is the public surface. It exposes [Engine], [Builder], [Config],
// [Identity], and the [Error] taxonomy. Credential encoding and signing live
// in the token subpackage; revocation keys live in the revocation subpackage;
// HTTP gating lives in the middleware subpackage. The CRUD resource model,
// UI, and schema management of the surrounding application are collaborators,
// reached only through the [UserProvider] interface.
//
// # Failure model
//
// Authentication failures carry a stable code and an HTTP status; none are
// silently swallowed except by [Engine.AuthenticateOptional], which treats
// every failure as "no identity". Store failures surface as 500s and are
// never retried here: retry policy belongs to the calling infrastructure.
package authkit
