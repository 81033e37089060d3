// Package revocation records which credentials may no longer be used. It owns
// three key families in a TTL-capable key-value store: per-credential
// blacklist entries, per-user logout watermarks, and write-only refresh token
// bookkeeping records. Nothing outside the authkit engine writes these keys.
package revocation
