// Package token implements the compact signed credential format used by
// authkit: a three-segment HS256 JWT carrying the subject identity, issue and
// expiry times, and a type tag that separates access credentials from refresh
// credentials. The two credential classes are signed with disjoint secrets, so
// a credential presented against the wrong class fails at the signature check
// before its type tag is ever inspected.
package token
