// Package password wraps the fixed password-storage primitive used by the
// surrounding application. Parameter tuning is out of scope here: the cost is
// accepted at construction and treated as an external given.
package password
