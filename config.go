package authkit

import "errors"

// Config holds the subsystem's only fixed state: the two signing secrets.
// They must differ in any real deployment; the design relies on the
// difference to make cross-class verification fail at the signature step.
type Config struct {
	AccessSecret  string
	RefreshSecret string
}

// Validate checks the secret pair.
func (c Config) Validate() error {
	if c.AccessSecret == "" {
		return errors.New("access secret is required")
	}
	if c.RefreshSecret == "" {
		return errors.New("refresh secret is required")
	}
	if c.AccessSecret == c.RefreshSecret {
		return errors.New("access and refresh secrets must differ")
	}
	return nil
}
