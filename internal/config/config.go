// Package config exposes process configuration as composed small interfaces
// over environment variables, so components depend only on the slice of
// configuration they actually read.
package config

import "fmt"

type Config interface {
	EnvConfig
	AuthConfig
	GatewayConfig
}

type mainConfig struct {
	EnvVars
	Auth
	Gateway
}

func New() Config {
	return mainConfig{}
}

// Validate checks the invariants that cannot wait until first use. The
// signing secret backs HMAC-SHA256, so anything shorter than the hash size
// weakens the scheme and is rejected at startup.
func Validate(c Config) error {
	if len(c.GetSigningSecret()) < minSigningSecretBytes {
		return fmt.Errorf("SIGNING_SECRET must be at least %d bytes", minSigningSecretBytes)
	}
	return nil
}
