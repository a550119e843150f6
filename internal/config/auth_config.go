package config

import (
	"time"
)

const minSigningSecretBytes = 32

type AuthConfig interface {
	GetSigningSecret() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetSweepInterval() time.Duration
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetSigningSecret() string {
	return GetEnv("SIGNING_SECRET", "")
}

func (Auth) GetAccessTokenTTL() time.Duration {
	return getDuration("ACCESS_TOKEN_TTL", 15*time.Minute)
}

func (Auth) GetRefreshTokenTTL() time.Duration {
	return getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour)
}

func (Auth) GetSweepInterval() time.Duration {
	return getDuration("SWEEP_INTERVAL", time.Hour)
}

func getDuration(envVar string, defaultValue time.Duration) time.Duration {
	raw := GetEnv(envVar, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return d
}
