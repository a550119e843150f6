package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	databaseVar   = "DATABASE_URL"
	defaultDBsn   = "postgres://localhost:5432/platform?sslmode=disable"
	defaultEnvVar = "ENV"
)

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDatabaseDSN() string
	GetEnv() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Platform")
}

func (EnvVars) GetDatabaseDSN() string {
	return GetEnv(databaseVar, defaultDBsn)
}

func (EnvVars) GetEnv() string {
	env := os.Getenv(defaultEnvVar)
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
