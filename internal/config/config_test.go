package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:  "a-long-enough-secret-for-testing-purposes",
		Port:       "8450",
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "user",
		DBPassword: "strong-password",
		DBName:     "kanban",
		DBSSLMode:  "require",
		Env:        "development",
	}
}

func TestValidate_Development(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingPort(t *testing.T) {
	cfg := validConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_ProductionRejectsDefaultSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "your-secret-key-change-in-production"
	assert.Error(t, cfg.Validate())
}

func TestValidate_ProductionRejectsShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "short"
	assert.Error(t, cfg.Validate())
}

func TestValidate_ProductionRejectsWeakDBPassword(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.DBPassword = "password"
	assert.Error(t, cfg.Validate())

	cfg.DBPassword = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_ProductionAcceptsStrongConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	assert.NoError(t, cfg.Validate())
}
