package config

import "time"

// AuthServerConfig configures the Authorization Server (AS) process.
type AuthServerConfig struct {
	Port           string
	Issuer         string
	SigningSecret  string
	RedisAddr      string
	ClientDBPath   string
	DefaultAud     string
	DefaultSubject string
	CodeTTL        time.Duration
	TokenTTL       time.Duration
	DebugEnabled   bool
}

// LoadAuthServerConfig reads AS_* environment variables.
func LoadAuthServerConfig() AuthServerConfig {
	return AuthServerConfig{
		Port:           getEnv("PORT", "8083"),
		Issuer:         getEnv("AS_ISSUER", "http://localhost:8083"),
		SigningSecret:  getEnv("AS_SIGNING_SECRET", "dev-insecure-signing-secret"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		ClientDBPath:   getEnv("AS_CLIENT_DB", "./data/as-clients.bbolt"),
		DefaultAud:     getEnv("EXPECTED_AUD", ""),
		DefaultSubject: getEnv("AS_DEFAULT_SUBJECT", "user-123"),
		CodeTTL:        getEnvDuration("AS_CODE_TTL", 2*time.Minute),
		TokenTTL:       getEnvDuration("AS_TOKEN_TTL", 15*time.Minute),
		DebugEnabled:   getEnvBool("AS_DEBUG_ENABLED", false),
	}
}
