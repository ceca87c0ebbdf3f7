package config

// AuthorizerConfig configures the Authorizer (ADP) process.
type AuthorizerConfig struct {
	Port         string
	DBPath       string
	AuditDSN     string
	DemoMode     bool
	DefaultTTL   int
	DebugEnabled bool
}

// LoadAuthorizerConfig reads ADP_* environment variables.
func LoadAuthorizerConfig() AuthorizerConfig {
	return AuthorizerConfig{
		Port:         getEnv("PORT", "8082"),
		DBPath:       getEnv("ADP_DB", "./data/adp.bbolt"),
		AuditDSN:     getEnv("ADP_AUDIT_DSN", ""),
		DemoMode:     getEnvBool("ADP_DEMO_MODE", false),
		DefaultTTL:   getEnvInt("ADP_DEFAULT_TTL", 900),
		DebugEnabled: getEnvBool("ADP_DEBUG_ENABLED", false),
	}
}
