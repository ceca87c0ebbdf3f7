package config

// ResourceServerConfig configures the Resource Server (RS) process.
type ResourceServerConfig struct {
	Port           string
	Resource       string
	AuthServerMeta string
	IntrospectURL  string
	ExpectedAud    string
	LocalJWTSecret string
	WalletPMToken  string
	DebugEnabled   bool
}

// LoadResourceServerConfig reads RS_* environment variables. When
// RS_JWT_SECRET is set, token verification happens locally against that
// shared secret instead of calling AUTH_INTROSPECT_URL for every request.
func LoadResourceServerConfig() ResourceServerConfig {
	return ResourceServerConfig{
		Port:           getEnv("PORT", "8084"),
		Resource:       getEnv("RS_RESOURCE", "http://localhost:8084"),
		AuthServerMeta: getEnv("AS_METADATA_URL", "http://localhost:8083/.well-known/oauth-authorization-server"),
		IntrospectURL:  getEnv("AUTH_INTROSPECT_URL", "http://localhost:8083/introspect"),
		ExpectedAud:    getEnv("EXPECTED_AUD", "http://localhost:8084"),
		LocalJWTSecret: getEnv("RS_JWT_SECRET", ""),
		WalletPMToken:  getEnv("WALLET_PM_TOKEN", ""),
		DebugEnabled:   getEnvBool("RS_DEBUG_ENABLED", false),
	}
}
