package config

import "time"

// GatewayConfig configures the gateway (GW) process.
type GatewayConfig struct {
	Port           string
	BaseURL        string
	UpstreamRS     string
	RSMetaFallback string
	ADPBase        string
	StateSecret    string
	WalletPMToken  string
	DebugEnabled   bool
	StartPollCeil  time.Duration
	CORSOrigins    string

	// DemoSubject and DemoAgentID stand in for the user/agent identity that,
	// in a full deployment, would come from a prior login step; the
	// gateway's own /session/start contract carries no subject/agent_id on
	// /session/start, so one demo identity is configured per instance.
	DemoSubject string
	DemoAgentID string
}

// LoadGatewayConfig reads GW_* environment variables, the same
// getEnv/getEnvBool/getEnvDuration pattern every other service's loader
// in this package follows.
func LoadGatewayConfig() GatewayConfig {
	return GatewayConfig{
		Port:           getEnv("PORT", "8081"),
		BaseURL:        getEnv("GW_BASE", "http://localhost:8081"),
		UpstreamRS:     getEnv("UPSTREAM_RS", "http://localhost:8084"),
		RSMetaFallback: getEnv("RS_META", ""),
		ADPBase:        getEnv("ADP_BASE", "http://localhost:8082"),
		StateSecret:    getEnv("GW_STATE_SECRET", "dev-insecure-state-secret"),
		WalletPMToken:  getEnv("WALLET_PM_TOKEN", "pm-demo-token"),
		DebugEnabled:   getEnvBool("GW_DEBUG_ENABLED", false),
		StartPollCeil:  getEnvDuration("GW_START_POLL_CEILING", 120*time.Second),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		DemoSubject:    getEnv("GW_DEMO_SUBJECT", "user-123"),
		DemoAgentID:    getEnv("GW_DEMO_AGENT_ID", "demo-agent"),
	}
}
