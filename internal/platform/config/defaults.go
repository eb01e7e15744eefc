package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultWatchBuffer = 8
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"store.backend":    "redis",
		"store.addr":       "localhost:6379",
		"store.password":   "",
		"store.db":         0,
		"store.op_timeout": "10s",

		"genai.base_url":                        "https://generativelanguage.googleapis.com",
		"genai.model":                           "gemini-1.5-flash",
		"genai.api_key":                         "",
		"genai.timeout":                         "30s",
		"genai.retry.max_attempts":              defaultRetryMaxAttempts,
		"genai.retry.initial_interval":          "100ms",
		"genai.retry.max_interval":              "10s",
		"genai.retry.multiplier":                defaultRetryMultiplier,
		"genai.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"genai.circuit_breaker.timeout":         "30s",
		"genai.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"genai.rate_limit.requests_per_second":  0.0,
		"genai.rate_limit.burst_size":           1,

		"workflow.retry_delay":  "50ms",
		"workflow.watch_buffer": defaultWatchBuffer,
		"workflow.hook_timeout": "10s",

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",
	}
}
