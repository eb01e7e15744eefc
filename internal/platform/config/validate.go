package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Store.validate(),
		c.GenAI.validate(),
		c.Workflow.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (s *StoreConfig) validate() error {
	var errs []error

	switch s.Backend {
	case "redis", "memory":
		// Valid backends.
	default:
		errs = append(errs, fmt.Errorf("store.backend must be one of: redis, memory; got %q", s.Backend))
	}

	if s.Backend == "redis" && s.Addr == "" {
		errs = append(errs, errors.New("store.addr must not be empty when backend is redis"))
	}
	if s.OpTimeout <= 0 {
		errs = append(errs, errors.New("store.op_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (g *GenAIConfig) validate() error {
	var errs []error

	if g.BaseURL == "" {
		errs = append(errs, errors.New("genai.base_url must not be empty"))
	}
	if g.Model == "" {
		errs = append(errs, errors.New("genai.model must not be empty"))
	}
	if g.Timeout <= 0 {
		errs = append(errs, errors.New("genai.timeout must be positive"))
	}
	if g.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("genai.retry.max_attempts must be >= 1, got %d", g.Retry.MaxAttempts))
	}
	if g.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("genai.retry.multiplier must be positive, got %f", g.Retry.Multiplier))
	}
	if g.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("genai.circuit_breaker.max_failures must be >= 1, got %d",
			g.CircuitBreaker.MaxFailures))
	}
	if g.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("genai.rate_limit.requests_per_second must not be negative, got %f",
			g.RateLimit.RequestsPerSecond))
	}

	return errors.Join(errs...)
}

func (w *WorkflowConfig) validate() error {
	var errs []error

	if w.RetryDelay < 0 {
		errs = append(errs, errors.New("workflow.retry_delay must not be negative"))
	}
	if w.WatchBuffer < 1 {
		errs = append(errs, fmt.Errorf("workflow.watch_buffer must be >= 1, got %d", w.WatchBuffer))
	}
	if w.HookTimeout <= 0 {
		errs = append(errs, errors.New("workflow.hook_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
