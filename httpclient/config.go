package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/inspectkit/apierror"
	"github.com/kbukum/inspectkit/logger"
	"github.com/kbukum/inspectkit/observability"
	"github.com/kbukum/inspectkit/resilience"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 1 << 20
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout is the default request timeout. Defaults to 30s.
	Timeout time.Duration `mapstructure:"timeout"`

	// MaxBodyBytes caps how much of a response body is read. Defaults to 1 MiB.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"min=0"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `mapstructure:"headers"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth *AuthConfig `mapstructure:"auth"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `mapstructure:"retry"`

	// CircuitBreaker configures circuit breaker behavior. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `mapstructure:"circuit_breaker"`

	// OnSessionExpired is called when a failure means the session is no
	// longer valid (see apierror.ShouldLogout). Ending the session is left
	// to the caller.
	OnSessionExpired func(*apierror.ParsedError) `mapstructure:"-"`

	// Logger receives classified failures. Defaults to the global logger.
	Logger *logger.Logger `mapstructure:"-" validate:"-"`

	// Metrics counts classified failures. Nil disables it.
	Metrics *observability.ErrorMetrics `mapstructure:"-" validate:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.Retry != nil {
		c.Retry.ApplyDefaults()
	}
	if c.Logger == nil {
		c.Logger = logger.WithComponent("httpclient")
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("httpclient: max_body_bytes must not be negative")
	}
	if c.Retry != nil && (c.Retry.Jitter < 0 || c.Retry.Jitter > 1) {
		return fmt.Errorf("httpclient: retry jitter must be within [0, 1]")
	}
	return nil
}

// DefaultRetryConfig returns a default retry config suitable for HTTP clients.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	return &cfg
}

// DefaultCircuitBreakerConfig returns a default circuit breaker config.
func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	return &cfg
}
