package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/saurabh-xd/kana-dojo/secret"
)

// Config is the full service configuration tree.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Service       ServiceConfig       `mapstructure:"service"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Admission     AdmissionConfig     `mapstructure:"admission"`
	Translate     TranslateConfig     `mapstructure:"translate"`
	Analyze       AnalyzeConfig       `mapstructure:"analyze"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	CacheMaxAge     time.Duration `mapstructure:"cache_max_age"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// ServiceConfig holds request-level orchestration settings.
type ServiceConfig struct {
	UpstreamTimeout time.Duration `mapstructure:"upstream_timeout"`
	MaxTextChars    int           `mapstructure:"max_text_chars"`
}

// CacheConfig holds the server-side result cache policy.
type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	MaxEntries      int           `mapstructure:"max_entries"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// AdmissionConfig holds the three rate-limit tiers.
type AdmissionConfig struct {
	PerClientLimit  int           `mapstructure:"per_client_limit"`
	PerClientWindow time.Duration `mapstructure:"per_client_window"`
	GlobalLimit     int           `mapstructure:"global_limit"`
	GlobalWindow    time.Duration `mapstructure:"global_window"`
	DailyLimit      int           `mapstructure:"daily_limit"`
	DailyWindow     time.Duration `mapstructure:"daily_window"`
}

// TranslateConfig holds the translation provider client settings.
// APIKey may be a literal, an env:VAR reference or a file:/path
// reference.
type TranslateConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxFailures       int           `mapstructure:"max_failures"`
	ResetTimeout      time.Duration `mapstructure:"reset_timeout"`
}

// AnalyzeConfig holds the morphological analyzer settings.
type AnalyzeConfig struct {
	MaxConcurrent int           `mapstructure:"max_concurrent"`
	QueueWait     time.Duration `mapstructure:"queue_wait"`
	Timeout       time.Duration `mapstructure:"timeout"`
	WarmOnStart   bool          `mapstructure:"warm_on_start"`
}

// AuthConfig holds credential verification settings. TokenSecret and
// the APIKeys values accept secret references.
type AuthConfig struct {
	TokenSecret string            `mapstructure:"token_secret"`
	TokenIssuer string            `mapstructure:"token_issuer"`
	APIKeys     map[string]string `mapstructure:"api_keys"`
}

// ObservabilityConfig holds telemetry settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"`
}

// TracingConfig holds trace export settings.
type TracingConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	Exporter  string  `mapstructure:"exporter"`
	SamplePct float64 `mapstructure:"sample_pct"`
}

// Load reads configuration from the given file, or from config.yaml
// in the working directory or /etc/kanadojo when path is empty. A
// missing default file is fine; a missing explicit file is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/kanadojo")
	}

	v.SetEnvPrefix("KANADOJO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			return nil, fmt.Errorf("config: reading %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	if err := cfg.resolveSecrets(context.Background()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad loads configuration or panics. For use in main.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("loading configuration: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.cache_max_age", "5m")
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("service.upstream_timeout", "15s")
	v.SetDefault("service.max_text_chars", 5000)

	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.max_entries", 300)
	v.SetDefault("cache.cleanup_interval", "5m")

	v.SetDefault("admission.per_client_limit", 20)
	v.SetDefault("admission.per_client_window", "1m")
	v.SetDefault("admission.global_limit", 200)
	v.SetDefault("admission.global_window", "1m")
	v.SetDefault("admission.daily_limit", 5000)
	v.SetDefault("admission.daily_window", "24h")

	v.SetDefault("translate.base_url", "https://api-free.deepl.com")
	v.SetDefault("translate.api_key", "")
	v.SetDefault("translate.timeout", "10s")
	v.SetDefault("translate.requests_per_second", 10)
	v.SetDefault("translate.burst", 5)
	v.SetDefault("translate.max_failures", 5)
	v.SetDefault("translate.reset_timeout", "30s")

	v.SetDefault("analyze.max_concurrent", 8)
	v.SetDefault("analyze.queue_wait", "500ms")
	v.SetDefault("analyze.timeout", "5s")
	v.SetDefault("analyze.warm_on_start", true)

	v.SetDefault("auth.token_secret", "")
	v.SetDefault("auth.token_issuer", "")
	v.SetDefault("auth.api_keys", map[string]string{})

	v.SetDefault("observability.logging.enabled", true)
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.exporter", "prometheus")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.exporter", "otlp")
	v.SetDefault("observability.tracing.sample_pct", 100)
}

// resolveSecrets passes credential fields through secret resolution.
// Empty values stay empty: a keyless deployment is legal, it just
// cannot translate.
func (c *Config) resolveSecrets(ctx context.Context) error {
	resolver := secret.NewResolver()

	resolve := func(field, value string) (string, error) {
		if value == "" {
			return "", nil
		}
		out, err := resolver.Resolve(ctx, value)
		if err != nil {
			return "", fmt.Errorf("config: resolving %s: %w", field, err)
		}
		return out, nil
	}

	var err error
	if c.Translate.APIKey, err = resolve("translate.api_key", c.Translate.APIKey); err != nil {
		return err
	}
	if c.Auth.TokenSecret, err = resolve("auth.token_secret", c.Auth.TokenSecret); err != nil {
		return err
	}
	for name, key := range c.Auth.APIKeys {
		if c.Auth.APIKeys[name], err = resolve("auth.api_keys."+name, key); err != nil {
			return err
		}
	}
	return nil
}

// Validate rejects structurally broken configuration. Exporter and
// level names are checked by the observability layer at startup.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.CacheMaxAge < 0 {
		return fmt.Errorf("config: server.cache_max_age must not be negative")
	}
	if c.Service.MaxTextChars <= 0 {
		return fmt.Errorf("config: service.max_text_chars must be positive, got %d", c.Service.MaxTextChars)
	}
	if c.Service.UpstreamTimeout <= 0 {
		return fmt.Errorf("config: service.upstream_timeout must be positive")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("config: cache.ttl must be positive")
	}
	if c.Cache.MaxEntries < 2 {
		return fmt.Errorf("config: cache.max_entries must be at least 2, got %d", c.Cache.MaxEntries)
	}
	for field, limit := range map[string]int{
		"admission.per_client_limit": c.Admission.PerClientLimit,
		"admission.global_limit":     c.Admission.GlobalLimit,
		"admission.daily_limit":      c.Admission.DailyLimit,
	} {
		if limit <= 0 {
			return fmt.Errorf("config: %s must be positive, got %d", field, limit)
		}
	}
	for field, window := range map[string]time.Duration{
		"admission.per_client_window": c.Admission.PerClientWindow,
		"admission.global_window":     c.Admission.GlobalWindow,
		"admission.daily_window":      c.Admission.DailyWindow,
	} {
		if window <= 0 {
			return fmt.Errorf("config: %s must be positive", field)
		}
	}
	if c.Translate.RequestsPerSecond <= 0 {
		return fmt.Errorf("config: translate.requests_per_second must be positive")
	}
	if c.Analyze.MaxConcurrent <= 0 {
		return fmt.Errorf("config: analyze.max_concurrent must be positive, got %d", c.Analyze.MaxConcurrent)
	}
	if pct := c.Observability.Tracing.SamplePct; pct < 0 || pct > 100 {
		return fmt.Errorf("config: observability.tracing.sample_pct must be within [0, 100], got %v", pct)
	}
	return nil
}
