package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mckayn10/ai-chat-app/pkg/configutil"
	"github.com/mckayn10/ai-chat-app/pkg/llm"
	"github.com/mckayn10/ai-chat-app/pkg/providers/anthropic"
	"github.com/mckayn10/ai-chat-app/pkg/providers/mock"
	"github.com/mckayn10/ai-chat-app/pkg/providers/openai"
	"github.com/mckayn10/ai-chat-app/pkg/resilience"
)

type Config struct {
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"log_level"`
	LogFormat   string         `mapstructure:"log_format"`
	Engine      EngineConfig   `mapstructure:"engine"`
	Vendors     VendorsConfig  `mapstructure:"vendors"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Privacy     PrivacyConfig  `mapstructure:"privacy"`
	Metrics     MetricsConfig  `mapstructure:"metrics"`
}

type EngineConfig struct {
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	CompletionTimeoutMS int     `mapstructure:"completion_timeout_ms"`
	RetryMaxAttempts    int     `mapstructure:"retry_max_attempts"`
	BreakerThreshold    int     `mapstructure:"breaker_threshold"`
	BreakerCooldownMS   int     `mapstructure:"breaker_cooldown_ms"`
}

type VendorConfig struct {
	Provider string         `mapstructure:"provider"`
	Settings map[string]any `mapstructure:"settings"`
}

type VendorsConfig struct {
	LLM VendorConfig `mapstructure:"llm"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	TTLHours  int    `mapstructure:"ttl_hours"`
}

type PrivacyConfig struct {
	RedactPII bool `mapstructure:"redact_pii"`
}

type MetricsConfig struct {
	JSONLPath  string  `mapstructure:"jsonl_path"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("engine.confidence_threshold", ConfidenceThreshold)
	v.SetDefault("engine.completion_timeout_ms", 30000)
	v.SetDefault("engine.retry_max_attempts", 1)
	v.SetDefault("engine.breaker_threshold", 3)
	v.SetDefault("engine.breaker_cooldown_ms", 30000)
	v.SetDefault("vendors.llm.provider", "anthropic")
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("database.driver", "memory")
	v.SetDefault("auth.ttl_hours", 24)
	v.SetDefault("privacy.redact_pii", true)
	v.SetDefault("metrics.sample_rate", 1.0)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// CompletionTimeout returns the per-call deadline for the completion client.
func (c EngineConfig) CompletionTimeout() time.Duration {
	if c.CompletionTimeoutMS <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.CompletionTimeoutMS) * time.Millisecond
}

type anthropicSettings struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens *int   `mapstructure:"max_tokens"`
}

type openaiSettings struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type mockSettings struct {
	ResponseText string `mapstructure:"response_text"`
}

// BuildClient constructs the configured completion client wrapped in the
// rate-limit circuit breaker.
func BuildClient(cfg Config) (llm.Client, error) {
	inner, err := buildAdapter(cfg.Vendors.LLM)
	if err != nil {
		return nil, err
	}
	breaker := resilience.NewCircuitBreaker(
		cfg.Engine.BreakerThreshold,
		time.Duration(cfg.Engine.BreakerCooldownMS)*time.Millisecond,
	)
	return llm.NewCircuitBreakerClient(inner, breaker), nil
}

func buildAdapter(vendor VendorConfig) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(vendor.Provider)) {
	case "anthropic":
		schema := configutil.Schema{Required: []string{"api_key"}, Optional: []string{"model", "max_tokens"}}
		if err := configutil.ValidateSettings(vendor.Settings, schema); err != nil {
			return nil, fmt.Errorf("vendors.llm.settings: %w", err)
		}
		var s anthropicSettings
		if err := configutil.DecodeSettings(vendor.Settings, &s); err != nil {
			return nil, err
		}
		if err := configutil.RequireString(s.APIKey, "vendors.llm.settings.api_key"); err != nil {
			return nil, err
		}
		if s.Model == "" {
			s.Model = "claude-3-opus-20240229"
		}
		adapter := anthropic.NewAdapter(s.APIKey, s.Model)
		adapter.MaxTokens = configutil.IntValue(s.MaxTokens, adapter.MaxTokens)
		return adapter, nil
	case "openai":
		schema := configutil.Schema{Required: []string{"api_key"}, Optional: []string{"model"}}
		if err := configutil.ValidateSettings(vendor.Settings, schema); err != nil {
			return nil, fmt.Errorf("vendors.llm.settings: %w", err)
		}
		var s openaiSettings
		if err := configutil.DecodeSettings(vendor.Settings, &s); err != nil {
			return nil, err
		}
		if err := configutil.RequireString(s.APIKey, "vendors.llm.settings.api_key"); err != nil {
			return nil, err
		}
		if s.Model == "" {
			s.Model = "gpt-4o-mini"
		}
		return openai.NewAdapter(s.APIKey, s.Model), nil
	case "mock":
		var s mockSettings
		if err := configutil.DecodeSettings(vendor.Settings, &s); err != nil {
			return nil, err
		}
		client := mock.NewClient()
		if s.ResponseText != "" {
			client.ResponseText = s.ResponseText
		}
		return client, nil
	default:
		return nil, fmt.Errorf("llm provider not registered: %s", vendor.Provider)
	}
}
