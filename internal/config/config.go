package config

import "time"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Redis     RedisConfig     `yaml:"redis"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Routing   RoutingConfig   `yaml:"routing"`
	Tuning    TuningConfig    `yaml:"tuning"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Tiering   TieringConfig   `yaml:"tiering"`
}

type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type TelemetryConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	MetricsPort int    `yaml:"metrics_port"`
}

// RoutingConfig controls provider selection and failure handling. The
// classifier provider is the fast/cheap model used for intent
// classification; drafting uses the backend suggested per request.
type RoutingConfig struct {
	ClassifierProvider string               `yaml:"classifier_provider"`
	ClassifierModel    string               `yaml:"classifier_model"`
	FallbackProvider   string               `yaml:"fallback_provider"`
	DefaultTimeout     time.Duration        `yaml:"default_timeout"`
	CircuitBreaker     CircuitBreakerConfig `yaml:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	FailureThreshold      int           `yaml:"failure_threshold"`
	RecoveryProbeInterval time.Duration `yaml:"recovery_probe_interval"`
}

// TuningConfig holds the heuristic constants of the pipeline. They are not
// statistically derived; they live here so deployments can adjust them
// without a code change.
type TuningConfig struct {
	PrimaryActionThreshold float64       `yaml:"primary_action_threshold"`
	SentimentHysteresis    float64       `yaml:"sentiment_hysteresis"`
	ConfidenceScale        float64       `yaml:"confidence_scale"`
	FallbackConfidence     float64       `yaml:"fallback_confidence"`
	DebounceWindow         time.Duration `yaml:"debounce_window"`
	FeedbackLogCapacity    int           `yaml:"feedback_log_capacity"`
}

type RateLimitConfig struct {
	Presets map[string]RateLimitPreset `yaml:"presets"`
}

type RateLimitPreset struct {
	MaxRequests int64         `yaml:"max_requests"`
	Window      time.Duration `yaml:"window"`
}

type TieringConfig struct {
	PolicyDir         string        `yaml:"policy_dir"`
	EvaluationTimeout time.Duration `yaml:"evaluation_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     60 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 30 * time.Second,
		},
		Redis: RedisConfig{
			DB:       0,
			PoolSize: 50,
		},
		Telemetry: TelemetryConfig{
			LogLevel:    "info",
			LogFormat:   "json",
			MetricsPort: 9090,
		},
		Routing: RoutingConfig{
			ClassifierProvider: "openai",
			ClassifierModel:    "gpt-4o-mini",
			FallbackProvider:   "openai",
			DefaultTimeout:     15 * time.Second,
			CircuitBreaker: CircuitBreakerConfig{
				FailureThreshold:      5,
				RecoveryProbeInterval: 15 * time.Second,
			},
		},
		Tuning: TuningConfig{
			PrimaryActionThreshold: 0.8,
			SentimentHysteresis:    1.2,
			ConfidenceScale:        5.0,
			FallbackConfidence:     0.7,
			DebounceWindow:         500 * time.Millisecond,
			FeedbackLogCapacity:    100,
		},
		RateLimit: RateLimitConfig{
			Presets: map[string]RateLimitPreset{
				"ai":      {MaxRequests: 5, Window: time.Minute},
				"voice":   {MaxRequests: 10, Window: time.Minute},
				"general": {MaxRequests: 30, Window: time.Minute},
				"admin":   {MaxRequests: 10, Window: 5 * time.Minute},
			},
		},
		Tiering: TieringConfig{
			EvaluationTimeout: 100 * time.Millisecond,
		},
	}
}
