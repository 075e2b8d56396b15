package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverJSON   = "json"
	StoreDriverSQLite = "sqlite"

	defaultJSONStorePath   = "data/reviews.json"
	defaultSQLiteStorePath = "data/reviews"
	localSessionSecret     = "shopreviews-local-dev"
)

type Config struct {
	Environment   string
	Server        ServerConfig
	Store         StoreConfig
	Auth          AuthConfig
	Shopify       ShopifyConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port int
}

type StoreConfig struct {
	Driver    string
	Path      string
	Strict    bool
	LogTiming bool
}

type AuthConfig struct {
	SessionSecret string
	SecureCookie  bool
}

type ShopifyConfig struct {
	APIKey      string
	APISecret   string
	CallbackURL string
	Scopes      []string
	APIVersion  string
	TimeoutMS   int
	RateLimit   float64
}

type ObservabilityConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	OTLPTraceHeaders  map[string]string
	OTLPMetricHeaders map[string]string
	ServiceName       string
	ServiceVer        string
	SamplingRatio     float64
	MetricsConsole    bool
}

func Load() (Config, error) {
	return load(true)
}

// LoadForTool loads config for CLI tools that do not require auth session secrets.
func LoadForTool() (Config, error) {
	return load(false)
}

func load(requireSessionSecret bool) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("reviews_env", "")
	v.SetDefault("app_env", "")
	v.SetDefault("go_env", "")
	v.SetDefault("reviews_port", 8080)
	v.SetDefault("reviews_secure_cookie", false)
	v.SetDefault("shopify_api_key", "")
	v.SetDefault("shopify_api_secret", "")
	v.SetDefault("shopify_callback_url", "")
	v.SetDefault("shopify_scopes", "read_products")
	v.SetDefault("reviews_shopify_api_version", "2024-10")
	v.SetDefault("reviews_shopify_timeout_ms", 10000)
	v.SetDefault("reviews_shopify_rate_limit", 0.0)
	v.SetDefault("reviews_store_driver", StoreDriverJSON)
	v.SetDefault("reviews_store_path", "")
	v.SetDefault("reviews_store_strict", false)
	v.SetDefault("reviews_db_timing", false)
	v.SetDefault("reviews_otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_exporter_otlp_headers", "")
	v.SetDefault("otel_exporter_otlp_traces_headers", "")
	v.SetDefault("otel_exporter_otlp_metrics_headers", "")
	v.SetDefault("otel_service_name", "shopreviews")
	v.SetDefault("reviews_version", "dev")
	v.SetDefault("otel_service_version", "")
	v.SetDefault("reviews_otel_sampling_ratio", 1.0)
	v.SetDefault("reviews_otel_metrics_console", false)

	env := resolveEnvironment(v)
	port := v.GetInt("reviews_port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid REVIEWS_PORT: %d", port)
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("reviews_store_driver")))
	if driver == "" {
		driver = StoreDriverJSON
	}
	if driver != StoreDriverJSON && driver != StoreDriverSQLite {
		return Config{}, fmt.Errorf("invalid REVIEWS_STORE_DRIVER: %q (want %s or %s)", driver, StoreDriverJSON, StoreDriverSQLite)
	}
	storePath := strings.TrimSpace(v.GetString("reviews_store_path"))
	if storePath == "" {
		storePath = defaultJSONStorePath
		if driver == StoreDriverSQLite {
			storePath = defaultSQLiteStorePath
		}
	}

	samplingRatio := clampFloat(v.GetFloat64("reviews_otel_sampling_ratio"), 0, 1)

	timeoutMS := v.GetInt("reviews_shopify_timeout_ms")
	if timeoutMS <= 0 {
		timeoutMS = 10000
	}
	if timeoutMS < 100 {
		timeoutMS = 100
	}
	if timeoutMS > 60000 {
		timeoutMS = 60000
	}

	rateLimit := v.GetFloat64("reviews_shopify_rate_limit")
	if rateLimit < 0 {
		rateLimit = 0
	}

	apiVersion := strings.TrimSpace(v.GetString("reviews_shopify_api_version"))
	if apiVersion == "" {
		apiVersion = "2024-10"
	}

	callbackURL := strings.TrimSpace(v.GetString("shopify_callback_url"))
	if callbackURL == "" {
		callbackURL = fmt.Sprintf("http://localhost:%d/auth/shopify/callback", port)
	}

	serviceName := strings.TrimSpace(v.GetString("otel_service_name"))
	if serviceName == "" {
		serviceName = "shopreviews"
	}

	serviceVersion := strings.TrimSpace(v.GetString("reviews_version"))
	if serviceVersion == "" {
		serviceVersion = strings.TrimSpace(v.GetString("otel_service_version"))
	}
	if serviceVersion == "" {
		serviceVersion = "dev"
	}

	otlpEndpoint := strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint"))
	otlpCommonHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_headers"))
	otlpTraceHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_traces_headers"))
	otlpMetricHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_metrics_headers"))
	metricsConsole := v.GetBool("reviews_otel_metrics_console")
	otelEnabled := v.GetBool("reviews_otel_enabled") || otlpEndpoint != "" || metricsConsole

	cfg := Config{
		Environment: env,
		Server:      ServerConfig{Port: port},
		Store: StoreConfig{
			Driver:    driver,
			Path:      storePath,
			Strict:    v.GetBool("reviews_store_strict"),
			LogTiming: v.GetBool("reviews_db_timing"),
		},
		Auth: AuthConfig{
			SessionSecret: strings.TrimSpace(v.GetString("reviews_session_secret")),
			SecureCookie:  v.GetBool("reviews_secure_cookie"),
		},
		Shopify: ShopifyConfig{
			APIKey:      strings.TrimSpace(v.GetString("shopify_api_key")),
			APISecret:   strings.TrimSpace(v.GetString("shopify_api_secret")),
			CallbackURL: callbackURL,
			Scopes:      parseList(v.GetString("shopify_scopes")),
			APIVersion:  apiVersion,
			TimeoutMS:   timeoutMS,
			RateLimit:   rateLimit,
		},
		Observability: ObservabilityConfig{
			Enabled:           otelEnabled,
			OTLPEndpoint:      otlpEndpoint,
			OTLPTraceHeaders:  mergeHeaderMaps(otlpCommonHeaders, otlpTraceHeaders),
			OTLPMetricHeaders: mergeHeaderMaps(otlpCommonHeaders, otlpMetricHeaders),
			ServiceName:       serviceName,
			ServiceVer:        serviceVersion,
			SamplingRatio:     samplingRatio,
			MetricsConsole:    metricsConsole,
		},
	}

	if requireSessionSecret && !cfg.IsLocalDevelopment() && cfg.Auth.SessionSecret == "" {
		return Config{}, fmt.Errorf("REVIEWS_SESSION_SECRET is required outside local/dev environments")
	}
	if cfg.IsLocalDevelopment() && cfg.Auth.SessionSecret == "" {
		cfg.Auth.SessionSecret = localSessionSecret
	}

	return cfg, nil
}

func parseOTLPHeaders(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mergeHeaderMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func clampFloat(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func (c Config) IsLocalDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

// ShopifyTimeout is the bound on one upstream product request.
func (c Config) ShopifyTimeout() time.Duration {
	return time.Duration(c.Shopify.TimeoutMS) * time.Millisecond
}

// OAuthConfigured reports whether the Shopify install flow can run.
func (c Config) OAuthConfigured() bool {
	return c.Shopify.APIKey != "" && c.Shopify.APISecret != ""
}

func resolveEnvironment(v *viper.Viper) string {
	for _, key := range []string{"reviews_env", "app_env", "go_env"} {
		value := strings.TrimSpace(v.GetString(key))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}
