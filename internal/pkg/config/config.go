package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, backend URL, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Terminal TerminalConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	TrustedProxies  []string      `envconfig:"TRUSTED_PROXIES"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// BackendConfig points at the service that owns products, clients and sales.
type BackendConfig struct {
	BaseURL      string        `envconfig:"BACKEND_BASE_URL" required:"true"`
	APIToken     string        `envconfig:"BACKEND_API_TOKEN"`
	Timeout      time.Duration `envconfig:"BACKEND_TIMEOUT" default:"10s"`
	ProductsPath string        `envconfig:"BACKEND_PRODUCTS_PATH" default:"/api/products"`
	ClientsPath  string        `envconfig:"BACKEND_CLIENTS_PATH" default:"/api/clients"`
	SalesPath    string        `envconfig:"BACKEND_SALES_PATH" default:"/api/sales"`
	ReceiptPath  string        `envconfig:"BACKEND_RECEIPT_PATH" default:"/api/sales/{id}/remito"`
}

type TerminalConfig struct {
	CurrencySymbol string        `envconfig:"CURRENCY_SYMBOL" default:"$"`
	IdleTTL        time.Duration `envconfig:"TERMINAL_IDLE_TTL" default:"12h"`
	DefaultID      string        `envconfig:"TERMINAL_DEFAULT_ID" default:"main"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Argentina/Buenos_Aires"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-10800"` // -3*60*60
}

// JWTConfig validates operator tokens issued by the backend login.
type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"12h"`
	Issuer   string        `envconfig:"JWT_ISSUER"`
	Leeway   time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate catches settings envconfig accepts but the terminal cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_BASE_URL must be an absolute URL, got %q", c.Backend.BaseURL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive, got %s", c.Backend.Timeout)
	}
	if !strings.Contains(c.Backend.ReceiptPath, "{id}") {
		return fmt.Errorf("BACKEND_RECEIPT_PATH must contain {id}, got %q", c.Backend.ReceiptPath)
	}
	if strings.TrimSpace(c.Terminal.DefaultID) == "" {
		return fmt.Errorf("TERMINAL_DEFAULT_ID must not be empty")
	}
	if c.JWT.Duration <= 0 {
		return fmt.Errorf("JWT_DURATION must be positive, got %s", c.JWT.Duration)
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			ShutdownTimeout: time.Second,
		},
		Backend: BackendConfig{
			BaseURL:      "http://localhost:18000",
			Timeout:      2 * time.Second,
			ProductsPath: "/api/products",
			ClientsPath:  "/api/clients",
			SalesPath:    "/api/sales",
			ReceiptPath:  "/api/sales/{id}/remito",
		},
		Terminal: TerminalConfig{
			CurrencySymbol: "$",
			IdleTTL:        time.Hour,
			DefaultID:      "test",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "America/Argentina/Buenos_Aires",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -10800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
		},
	}
}
