package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	Address        string        `env:"RUN_ADDRESS" envDefault:":8080"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"INFO"`
	BackendBaseURL string        `env:"BACKEND_BASE_URL" envDefault:"http://127.0.0.1:8000"`
	PincodeBaseURL string        `env:"PINCODE_BASE_URL" envDefault:"https://api.postalpincode.in"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	SessionCookie  string        `env:"SESSION_COOKIE" envDefault:"wolfly_session"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	FlashSecret    string        `env:"FLASH_SECRET" envDefault:"dev-only-secret"`
	SecureCookies  bool          `env:"SECURE_COOKIES" envDefault:"false"`
	TemplatesGlob  string        `env:"TEMPLATES_GLOB" envDefault:"templates/pages/*.tmpl"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	address := flag.String("a", cfg.Address, "{Host:port} for the web frontend")
	loglevel := flag.String("l", cfg.LogLevel, "Log level")
	backendURL := flag.String("b", cfg.BackendBaseURL, "Base URL of the REST backend")
	timeout := flag.Duration("t", cfg.RequestTimeout, "Per-request timeout for backend calls")

	flag.Parse()

	cfg.Address = *address
	cfg.LogLevel = *loglevel
	cfg.BackendBaseURL = *backendURL
	cfg.RequestTimeout = *timeout

	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL must be set")
	}
	return cfg, nil
}
