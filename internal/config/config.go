package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Port              string `json:"port" envconfig:"PORT"`
	RequestTimeoutSec int    `json:"request_timeout_sec" envconfig:"REQUEST_TIMEOUT_SEC"`
	Env               string `json:"env" envconfig:"APP_ENV"`
	LogLevel          string `json:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat         string `json:"log_format" envconfig:"LOG_FORMAT"`
}

type Catalog struct {
	BaseURL    string `json:"base_url" envconfig:"CATALOG_BASE_URL"`
	PageSize   int    `json:"page_size" envconfig:"CATALOG_PAGE_SIZE"`
	MaxPages   int    `json:"max_pages" envconfig:"CATALOG_MAX_PAGES"`
	TimeoutSec int    `json:"timeout_sec" envconfig:"CATALOG_TIMEOUT_SEC"`
}

// Courier configures one shipping-quote provider.
type Courier struct {
	Enabled              bool   `json:"enabled"`
	Endpoint             string `json:"endpoint"`
	APIKey               string `json:"api_key"`
	AuthHeader           string `json:"auth_header"`
	TimeoutSec           int    `json:"timeout_sec"`
	MaxRequestsPerMinute int    `json:"max_requests_per_minute"`
	Burst                int    `json:"burst"`
}

type Config struct {
	Server   Server  `json:"server"`
	Catalog  Catalog `json:"catalog"`
	TraeloYa Courier `json:"traeloya"`
	Uder     Courier `json:"uder"`
}

// courierEnv lists the environment overrides of one courier; prefix is
// TRAELOYA or UDER. Credentials keep their historical *_CREDENTIAL names.
type courierEnv struct {
	Enabled    *bool   `envconfig:"ENABLED"`
	Endpoint   *string `envconfig:"ENDPOINT"`
	APIKey     *string `envconfig:"CREDENTIAL"`
	AuthHeader *string `envconfig:"AUTH_HEADER"`
	TimeoutSec *int    `envconfig:"TIMEOUT_SEC"`
	MaxRPM     *int    `envconfig:"MAX_RPM"`
	Burst      *int    `envconfig:"BURST"`
}

func Default() Config {
	return Config{
		Server:  Server{Port: "5000", RequestTimeoutSec: 20, Env: "development", LogLevel: "info", LogFormat: "json"},
		Catalog: Catalog{BaseURL: "https://dummyjson.com", PageSize: 10, MaxPages: 1000, TimeoutSec: 10},
		TraeloYa: Courier{
			Enabled:    true,
			Endpoint:   "https://recruitment.weflapp.com/tarifier/traelo_ya",
			AuthHeader: "X-Api-Key",
			TimeoutSec: 5,
		},
		Uder: Courier{
			Enabled:    true,
			Endpoint:   "https://recruitment.weflapp.com/tarifier/uder",
			AuthHeader: "user",
			TimeoutSec: 5,
		},
	}
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. A .env file in the working directory is loaded into the
// environment first; environment variables then override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	if err := envconfig.Process("", &cfg.Server); err != nil {
		return fmt.Errorf("env server: %w", err)
	}
	if err := envconfig.Process("", &cfg.Catalog); err != nil {
		return fmt.Errorf("env catalog: %w", err)
	}
	for prefix, c := range map[string]*Courier{"TRAELOYA": &cfg.TraeloYa, "UDER": &cfg.Uder} {
		var e courierEnv
		if err := envconfig.Process(prefix, &e); err != nil {
			return fmt.Errorf("env %s: %w", strings.ToLower(prefix), err)
		}
		e.apply(c)
	}
	return nil
}

func (e courierEnv) apply(c *Courier) {
	if e.Enabled != nil {
		c.Enabled = *e.Enabled
	}
	if e.Endpoint != nil && *e.Endpoint != "" {
		c.Endpoint = *e.Endpoint
	}
	if e.APIKey != nil {
		c.APIKey = *e.APIKey
	}
	if e.AuthHeader != nil && *e.AuthHeader != "" {
		c.AuthHeader = *e.AuthHeader
	}
	if e.TimeoutSec != nil && *e.TimeoutSec > 0 {
		c.TimeoutSec = *e.TimeoutSec
	}
	if e.MaxRPM != nil && *e.MaxRPM >= 0 {
		c.MaxRequestsPerMinute = *e.MaxRPM
	}
	if e.Burst != nil && *e.Burst > 0 {
		c.Burst = *e.Burst
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return errors.New("catalog.base_url is required")
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("catalog.page_size must be positive, got %d", c.Catalog.PageSize)
	}
	if c.Catalog.MaxPages <= 0 {
		return fmt.Errorf("catalog.max_pages must be positive, got %d", c.Catalog.MaxPages)
	}
	if !c.TraeloYa.Enabled && !c.Uder.Enabled {
		return errors.New("at least one shipping provider must be enabled")
	}
	return nil
}

// Timeout converts a seconds setting, using def when unset.
func Timeout(sec int, def time.Duration) time.Duration {
	if sec <= 0 {
		return def
	}
	return time.Duration(sec) * time.Second
}
