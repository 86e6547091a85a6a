package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings backends for the session token
const (
	BackendMemory  = "memory"
	BackendKeyring = "keyring"
	BackendRedis   = "redis"
	BackendSQLite  = "sqlite"
)

// Config contains runtime settings for the MCP server and CLI
type Config struct {
	LogLevel string `yaml:"log_level"`
	Host     string `yaml:"host"` // default 0.0.0.0
	Port     string `yaml:"port"` // default PORT env or 8080
	Parse    struct {
		BaseURL           string  `yaml:"base_url"`
		ApplicationID     string  `yaml:"application_id"`
		ClientKey         string  `yaml:"client_key"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"parse"`
	Settings struct {
		Backend        string `yaml:"backend"` // memory|keyring|redis|sqlite
		KeyringService string `yaml:"keyring_service"`
		SQLitePath     string `yaml:"sqlite_path"`
		// SessionToken seeds the memory backend
		SessionToken   string `yaml:"session_token"`
		Redis          struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"settings"`
	// Neo4j is optional; the sync tool is disabled without it
	Neo4j struct {
		URI      string `yaml:"uri"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"neo4j"`
	// SheetsCredentialsPath is optional; the export tool is disabled without it
	SheetsCredentialsPath string `yaml:"sheets_credentials_path"`
}

// Neo4jEnabled reports whether a graph database is configured
func (c Config) Neo4jEnabled() bool {
	return c.Neo4j.URI != ""
}

// Load populates config from the optional YAML file named by OSCA_JOBS_CONFIG
// and then from environment variables, which take precedence.
func Load() (Config, error) {
	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}
	cfg.Settings.Backend = BackendMemory

	if path := os.Getenv("OSCA_JOBS_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Host, "MCP_HOST")
	setString(&cfg.Port, "PORT")

	setString(&cfg.Parse.BaseURL, "PARSE_BASE_URL")
	setString(&cfg.Parse.ApplicationID, "PARSE_APPLICATION_ID")
	setString(&cfg.Parse.ClientKey, "PARSE_CLIENT_KEY")

	var errs []error
	errs = append(errs, setFloat(&cfg.Parse.RequestsPerSecond, "PARSE_RPS"))
	errs = append(errs, setInt(&cfg.Parse.Burst, "PARSE_BURST"))

	setString(&cfg.Settings.Backend, "SETTINGS_BACKEND")
	setString(&cfg.Settings.KeyringService, "SETTINGS_KEYRING_SERVICE")
	setString(&cfg.Settings.SQLitePath, "SETTINGS_SQLITE_PATH")
	setString(&cfg.Settings.SessionToken, "SESSION_TOKEN")
	setString(&cfg.Settings.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Settings.Redis.Password, "REDIS_PASSWORD")
	errs = append(errs, setInt(&cfg.Settings.Redis.DB, "REDIS_DB"))

	setString(&cfg.Neo4j.URI, "NEO4J_URI")
	setString(&cfg.Neo4j.Username, "NEO4J_USERNAME")
	setString(&cfg.Neo4j.Password, "NEO4J_PASSWORD")

	setString(&cfg.SheetsCredentialsPath, "GOOGLE_SHEETS_CREDENTIALS_PATH")

	if err := errors.Join(errs...); err != nil {
		return cfg, err
	}

	var missingVars []string

	if cfg.Parse.BaseURL == "" {
		missingVars = append(missingVars, "PARSE_BASE_URL")
	}

	if cfg.Parse.ApplicationID == "" {
		missingVars = append(missingVars, "PARSE_APPLICATION_ID")
	}

	switch cfg.Settings.Backend {
	case BackendMemory, BackendKeyring:
	case BackendRedis:
		if cfg.Settings.Redis.Addr == "" {
			missingVars = append(missingVars, "REDIS_ADDR")
		}
	case BackendSQLite:
		if cfg.Settings.SQLitePath == "" {
			missingVars = append(missingVars, "SETTINGS_SQLITE_PATH")
		}
	default:
		return cfg, fmt.Errorf("unknown SETTINGS_BACKEND %q", cfg.Settings.Backend)
	}

	if cfg.Neo4jEnabled() {
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = f
	return nil
}
