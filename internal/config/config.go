package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/crucial707/watchlist/internal/db"
	"gopkg.in/yaml.v3"
)

// DefaultSecretKey is only acceptable outside prod.
const DefaultSecretKey = "dev"

type Config struct {
	Port string `yaml:"port"`

	// Env is "dev" (default) or "prod". When "prod", SECRET_KEY must be set and not the default.
	Env string `yaml:"env"`

	// SecretKey signs the session and flash cookies.
	SecretKey string `yaml:"secret_key"`

	// DBDriver is "sqlite" (default) or "postgres".
	DBDriver string `yaml:"db_driver"`
	// DatabaseFile is the SQLite file used when DBDriver is sqlite.
	DatabaseFile string `yaml:"database_file"`
	// DatabaseURL overrides every other database setting when set.
	DatabaseURL string `yaml:"database_url"`

	DBHost string `yaml:"db_host"`
	DBPort string `yaml:"db_port"`
	DBName string `yaml:"db_name"`
	DBUser string `yaml:"db_user"`
	DBPass string `yaml:"db_pass"`

	// DBMaxOpenConns is the maximum number of open connections to postgres (default 25).
	DBMaxOpenConns int `yaml:"db_max_open_conns"`
	// DBMaxIdleConns is the maximum number of idle postgres connections (default 5).
	DBMaxIdleConns int `yaml:"db_max_idle_conns"`

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string `yaml:"tls_cert_file"`
	TLSKeyFile  string `yaml:"tls_key_file"`

	// CookieSecure marks session and flash cookies Secure. Implied by TLS.
	CookieSecure bool `yaml:"cookie_secure"`

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string `yaml:"log_format"`
}

func defaults() Config {
	return Config{
		Port:           "5000",
		Env:            "dev",
		SecretKey:      DefaultSecretKey,
		DBDriver:       db.DriverSQLite,
		DatabaseFile:   "data.db",
		DBHost:         "localhost",
		DBPort:         "5432",
		DBName:         "watchlist",
		DBUser:         "watchlist",
		DBPass:         "watchlist",
		DBMaxOpenConns: 25,
		DBMaxIdleConns: 5,
		LogFormat:      "text",
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// WATCHLIST_CONFIG (if any), then environment variables.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("WATCHLIST_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.SecretKey = getEnv("SECRET_KEY", cfg.SecretKey)

	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DatabaseFile = getEnv("DATABASE_FILE", cfg.DatabaseFile)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPass = getEnv("DB_PASS", cfg.DBPass)
	cfg.DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.DBMaxOpenConns)
	cfg.DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.DBMaxIdleConns)

	cfg.TLSCertFile = getEnv("TLS_CERT_FILE", cfg.TLSCertFile)
	cfg.TLSKeyFile = getEnv("TLS_KEY_FILE", cfg.TLSKeyFile)
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", cfg.CookieSecure)

	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	return cfg, cfg.Validate()
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY must not be empty"))
	}
	if c.Env == "prod" && c.SecretKey == DefaultSecretKey {
		errs = append(errs, errors.New("SECRET_KEY must be changed from the default in prod"))
	}
	if c.DBDriver != db.DriverSQLite && c.DBDriver != db.DriverPostgres {
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverSQLite, db.DriverPostgres, c.DBDriver))
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// TLSEnabled reports whether the server should listen with HTTPS.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// SecureCookies reports whether cookies must carry the Secure attribute.
func (c Config) SecureCookies() bool {
	return c.CookieSecure || c.TLSEnabled()
}

// DSN returns the data source name for DBDriver.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBDriver == db.DriverPostgres {
		return db.PostgresDSN(c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPass)
	}
	return c.DatabaseFile
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
