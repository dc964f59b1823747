package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Driver identifies which relational store backs the survey records.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

const (
	DefaultPort       = "5050"
	DefaultSQLitePath = "db.sqlite3"
	DefaultSchema     = "cqhei"
	DefaultPGPort     = "5432"
	DefaultTimeZone   = "UTC"

	// DefaultSecretKey keeps local development working; production refuses it.
	DefaultSecretKey = "unsafe-local-dev-secret-key-change-this"
)

var (
	ErrMissingPort = errors.New("config: port is empty")
	ErrMissingDSN  = errors.New("config: postgres selected but no DSN configured")
	ErrDevSecret   = errors.New("config: SECRETKEY must be set in production")
)

// DatabaseConfig selects and locates the backing store.
type DatabaseConfig struct {
	Driver     Driver `yaml:"driver"`
	DSN        string `yaml:"dsn"`
	SQLitePath string `yaml:"sqlite_path"`
	// Schema is only used on postgres, where tables live under "<schema>.".
	Schema string `yaml:"schema"`
}

// Config holds the service settings.
type Config struct {
	Port         string         `yaml:"port"`
	Debug        bool           `yaml:"debug"`
	AllowedHosts []string       `yaml:"allowed_hosts"`
	TimeZone     string         `yaml:"time_zone"`
	Production   bool           `yaml:"production"`
	SecretKey    string         `yaml:"secret_key"`
	Database     DatabaseConfig `yaml:"database"`
}

func Default() Config {
	return Config{
		Port:         DefaultPort,
		AllowedHosts: []string{"localhost", "127.0.0.1"},
		TimeZone:     DefaultTimeZone,
		SecretKey:    DefaultSecretKey,
		Database: DatabaseConfig{
			Driver:     DriverSQLite,
			SQLitePath: DefaultSQLitePath,
			Schema:     DefaultSchema,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named
// by CQHEI_CONFIG, and finally the environment.
//
// Environment variables:
//   - PORT: HTTP port (default: 5050)
//   - DEBUG: "true" enables verbose SQL logging
//   - ALLOWEDHOSTS: comma separated Host allow-list (default: localhost,127.0.0.1)
//   - TIME_ZONE: IANA zone used to decide what "today" is (default: UTC)
//   - SECRETKEY: signs the CSRF cookie; required in production
//   - WEBSITE_HOSTNAME: deployment marker; when set the service runs in production mode
//   - DATABASE_URL: postgres DSN, takes precedence over everything else
//   - DBNAME, DBUSER, DBPASSWORD, DBHOST, DBPORT: postgres parts, used in production only
//   - SQLITE_PATH: local database file (default: db.sqlite3)
//   - DB_SCHEMA: postgres schema for survey tables (default: cqhei)
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CQHEI_CONFIG")); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML document at path onto cfg.
func LoadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}
	if debug := strings.TrimSpace(os.Getenv("DEBUG")); debug != "" {
		cfg.Debug = strings.EqualFold(debug, "true")
	}
	if hosts := strings.TrimSpace(os.Getenv("ALLOWEDHOSTS")); hosts != "" {
		cfg.AllowedHosts = splitList(hosts)
	}
	if tz := strings.TrimSpace(os.Getenv("TIME_ZONE")); tz != "" {
		cfg.TimeZone = tz
	}
	if secret := os.Getenv("SECRETKEY"); secret != "" {
		cfg.SecretKey = secret
	}
	if os.Getenv("WEBSITE_HOSTNAME") != "" {
		cfg.Production = true
	}
	if p := strings.TrimSpace(os.Getenv("SQLITE_PATH")); p != "" {
		cfg.Database.SQLitePath = p
	}
	if s := strings.TrimSpace(os.Getenv("DB_SCHEMA")); s != "" {
		cfg.Database.Schema = s
	}

	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		cfg.Database.Driver = DriverPostgres
		cfg.Database.DSN = dsn
		return
	}

	// Networked store only when deployed and fully configured, otherwise
	// fall through to whatever the defaults or the file selected.
	if cfg.Production {
		if dsn, ok := postgresDSNFromParts(); ok {
			cfg.Database.Driver = DriverPostgres
			cfg.Database.DSN = dsn
		}
	}
}

func postgresDSNFromParts() (string, bool) {
	name := os.Getenv("DBNAME")
	user := os.Getenv("DBUSER")
	password := os.Getenv("DBPASSWORD")
	host := os.Getenv("DBHOST")
	if name == "" || user == "" || password == "" || host == "" {
		return "", false
	}

	port := os.Getenv("DBPORT")
	if port == "" {
		port = DefaultPGPort
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=require&connect_timeout=30",
	}
	return u.String(), true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that the configuration can be used to boot the service.
func (c Config) Validate() error {
	if c.Port == "" {
		return ErrMissingPort
	}
	if c.Production && (c.SecretKey == "" || c.SecretKey == DefaultSecretKey) {
		return ErrDevSecret
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("config: sqlite selected but no path configured")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TimeZone, defaulting to UTC.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// SSLRedirect reports whether plain HTTP requests should be sent to HTTPS.
func (c Config) SSLRedirect() bool { return c.Production }
