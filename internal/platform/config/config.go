// Package config loads server configuration from an optional TOML file and
// the environment. Environment variables always win over the file.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// DevSigningKey is only accepted outside production.
const DevSigningKey = "dev-secret-key-change-in-production"

// Config captures process level configuration.
type Config struct {
	Env      string         `toml:"env"`
	Store    string         `toml:"store"`
	LogLevel string         `toml:"log_level"`
	Server   ServerConfig   `toml:"server"`
	Auth     AuthConfig     `toml:"auth"`
	Database DatabaseConfig `toml:"database"`
}

type ServerConfig struct {
	Addr            string   `toml:"addr"`
	CORSOrigins     []string `toml:"cors_origins"`
	RequestTimeout  duration `toml:"request_timeout"`
	ShutdownTimeout duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

type AuthConfig struct {
	JWTSigningKey string   `toml:"jwt_signing_key"`
	TokenTTL      duration `toml:"token_ttl"`
	BcryptCost    int      `toml:"bcrypt_cost"`
}

type DatabaseConfig struct {
	URL             string   `toml:"url"`
	User            string   `toml:"user"`
	Host            string   `toml:"host"`
	Name            string   `toml:"name"`
	Password        string   `toml:"password"`
	Port            int      `toml:"port"`
	MaxOpenConns    int      `toml:"max_open_conns"`
	MaxIdleConns    int      `toml:"max_idle_conns"`
	ConnMaxLifetime duration `toml:"conn_max_lifetime"`
	AutoMigrate     bool     `toml:"auto_migrate"`
}

// duration decodes TOML strings such as "2h" into a time.Duration.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Env:      "development",
		Store:    StorePostgres,
		LogLevel: "info",
		Server: ServerConfig{
			Addr: ":3001",
			CORSOrigins: []string{
				"http://localhost:5173",
				"http://localhost:4173",
				"http://localhost:3000",
				"http://localhost",
			},
			RequestTimeout:  duration{30 * time.Second},
			ShutdownTimeout: duration{10 * time.Second},
			MaxBodyBytes:    1 << 20,
		},
		Auth: AuthConfig{
			TokenTTL:   duration{2 * time.Hour},
			BcryptCost: 10,
		},
		Database: DatabaseConfig{
			User:            "postgres",
			Host:            "localhost",
			Name:            "mydb",
			Password:        "postgres",
			Port:            5432,
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: duration{5 * time.Minute},
		},
	}
}

// Load builds the configuration: defaults, then the TOML file named by
// RUBRICA_CONFIG (if set), then environment variables.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if path, ok := lookup("RUBRICA_CONFIG"); ok && path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []string
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, key+": "+err.Error())
				return
			}
			*dst = n
		}
	}
	dur := func(key string, dst *duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, key+": "+err.Error())
				return
			}
			dst.Duration = d
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, key+": "+err.Error())
				return
			}
			*dst = b
		}
	}

	str("RUBRICA_ENV", &cfg.Env)
	str("RUBRICA_STORE", &cfg.Store)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("RUBRICA_ADDR", &cfg.Server.Addr)
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}
	dur("REQUEST_TIMEOUT", &cfg.Server.RequestTimeout)

	str("JWT_SIGNING_KEY", &cfg.Auth.JWTSigningKey)
	dur("TOKEN_TTL", &cfg.Auth.TokenTTL)
	num("BCRYPT_COST", &cfg.Auth.BcryptCost)

	str("DATABASE_URL", &cfg.Database.URL)
	str("DB_USER", &cfg.Database.User)
	str("DB_HOST", &cfg.Database.Host)
	str("DB_NAME", &cfg.Database.Name)
	str("DB_PASSWORD", &cfg.Database.Password)
	num("DB_PORT", &cfg.Database.Port)
	num("DB_MAX_OPEN_CONNS", &cfg.Database.MaxOpenConns)
	num("DB_MAX_IDLE_CONNS", &cfg.Database.MaxIdleConns)
	dur("DB_CONN_MAX_LIFETIME", &cfg.Database.ConnMaxLifetime)
	flag("DB_AUTO_MIGRATE", &cfg.Database.AutoMigrate)

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Store {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.Auth.JWTSigningKey == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SIGNING_KEY is required in production")
		}
		c.Auth.JWTSigningKey = DevSigningKey
	}
	if c.Auth.TokenTTL.Duration <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs with production safeguards.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// TokenTTL is the session token lifetime.
func (c Config) TokenTTL() time.Duration { return c.Auth.TokenTTL.Duration }

// RequestTimeout bounds each HTTP request.
func (c Config) RequestTimeout() time.Duration { return c.Server.RequestTimeout.Duration }

// ShutdownTimeout bounds graceful shutdown.
func (c Config) ShutdownTimeout() time.Duration { return c.Server.ShutdownTimeout.Duration }

// ConnMaxLifetime is the maximum age of a pooled connection.
func (c Config) ConnMaxLifetime() time.Duration { return c.Database.ConnMaxLifetime.Duration }

// DSN returns DATABASE_URL when set, otherwise a URL assembled from the
// individual DB_* settings.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
