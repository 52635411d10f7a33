// Package config maps environment variables into a validated Config.
//
// A `.env` file in the working directory is loaded first when present.
// Only the variables listed in envKeys are read; everything else in the
// process environment is ignored.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultPort     = "5000"
	DefaultDBName   = "cornerAdvisor"
	DefaultTokenTTL = time.Hour
)

// envKeys maps environment variable names to koanf keys.
var envKeys = map[string]string{
	"PORT":                 "server.port",
	"READ_TIMEOUT":         "server.read_timeout",
	"WRITE_TIMEOUT":        "server.write_timeout",
	"IDLE_TIMEOUT":         "server.idle_timeout",
	"CORS_ALLOWED_ORIGINS": "server.cors_allowed_origins",
	"MONGODB_URI":          "database.uri",
	"DB_USER":              "database.user",
	"DB_PASS":              "database.password",
	"DB_CLUSTER":           "database.cluster",
	"DB_NAME":              "database.name",
	"ACCESS_TOKEN_SECRET":  "auth.secret",
	"TOKEN_TTL":            "auth.token_ttl",
	"LOG_LEVEL":            "log.level",
}

type Config struct {
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Auth     AuthConfig     `koanf:"auth" validate:"required"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required,numeric"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"gte=0"`
	CORSAllowedOrigins string        `koanf:"cors_allowed_origins"`
}

// DatabaseConfig holds either a full connection URI or the Atlas
// credentials and cluster host it is built from.
type DatabaseConfig struct {
	URI      string `koanf:"uri" validate:"omitempty,uri"`
	User     string `koanf:"user" validate:"required_without=URI"`
	Password string `koanf:"password" validate:"required_without=URI"`
	Cluster  string `koanf:"cluster" validate:"required_without=URI"`
	Name     string `koanf:"name" validate:"required"`
}

type AuthConfig struct {
	Secret   string        `koanf:"secret" validate:"required"`
	TokenTTL time.Duration `koanf:"token_ttl" validate:"gt=0"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// ConnectionURI returns URI when set, otherwise an Atlas SRV URI.
func (d DatabaseConfig) ConnectionURI() string {
	if d.URI != "" {
		return d.URI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(d.User), url.QueryEscape(d.Password), d.Cluster)
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// AllowedOrigins splits the comma-separated CORS origin list.
func (s ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(s.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Load reads the environment, applies defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.setDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.CORSAllowedOrigins == "" {
		c.Server.CORSAllowedOrigins = "*"
	}
	if c.Database.Name == "" {
		c.Database.Name = DefaultDBName
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = DefaultTokenTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
