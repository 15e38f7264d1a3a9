package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable read by this package.
const EnvPrefix = "SLASHDM_"

// ServerConfig holds settings for the HTTP API, the push listener and storage.
type ServerConfig struct {
	ServiceName      string         `env:"SERVICE_NAME" envDefault:"slashdm"`
	Environment      string         `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string         `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr         string         `env:"HTTP_ADDR" envDefault:":8080"`
	PushAddr         string         `env:"PUSH_ADDR" envDefault:":9000"`
	HandshakeTimeout time.Duration  `env:"HANDSHAKE_TIMEOUT" envDefault:"10s"`
	WriteTimeout     time.Duration  `env:"WRITE_TIMEOUT" envDefault:"15s"`
	PingInterval     time.Duration  `env:"PING_INTERVAL" envDefault:"30s"`
	MaxFrameBytes    int            `env:"MAX_FRAME_BYTES" envDefault:"1048576"`
	SendBuffer       int            `env:"SEND_BUFFER" envDefault:"64"`
	ShutdownTimeout  time.Duration  `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxMessageLength int            `env:"MAX_MESSAGE_LENGTH" envDefault:"2000"`
	Database         DatabaseConfig `envPrefix:"DB_"`
	JWT              JWTConfig      `envPrefix:"JWT_"`
}

// ClientConfig holds settings for the terminal client.
type ClientConfig struct {
	APIURL         string        `env:"API_URL" envDefault:"http://localhost:8080"`
	PushAddr       string        `env:"PUSH_ADDR" envDefault:"localhost:9000"`
	Token          string        `env:"TOKEN"`
	Prefix         string        `env:"COMMAND_PREFIX" envDefault:"/"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig captures storage configuration.
type DatabaseConfig struct {
	Driver          string        `env:"DRIVER" envDefault:"sqlite"`
	DSN             string        `env:"DSN" envDefault:"slashdm.db"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"15"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
}

// JWTConfig defines token verification parameters.
type JWTConfig struct {
	Secret     string        `env:"SECRET"`
	Issuer     string        `env:"ISSUER" envDefault:"slashdm"`
	Expiration time.Duration `env:"EXPIRATION" envDefault:"24h"`
	JWKSURL    string        `env:"JWKS_URL"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// LoadServerConfig builds the server configuration from environment variables with sensible defaults.
func LoadServerConfig() (ServerConfig, error) {
	loadEnvFiles()

	var cfg ServerConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadClientConfig builds the client configuration from environment variables.
func LoadClientConfig() (ClientConfig, error) {
	loadEnvFiles()

	var cfg ClientConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c ServerConfig) Validate() error {
	var errs []error
	switch strings.ToLower(c.Database.Driver) {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("DB_DSN is required"))
	}
	if strings.TrimSpace(c.JWT.Secret) == "" && strings.TrimSpace(c.JWT.JWKSURL) == "" {
		errs = append(errs, errors.New("JWT_SECRET or JWT_JWKS_URL is required"))
	}
	if c.SendBuffer <= 0 {
		errs = append(errs, errors.New("SEND_BUFFER must be positive"))
	}
	if c.MaxFrameBytes <= 0 {
		errs = append(errs, errors.New("MAX_FRAME_BYTES must be positive"))
	}
	if c.MaxMessageLength <= 0 {
		errs = append(errs, errors.New("MAX_MESSAGE_LENGTH must be positive"))
	}
	return errors.Join(errs...)
}

// CommandPrefix returns the first rune of the configured prefix, defaulting to '/'.
func (c ClientConfig) CommandPrefix() rune {
	runes := []rune(c.Prefix)
	if len(runes) == 0 {
		return '/'
	}
	return runes[0]
}

// loadEnvFiles reads .env files without overriding variables already set in the process.
func loadEnvFiles() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
		}
	}
}
