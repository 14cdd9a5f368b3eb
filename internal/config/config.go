// Package config handles loading and parsing application configuration.
//
// Sources, lowest priority first:
//  1. defaults declared in the env-default tags below
//  2. a YAML file, when CONFIG_PATH or --config names one
//  3. the process environment, including a .env file in the working
//     directory (loaded with godotenv, never overriding real variables)
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Environments recognised by Env.
const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

// Database drivers recognised by Database.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden by the
// corresponding environment variable.
type Config struct {
	// Env controls log format and whether 500 responses carry error detail.
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	HTTPServer `yaml:"http_server"`
	Database   Database `yaml:"database"`
	Upload     Upload   `yaml:"upload"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the full listen address, e.g. "localhost:8082". When empty
	// the server listens on all interfaces at Port.
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR"`
	Port string `yaml:"port" env:"PORT" env-default:"3000"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Address returns the address to listen on.
func (h HTTPServer) Address() string {
	if h.Addr != "" {
		return h.Addr
	}
	return net.JoinHostPort("0.0.0.0", h.Port)
}

// Database selects and configures the relational store.
type Database struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`

	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"campus"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`

	// Path is the SQLite database file.
	Path string `yaml:"path" env:"DB_PATH" env-default:"./database/campus.db"`

	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"20"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"10m"`
}

// DSN returns the PostgreSQL connection URL.
func (d Database) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Upload configures where uploaded images go.
type Upload struct {
	Dir      string `yaml:"dir" env:"UPLOAD_DIR" env-default:"./uploads"`
	MaxBytes int64  `yaml:"max_bytes" env:"UPLOAD_MAX_BYTES" env-default:"5242880"`
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment are used.
func Load(path string) (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvDev, EnvStaging, EnvProd:
	default:
		return fmt.Errorf("invalid env %q: want dev, staging or prod", c.Env)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("invalid database driver %q: want postgres or sqlite", c.Database.Driver)
	}
	if c.Upload.MaxBytes <= 0 {
		return errors.New("upload max_bytes must be positive")
	}
	return nil
}

// MustLoad reads, validates, and returns the application config, exiting
// the process on failure.
//
// The config file path comes from CONFIG_PATH or, when that is unset, from
// the --config flag. Both may be absent.
func MustLoad() *Config {
	flagPath := flag.String("config", "", "Path to the configuration YAML file")
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = *flagPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
