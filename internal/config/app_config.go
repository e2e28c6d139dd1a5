package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the variable holding the optional YAML config path
const ConfigPathEnv = "JOBTRACK_CONFIG"

// Storage drivers
const (
	DriverDynamoDB = "dynamodb"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

// Log modes
const (
	LogModeDevelopment = "development"
	LogModeProduction  = "production"
)

type HTTPConfig struct {
	Port string `yaml:"port"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
}

type DynamoDBConfig struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Table    string `yaml:"table"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type StorageConfig struct {
	Driver   string         `yaml:"driver"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
	MySQL    MySQLConfig    `yaml:"mysql"`
}

// RedisConfig configures the stats cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	StatsTTL time.Duration `yaml:"statsTTL"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwtSecret"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// AppConfig is the complete runtime configuration of the API
type AppConfig struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Redis   RedisConfig   `yaml:"redis"`
	Auth    AuthConfig    `yaml:"auth"`
	CORS    CORSConfig    `yaml:"cors"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// Default returns the configuration used for local development
func Default() AppConfig {
	return AppConfig{
		HTTP: HTTPConfig{Port: "8080"},
		Log:  LogConfig{Mode: LogModeDevelopment},
		Storage: StorageConfig{
			Driver: DriverDynamoDB,
			DynamoDB: DynamoDBConfig{
				Endpoint: "http://localhost:9000",
				Region:   "us-east-1",
				Table:    "jobs",
			},
		},
		Redis:   RedisConfig{StatsTTL: 5 * time.Minute},
		CORS:    CORSConfig{AllowedOrigins: []string{"*"}},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads the file named by JOBTRACK_CONFIG (if any), applies
// environment overrides and validates the result.
func Load() (AppConfig, error) {
	return LoadFrom(os.Getenv(ConfigPathEnv), os.Getenv)
}

// LoadFrom is Load with an explicit file path and environment lookup.
func LoadFrom(path string, getenv func(string) string) (AppConfig, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return AppConfig{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decodeYAML(raw, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return AppConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func decodeYAML(raw []byte, cfg *AppConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *AppConfig, getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	setString("HTTP_PORT", &cfg.HTTP.Port)
	setString("LOG_MODE", &cfg.Log.Mode)
	setString("STORAGE_DRIVER", &cfg.Storage.Driver)
	setString("DYNAMODB_ENDPOINT", &cfg.Storage.DynamoDB.Endpoint)
	setString("DYNAMODB_REGION", &cfg.Storage.DynamoDB.Region)
	setString("DYNAMODB_TABLE", &cfg.Storage.DynamoDB.Table)
	setString("MYSQL_DSN", &cfg.Storage.MySQL.DSN)
	setString("REDIS_ADDR", &cfg.Redis.Addr)
	setString("REDIS_PASSWORD", &cfg.Redis.Password)
	setString("JWT_SECRET", &cfg.Auth.JWTSecret)

	if v := strings.TrimSpace(getenv("REDIS_DB")); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.Redis.DB = db
	}

	if v := strings.TrimSpace(getenv("STATS_CACHE_TTL")); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid STATS_CACHE_TTL %q: %w", v, err)
		}
		cfg.Redis.StatsTTL = ttl
	}

	if v := strings.TrimSpace(getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		var origins []string
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		cfg.CORS.AllowedOrigins = origins
	}

	if v := strings.TrimSpace(getenv("METRICS_ENABLED")); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid METRICS_ENABLED %q: %w", v, err)
		}
		cfg.Metrics.Enabled = enabled
	}

	return nil
}

// Validate reports the first configuration problem found
func (c AppConfig) Validate() error {
	if c.HTTP.Port == "" {
		return errors.New("http port is required")
	}

	switch c.Log.Mode {
	case LogModeDevelopment, LogModeProduction:
	default:
		return fmt.Errorf("unknown log mode %q", c.Log.Mode)
	}

	switch c.Storage.Driver {
	case DriverDynamoDB:
		if c.Storage.DynamoDB.Region == "" || c.Storage.DynamoDB.Table == "" {
			return errors.New("dynamodb region and table are required")
		}
	case DriverMySQL:
		if c.Storage.MySQL.DSN == "" {
			return errors.New("MYSQL_DSN is required for the mysql driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.CacheEnabled() && c.Redis.StatsTTL <= 0 {
		return errors.New("stats cache TTL must be positive")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	return nil
}

// CacheEnabled reports whether the Redis stats cache is configured
func (c AppConfig) CacheEnabled() bool {
	return c.Redis.Addr != ""
}
