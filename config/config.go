package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultJWTSecret = "your-secret-key-change-this-in-production"
)

type Config struct {
	Port   string `yaml:"port"`
	AppEnv string `yaml:"app_env"`
	SSL    bool   `yaml:"ssl"`

	DBDriver   string `yaml:"db_driver"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_sslmode"`
	DBMaxConns int    `yaml:"db_max_conns"`

	LogLevel string `yaml:"log_level"`

	JWTSecret     string        `yaml:"jwt_secret"`
	JWTExpiration time.Duration `yaml:"jwt_expiration"`

	AdminName     string `yaml:"admin_name"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`

	// Capability flags selecting the optional joins of the query layer.
	FeatureAuthorJoin bool `yaml:"feature_author_join"`
	FeatureImages     bool `yaml:"feature_images"`

	MaxImageBytes int64 `yaml:"max_image_bytes"`
}

func defaults() *Config {
	return &Config{
		Port:              "3000",
		AppEnv:            "development",
		DBDriver:          DriverMySQL,
		DBHost:            "localhost",
		DBUser:            "root",
		DBName:            "news_db",
		DBSSLMode:         "disable",
		DBMaxConns:        10,
		LogLevel:          "info",
		JWTSecret:         defaultJWTSecret,
		JWTExpiration:     24 * time.Hour,
		AdminName:         "Administrator",
		AdminEmail:        "admin@news.com",
		AdminPassword:     "admin123",
		FeatureAuthorJoin: true,
		FeatureImages:     true,
		MaxImageBytes:     5 << 20,
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and the environment (including a .env file when present), in
// that order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	if cfg.DBPort == "" {
		switch cfg.DBDriver {
		case DriverPostgres:
			cfg.DBPort = "5432"
		case DriverMySQL:
			cfg.DBPort = "3306"
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.AppEnv, "APP_ENV")
	setString(&c.DBDriver, "DB_DRIVER")
	setString(&c.DBHost, "DB_HOST")
	setString(&c.DBPort, "DB_PORT")
	setString(&c.DBUser, "DB_USER")
	setString(&c.DBPassword, "DB_PASSWORD")
	setString(&c.DBName, "DB_NAME")
	setString(&c.DBSSLMode, "DB_SSLMODE")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.AdminName, "ADMIN_NAME")
	setString(&c.AdminEmail, "ADMIN_EMAIL")
	setString(&c.AdminPassword, "ADMIN_PASSWORD")

	if err := setBool(&c.SSL, "SSL"); err != nil {
		return err
	}
	if err := setBool(&c.FeatureAuthorJoin, "FEATURE_AUTHOR_JOIN"); err != nil {
		return err
	}
	if err := setBool(&c.FeatureImages, "FEATURE_IMAGES"); err != nil {
		return err
	}

	if v := os.Getenv("DB_MAX_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_MAX_CONNS %q: %w", v, err)
		}
		c.DBMaxConns = n
	}
	if v := os.Getenv("MAX_IMAGE_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_IMAGE_BYTES %q: %w", v, err)
		}
		c.MaxImageBytes = n
	}
	if v := os.Getenv("JWT_EXPIRATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_EXPIRATION %q: %w", v, err)
		}
		c.JWTExpiration = d
	}
	return nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("MAX_IMAGE_BYTES must be positive, got %d", c.MaxImageBytes)
	}
	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive, got %s", c.JWTExpiration)
	}
	return nil
}

// UsesDefaultJWTSecret reports whether the built-in development secret is in use.
func (c *Config) UsesDefaultJWTSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = b
	return nil
}
