package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of the dashboard server and the report command.
type Config struct {
	Server struct {
		Port            string `yaml:"port"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Data struct {
		Source       string `yaml:"source"` // csv, postgres, mongo
		CSVPath      string `yaml:"csv_path"`
		ImputePolicy string `yaml:"impute_policy"`
	} `yaml:"data"`

	Postgres struct {
		DSN   string `yaml:"dsn"`
		Table string `yaml:"table"`
	} `yaml:"postgres"`

	Mongo struct {
		URI        string `yaml:"uri"`
		Database   string `yaml:"database"`
		Collection string `yaml:"collection"`
	} `yaml:"mongo"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`

	Auth struct {
		Enabled           bool   `yaml:"enabled"`
		JWTSecret         string `yaml:"jwt_secret"`
		RefreshSecret     string `yaml:"refresh_secret"`
		AdminUsername     string `yaml:"admin_username"`
		AdminPasswordHash string `yaml:"admin_password_hash"`
	} `yaml:"auth"`

	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`

	Report struct {
		OutputDir   string `yaml:"output_dir"`
		ChartWidth  int    `yaml:"chart_width"`
		ChartHeight int    `yaml:"chart_height"`
	} `yaml:"report"`
}

// LoadEnv loads a .env file into the process environment when one exists.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			file, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Server.Port = "8080"
	cfg.Server.ShutdownTimeout = "5s"

	cfg.Data.Source = "csv"
	cfg.Data.CSVPath = "students.csv"
	cfg.Data.ImputePolicy = "midpoint"

	cfg.Postgres.Table = "students"

	cfg.Mongo.Database = "student_performance"
	cfg.Mongo.Collection = "students"

	cfg.Redis.TTL = "10m"

	cfg.Auth.AdminUsername = "admin"

	cfg.Logging.Level = "info"
	cfg.Logging.Pretty = true

	cfg.Report.OutputDir = "report"
	cfg.Report.ChartWidth = 1024
	cfg.Report.ChartHeight = 512
}

func loadFromEnv(cfg *Config) error {
	cfg.Server.Port = GetEnv("PORT", cfg.Server.Port)
	cfg.Server.ShutdownTimeout = GetEnv("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Data.Source = GetEnv("DATA_SOURCE", cfg.Data.Source)
	cfg.Data.CSVPath = GetEnv("CSV_PATH", cfg.Data.CSVPath)
	cfg.Data.ImputePolicy = GetEnv("IMPUTE_POLICY", cfg.Data.ImputePolicy)

	cfg.Postgres.DSN = GetEnv("POSTGRES_DSN", cfg.Postgres.DSN)
	cfg.Postgres.Table = GetEnv("POSTGRES_TABLE", cfg.Postgres.Table)

	cfg.Mongo.URI = GetEnv("MONGO_URI", cfg.Mongo.URI)
	cfg.Mongo.Database = GetEnv("MONGO_DB", cfg.Mongo.Database)
	cfg.Mongo.Collection = GetEnv("MONGO_COLLECTION", cfg.Mongo.Collection)

	cfg.Redis.Addr = GetEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = GetEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.TTL = GetEnv("CHART_CACHE_TTL", cfg.Redis.TTL)
	db, err := GetEnvAsInt("REDIS_DB", cfg.Redis.DB)
	if err != nil {
		return err
	}
	cfg.Redis.DB = db

	enabled, err := GetEnvAsBool("AUTH_ENABLED", cfg.Auth.Enabled)
	if err != nil {
		return err
	}
	cfg.Auth.Enabled = enabled
	cfg.Auth.JWTSecret = GetEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.RefreshSecret = GetEnv("JWT_REFRESH_SECRET", cfg.Auth.RefreshSecret)
	cfg.Auth.AdminUsername = GetEnv("ADMIN_USERNAME", cfg.Auth.AdminUsername)
	cfg.Auth.AdminPasswordHash = GetEnv("ADMIN_PASSWORD_HASH", cfg.Auth.AdminPasswordHash)

	cfg.Logging.Level = GetEnv("LOG_LEVEL", cfg.Logging.Level)
	pretty, err := GetEnvAsBool("LOG_PRETTY", cfg.Logging.Pretty)
	if err != nil {
		return err
	}
	cfg.Logging.Pretty = pretty

	cfg.Report.OutputDir = GetEnv("REPORT_OUTPUT_DIR", cfg.Report.OutputDir)

	return nil
}

// Validate checks that the selected source and auth settings are usable.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case "csv":
		if c.Data.CSVPath == "" {
			return fmt.Errorf("csv path is required for csv source")
		}
	case "postgres":
		if c.Postgres.DSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for postgres source")
		}
	case "mongo":
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for mongo source")
		}
	default:
		return fmt.Errorf("unknown data source %q", c.Data.Source)
	}

	if c.Auth.Enabled {
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("JWT secret is required when auth is enabled")
		}
		if c.Auth.AdminPasswordHash == "" {
			return fmt.Errorf("admin password hash is required when auth is enabled")
		}
	}

	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.Redis.TTL); err != nil {
		return fmt.Errorf("invalid chart cache ttl: %w", err)
	}

	return nil
}

// ShutdownTimeout returns the parsed graceful shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// CacheTTL returns the parsed chart cache TTL.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Redis.TTL)
	if err != nil {
		return 10 * time.Minute
	}
	return d
}

// RefreshSecretOrDefault falls back to the access token secret.
func (c *Config) RefreshSecretOrDefault() string {
	if c.Auth.RefreshSecret == "" {
		return c.Auth.JWTSecret
	}
	return c.Auth.RefreshSecret
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, valueStr)
	}
	return value, nil
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}

	switch strings.ToLower(valueStr) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("%s: invalid boolean %q", key, valueStr)
}
