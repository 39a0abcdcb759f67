package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// History backends
const (
	BackendMemory   = "memory"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
)

const envPrefix = "CREDCHECK_"

type Config struct {
	Server struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"readTimeout"`
		WriteTimeout time.Duration `yaml:"writeTimeout"`
		IdleTimeout  time.Duration `yaml:"idleTimeout"`
	} `yaml:"server"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`

	History struct {
		Backend     string `yaml:"backend"`
		RecentLimit int    `yaml:"recentLimit"`
	} `yaml:"history"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	Archive struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		Prefix     string `yaml:"prefix"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"archive"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"rateLimit"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default keeps everything in memory and listens on 0.0.0.0:8000.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8000
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 15 * time.Second
	cfg.Server.IdleTimeout = 60 * time.Second
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.History.Backend = BackendMemory
	cfg.History.RecentLimit = 3
	cfg.Archive.Prefix = "analyses/"
	cfg.RateLimit.Capacity = 60
	cfg.RateLimit.RefillRate = 1
	cfg.Log.Level = "info"
	return cfg
}

// Load reads the YAML file at path on top of the defaults, then applies
// CREDCHECK_* environment overrides. A missing file is fine when path is
// empty; a named file that cannot be read is an error. A .env file in the
// working directory is loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvInt("SERVER_PORT", c.Server.Port)
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		c.CORS.AllowedOrigins = splitList(v)
	}
	c.History.Backend = getEnv("HISTORY_BACKEND", c.History.Backend)
	c.History.RecentLimit = getEnvInt("HISTORY_RECENT_LIMIT", c.History.RecentLimit)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvInt("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Archive.Enabled = getEnvBool("ARCHIVE_ENABLED", c.Archive.Enabled)
	c.Archive.Endpoint = getEnv("ARCHIVE_ENDPOINT", c.Archive.Endpoint)
	c.Archive.AccessKey = getEnv("ARCHIVE_ACCESS_KEY", c.Archive.AccessKey)
	c.Archive.SecretKey = getEnv("ARCHIVE_SECRET_KEY", c.Archive.SecretKey)
	c.Archive.BucketName = getEnv("ARCHIVE_BUCKET", c.Archive.BucketName)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
}

// Validate returns every problem found, not just the first.
func (c *Config) Validate() []error {
	var errs = make([]error, 0)
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, errors.Errorf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.History.RecentLimit < 0 {
		errs = append(errs, errors.Errorf("history.recentLimit must not be negative, got %d", c.History.RecentLimit))
	}
	switch c.History.Backend {
	case BackendMemory:
	case BackendMySQL, BackendPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			errs = append(errs, errors.Errorf("database.host and database.name are required for the %s backend", c.History.Backend))
		}
	default:
		errs = append(errs, errors.Errorf("history.backend must be memory, mysql or postgres, got %q", c.History.Backend))
	}
	if c.Archive.Enabled && (c.Archive.Endpoint == "" || c.Archive.BucketName == "") {
		errs = append(errs, errors.New("archive.endpoint and archive.bucketName are required when the archive is enabled"))
	}
	if c.RateLimit.Capacity > 0 && c.RateLimit.RefillRate <= 0 {
		errs = append(errs, errors.Errorf("rateLimit.refillRate must be positive, got %d", c.RateLimit.RefillRate))
	}
	return errs
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MySQLDSN builds the DSN for the MySQL history backend.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds the DSN for the Postgres history backend.
func (c *Config) PostgresDSN() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		sslMode,
	)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(envPrefix + key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
