package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
)

type Config struct {
	Server struct {
		Port        int      `yaml:"port"`
		CORSOrigins []string `yaml:"corsOrigins"`
		// MaxUploadBytes caps the multipart CSV upload.
		MaxUploadBytes int64 `yaml:"maxUploadBytes"`
		RateLimit      struct {
			Requests int `yaml:"requests"`
			WindowS  int `yaml:"windowSeconds"`
		} `yaml:"rateLimit"`
	} `yaml:"server"`

	AI struct {
		Vendor      string   `yaml:"vendor"`
		Model       string   `yaml:"model"`
		Temperature *float32 `yaml:"temperature"`
		TimeoutS    int      `yaml:"timeoutSeconds"`
		BaseURL     string   `yaml:"baseURL"`
		MaxTokens   int      `yaml:"maxTokens"`
		// APIKey is never read from the yaml file; see Load.
		APIKey string `yaml:"-"`
	} `yaml:"ai"`

	Database struct {
		// Driver: memory (default), mysql or postgres.
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	Storage struct {
		// Driver: memory (default), minio or none.
		Driver string `yaml:"driver"`
	} `yaml:"storage"`

	Minio struct {
		Endpoint    string `yaml:"endpoint"`
		AccessKey   string `yaml:"accessKey"`
		SecretKey   string `yaml:"secretKey"`
		BucketName  string `yaml:"bucketName"`
		Region      string `yaml:"region"`
		UseSSL      bool   `yaml:"useSSL"`
		PresignTTLS int    `yaml:"presignTTLSeconds"`
	} `yaml:"minio"`
}

// keyEnv maps vendor names to the environment variable holding their key.
var keyEnv = map[string]string{
	"gemini":    "GEMINI_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

// KeyEnv returns the environment variable that carries the vendor's API key.
func KeyEnv(vendor string) string {
	return keyEnv[strings.ToLower(strings.TrimSpace(vendor))]
}

// LoadDotEnv loads .env into the process environment when the file exists.
// Variables already set win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load baca file config.yaml. A missing file is fine: defaults and
// environment variables still apply.
func Load(path string) (*Config, error) {
	LoadDotEnv()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("AI_VENDOR"); v != "" {
		c.AI.Vendor = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		c.Minio.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		c.Minio.SecretKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Server.MaxUploadBytes <= 0 {
		c.Server.MaxUploadBytes = 1 << 20
	}
	if c.Server.RateLimit.Requests == 0 {
		c.Server.RateLimit.Requests = 30
	}
	if c.Server.RateLimit.WindowS == 0 {
		c.Server.RateLimit.WindowS = 60
	}
	c.AI.Vendor = strings.ToLower(strings.TrimSpace(c.AI.Vendor))
	if c.AI.Vendor == "" {
		c.AI.Vendor = "gemini"
	}
	if c.AI.TimeoutS == 0 {
		c.AI.TimeoutS = 60
	}
	c.AI.APIKey = os.Getenv(KeyEnv(c.AI.Vendor))
	if c.Database.Driver == "" {
		c.Database.Driver = "memory"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
}

// Validate rejects driver names the host cannot wire.
func (c *Config) Validate() error {
	if KeyEnv(c.AI.Vendor) == "" {
		return fmt.Errorf("ai.vendor %q tidak dikenal", c.AI.Vendor)
	}
	switch c.Database.Driver {
	case "memory", "mysql", "postgres":
	default:
		return fmt.Errorf("database.driver %q tidak dikenal", c.Database.Driver)
	}
	switch c.Storage.Driver {
	case "memory", "minio", "none":
	default:
		return fmt.Errorf("storage.driver %q tidak dikenal", c.Storage.Driver)
	}
	if c.AI.TimeoutS < 0 {
		return fmt.Errorf("ai.timeoutSeconds must be >= 0")
	}
	return nil
}

// AIConfig builds the adapter configuration.
func (c *Config) AIConfig() ai.Config {
	return ai.Config{
		APIKey:      c.AI.APIKey,
		Model:       c.AI.Model,
		Temperature: c.AI.Temperature,
		BaseURL:     c.AI.BaseURL,
		MaxTokens:   c.AI.MaxTokens,
	}
}

func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutS) * time.Second
}

func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.Server.RateLimit.WindowS) * time.Second
}

func (c *Config) PresignTTL() time.Duration {
	return time.Duration(c.Minio.PresignTTLS) * time.Second
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres (lib/pq key=value form)
func (c *Config) PostgresDSN() string {
	ssl := c.Database.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		ssl,
	)
}
