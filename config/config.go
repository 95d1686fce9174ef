package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Redis  RedisConfig
	CORS   CORSConfig
	Log    LogConfig
	Mock   MockConfig
}

type ServerConfig struct {
	Port    int    `default:"8080"`
	GinMode string `split_words:"true" default:"release"`
}

type StoreConfig struct {
	Driver    string `default:"memory"`
	SQLiteDSN string `envconfig:"SQLITE_DSN" default:"file::memory:?cache=shared"`
}

// RedisConfig enables the dataset cache and the live event feed. An empty URL
// leaves both disabled.
type RedisConfig struct {
	URL        string
	DatasetTTL time.Duration `split_words:"true" default:"60s"`
}

type CORSConfig struct {
	AllowedOrigins string `split_words:"true" default:"*"`
}

type LogConfig struct {
	Mode string `default:"production"`
}

// MockConfig tunes the fake compute of the predict and generate routes.
type MockConfig struct {
	PredictDelay  time.Duration `split_words:"true" default:"1500ms"`
	GenerateDelay time.Duration `split_words:"true" default:"2s"`
	Seed          uint64        `default:"0"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT: %d", c.Server.Port)
	}
	switch c.Store.Driver {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("invalid STORE_DRIVER: %q", c.Store.Driver)
	}
	if c.Mock.PredictDelay < 0 || c.Mock.GenerateDelay < 0 {
		return fmt.Errorf("mock delays must not be negative")
	}
	return nil
}
