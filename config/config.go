package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	SourceWorkbook = "xlsx"
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	Source       string   `validate:"oneof=xlsx csv postgres"`
	ProductsPath string   `validate:"required_unless=Source postgres"`
	SalesPath    string   `validate:"required_unless=Source postgres"`
	Channels     []string `validate:"dive,required"`

	Postgres Postgres

	HTTPAddr  string `validate:"required"`
	LogLevel  string `validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFormat string `validate:"oneof=json text"`

	MaxUnmatchedRatio float64 `validate:"gte=0,lte=1"`
	StrictJoin        bool
	DatePolicy        string `validate:"oneof=abort drop"`
	CacheSize         int    `validate:"gte=1"`
}

type Postgres struct {
	Host     string `validate:"required"`
	Port     int    `validate:"gte=1,lte=65535"`
	User     string `validate:"required"`
	Password string
	Database string `validate:"required"`
	SSLMode  string `validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

// DSN formats the connection string for gorm's postgres driver.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Load reads the configuration. Files are loaded in order and never override
// variables already present in the environment; a missing .env is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	cfg := &Config{
		Source:       strings.ToLower(getEnv("DASHBOARD_SOURCE", SourceWorkbook)),
		ProductsPath: getEnv("PRODUCTS_PATH", "data/Product.xlsx"),
		SalesPath:    getEnv("SALES_PATH", "data/SalesData.xlsx"),
		Channels:     splitList(os.Getenv("SALES_CHANNELS")),
		Postgres: Postgres{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Database: getEnv("POSTGRES_DB", "sales"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		HTTPAddr:   getEnv("HTTP_ADDR", ":8080"),
		LogLevel:   strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:  strings.ToLower(getEnv("LOG_FORMAT", "json")),
		DatePolicy: strings.ToLower(getEnv("DATE_POLICY", "abort")),
	}

	var err error
	if cfg.Postgres.Port, err = intFromEnv("POSTGRES_PORT", 5432); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = intFromEnv("CACHE_SIZE", 8); err != nil {
		return nil, err
	}
	if cfg.MaxUnmatchedRatio, err = floatFromEnv("JOIN_MAX_UNMATCHED_RATIO", 1); err != nil {
		return nil, err
	}
	if cfg.StrictJoin, err = boolFromEnv("JOIN_STRICT", false); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func intFromEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func floatFromEnv(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
