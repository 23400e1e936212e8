package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// DefaultModels is the classifier cascade order used when LLM_MODELS is unset.
var DefaultModels = []string{
	"gemini-2.0-flash",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-pro",
	"gemini-flash-latest",
	"gemini-2.5-flash",
}

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort        string
	LogLevel        string
	Store           string
	OperatorWorkers int

	LLMAPIKey  string
	LLMBaseURL string
	LLMModels  []string
	LLMTimeout time.Duration

	DefaultMonthlyIncome float64
}

// PostgresURL builds the lib/pq connection string.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func defaults() map[string]interface{} {
	// In all cases the default behavior should be for the docker compose setup
	return map[string]interface{}{
		"postgres_address":       "localhost",
		"postgres_port":          "5433",
		"postgres_db":            "postgres",
		"postgres_username":      "postgres",
		"postgres_password":      "testpassword",
		"http_port":              "9446",
		"log_level":              "info",
		"store":                  StorePostgres,
		"operator_workers":       4,
		"llm_api_key":            "",
		"llm_base_url":           "https://generativelanguage.googleapis.com/v1beta",
		"llm_models":             strings.Join(DefaultModels, ","),
		"llm_timeout":            "20s",
		"default_monthly_income": 50000.0,
	}
}

func ProcessEnvironmentVariables() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := os.Getenv("CONFIG_FILE"); len(path) != 0 {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// Only keys with a default are taken from the environment, so unrelated
	// variables such as PATH never land in the config tree.
	known := defaults()
	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := known[key]; !ok {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := Config{
		PostgresAddress:      k.String("postgres_address"),
		PostgresPort:         k.String("postgres_port"),
		PostgresDB:           k.String("postgres_db"),
		PostgresUsername:     k.String("postgres_username"),
		PostgresPassword:     k.String("postgres_password"),
		HTTPPort:             k.String("http_port"),
		LogLevel:             k.String("log_level"),
		Store:                strings.ToLower(k.String("store")),
		OperatorWorkers:      k.Int("operator_workers"),
		LLMAPIKey:            strings.TrimSpace(k.String("llm_api_key")),
		LLMBaseURL:           strings.TrimRight(k.String("llm_base_url"), "/"),
		LLMModels:            splitList(k.String("llm_models")),
		DefaultMonthlyIncome: k.Float64("default_monthly_income"),
	}

	timeout, err := time.ParseDuration(k.String("llm_timeout"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid LLM_TIMEOUT: %w", err)
	}
	cfg.LLMTimeout = timeout

	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("config: unknown STORE %q", cfg.Store)
	}
	if cfg.OperatorWorkers < 1 {
		cfg.OperatorWorkers = 1
	}
	if len(cfg.LLMModels) == 0 {
		cfg.LLMModels = append([]string(nil), DefaultModels...)
	}
	if cfg.DefaultMonthlyIncome <= 0 {
		return nil, fmt.Errorf("config: DEFAULT_MONTHLY_INCOME must be positive")
	}

	return &cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
