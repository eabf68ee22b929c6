package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	LLM struct {
		APIKey          string `yaml:"api_key" env:"GROQ_API_KEY"`
		BaseURL         string `yaml:"base_url" env:"GROQ_BASE_URL"`
		Model           string `yaml:"model" env:"GROQ_MODEL"`
		NotesMaxTokens  int    `yaml:"notes_max_tokens" env:"LLM_NOTES_MAX_TOKENS"`
		AnswerMaxTokens int    `yaml:"answer_max_tokens" env:"LLM_ANSWER_MAX_TOKENS"`
		MaxInputChars   int    `yaml:"max_input_chars" env:"LLM_MAX_INPUT_CHARS"`
	} `yaml:"llm"`

	Network struct {
		// Timeout wraps every outbound call (Canvas, downloads, LLM).
		Timeout string `yaml:"timeout" env:"HTTP_TIMEOUT"`
	} `yaml:"network"`

	Canvas struct {
		PerPage  int `yaml:"per_page" env:"CANVAS_PER_PAGE"`
		MaxPages int `yaml:"max_pages" env:"CANVAS_MAX_PAGES"`
	} `yaml:"canvas"`

	Storage struct {
		DownloadRoots []string `yaml:"download_roots" env:"DOWNLOAD_ROOTS"`
	} `yaml:"storage"`

	Extraction struct {
		MaxBytes      int64    `yaml:"max_bytes" env:"EXTRACTION_MAX_BYTES"`
		BatchLimit    int      `yaml:"batch_limit" env:"EXTRACTION_BATCH_LIMIT"`
		WorkerCommand string   `yaml:"worker_command" env:"EXTRACTION_WORKER_COMMAND"`
		WorkerArgs    []string `yaml:"worker_args" env:"EXTRACTION_WORKER_ARGS"`
		WorkerTimeout string   `yaml:"worker_timeout" env:"EXTRACTION_WORKER_TIMEOUT"`
	} `yaml:"extraction"`

	Database struct {
		Enabled         bool   `yaml:"enabled" env:"DB_ENABLED"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		TTL      string `yaml:"ttl" env:"REDIS_TTL"`
	} `yaml:"redis"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Metrics struct {
		Enabled bool `yaml:"enabled" env:"METRICS_ENABLED"`
	} `yaml:"metrics"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; env vars alone are enough to run.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// PORT is what most hosting platforms inject
	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		if _, set := os.LookupEnv("SERVER_PORT"); !set {
			config.Server.Port = port
		}
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "production"
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "120s"

	config.LLM.BaseURL = "https://api.groq.com/openai/v1"
	config.LLM.Model = "llama-3.1-8b-instant"
	config.LLM.NotesMaxTokens = 2048
	config.LLM.AnswerMaxTokens = 1024
	config.LLM.MaxInputChars = 24000

	config.Network.Timeout = "30s"

	config.Canvas.PerPage = 100
	config.Canvas.MaxPages = 50

	config.Storage.DownloadRoots = []string{"downloads"}

	config.Extraction.MaxBytes = 50 << 20
	config.Extraction.BatchLimit = 4
	config.Extraction.WorkerTimeout = "60s"

	config.Database.Enabled = false
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "canvasstudy"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.Redis.TTL = "24h"

	config.CORS.AllowedOrigins = []string{"*"}

	config.Metrics.Enabled = true

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return fmt.Errorf("server port must be numeric: %w", err)
	}

	for name, value := range map[string]string{
		"server read timeout":  config.Server.ReadTimeout,
		"server write timeout": config.Server.WriteTimeout,
		"network timeout":      config.Network.Timeout,
		"worker timeout":       config.Extraction.WorkerTimeout,
		"redis ttl":            config.Redis.TTL,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if !strings.HasPrefix(strings.ToLower(config.LLM.BaseURL), "http") {
		return fmt.Errorf("llm base url must start with http")
	}
	if config.LLM.NotesMaxTokens <= 0 || config.LLM.AnswerMaxTokens <= 0 {
		return fmt.Errorf("llm max tokens must be positive")
	}

	if config.Canvas.PerPage <= 0 || config.Canvas.MaxPages <= 0 {
		return fmt.Errorf("canvas paging values must be positive")
	}

	if config.Extraction.MaxBytes <= 0 {
		return fmt.Errorf("extraction max bytes must be positive")
	}

	if config.Database.Enabled {
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection lifetime: %w", err)
		}
	}

	return nil
}

// IsDevelopment reports whether raw error details may be shown to clients.
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.Server.Mode) == "development"
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
