package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vanshika/sixdegrees/internal/graph"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Data    DataConfig    `yaml:"data"`
	Graph   GraphConfig   `yaml:"graph"`
	Logging LoggingConfig `yaml:"logging"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	MetricsEnabled    bool          `yaml:"metrics_enabled"`
	AllowedOriginsCSV string        `yaml:"allowed_origins"`
	BatchConcurrency  int           `yaml:"batch_concurrency"`
}

// DataConfig locates the filmography datasets and tunes name lookup.
type DataConfig struct {
	TitlesPath        string `yaml:"titles_path"`
	PersonsPath       string `yaml:"persons_path"`
	MatchPolicy       string `yaml:"match_policy"` // substring|exact
	MaxPromptAttempts int    `yaml:"max_prompt_attempts"`
}

// GraphConfig describes connectivity to the Neo4j mirror.
type GraphConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MaxConnections int    `yaml:"max_connections"`
	ExportBatch    int    `yaml:"export_batch"`
	ExportWorkers  int    `yaml:"export_workers"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"` // text|json
	IncludeCaller bool   `yaml:"include_caller"`
}

const (
	defaultHost              = "0.0.0.0"
	defaultPort              = 8080
	defaultReadTimeout       = 10 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	defaultBatchConcurrency  = 4
	defaultTitlesPath        = "imdb/title.basics.tsv"
	defaultPersonsPath       = "imdb/name.basics.tsv"
	defaultMatchPolicy       = "substring"
	defaultMaxPromptAttempts = 5
	defaultLoggingLevel      = "info"
	defaultLoggingFormat     = "text"
	defaultGraphMaxSessions  = 10
	defaultExportBatch       = 1000
	defaultExportWorkers     = 4

	// ConfigFileEnv names an optional YAML file read before the environment.
	ConfigFileEnv = "DEGREES_CONFIG"
)

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Host:             defaultHost,
			Port:             defaultPort,
			ReadTimeout:      defaultReadTimeout,
			WriteTimeout:     defaultWriteTimeout,
			IdleTimeout:      defaultIdleTimeout,
			ShutdownTimeout:  defaultShutdownTimeout,
			BatchConcurrency: defaultBatchConcurrency,
		},
		Data: DataConfig{
			TitlesPath:        defaultTitlesPath,
			PersonsPath:       defaultPersonsPath,
			MatchPolicy:       defaultMatchPolicy,
			MaxPromptAttempts: defaultMaxPromptAttempts,
		},
		Graph: GraphConfig{
			MaxConnections: defaultGraphMaxSessions,
			ExportBatch:    defaultExportBatch,
			ExportWorkers:  defaultExportWorkers,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
	}
}

// Load starts from Defaults, applies the YAML file named by DEGREES_CONFIG if
// set, then applies environment variables.
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	cfg.HTTP.Host = valueOrDefault("SERVER_HOST", cfg.HTTP.Host)
	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("SERVER_METRICS_ENABLED", cfg.HTTP.MetricsEnabled)
	cfg.HTTP.AllowedOriginsCSV = valueOrDefault("SERVER_ALLOWED_ORIGINS", cfg.HTTP.AllowedOriginsCSV)
	cfg.HTTP.BatchConcurrency = parseIntWithDefault("SERVER_BATCH_CONCURRENCY", cfg.HTTP.BatchConcurrency)

	port, err := parsePort("SERVER_PORT", cfg.HTTP.Port)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
	}
	for _, d := range durations {
		if v := os.Getenv(d.key); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", d.key, err)
			}
			*d.dst = parsed
		}
	}

	cfg.Data.TitlesPath = valueOrDefault("DATA_TITLES_PATH", cfg.Data.TitlesPath)
	cfg.Data.PersonsPath = valueOrDefault("DATA_PERSONS_PATH", cfg.Data.PersonsPath)
	cfg.Data.MatchPolicy = valueOrDefault("DATA_MATCH_POLICY", cfg.Data.MatchPolicy)
	cfg.Data.MaxPromptAttempts = parseIntWithDefault("DATA_MAX_PROMPT_ATTEMPTS", cfg.Data.MaxPromptAttempts)
	policy, err := graph.ParseMatchPolicy(cfg.Data.MatchPolicy)
	if err != nil {
		return Config{}, fmt.Errorf("invalid DATA_MATCH_POLICY: %w", err)
	}
	cfg.Data.MatchPolicy = policy.String()

	cfg.Graph.URI = valueOrDefault("GRAPH_URI", cfg.Graph.URI)
	cfg.Graph.Database = valueOrDefault("GRAPH_DATABASE", cfg.Graph.Database)
	cfg.Graph.Username = valueOrDefault("GRAPH_USERNAME", cfg.Graph.Username)
	cfg.Graph.Password = valueOrDefault("GRAPH_PASSWORD", cfg.Graph.Password)
	cfg.Graph.MaxConnections = parseIntWithDefault("GRAPH_MAX_CONNECTIONS", cfg.Graph.MaxConnections)
	cfg.Graph.ExportBatch = parseIntWithDefault("GRAPH_EXPORT_BATCH", cfg.Graph.ExportBatch)
	cfg.Graph.ExportWorkers = parseIntWithDefault("GRAPH_EXPORT_WORKERS", cfg.Graph.ExportWorkers)

	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	port := fallback
	if v := os.Getenv(key); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		port = p
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("port %d is out of range", port)
	}
	return port, nil
}
