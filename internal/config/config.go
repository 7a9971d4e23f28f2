package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// It is read-only after Load() returns.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Upload    UploadConfig    `yaml:"upload"`
	Log       LogConfig       `yaml:"log"`
}

// InputConfig locates the knowledge base CSV.
type InputConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig locates the generated embeddings file.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// EmbeddingConfig contains embedding service and batching settings.
type EmbeddingConfig struct {
	APIKey        string   `yaml:"-"` // env-only, never in YAML
	Model         string   `yaml:"model"`
	Dimensions    int      `yaml:"dimensions"`
	BatchSize     int      `yaml:"batch_size"`
	RetryAttempts int      `yaml:"retry_attempts"`
	RetryDelay    Duration `yaml:"retry_delay"`
	BatchDelay    Duration `yaml:"batch_delay"`
}

// UploadConfig contains optional S3-compatible artifact upload settings.
// An empty bucket disables upload entirely.
type UploadConfig struct {
	Bucket    string `yaml:"bucket"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
	UseSSL    *bool  `yaml:"use_ssl"`
	AccessKey string `yaml:"-"` // env-only, never in YAML
	SecretKey string `yaml:"-"` // env-only, never in YAML
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("PACKVEC_CONFIG_PATH", "config/packvec.yaml")

	// Missing file is not an error; defaults apply.
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDefaults returns a Config with all default values. The embedding
// constants match the knowledge-base pipeline this tool replaces:
// text-embedding-3-small at 1536 dimensions, batches of 100 with three
// attempts per batch.
func newDefaults() *Config {
	return &Config{
		Input: InputConfig{
			Path: "data/packing-knowledge.csv",
		},
		Output: OutputConfig{
			Path: "data/packing-embeddings.json",
		},
		Embedding: EmbeddingConfig{
			Model:         "text-embedding-3-small",
			Dimensions:    1536,
			BatchSize:     100,
			RetryAttempts: 3,
			RetryDelay:    Duration(2 * time.Second),
			BatchDelay:    Duration(500 * time.Millisecond),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PACKVEC_INPUT"); v != "" {
		cfg.Input.Path = v
	}
	if v := os.Getenv("PACKVEC_OUTPUT"); v != "" {
		cfg.Output.Path = v
	}

	// Embedding (OPENAI_API_KEY is industry convention)
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Embedding.APIKey = v
	}
	if v := os.Getenv("PACKVEC_EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("PACKVEC_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Embedding.BatchSize = n
		}
	}

	// Upload
	if v := os.Getenv("PACKVEC_S3_BUCKET"); v != "" {
		cfg.Upload.Bucket = v
	}
	if v := os.Getenv("PACKVEC_S3_ENDPOINT"); v != "" {
		cfg.Upload.Endpoint = v
	}
	if v := os.Getenv("PACKVEC_S3_REGION"); v != "" {
		cfg.Upload.Region = v
	}
	if v := os.Getenv("PACKVEC_S3_ACCESS_KEY"); v != "" {
		cfg.Upload.AccessKey = v
	}
	if v := os.Getenv("PACKVEC_S3_SECRET_KEY"); v != "" {
		cfg.Upload.SecretKey = v
	}
	if v := os.Getenv("PACKVEC_S3_USE_SSL"); v != "" {
		useSSL := v == "true" || v == "1"
		cfg.Upload.UseSSL = &useSSL
	}

	// Log
	if v := os.Getenv("PACKVEC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// validate checks that required configuration values are set.
func (c *Config) validate() error {
	if c.Embedding.APIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	if c.Embedding.BatchSize <= 0 {
		return fmt.Errorf("embedding batch_size must be positive, got %d", c.Embedding.BatchSize)
	}
	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding dimensions must be positive, got %d", c.Embedding.Dimensions)
	}
	if c.Embedding.RetryAttempts < 1 {
		return fmt.Errorf("embedding retry_attempts must be at least 1, got %d", c.Embedding.RetryAttempts)
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
