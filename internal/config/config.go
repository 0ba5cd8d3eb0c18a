package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docmark/internal/parser"
	"github.com/dgallion1/docmark/internal/render"
)

const defaultMaxUploadBytes = 5 << 20 // 5MB

type Config struct {
	Port string

	// Auth
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Grammar
	Rules            []string
	DecodeReferences bool
	EscapeText       bool
}

// fileConfig mirrors Config for the optional YAML file. Pointer fields
// distinguish "absent" from a zero value.
type fileConfig struct {
	Port             *string   `yaml:"port"`
	APIKey           *string   `yaml:"api_key"`
	WorkerCount      *int      `yaml:"worker_count"`
	MaxQueueSize     *int      `yaml:"max_queue_size"`
	MaxUploadBytes   *int64    `yaml:"max_upload_bytes"`
	JobTTL           *string   `yaml:"job_ttl"`
	Rules            *[]string `yaml:"rules"`
	DecodeReferences *bool     `yaml:"decode_references"`
	EscapeText       *bool     `yaml:"escape_text"`
}

func defaults() Config {
	return Config{
		Port:           "8090",
		WorkerCount:    4,
		MaxQueueSize:   100,
		MaxUploadBytes: defaultMaxUploadBytes,
		JobTTL:         1 * time.Hour,
		Rules:          append([]string(nil), parser.DefaultRules...),
	}
}

// Load builds the configuration from defaults, the YAML file named by
// DOCMARK_CONFIG (if any), and then environment variables.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("DOCMARK_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := cfg.applyYAML(data); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("DOCMARK_API_KEY", cfg.APIKey)
	cfg.WorkerCount = envInt("WORKER_COUNT", cfg.WorkerCount)
	cfg.MaxQueueSize = envInt("MAX_QUEUE_SIZE", cfg.MaxQueueSize)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.JobTTL = envDuration("JOB_TTL", cfg.JobTTL)
	cfg.Rules = envList("RULES", cfg.Rules)
	cfg.DecodeReferences = envBool("DECODE_REFERENCES", cfg.DecodeReferences)
	cfg.EscapeText = envBool("ESCAPE_TEXT", cfg.EscapeText)

	cfg.clamp()
	return cfg, nil
}

func (c *Config) applyYAML(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}
	if fc.Port != nil {
		c.Port = *fc.Port
	}
	if fc.APIKey != nil {
		c.APIKey = *fc.APIKey
	}
	if fc.WorkerCount != nil {
		c.WorkerCount = *fc.WorkerCount
	}
	if fc.MaxQueueSize != nil {
		c.MaxQueueSize = *fc.MaxQueueSize
	}
	if fc.MaxUploadBytes != nil {
		c.MaxUploadBytes = *fc.MaxUploadBytes
	}
	if fc.JobTTL != nil {
		d, err := time.ParseDuration(*fc.JobTTL)
		if err != nil {
			return fmt.Errorf("job_ttl: %w", err)
		}
		c.JobTTL = d
	}
	if fc.Rules != nil {
		c.Rules = *fc.Rules
	}
	if fc.DecodeReferences != nil {
		c.DecodeReferences = *fc.DecodeReferences
	}
	if fc.EscapeText != nil {
		c.EscapeText = *fc.EscapeText
	}
	return nil
}

func (c *Config) clamp() {
	d := defaults()
	if c.Port == "" {
		c.Port = d.Port
	}
	if c.WorkerCount <= 0 {
		c.WorkerCount = d.WorkerCount
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = d.MaxQueueSize
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = d.MaxUploadBytes
	}
	if c.JobTTL <= 0 {
		c.JobTTL = d.JobTTL
	}
}

func (c Config) Validate() error {
	var errs []error
	for _, name := range c.Rules {
		if _, ok := parser.Rules[name]; !ok {
			errs = append(errs, fmt.Errorf("RULES: unknown rule %q", name))
		}
	}
	return errors.Join(errs...)
}

func (c Config) ParserOptions() parser.Options {
	return parser.Options{
		Rules:            append([]string{}, c.Rules...),
		DecodeReferences: c.DecodeReferences,
	}
}

func (c Config) RenderOptions() render.Options {
	return render.Options{EscapeText: c.EscapeText}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList reads a comma-separated list. A set but blank value yields an
// empty list, which disables every block rule.
func envList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	out := []string{}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
