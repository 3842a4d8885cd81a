package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Auth
	APIKey string `yaml:"api_key"`

	// Content
	ContentPath    string   `yaml:"content_path"`
	LessonGlobs    []string `yaml:"lesson_globs"`
	StrictHeadings bool     `yaml:"strict_headings"`

	// Worker pool
	WorkerCount        int `yaml:"worker_count"`
	MaxQueueSize       int `yaml:"max_queue_size"`
	MaxConcurrentFiles int `yaml:"max_concurrent_files"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// Job state
	JobTTL time.Duration `yaml:"job_ttl"`

	// Report sink
	ReportSinkURL    string `yaml:"report_sink_url"`
	ReportSinkAPIKey string `yaml:"report_sink_api_key"`
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("COURSECHECK_API_KEY"),

		ContentPath:    envOr("CONTENT_PATH", "./content"),
		LessonGlobs:    envList("LESSON_GLOBS"),
		StrictHeadings: envBool("STRICT_HEADINGS", false),

		WorkerCount:        envInt("WORKER_COUNT", 2),
		MaxQueueSize:       envInt("MAX_QUEUE_SIZE", 32),
		MaxConcurrentFiles: envInt("MAX_CONCURRENT_FILES", 8),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 1048576), // 1MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		ReportSinkURL:    os.Getenv("REPORT_SINK_URL"),
		ReportSinkAPIKey: os.Getenv("REPORT_SINK_API_KEY"),
	}
	cfg.applyDefaults()
	return cfg
}

// LoadFile loads the environment configuration and overlays the YAML file at
// path. Fields absent from the file keep their environment value.
func LoadFile(path string) (Config, error) {
	cfg := Load()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.WorkerCount <= 0 {
		c.WorkerCount = 2
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = 32
	}
	if c.MaxConcurrentFiles <= 0 {
		c.MaxConcurrentFiles = 8
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 1048576
	}
	if c.JobTTL <= 0 {
		c.JobTTL = 1 * time.Hour
	}
}

// Validate checks the settings the HTTP server needs.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("COURSECHECK_API_KEY is required")
	}
	return c.ValidateCLI()
}

// ValidateCLI checks the settings a one-shot lint run needs.
func (c Config) ValidateCLI() error {
	if c.ContentPath == "" {
		return fmt.Errorf("CONTENT_PATH is required")
	}
	if c.ReportSinkURL != "" && c.ReportSinkAPIKey == "" {
		return fmt.Errorf("REPORT_SINK_API_KEY is required when REPORT_SINK_URL is set")
	}
	return nil
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

// envList splits a comma-separated variable, dropping empty entries.
func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
