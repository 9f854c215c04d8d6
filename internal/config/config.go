package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"forelegg/internal/domain"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Logging   LoggingConfig   `yaml:"logging"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Limits    LimitsConfig    `yaml:"limits"`
}

type HTTPConfig struct {
	Port              string        `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

type OptimizerConfig struct {
	Strategy        string `yaml:"strategy"` // auto, exhaustive, dynamic
	ExhaustiveLimit uint64 `yaml:"exhaustive_limit"`
}

// LimitsConfig bounds what the API and CLI accept before the engine sees it.
type LimitsConfig struct {
	MaxTravelers     int `yaml:"max_travelers"`
	BatchSize        int `yaml:"batch_size"`
	BatchParallelism int `yaml:"batch_parallelism"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:              "8083",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Optimizer: OptimizerConfig{
			Strategy:        string(domain.StrategyAuto),
			ExhaustiveLimit: domain.DefaultExhaustiveLimit,
		},
		Limits: LimitsConfig{
			MaxTravelers:     10,
			BatchSize:        50,
			BatchParallelism: 4,
		},
	}
}

// Load starts from DefaultConfig, overlays the YAML file at path (if any)
// and then the environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		c.HTTP.Port = port
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if s := os.Getenv("OPTIMIZER_STRATEGY"); s != "" {
		c.Optimizer.Strategy = s
	}
	if v := os.Getenv("MAX_TRAVELERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_TRAVELERS: %w", err)
		}
		c.Limits.MaxTravelers = n
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port == "" {
		errs = append(errs, errors.New("http.port is required"))
	}
	if _, err := domain.ParseStrategy(c.Optimizer.Strategy); err != nil {
		errs = append(errs, err)
	}
	if c.Limits.MaxTravelers <= 0 {
		errs = append(errs, errors.New("limits.max_travelers must be positive"))
	}
	if c.Limits.BatchSize <= 0 {
		errs = append(errs, errors.New("limits.batch_size must be positive"))
	}
	if c.Limits.BatchParallelism <= 0 {
		errs = append(errs, errors.New("limits.batch_parallelism must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.HTTP.Port)
}

// Engine builds the assessment engine the config describes.
func (c *Config) Engine() domain.Engine {
	strategy, err := domain.ParseStrategy(c.Optimizer.Strategy)
	if err != nil {
		strategy = domain.StrategyAuto
	}
	return domain.Engine{
		Optimizer: domain.Optimizer{
			Strategy:        strategy,
			ExhaustiveLimit: c.Optimizer.ExhaustiveLimit,
		},
		Parallelism: c.Limits.BatchParallelism,
	}
}
