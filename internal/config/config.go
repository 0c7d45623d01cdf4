package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Defaults applied when a setting is left out of the config file
const (
	DefaultMinLatencyMs   = 100
	DefaultMaxLatencyMs   = 600
	DefaultListLimit      = 100
	DefaultBriefingRRule  = "FREQ=DAILY;BYHOUR=8,20;BYMINUTE=0;BYSECOND=0"
	DefaultBriefingCount  = 3
	DefaultNearbyRadiusKm = 50.0
)

// ErrConfigNotFound is returned when no config file exists for the environment
var ErrConfigNotFound = errors.New("config file not found in current directory or home directory")

// Config represents the application configuration
type Config struct {
	SimulatedLatencyRangeMs []int   `yaml:"simulatedLatencyRangeMs,omitempty" validate:"omitempty,len=2,dive,min=0"`
	ListLimit               int     `yaml:"listLimit,omitempty" validate:"omitempty,min=1"`
	SeedFile                string  `yaml:"seedFile,omitempty"`
	BriefingRRule           string  `yaml:"briefingRRule,omitempty"`
	BriefingCount           int     `yaml:"briefingCount,omitempty" validate:"omitempty,min=1,max=50"`
	ReportSheetID           string  `yaml:"reportSheetID,omitempty"`
	NearbyRadiusKm          float64 `yaml:"nearbyRadiusKm,omitempty" validate:"omitempty,gt=0"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{}
}

// LoadWithEnv loads and validates the configuration with an environment suffix
// For example, env="test" will look for "connect_care_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A relative seed file is resolved against the config file's directory
	if cfg.SeedFile != "" && !filepath.IsAbs(cfg.SeedFile) {
		cfg.SeedFile = filepath.Join(filepath.Dir(path), cfg.SeedFile)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if r := cfg.SimulatedLatencyRangeMs; len(r) == 2 && r[0] > r[1] {
		return fmt.Errorf("config validation failed: simulatedLatencyRangeMs min %d exceeds max %d", r[0], r[1])
	}

	if cfg.BriefingRRule != "" {
		if _, err := rrule.StrToRRule(cfg.BriefingRRule); err != nil {
			return fmt.Errorf("invalid rrule in briefingRRule: %w", err)
		}
	}

	return nil
}

// LatencyRange returns the simulated store latency window
func (c *Config) LatencyRange() (min, max time.Duration) {
	lo, hi := DefaultMinLatencyMs, DefaultMaxLatencyMs
	if len(c.SimulatedLatencyRangeMs) == 2 {
		lo, hi = c.SimulatedLatencyRangeMs[0], c.SimulatedLatencyRangeMs[1]
	}
	return time.Duration(lo) * time.Millisecond, time.Duration(hi) * time.Millisecond
}

// Limit returns the number of records list commands request
func (c *Config) Limit() int {
	if c.ListLimit > 0 {
		return c.ListLimit
	}
	return DefaultListLimit
}

// RadiusKm returns the search radius for nearby volunteers
func (c *Config) RadiusKm() float64 {
	if c.NearbyRadiusKm > 0 {
		return c.NearbyRadiusKm
	}
	return DefaultNearbyRadiusKm
}

// Briefings returns the situation briefing rule, anchored at dtstart, and how many
// upcoming briefings to show
func (c *Config) Briefings(dtstart time.Time) (*rrule.RRule, int, error) {
	spec := c.BriefingRRule
	if spec == "" {
		spec = DefaultBriefingRRule
	}
	rule, err := rrule.StrToRRule(spec)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse briefing rrule: %w", err)
	}
	rule.DTStart(dtstart)

	count := c.BriefingCount
	if count <= 0 {
		count = DefaultBriefingCount
	}
	return rule, count, nil
}

func configFileName(env string) string {
	if env == "" {
		return "connect_care_config.yaml"
	}
	return "connect_care_config." + env + ".yaml"
}

// findInSearchPath looks for fileName in the current directory, then the home directory
func findInSearchPath(fileName string) (string, bool, error) {
	if _, err := os.Stat(fileName); err == nil {
		return fileName, true, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, true, nil
	}
	return "", false, nil
}

func findConfigFile(env string) (string, error) {
	path, found, err := findInSearchPath(configFileName(env))
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrConfigNotFound
	}
	return path, nil
}
