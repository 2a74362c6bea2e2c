package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/christophergentle/perfgraph/internal/axis"
	"github.com/christophergentle/perfgraph/internal/series"
	"github.com/christophergentle/perfgraph/internal/style"
)

// DefaultOutput is the image path used when a chart file names none
const DefaultOutput = "performance_graph.png"

// Config is a chart definition file
type Config struct {
	Output  string          `yaml:"output"`
	Axis    string          `yaml:"axis"`
	Profile string          `yaml:"profile"`
	Style   yaml.Node       `yaml:"style"`
	Samples []series.Sample `yaml:"samples"`
	Upload  UploadConfig    `yaml:"upload"`
}

// UploadConfig names an optional S3 destination for the finished image
type UploadConfig struct {
	Bucket string `yaml:"bucket"`
	Key    string `yaml:"key"`
}

// LoadConfig reads a chart definition from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a chart definition and fills in defaults
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults for optional fields
	if config.Output == "" {
		config.Output = DefaultOutput
	}
	if config.Axis == "" {
		config.Axis = axis.Ordinal.String()
	}
	if config.Profile == "" {
		config.Profile = style.DefaultName
	}

	// Validate names early so typos fail before any rendering
	if _, err := config.Strategy(); err != nil {
		return nil, err
	}
	if _, err := config.StyleProfile(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Strategy returns the configured axis strategy
func (c *Config) Strategy() (axis.Strategy, error) {
	return axis.ParseStrategy(c.Axis)
}

// StyleProfile returns the named profile with the style overrides applied
func (c *Config) StyleProfile() (style.Profile, error) {
	p, err := style.Named(c.Profile)
	if err != nil {
		return style.Profile{}, err
	}
	if c.Style.Kind != 0 {
		if err := c.Style.Decode(&p); err != nil {
			return style.Profile{}, fmt.Errorf("failed to parse style overrides: %w", err)
		}
	}
	return p, nil
}

// DefaultSamples is the solver benchmark history rendered when no input is given
func DefaultSamples() []series.Sample {
	return []series.Sample{
		{Date: "2026-01-04", Value: 294.24, Label: "Initial Parallel Model"},
		{Date: "2026-01-05", Value: 248.14, Label: "Action Pruning"},
		{Date: "2026-01-06", Value: 65.3, Label: "Wordle LUT"},
		{Date: "2026-01-19", Value: 55.89, Label: "FastBitset Iterator"},
		{Date: "2026-01-24", Value: 40.77, Label: "SIMD State Pruning"},
		{Date: "2026-01-25", Value: 109.23, Label: "Locking Bugfix :("},
		{Date: "2026-01-26", Value: 88.77, Label: "Non-Linear Guess Ordering"},
	}
}
