package config

import (
	"fmt"
	"os"

	"storefront-gateway/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation and checks the NATS and
// stream sub-configs.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config name cannot be empty")
	}

	// Validate Application Ports
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid application port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GRPCPort <= 1024 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port number: %d (must be between 1025 and 65535)", c.GRPCPort)
	}

	// Validate Streams
	if len(c.Streams) == 0 {
		return fmt.Errorf("at least one stream must be configured")
	}
	seen := make(map[string]bool, len(c.Streams))
	for i, stream := range c.Streams {
		if stream.Name == "" {
			return fmt.Errorf("stream %d: name cannot be empty", i)
		}
		if seen[stream.Name] {
			return fmt.Errorf("stream '%s': duplicate name", stream.Name)
		}
		seen[stream.Name] = true
		if stream.Kind == "" {
			return fmt.Errorf("stream '%s': kind cannot be empty", stream.Name)
		}
		if stream.Endpoint == "" {
			return fmt.Errorf("stream '%s': endpoint cannot be empty", stream.Name)
		}
	}

	// Validation of NATS config (minimal check)
	if len(c.NATS.Servers) == 0 {
		return fmt.Errorf("NATS servers list cannot be empty")
	}

	return nil
}

// -----------------------------------------------------------------------------

// GetStreamByName returns a single stream configuration by name
func (c *Config) GetStreamByName(name string) *models.MStreamConfig {
	for _, stream := range c.Streams {
		if stream.Name == name {
			return stream
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

// GetStreamsByKind returns stream configurations by profile kind
func (c *Config) GetStreamsByKind(kind string) []models.MStreamConfig {
	var result []models.MStreamConfig
	for _, stream := range c.Streams {
		if stream.Kind == kind {
			result = append(result, *stream)
		}
	}
	return result
}
