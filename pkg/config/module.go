package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DEFAULT []byte

// Process reads the provided configuration files in order, layering each
// one over the built-in defaults; later files win. With no files the
// default configuration is returned as-is.
func Process(configPaths []string) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(DEFAULT, &config); err != nil {
		return nil, fmt.Errorf("invalid default config: %v", err)
	}

	for _, path := range configPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read config file %s: %v", path, err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("could not process config file %s: %v", path, err)
		}
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(config *Config) error {
	server := config.Server

	if port := server.Ingress.Web.Port; port < 1 || port > 65535 {
		return fmt.Errorf("invalid web ingress port %d", port)
	}
	if server.Table.MinPlayers < 1 {
		return fmt.Errorf("minPlayers must be at least 1")
	}
	if size := server.Table.HandSize; size < 1 || size > 52 {
		return fmt.Errorf("invalid hand size %d", size)
	}

	return nil
}
