package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the optional YAML file named by RELAY_CONFIG_FILE. Environment
// variables override the site identity it sets.
//
//	site:
//	  name: My Blog
//	  url: https://blog.example
//	events:
//	  enabled: [user_registered, order_created]
type File struct {
	Site struct {
		Name string `yaml:"name"`
		URL  string `yaml:"url"`
	} `yaml:"site"`
	Events struct {
		// Enabled limits dispatch to these tags. Empty means all.
		Enabled []string `yaml:"enabled"`
	} `yaml:"events"`
}

// LoadFile reads and parses path. The path comes from the operator's
// environment, not from request input.
func LoadFile(path string) (*File, error) {
	// #nosec G304 -- operator supplied path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	for i, t := range f.Events.Enabled {
		if t == "" {
			return nil, fmt.Errorf("parse config file: events.enabled[%d] is empty", i)
		}
	}
	return &f, nil
}
