// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format          string   `yaml:"format"`
		Output          string   `yaml:"output"`
		Verbose         bool     `yaml:"verbose"`
		Debug           bool     `yaml:"debug"`
		NoColor         bool     `yaml:"no_color"`
		Recursive       bool     `yaml:"recursive"`
		Workers         int      `yaml:"workers"`
		ExcludePatterns []string `yaml:"exclude_patterns"`
	} `yaml:"defaults"`

	// Extraction tuning
	Extract struct {
		PDFMaxPages  int  `yaml:"pdf_max_pages"`
		EnableImages bool `yaml:"enable_images"`
	} `yaml:"extract"`

	// Profiles for different harvesting scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a named preset of settings
type Profile struct {
	Format          string   `yaml:"format"`
	Output          string   `yaml:"output"`
	Verbose         bool     `yaml:"verbose"`
	Debug           bool     `yaml:"debug"`
	NoColor         bool     `yaml:"no_color"`
	Recursive       bool     `yaml:"recursive"`
	Workers         int      `yaml:"workers"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
	Description     string   `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path. An empty path
// returns the built-in defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.Output = "emails.txt"
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false
	config.Defaults.Recursive = false
	config.Defaults.Workers = runtime.NumCPU()
	config.Extract.PDFMaxPages = 50
	config.Extract.EnableImages = true

	// Built-in profile for bulk runs over large dump directories
	config.Profiles["bulk"] = Profile{
		Format:      "text",
		Output:      "emails.txt",
		NoColor:     true,
		Recursive:   true,
		Description: "Quiet recursive run suitable for large directory trees",
	}

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Remember defaults that would be clobbered by absent YAML fields
	defaultWorkers := config.Defaults.Workers
	defaultEnableImages := config.Extract.EnableImages

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if config.Defaults.Workers <= 0 {
		config.Defaults.Workers = defaultWorkers
	}
	if !containsField(data, "extract", "enable_images") {
		config.Extract.EnableImages = defaultEnableImages
	}
	// An absent pdf_max_pages keeps the default; an explicit 0 means
	// unlimited and is honored as written.

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ApplyProfile overlays a named profile onto the defaults. Zero values in
// the profile leave the corresponding default untouched.
func (c *Config) ApplyProfile(name string) error {
	profile, ok := c.Profiles[name]
	if !ok {
		return fmt.Errorf("unknown profile: %s", name)
	}
	if profile.Format != "" {
		c.Defaults.Format = profile.Format
	}
	if profile.Output != "" {
		c.Defaults.Output = profile.Output
	}
	if profile.Workers > 0 {
		c.Defaults.Workers = profile.Workers
	}
	if profile.Verbose {
		c.Defaults.Verbose = true
	}
	if profile.Debug {
		c.Defaults.Debug = true
	}
	if profile.NoColor {
		c.Defaults.NoColor = true
	}
	if profile.Recursive {
		c.Defaults.Recursive = true
	}
	if len(profile.ExcludePatterns) > 0 {
		c.Defaults.ExcludePatterns = profile.ExcludePatterns
	}
	return nil
}

// ValidateConfig checks for values that would misbehave at runtime.
func ValidateConfig(c *Config) error {
	switch c.Defaults.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unknown output format: %s", c.Defaults.Format)
	}
	if c.Defaults.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Defaults.Workers)
	}
	if c.Extract.PDFMaxPages < 0 {
		return fmt.Errorf("pdf_max_pages must not be negative, got %d", c.Extract.PDFMaxPages)
	}
	return nil
}

// FindConfigFile looks for a configuration file in standard locations.
func FindConfigFile() string {
	candidates := []string{
		"config.yaml",
		"email-harvest.yaml",
		"email-harvest.yml",
		".email-harvest.yaml",
		".email-harvest.yml",
	}
	for _, name := range candidates {
		if fileExists(name) {
			return name
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		standard := filepath.Join(home, ".email-harvest", "config.yaml")
		if fileExists(standard) {
			return standard
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// containsField reports whether a nested key path is present in the raw YAML
// document. Needed to tell "explicitly false" apart from "absent" for bool
// fields whose default is true.
func containsField(data []byte, path ...string) bool {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false
	}
	var cur any = doc
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return false
		}
		cur, ok = m[key]
		if !ok {
			return false
		}
	}
	return true
}
