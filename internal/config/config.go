// Package config loads the optional flowcap configuration file. Values are
// threaded explicitly through constructors; there is no mutable global.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"flowcap/internal/recorder"
	"flowcap/internal/workflow"
)

// DefaultFileName is looked up in the working directory when no --config
// flag is given.
const DefaultFileName = "flowcap.yaml"

// Config holds the tool-wide defaults.
type Config struct {
	RecordingsRoot string   `json:"recordings_root" yaml:"recordings_root"`
	OutputDir      string   `json:"output_dir" yaml:"output_dir"`
	Viewports      []string `json:"viewports,omitempty" yaml:"viewports,omitempty"`
	States         []string `json:"states,omitempty" yaml:"states,omitempty"`
	LogLevel       string   `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat      string   `json:"log_format,omitempty" yaml:"log_format,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RecordingsRoot: recorder.DefaultRoot,
		OutputDir:      "screenshots",
		Viewports:      workflow.DefaultViewports,
		States:         workflow.DefaultStates,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// LoadFromPath reads a config file (YAML or JSON) and overlays it on the
// defaults. Format is detected by extension or, failing that, by content.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config from bytes. ext is the file extension for the format
// hint; empty means detect from content (JSON starts with '{').
func Load(data []byte, ext string) (*Config, error) {
	c := Default()

	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}

	isJSON := ext == ".json"
	if ext == "" {
		isJSON = strings.HasPrefix(strings.TrimSpace(string(data)), "{")
	}

	if isJSON {
		if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}
	return c, nil
}

// SlogLevel maps the configured level name to a slog.Level (info if unknown).
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
