package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format represents the file format of a config file.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatTOML
	FormatJSON
)

// Load reads a config file in YAML, TOML or JSON into base and returns the
// result. Values present in the file overwrite base; everything else keeps
// its default.
func Load(path string, base Config) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := base
	switch detectFormat(path, content) {
	case FormatTOML:
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return base, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(content, &cfg); err != nil {
			return base, fmt.Errorf("failed to parse JSON config %s: %w", path, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return base, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	default:
		return base, fmt.Errorf("could not determine format of config %s", path)
	}
	return cfg, nil
}

// detectFormat determines the file format based on extension or content.
func detectFormat(path string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	}
	return sniffFormat(content)
}

// sniffFormat attempts to detect format from content for extensionless files.
func sniffFormat(content []byte) Format {
	trimmed := strings.TrimSpace(string(content))

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		// JSON objects/arrays, except a bare [section] header is TOML.
		if strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "[[") &&
			!strings.Contains(strings.SplitN(trimmed, "\n", 2)[0], "{") &&
			!strings.Contains(strings.SplitN(trimmed, "\n", 2)[0], ",") {
			return FormatTOML
		}
		return FormatJSON
	}

	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, " = ") {
			return FormatTOML
		}
		if strings.Contains(line, ":") {
			return FormatYAML
		}
	}
	return FormatUnknown
}
