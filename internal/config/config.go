package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// AttackPatterns maps attack categories to their detection patterns.
// The patterns are fixed: detection is not configurable at runtime.
var AttackPatterns = map[string]string{
	"sql_injection": `(?i)(union\s+select|select.*from|drop\s+table|--\s*$)`,
	"xss":           `(?i)(<script>|alert\(|onload=|onerror=|javascript:)`,
	"brute_force":   `(?i)(failed login|authentication failure|invalid password)`,
}

// IPPattern matches an IPv4-shaped token. Groups are not validated
// numerically; the address is an opaque classification key.
const IPPattern = `\b(?:\d{1,3}\.){3}\d{1,3}\b`

// DDoSThreshold is the per-address frequency a source must strictly
// exceed before it is flagged as a high-frequency source.
const DDoSThreshold = 100

// Severity levels used on the console surface.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Settings holds the configuration for one invocation. It is built
// once at startup and passed explicitly; there is no process-wide
// mutable state.
type Settings struct {
	Log     LogSettings    `yaml:"Log"`
	Limits  LimitSettings  `yaml:"Limits"`
	Results ResultSettings `yaml:"Results"`
}

// LogSettings contains the configuration for logging.
type LogSettings struct {
	Level     int    `yaml:"Level"`
	LogToFile bool   `yaml:"LogToFile"`
	Path      string `yaml:"Path"`
}

// LimitSettings bounds what input files are accepted.
type LimitSettings struct {
	MaxFileSize       int64    `yaml:"MaxFileSize"`
	AllowedExtensions []string `yaml:"AllowedExtensions"`
}

// ResultSettings controls where analysis results are persisted.
type ResultSettings struct {
	Directory string `yaml:"Directory"`
}

// Default returns the settings used when no config file is given.
func Default() Settings {
	return Settings{
		Log: LogSettings{
			Level:     2,
			LogToFile: false,
			Path:      "app.log",
		},
		Limits: LimitSettings{
			MaxFileSize:       16 * 1024 * 1024, // 16MB
			AllowedExtensions: []string{"log", "txt"},
		},
		Results: ResultSettings{
			Directory: "results",
		},
	}
}

// Load reads settings from a YAML file, falling back to defaults for
// anything the file does not set. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse config: %w", err)
	}

	return settings, nil
}

// AllowedFile reports whether a file name carries one of the accepted
// extensions. Gzipped variants of accepted extensions are also allowed.
func (s Settings) AllowedFile(name string) bool {
	name = strings.ToLower(filepath.Base(name))
	name = strings.TrimSuffix(name, ".gz")

	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return false
	}

	for _, allowed := range s.Limits.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
