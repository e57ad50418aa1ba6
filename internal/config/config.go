package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for codegate.
// Pointer fields distinguish "unset" from zero values so flags can win.
type FileConfig struct {
	Include         *string `yaml:"include"`
	Exclude         *string `yaml:"exclude"`
	Extensions      *string `yaml:"extensions"`
	MaxBytes        *int64  `yaml:"max_bytes"`
	Enable          *string `yaml:"enable"`
	Disable         *string `yaml:"disable"`
	Threads         *int    `yaml:"threads"`
	NoColor         *bool   `yaml:"no_color"`
	DefaultExcludes *bool   `yaml:"default_excludes"`
	RuleTimeout     *string `yaml:"rule_timeout"`

	// Severities overrides the built-in severity of named rules, e.g.
	// todo_marker: high.
	Severities map[string]string `yaml:"severities"`

	// Gate tunes the enforcement gate.
	Gate *GateConfig `yaml:"gate"`
}

// GateConfig holds enforcement gate settings.
type GateConfig struct {
	// Timeout bounds a single gate evaluation, e.g. "5s".
	Timeout *string `yaml:"timeout"`

	// AuditLog overrides the default audit log location.
	AuditLog *string `yaml:"audit_log"`

	// NoFix disables auto-fix attempts; fixable findings are then judged
	// as-is.
	NoFix *bool `yaml:"no_fix"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .codegate.yml/.yaml and codegate.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".codegate.yml", ".codegate.yaml", "codegate.yml", "codegate.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "codegate", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// GetGate returns the gate configuration, never nil-dereferencing.
func (fc FileConfig) GetGate() GateConfig {
	if fc.Gate == nil {
		return GateConfig{}
	}
	return *fc.Gate
}

// GateTimeout returns the configured timeout string or empty.
func (gc GateConfig) GateTimeout() string {
	if gc.Timeout == nil {
		return ""
	}
	return *gc.Timeout
}

// AuditLogPath returns the configured audit log path or empty.
func (gc GateConfig) AuditLogPath() string {
	if gc.AuditLog == nil {
		return ""
	}
	return *gc.AuditLog
}

// FixDisabled reports whether auto-fix was turned off.
func (gc GateConfig) FixDisabled() bool {
	return gc.NoFix != nil && *gc.NoFix
}
