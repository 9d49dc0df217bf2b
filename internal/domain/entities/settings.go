package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeoutSeconds = 30
	DefaultConcurrency    = 8
	DefaultConanBinary    = "conan"
	DefaultPythonBinary   = "python3"
)

// Settings is the effective configuration of a run. It is built once from
// defaults, an optional config file and CLI flags, then passed to every layer.
type Settings struct {
	Target       string   `yaml:"target"        toml:"target"`
	Timeout      int      `yaml:"timeout"       toml:"timeout"` // seconds per version query
	Concurrency  int      `yaml:"concurrency"   toml:"concurrency"`
	ConanBinary  string   `yaml:"conan_binary"  toml:"conan_binary"`
	PythonBinary string   `yaml:"python_binary" toml:"python_binary"`
	Remote       string   `yaml:"remote"        toml:"remote"`
	Filters      []string `yaml:"filters"       toml:"filters"`
	Strict       bool     `yaml:"strict"        toml:"strict"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		Target:       UpgradeMajor.String(),
		Timeout:      DefaultTimeoutSeconds,
		Concurrency:  DefaultConcurrency,
		ConanBinary:  DefaultConanBinary,
		PythonBinary: DefaultPythonBinary,
	}
}

// QueryTimeout returns the per-query deadline.
func (s *Settings) QueryTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// UpgradeLevel parses the configured target.
func (s *Settings) UpgradeLevel() (UpgradeLevel, error) {
	return ParseUpgradeLevel(s.Target)
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads a YAML or TOML config file on top of the defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, settings)
	default:
		err = yaml.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	settings.ConanBinary = expandEnv(settings.ConanBinary)
	settings.PythonBinary = expandEnv(settings.PythonBinary)

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// FindConfigFile searches dir, dir/.config and the home directory for a
// config file. It returns the first match.
func FindConfigFile(dir string) (string, error) {
	locations := []string{dir, filepath.Join(dir, ".config")}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".conanupdate.yaml",
		".conanupdate.yml",
		".conanupdate.toml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if info, statErr := os.Stat(p); statErr == nil && !info.IsDir() {
				return p, nil
			}
		}
	}
	return "", errors.New("config file not found in default locations")
}

// expandEnv expands ${ENV_VAR} references, warning about unset variables.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// Validate checks the settings for values that cannot work.
func (s *Settings) Validate() error {
	if _, err := s.UpgradeLevel(); err != nil {
		return err
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", s.Timeout)
	}
	if s.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", s.Concurrency)
	}
	if s.ConanBinary == "" {
		return errors.New("conan_binary must not be empty")
	}
	if s.PythonBinary == "" {
		return errors.New("python_binary must not be empty")
	}
	return nil
}
