// Package config provides layered configuration for the commitlog CLIs using koanf.
// Configuration is loaded with priority: environment variables (COMMITLOG_*) >
// project config (.commitlog.yml) > user config (~/.config/commitlog/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "COMMITLOG_"

// Configuration holds the settings threaded through both pipelines.
type Configuration struct {
	// DiffIgnore lists path globs excluded from diff statistics.
	// Via env: COMMITLOG_DIFF_IGNORE="*.svg,*.lock"
	DiffIgnore []string `koanf:"diff_ignore"`

	// MessageFilter is the default --filter pattern (RE2). Empty keeps everything.
	MessageFilter string `koanf:"message_filter"`

	// Manifest is the file whose version field marks releases.
	Manifest string `koanf:"manifest" validate:"required"`
	// VersionField is the JSON key inside Manifest that holds the version.
	VersionField string `koanf:"version_field" validate:"required"`

	CommitLog string `koanf:"commit_log" validate:"required"`
	Changelog string `koanf:"changelog" validate:"required"`

	// MaxParallel bounds concurrent git diff invocations.
	MaxParallel int `koanf:"max_parallel" validate:"min=1,max=64"`

	// ProjectName overrides the manifest name in the changelog title.
	ProjectName string `koanf:"project_name"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .commitlog.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: XDG config dir)
	UserConfigPath string
}

// Load loads configuration from defaults, user, project, and environment sources.
func Load(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath, _ = UserConfigPath()
	}
	if err := loadYAMLConfig(k, userPath, "user"); err != nil {
		return nil, err
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
	}
	if err := loadYAMLConfig(k, projectPath, "project"); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k, projectPath)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadYAMLConfig validates and loads a YAML config file if it exists.
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if !fileExists(path) {
		return nil
	}
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration.
func finalizeConfig(k *koanf.Koanf, source string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, source); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variables to config keys and values.
// Example: COMMITLOG_MAX_PARALLEL -> max_parallel.
// List-valued keys are split on commas.
func envTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "diff_ignore" {
		parts := strings.Split(value, ",")
		globs := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				globs = append(globs, p)
			}
		}
		return key, globs
	}
	return key, value
}
