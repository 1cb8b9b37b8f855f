// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for jjkit.
type Config struct {
	// JJ configures how the jj binary is resolved and invoked.
	JJ JJConfig `yaml:"jj"`

	// Docker configures the containerized executor. Unused unless a
	// container or image is named here or on the command line.
	Docker DockerConfig `yaml:"docker"`

	// Log configures logging.
	Log LogConfig `yaml:"log"`
}

// JJConfig configures the jj binary and repository selection.
type JJConfig struct {
	// Path is the jj binary name or path. Default: jj
	Path string `yaml:"path"`

	// Repo is the repository path commands target. Empty means the
	// current directory.
	Repo string `yaml:"repo"`

	// RepoNotFoundHints overrides the stderr fragments used to
	// recognize "no repository here" failures. Set this if a jj
	// upgrade changes the error wording.
	RepoNotFoundHints []string `yaml:"repo_not_found_hints"`
}

// DockerConfig configures the containerized executor.
type DockerConfig struct {
	// Path is the docker CLI binary. Default: docker
	Path string `yaml:"path"`

	// Container is an already-running container to attach to.
	Container string `yaml:"container"`

	// Image starts a fresh container when Container is empty.
	Image string `yaml:"image"`

	// Workdir is the working directory inside the container.
	Workdir string `yaml:"workdir"`

	// User is the user to run as inside the container.
	User string `yaml:"user"`

	// Env is extra environment inside the container.
	Env map[string]string `yaml:"env"`

	// Volumes maps host paths to container paths, bound when starting
	// a container from Image.
	Volumes map[string]string `yaml:"volumes"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum level emitted: debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level"`
}

// SlogLevel converts the configured level name to a slog.Level.
// Unknown names fall back to Info; Validate rejects them anyway.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the default configuration. These defaults make the
// tool usable with no config file at all: local jj from PATH, current
// directory, info logging.
func Default() *Config {
	return &Config{
		JJ: JJConfig{
			Path: "jj",
		},
		Docker: DockerConfig{
			Path: "docker",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by the JJKIT_CONFIG
// environment variable, or returns defaults when it is not set.
func Load() (*Config, error) {
	configPath := os.Getenv("JJKIT_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults.
//
// The config file is the single source of truth. Environment variables
// do not override config values; the only expansion performed is
// ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.JJ.Path = expandVars(c.JJ.Path, vars)
	c.JJ.Repo = expandVars(c.JJ.Repo, vars)
	c.Docker.Path = expandVars(c.Docker.Path, vars)
	c.Docker.Workdir = expandVars(c.Docker.Workdir, vars)

	if len(c.Docker.Volumes) > 0 {
		volumes := make(map[string]string, len(c.Docker.Volumes))
		for hostPath, containerPath := range c.Docker.Volumes {
			volumes[expandVars(hostPath, vars)] = expandVars(containerPath, vars)
		}
		c.Docker.Volumes = volumes
	}
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.JJ.Path == "" {
		errs = append(errs, fmt.Errorf("jj.path is required"))
	}

	if c.Docker.Container != "" && c.Docker.Image != "" {
		errs = append(errs, fmt.Errorf("docker.container and docker.image are mutually exclusive"))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
