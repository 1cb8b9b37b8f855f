// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigScope selects which configuration layer a write targets.
type ConfigScope string

const (
	// ScopeUser writes to the user-level configuration.
	ScopeUser ConfigScope = "user"

	// ScopeRepo writes to the repository's own configuration.
	ScopeRepo ConfigScope = "repo"
)

// ConfigManager reads and writes jj configuration. Access it through
// [Repo.Config].
//
// jj prints configuration as TOML, so List decodes into nested maps
// keyed the way the config files are.
type ConfigManager struct {
	runner *runner
}

// List returns the resolved configuration. With includeDefaults set,
// jj's built-in defaults are included alongside explicit settings.
func (m *ConfigManager) List(ctx context.Context, includeDefaults bool) (map[string]any, error) {
	args := []string{"config", "list"}
	if includeDefaults {
		args = append(args, "--include-defaults")
	}
	result, err := m.runner.run(ctx, args, true)
	if err != nil {
		return nil, err
	}
	var config map[string]any
	if err := toml.Unmarshal([]byte(result.Stdout), &config); err != nil {
		return nil, &ParseError{Output: result.Stdout, Err: err}
	}
	return config, nil
}

// Get returns the value of a single dotted config key, as jj renders
// it.
func (m *ConfigManager) Get(ctx context.Context, key string) (string, error) {
	result, err := m.runner.run(ctx, []string{"config", "get", key}, true)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Stdout), nil
}

// Set writes a config value in the given scope.
func (m *ConfigManager) Set(ctx context.Context, scope ConfigScope, key, value string) error {
	if err := checkScope(scope); err != nil {
		return err
	}
	_, err := m.runner.run(ctx, []string{"config", "set", "--" + string(scope), key, value}, true)
	return err
}

// Unset removes a config key from the given scope.
func (m *ConfigManager) Unset(ctx context.Context, scope ConfigScope, key string) error {
	if err := checkScope(scope); err != nil {
		return err
	}
	_, err := m.runner.run(ctx, []string{"config", "unset", "--" + string(scope), key}, true)
	return err
}

func checkScope(scope ConfigScope) error {
	switch scope {
	case ScopeUser, ScopeRepo:
		return nil
	}
	return fmt.Errorf("unknown config scope %q", scope)
}
