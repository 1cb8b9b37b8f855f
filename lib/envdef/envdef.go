// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package envdef provides parsing and validation for jjkit environment
// definitions. An environment describes the container a repository's
// jj commands run in: the image, working directory, user, environment
// variables, volume mounts, and port mappings.
//
// Environment definitions are authored on disk as JSONC files (JSON
// extended with comments and trailing commas).
//
// The typical flow:
//
//  1. ReadFile or Parse: JSONC bytes → Environment
//  2. Validate: structural checks (image required, port syntax, etc.)
//  3. DockerOptions: convert to executor options, then start or attach
package envdef

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/jjkit/jjkit/executor"
)

// Environment describes a container for running jj commands in.
type Environment struct {
	// Name identifies the environment. Optional; [NameFromPath] derives
	// one from the file name when unset.
	Name string `json:"name,omitempty"`

	// Image is the container image to start. Required.
	Image string `json:"image"`

	// Workdir is the working directory inside the container. Commands
	// run here, so it is usually the repository mount point.
	Workdir string `json:"workdir,omitempty"`

	// User is the user to run as inside the container.
	User string `json:"user,omitempty"`

	// Env holds environment variables set inside the container for
	// every command.
	Env map[string]string `json:"env,omitempty"`

	// Volumes maps host paths to container paths.
	Volumes map[string]string `json:"volumes,omitempty"`

	// Ports lists "host:container" TCP port mappings.
	Ports []string `json:"ports,omitempty"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into an Environment.
func Parse(data []byte) (*Environment, error) {
	stripped := jsonc.ToJSON(data)

	var env Environment
	if err := json.Unmarshal(stripped, &env); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return &env, nil
}

// ReadFile reads a JSONC environment file from disk and parses it into
// an Environment. Returns a descriptive error if the file cannot be
// read or the JSON is malformed.
func ReadFile(path string) (*Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	env, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if env.Name == "" {
		env.Name = NameFromPath(path)
	}
	return env, nil
}

// NameFromPath extracts an environment name from a file path by
// stripping the directory prefix and the file extension. For example,
// "envs/rust-toolchain.jsonc" returns "rust-toolchain".
func NameFromPath(path string) string {
	base := filepath.Base(path)
	extension := filepath.Ext(base)
	return strings.TrimSuffix(base, extension)
}

// Validate checks an Environment for structural issues. Returns a list
// of human-readable issue descriptions. An empty list means the
// environment is valid.
//
// Structural checks include:
//   - Image is required
//   - Workdir (when present) must be absolute
//   - Volume container paths must be absolute
//   - Ports must be "host:container" with both sides positive integers
func Validate(env *Environment) []string {
	var issues []string

	if env.Image == "" {
		issues = append(issues, "image is required")
	}

	if env.Workdir != "" && !filepath.IsAbs(env.Workdir) {
		issues = append(issues, fmt.Sprintf("workdir %q must be an absolute path", env.Workdir))
	}

	for hostPath, containerPath := range env.Volumes {
		if !filepath.IsAbs(containerPath) {
			issues = append(issues, fmt.Sprintf(
				"volumes[%q]: container path %q must be absolute", hostPath, containerPath))
		}
	}

	for index, mapping := range env.Ports {
		if _, _, err := splitPort(mapping); err != nil {
			issues = append(issues, fmt.Sprintf("ports[%d]: %v", index, err))
		}
	}

	return issues
}

// DockerOptions converts the environment into executor options for
// [executor.StartDocker]. Returns an error when a port mapping cannot
// be parsed; run [Validate] first for a full issue list.
func (e *Environment) DockerOptions() (executor.DockerOptions, error) {
	options := executor.DockerOptions{
		Workdir: e.Workdir,
		User:    e.User,
		Env:     e.Env,
		Volumes: e.Volumes,
	}

	if len(e.Ports) > 0 {
		options.Ports = make(map[int]int, len(e.Ports))
		for _, mapping := range e.Ports {
			hostPort, containerPort, err := splitPort(mapping)
			if err != nil {
				return executor.DockerOptions{}, err
			}
			options.Ports[hostPort] = containerPort
		}
	}

	return options, nil
}

// splitPort parses a "host:container" port mapping.
func splitPort(mapping string) (hostPort, containerPort int, err error) {
	hostPart, containerPart, found := strings.Cut(mapping, ":")
	if !found {
		return 0, 0, fmt.Errorf("invalid port mapping %q (want \"host:container\")", mapping)
	}

	hostPort, err = strconv.Atoi(hostPart)
	if err != nil || hostPort <= 0 {
		return 0, 0, fmt.Errorf("invalid host port %q in mapping %q", hostPart, mapping)
	}

	containerPort, err = strconv.Atoi(containerPart)
	if err != nil || containerPort <= 0 {
		return 0, 0, fmt.Errorf("invalid container port %q in mapping %q", containerPart, mapping)
	}

	return hostPort, containerPort, nil
}
