// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jjkit/jjkit/executor"
	"github.com/jjkit/jjkit/jj"
	"github.com/jjkit/jjkit/lib/config"
	"github.com/jjkit/jjkit/lib/envdef"
)

// repoParams holds the global flags shared by every command that talks
// to a repository. Commands embed it in their params struct, so the
// flags appear on each subcommand rather than requiring flag-before-
// subcommand ordering.
type repoParams struct {
	Repo      string `json:"repo"      flag:"repo"      desc:"repository path (default: current directory)"`
	Binary    string `json:"jj"        flag:"jj"        desc:"jj binary name or path"`
	Config    string `json:"config"    flag:"config"    desc:"config file path (overrides JJKIT_CONFIG)"`
	Container string `json:"container" flag:"container" desc:"run jj inside this running container"`
	EnvFile   string `json:"env_file"  flag:"env-file"  desc:"JSONC environment definition; starts a fresh container"`
	Debug     bool   `json:"-"         flag:"debug"     desc:"enable debug logging"`
}

// open resolves config and flags into a ready repository handle. The
// returned cleanup stops any container this call started; callers must
// defer it even on the success path.
func (p *repoParams) open(ctx context.Context, logger *slog.Logger) (*jj.Repo, func(), error) {
	options, repoPath, cleanup, err := p.resolve(ctx, logger)
	if err != nil {
		return nil, nil, err
	}
	repo, err := jj.Open(repoPath, options)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return repo, cleanup, nil
}

// resolve turns config and flags into handle options, a repository
// path, and a cleanup for any container this call started. Commands
// that construct their own handle (clone) use it directly.
func (p *repoParams) resolve(ctx context.Context, logger *slog.Logger) (jj.Options, string, func(), error) {
	cfg, err := p.loadConfig()
	if err != nil {
		return jj.Options{}, "", nil, err
	}

	if p.Container != "" && p.EnvFile != "" {
		return jj.Options{}, "", nil, fmt.Errorf("--container and --env-file are mutually exclusive")
	}

	options := jj.Options{
		Binary:            cfg.JJ.Path,
		RepoNotFoundHints: cfg.JJ.RepoNotFoundHints,
		Logger:            logger,
	}
	if p.Binary != "" {
		options.Binary = p.Binary
	}

	repoPath := cfg.JJ.Repo
	if p.Repo != "" {
		repoPath = p.Repo
	}

	cleanup := func() {}

	switch {
	case p.EnvFile != "":
		env, err := envdef.ReadFile(p.EnvFile)
		if err != nil {
			return jj.Options{}, "", nil, err
		}
		if issues := envdef.Validate(env); len(issues) > 0 {
			return jj.Options{}, "", nil, fmt.Errorf("invalid environment %s:\n  %s",
				p.EnvFile, strings.Join(issues, "\n  "))
		}
		dockerOptions, err := env.DockerOptions()
		if err != nil {
			return jj.Options{}, "", nil, err
		}
		dockerOptions.DockerPath = cfg.Docker.Path

		docker, err := executor.StartDocker(ctx, env.Image, dockerOptions)
		if err != nil {
			return jj.Options{}, "", nil, err
		}
		logger.Debug("started container", "environment", env.Name, "container", docker.Container())
		cleanup = stopContainer(docker, logger)
		options.Executor = docker

	case p.Container != "":
		options.Executor = executor.NewDocker(p.Container, dockerOptionsFromConfig(cfg))

	case cfg.Docker.Container != "":
		options.Executor = executor.NewDocker(cfg.Docker.Container, dockerOptionsFromConfig(cfg))

	case cfg.Docker.Image != "":
		docker, err := executor.StartDocker(ctx, cfg.Docker.Image, dockerOptionsFromConfig(cfg))
		if err != nil {
			return jj.Options{}, "", nil, err
		}
		logger.Debug("started container", "image", cfg.Docker.Image, "container", docker.Container())
		cleanup = stopContainer(docker, logger)
		options.Executor = docker
	}

	return options, repoPath, cleanup, nil
}

// loadConfig loads and validates configuration, preferring the --config
// flag over the JJKIT_CONFIG environment variable.
func (p *repoParams) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if p.Config != "" {
		cfg, err = config.LoadFile(p.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// dockerOptionsFromConfig builds executor options from the config's
// docker section, for both attach and start mode.
func dockerOptionsFromConfig(cfg *config.Config) executor.DockerOptions {
	return executor.DockerOptions{
		DockerPath: cfg.Docker.Path,
		Workdir:    cfg.Docker.Workdir,
		User:       cfg.Docker.User,
		Env:        cfg.Docker.Env,
		Volumes:    cfg.Docker.Volumes,
	}
}

// stopContainer returns a cleanup that stops a container we started.
// It uses a fresh context: cleanup runs on the way out, often because
// the command's own context was canceled.
func stopContainer(docker *executor.Docker, logger *slog.Logger) func() {
	return func() {
		if err := docker.Close(context.Background()); err != nil {
			logger.Warn("stopping container", "container", docker.Container(), "error", err)
		}
	}
}
