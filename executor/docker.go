// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DockerOptions configures how commands run inside a container.
type DockerOptions struct {
	// Workdir is the working directory inside the container, passed
	// as "docker exec -w" (and "docker run -w" in start mode).
	Workdir string

	// User is the user to run as inside the container ("docker exec -u").
	User string

	// Env holds environment variables set inside the container for
	// every command. Emitted in sorted key order so argument vectors
	// are deterministic.
	Env map[string]string

	// Volumes maps host paths to container paths, used only when
	// starting a container ("docker run -v host:container"). Emitted
	// in sorted key order.
	Volumes map[string]string

	// Ports maps host ports to container ports, used only when
	// starting a container ("docker run -p host:container"). Emitted
	// in sorted key order.
	Ports map[int]int

	// DockerPath is the docker CLI binary. Default "docker".
	DockerPath string

	// Host runs the docker CLI invocations themselves. Default: a
	// zero-value [Local]. Replaceable for tests and for remote docker
	// hosts reachable through another executor.
	Host Executor
}

func (o DockerOptions) dockerPath() string {
	if o.DockerPath == "" {
		return "docker"
	}
	return o.DockerPath
}

func (o DockerOptions) host() Executor {
	if o.Host == nil {
		return &Local{}
	}
	return o.Host
}

// Docker runs commands inside a Docker container via "docker exec".
// Construct with [NewDocker] to attach to a running container, or
// [StartDocker] to start a fresh one from an image.
//
// A Docker executor that started its own container owns it: [Close]
// stops the container exactly once, and attach-mode executors never
// stop anything. Callers in start mode should defer Close so the
// container is released on every exit path.
type Docker struct {
	container string
	options   DockerOptions
	host      Executor

	mu     sync.Mutex
	owns   bool
	closed bool
}

// NewDocker returns an executor attached to an already-running
// container, identified by name or ID. The container's lifecycle is
// not managed: Close is a no-op.
func NewDocker(container string, options DockerOptions) *Docker {
	return &Docker{
		container: container,
		options:   options,
		host:      options.host(),
	}
}

// StartDocker starts a detached container from image (with "docker run
// -d --rm", kept alive by "sleep infinity") and returns an executor
// attached to it. The returned executor owns the container; release it
// with [Docker.Close].
func StartDocker(ctx context.Context, image string, options DockerOptions) (*Docker, error) {
	host := options.host()
	args := startArgs(image, options)

	result, err := host.Execute(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("starting container from %s: %w", image, err)
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("starting container from %s: docker run exited %d: %s",
			image, result.ExitCode, strings.TrimSpace(result.Stderr))
	}

	return &Docker{
		container: strings.TrimSpace(result.Stdout),
		options:   options,
		host:      host,
		owns:      true,
	}, nil
}

// Container returns the container name or ID this executor targets.
func (d *Docker) Container() string {
	return d.container
}

// Execute runs args inside the container via "docker exec". The
// returned Result reports the original args, not the docker-wrapped
// vector: callers asked for a jj command, and that is the command the
// result describes.
func (d *Docker) Execute(ctx context.Context, args []string) (Result, error) {
	result, err := d.host.Execute(ctx, d.execArgs(args))
	if err != nil {
		return Result{Args: args}, err
	}
	result.Args = args
	return result, nil
}

// Close stops the container if this executor started it. Stopping
// happens at most once; later calls (and all calls on attach-mode
// executors) return nil without touching the container.
func (d *Docker) Close(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.owns || d.closed {
		return nil
	}
	d.closed = true

	result, err := d.host.Execute(ctx, []string{d.options.dockerPath(), "stop", d.container})
	if err != nil {
		return fmt.Errorf("stopping container %s: %w", d.container, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("stopping container %s: docker stop exited %d: %s",
			d.container, result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// execArgs wraps a command in the "docker exec" vector for this
// container.
func (d *Docker) execArgs(args []string) []string {
	dockerArgs := []string{d.options.dockerPath(), "exec"}
	if d.options.Workdir != "" {
		dockerArgs = append(dockerArgs, "-w", d.options.Workdir)
	}
	if d.options.User != "" {
		dockerArgs = append(dockerArgs, "-u", d.options.User)
	}
	dockerArgs = appendEnvArgs(dockerArgs, d.options.Env)
	dockerArgs = append(dockerArgs, d.container)
	return append(dockerArgs, args...)
}

// startArgs builds the "docker run" vector that starts a detached
// container from image. The container removes itself on stop (--rm)
// and idles on "sleep infinity" until commands arrive.
func startArgs(image string, options DockerOptions) []string {
	args := []string{options.dockerPath(), "run", "-d", "--rm"}
	if options.Workdir != "" {
		args = append(args, "-w", options.Workdir)
	}
	if options.User != "" {
		args = append(args, "-u", options.User)
	}
	args = appendEnvArgs(args, options.Env)

	hostPaths := make([]string, 0, len(options.Volumes))
	for hostPath := range options.Volumes {
		hostPaths = append(hostPaths, hostPath)
	}
	sort.Strings(hostPaths)
	for _, hostPath := range hostPaths {
		args = append(args, "-v", hostPath+":"+options.Volumes[hostPath])
	}

	hostPorts := make([]int, 0, len(options.Ports))
	for hostPort := range options.Ports {
		hostPorts = append(hostPorts, hostPort)
	}
	sort.Ints(hostPorts)
	for _, hostPort := range hostPorts {
		args = append(args, "-p", fmt.Sprintf("%d:%d", hostPort, options.Ports[hostPort]))
	}

	return append(args, image, "sleep", "infinity")
}

// appendEnvArgs appends "-e KEY=value" pairs in sorted key order.
func appendEnvArgs(args []string, env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, "-e", key+"="+env[key])
	}
	return args
}
