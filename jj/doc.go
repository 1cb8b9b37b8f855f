// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package jj provides a typed interface to the Jujutsu (jj) version
// control CLI. It is built for scripting and automation: queries and
// mutations are expressed as method calls on a [Repo] handle, executed
// through a pluggable backend, and parsed back into typed results.
//
// The central type is [Repo], which represents a jj repository at a
// specific path. All commands go through the handle, which injects
// --no-pager, --color never, and --repository automatically, so a
// script cannot accidentally target the wrong repository or get
// paginated output.
//
// Sub-resources hang off the handle as managers: [Repo.Bookmark],
// [Repo.Git], [Repo.Workspace], [Repo.Op], and [Repo.Config]. Managers
// are stateless translators; every call is a complete round trip
// through the same dispatch path.
//
// Where commands run is decided by the [executor.Executor] bound at
// construction. The default runs jj as a local subprocess; an
// [executor.Docker] runs it inside a container; anything implementing
// the interface plugs in unchanged.
//
// Failures are classified in one place, in order: a missing binary is
// reported at construction as [*NotFoundError]; a command that fails
// because no repository exists at the path is [*RepoNotFoundError]; any
// other non-zero exit is [*CommandError]; output that cannot be decoded
// is [*ParseError]. Errors carry the full argument vector and stderr so
// failures can be reproduced by hand.
package jj
