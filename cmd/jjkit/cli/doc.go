// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the jjkit CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in cmd/jjkit/main.go
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples. The
// context and logger given to Execute flow through dispatch into the
// selected command's Run function.
//
// Most commands describe their flags declaratively: a params struct with
// flag/desc/default tags handed to [FlagsFromParams], which binds each
// tagged field to a pflag entry. Embedding [JSONOutput] in a params
// struct adds the --json flag and the EmitJSON method for structured
// output.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Commands that need a non-zero exit without an "error:" line (like
// "jjkit run" mirroring a failed jj invocation) return [ExitError].
package cli
