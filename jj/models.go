// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import "time"

// Signature is an author or committer identity.
type Signature struct {
	Name      string
	Email     string
	Timestamp time.Time
}

// Change is a jj change (commit) with its metadata. All fields are
// plain values decoded from jj's templated output; a Change holds no
// reference back to the repository it came from.
type Change struct {
	ChangeID    string
	CommitID    string
	Parents     []string
	Description string
	Author      Signature
	Committer   Signature

	// Bookmarks holds all bookmarks pointing at this change, including
	// remote-tracking ones. LocalBookmarks holds only the local ones.
	Bookmarks      []string
	LocalBookmarks []string
	Tags           []string

	Empty    bool
	Conflict bool
	Hidden   bool
}

// DiffEntry is a single file in a diff summary.
type DiffEntry struct {
	// Status is the single-letter change kind: "M" (modified),
	// "A" (added), "D" (deleted), or "R" (renamed).
	Status string

	// Path is the file path. For renames it is the destination.
	Path string

	// FromPath is the rename source; empty for everything else.
	FromPath string
}

// DiffSummary is the parsed output of "jj diff --summary".
type DiffSummary struct {
	Entries []DiffEntry
}

// ByStatus returns the paths of entries with the given status letter,
// in output order.
func (d DiffSummary) ByStatus(status string) []string {
	var paths []string
	for _, entry := range d.Entries {
		if entry.Status == status {
			paths = append(paths, entry.Path)
		}
	}
	return paths
}

// Status is the working copy state: the current change plus its diff
// summary.
type Status struct {
	WorkingCopy Change
	Diff        DiffSummary
}

// Bookmark is a jj bookmark as reported by "jj bookmark list".
type Bookmark struct {
	Name string

	// Present is false when the bookmark is marked deleted (it still
	// appears in listings until the deletion is propagated).
	Present bool

	// Remote is the remote name for remote-tracking entries
	// ("name@remote" lines); empty for local bookmarks.
	Remote string
}

// Operation is a jj operation log entry.
type Operation struct {
	ID   string
	User string

	// Time is jj's human-readable time description, kept verbatim
	// (e.g. "5 minutes ago, lasted 1 millisecond").
	Time string

	Description string

	// Args is the recorded command line for the operation ("args:"
	// line), empty for the root operation.
	Args string
}

// Workspace is a jj workspace as reported by "jj workspace list".
type Workspace struct {
	Name     string
	ChangeID string
}
