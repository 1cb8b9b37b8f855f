// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"strings"
	"unicode"
)

// parseDiffSummary parses "jj diff --summary" output. Lines look like
// "M path" for edits and "R {from => to}" for renames.
func parseDiffSummary(output string) DiffSummary {
	var entries []DiffEntry
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		status := line[:1]
		rest := strings.TrimSpace(line[1:])
		if status == "R" && strings.Contains(rest, " => ") {
			rest = strings.Trim(rest, "{}")
			from, to, _ := strings.Cut(rest, " => ")
			entries = append(entries, DiffEntry{
				Status:   status,
				Path:     strings.TrimSpace(to),
				FromPath: strings.TrimSpace(from),
			})
			continue
		}
		entries = append(entries, DiffEntry{Status: status, Path: rest})
	}
	return DiffSummary{Entries: entries}
}

// parseBookmarkList parses "jj bookmark list" output. Lines look like
// "name: change_id commit_id", "name (deleted)", or "name@remote: ...".
func parseBookmarkList(output string) []Bookmark {
	var bookmarks []Bookmark
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, _, _ := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		bookmark := Bookmark{
			Name:    name,
			Present: !strings.Contains(line, "(deleted)"),
		}
		if local, remote, found := strings.Cut(name, "@"); found {
			bookmark.Name = local
			bookmark.Remote = remote
		}
		bookmarks = append(bookmarks, bookmark)
	}
	return bookmarks
}

// parseWorkspaceList parses "jj workspace list" output. Lines look
// like "name: change_id (description)".
func parseWorkspaceList(output string) []Workspace {
	var workspaces []Workspace
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, rest, _ := strings.Cut(line, ":")
		workspace := Workspace{Name: strings.TrimSpace(name)}
		workspace.ChangeID, _ = nextField(rest)
		workspaces = append(workspaces, workspace)
	}
	return workspaces
}

// parseOperationLog parses "jj operation log --no-graph" output.
// Entries are blank-line separated blocks:
//
//	<id> <user> <time>
//	<description>
//	args: <command args>
//
// The args line is absent for the root operation.
func parseOperationLog(output string) []Operation {
	var blocks [][]string
	var current []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	var operations []Operation
	for _, block := range blocks {
		var operation Operation
		rest := block[0]
		operation.ID, rest = nextField(rest)
		operation.User, rest = nextField(rest)
		operation.Time = strings.TrimSpace(rest)

		var description []string
		for _, line := range block[1:] {
			if args, found := strings.CutPrefix(line, "args: "); found {
				operation.Args = args
				continue
			}
			description = append(description, line)
		}
		operation.Description = strings.Join(description, "\n")
		operations = append(operations, operation)
	}
	return operations
}

// parseRemoteList parses "jj git remote list" output. Lines look like
// "name url".
func parseRemoteList(output string) map[string]string {
	remotes := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, rest := nextField(line)
		remotes[name] = strings.TrimSpace(rest)
	}
	return remotes
}

// nextField returns the first whitespace-delimited field of s and the
// remainder with leading whitespace removed.
func nextField(s string) (field, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}
