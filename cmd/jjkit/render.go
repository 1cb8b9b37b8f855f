// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jjkit/jjkit/jj"
)

// renderStyles holds the lipgloss styles for human-readable output.
// All colors are ANSI 256 codes for broad terminal compatibility; a
// non-terminal stdout gets the Ascii profile and every style renders
// as plain text.
type renderStyles struct {
	ChangeID lipgloss.Style
	CommitID lipgloss.Style
	Author   lipgloss.Style
	Bookmark lipgloss.Style
	Added    lipgloss.Style
	Removed  lipgloss.Style
	Modified lipgloss.Style
	Renamed  lipgloss.Style
	Conflict lipgloss.Style
	Faint    lipgloss.Style
	Header   lipgloss.Style
}

func newRenderStyles(renderer *lipgloss.Renderer) renderStyles {
	return renderStyles{
		ChangeID: renderer.NewStyle().Foreground(lipgloss.Color("141")), // purple
		CommitID: renderer.NewStyle().Foreground(lipgloss.Color("75")),  // blue
		Author:   renderer.NewStyle().Foreground(lipgloss.Color("220")), // amber
		Bookmark: renderer.NewStyle().Foreground(lipgloss.Color("114")), // green
		Added:    renderer.NewStyle().Foreground(lipgloss.Color("114")),
		Removed:  renderer.NewStyle().Foreground(lipgloss.Color("196")),
		Modified: renderer.NewStyle().Foreground(lipgloss.Color("75")),
		Renamed:  renderer.NewStyle().Foreground(lipgloss.Color("141")),
		Conflict: renderer.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Faint:    renderer.NewStyle().Foreground(lipgloss.Color("245")),
		Header:   renderer.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	}
}

// stdoutColor reports whether stdout wants colored output: it must be
// a terminal and the environment must not disable color (NO_COLOR,
// TERM=dumb).
func stdoutColor() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// newStdoutRenderer builds the lipgloss renderer behind outputStyles.
// SetColorProfile is required to force plain output: the renderer's
// own detection would re-probe the environment otherwise.
func newStdoutRenderer() *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(os.Stdout)
	if !stdoutColor() {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return renderer
}

// outputStyles is the style set used by all commands. Detection runs
// once at startup.
var outputStyles = newRenderStyles(newStdoutRenderer())

// shortID trims an ID to the first eight characters for display, the
// prefix width jj itself shows in log output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// renderChange renders one change as a block: a header line with IDs,
// author, timestamp, and bookmarks, then the description's first line
// indented beneath it.
func renderChange(styles renderStyles, change jj.Change) string {
	fields := []string{
		styles.ChangeID.Render(shortID(change.ChangeID)),
		styles.CommitID.Render(shortID(change.CommitID)),
	}

	if change.Author.Email != "" {
		fields = append(fields, styles.Author.Render(change.Author.Email))
	}
	if !change.Author.Timestamp.IsZero() {
		fields = append(fields, styles.Faint.Render(change.Author.Timestamp.Format("2006-01-02 15:04:05")))
	}
	for _, bookmark := range change.LocalBookmarks {
		fields = append(fields, styles.Bookmark.Render(bookmark))
	}
	if change.Empty {
		fields = append(fields, styles.Faint.Render("(empty)"))
	}
	if change.Conflict {
		fields = append(fields, styles.Conflict.Render("(conflict)"))
	}

	summary, _, _ := strings.Cut(strings.TrimSpace(change.Description), "\n")
	if summary == "" {
		summary = styles.Faint.Render("(no description set)")
	}

	return strings.Join(fields, " ") + "\n  " + summary
}

// renderChanges renders a change list, one block per change.
func renderChanges(styles renderStyles, changes []jj.Change) string {
	blocks := make([]string, 0, len(changes))
	for _, change := range changes {
		blocks = append(blocks, renderChange(styles, change))
	}
	return strings.Join(blocks, "\n")
}

// renderDiffSummary renders one line per changed file, colored by the
// kind of change. Renames show "from => to" like jj's own summary.
func renderDiffSummary(styles renderStyles, summary jj.DiffSummary) string {
	var builder strings.Builder
	for _, entry := range summary.Entries {
		var style lipgloss.Style
		switch entry.Status {
		case "A":
			style = styles.Added
		case "D":
			style = styles.Removed
		case "R":
			style = styles.Renamed
		default:
			style = styles.Modified
		}

		line := entry.Status + " " + entry.Path
		if entry.FromPath != "" {
			line = entry.Status + " " + entry.FromPath + " => " + entry.Path
		}
		builder.WriteString(style.Render(line) + "\n")
	}
	return strings.TrimRight(builder.String(), "\n")
}

// renderStatus renders the working copy header and its changed files.
func renderStatus(styles renderStyles, status jj.Status) string {
	var builder strings.Builder
	builder.WriteString(styles.Header.Render("Working copy") + "\n")
	builder.WriteString(renderChange(styles, status.WorkingCopy))
	if len(status.Diff.Entries) > 0 {
		builder.WriteString("\n\n" + styles.Header.Render("Changed files") + "\n")
		builder.WriteString(renderDiffSummary(styles, status.Diff))
	}
	return builder.String()
}

// renderBookmarks renders one line per bookmark. Remote-tracking
// entries show name@remote; deleted bookmarks are flagged.
func renderBookmarks(styles renderStyles, bookmarks []jj.Bookmark) string {
	var builder strings.Builder
	for _, bookmark := range bookmarks {
		name := styles.Bookmark.Render(bookmark.Name)
		if bookmark.Remote != "" {
			name += styles.Faint.Render("@" + bookmark.Remote)
		}
		builder.WriteString(name)
		if !bookmark.Present {
			builder.WriteString(" " + styles.Removed.Render("(deleted)"))
		}
		builder.WriteString("\n")
	}
	return strings.TrimRight(builder.String(), "\n")
}

// renderOperations renders the operation log, one block per operation.
func renderOperations(styles renderStyles, operations []jj.Operation) string {
	blocks := make([]string, 0, len(operations))
	for _, operation := range operations {
		var builder strings.Builder
		builder.WriteString(styles.ChangeID.Render(shortID(operation.ID)))
		if operation.User != "" {
			builder.WriteString(" " + styles.Author.Render(operation.User))
		}
		if operation.Time != "" {
			builder.WriteString(" " + styles.Faint.Render(operation.Time))
		}
		if operation.Description != "" {
			builder.WriteString("\n  " + operation.Description)
		}
		if operation.Args != "" {
			builder.WriteString("\n  " + styles.Faint.Render(operation.Args))
		}
		blocks = append(blocks, builder.String())
	}
	return strings.Join(blocks, "\n")
}

// renderWorkspaces renders an aligned name/change table.
func renderWorkspaces(workspaces []jj.Workspace) string {
	var builder strings.Builder
	tw := tabwriter.NewWriter(&builder, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "WORKSPACE\tCHANGE\n")
	for _, workspace := range workspaces {
		fmt.Fprintf(tw, "%s\t%s\n", workspace.Name, workspace.ChangeID)
	}
	tw.Flush()
	return strings.TrimRight(builder.String(), "\n")
}

// renderRemotes renders an aligned remote/URL table in sorted order.
func renderRemotes(remotes map[string]string, order []string) string {
	var builder strings.Builder
	tw := tabwriter.NewWriter(&builder, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "REMOTE\tURL\n")
	for _, name := range order {
		fmt.Fprintf(tw, "%s\t%s\n", name, remotes[name])
	}
	tw.Flush()
	return strings.TrimRight(builder.String(), "\n")
}

// highlightDiff renders a git-format patch with syntax highlighting
// when stdout wants color, plain text otherwise. Highlighting failures
// fall back to the unstyled patch.
func highlightDiff(patch string) string {
	if !stdoutColor() {
		return patch
	}
	var builder strings.Builder
	if err := quick.Highlight(&builder, patch, "diff", "terminal256", "monokai"); err != nil {
		return patch
	}
	return builder.String()
}
