// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// changeTemplate is a jj template that renders one change as a JSON
// document. json(self) covers the core commit fields; the extra keys
// append metadata that json(self) leaves out (ref names and state
// flags). The surround() keeps the whole thing a single object.
const changeTemplate = `surround("{", "}", ` +
	`"\"base\":" ++ json(self)` +
	` ++ ",\"bookmarks\":" ++ json(bookmarks)` +
	` ++ ",\"local_bookmarks\":" ++ json(local_bookmarks)` +
	` ++ ",\"tags\":" ++ json(tags)` +
	` ++ ",\"empty\":" ++ json(empty)` +
	` ++ ",\"conflict\":" ++ json(conflict)` +
	` ++ ",\"hidden\":" ++ json(hidden)` +
	`)`

// changeSeparator delimits entries in multi-change output. jj's
// template language has no per-entry framing, so the list template
// appends a sentinel after each document.
const changeSeparator = "<<JJ_SEP>>"

// changeListTemplate is changeTemplate with the separator appended,
// for log output with any number of entries.
const changeListTemplate = changeTemplate + ` ++ "` + changeSeparator + `"`

// refName decodes an entry of json(bookmarks)/json(tags) output. jj
// emits these as {"name": ..., "target": ...} objects, but older
// versions emitted bare strings; both forms are accepted.
type refName struct {
	Name string
}

func (r *refName) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.Name)
	}
	var object struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &object); err != nil {
		return err
	}
	r.Name = object.Name
	return nil
}

// changeBase mirrors the json(self) fields of a change.
type changeBase struct {
	ChangeID    string        `json:"change_id"`
	CommitID    string        `json:"commit_id"`
	Parents     []string      `json:"parents"`
	Description string        `json:"description"`
	Author      signatureWire `json:"author"`
	Committer   signatureWire `json:"committer"`
}

type signatureWire struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Timestamp wireTime `json:"timestamp"`
}

// wireTime parses the timestamps jj renders. They normally carry a
// UTC offset, but some configurations emit them without one.
type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", raw)
}

// changeWire mirrors the full changeTemplate document.
type changeWire struct {
	Base           changeBase `json:"base"`
	Bookmarks      []refName  `json:"bookmarks"`
	LocalBookmarks []refName  `json:"local_bookmarks"`
	Tags           []refName  `json:"tags"`
	Empty          bool       `json:"empty"`
	Conflict       bool       `json:"conflict"`
	Hidden         bool       `json:"hidden"`
}

// parseChange decodes a single templated change document.
func parseChange(output string) (Change, error) {
	document := strings.TrimSpace(output)

	var wire changeWire
	if err := json.Unmarshal([]byte(document), &wire); err != nil {
		return Change{}, &ParseError{Output: output, Err: err}
	}

	// Some output paths produce the base fields at the top level
	// instead of under "base"; fall back to a flat decode.
	if wire.Base.ChangeID == "" {
		if err := json.Unmarshal([]byte(document), &wire.Base); err != nil {
			return Change{}, &ParseError{Output: output, Err: err}
		}
	}

	return changeFromWire(wire), nil
}

// parseChanges decodes separator-delimited multi-change output. Empty
// output yields an empty slice.
func parseChanges(output string) ([]Change, error) {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil, nil
	}

	var changes []Change
	for _, part := range strings.Split(trimmed, changeSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		change, err := parseChange(part)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func changeFromWire(wire changeWire) Change {
	return Change{
		ChangeID:       wire.Base.ChangeID,
		CommitID:       wire.Base.CommitID,
		Parents:        wire.Base.Parents,
		Description:    wire.Base.Description,
		Author:         signatureFromWire(wire.Base.Author),
		Committer:      signatureFromWire(wire.Base.Committer),
		Bookmarks:      refNames(wire.Bookmarks),
		LocalBookmarks: refNames(wire.LocalBookmarks),
		Tags:           refNames(wire.Tags),
		Empty:          wire.Empty,
		Conflict:       wire.Conflict,
		Hidden:         wire.Hidden,
	}
}

func signatureFromWire(wire signatureWire) Signature {
	return Signature{
		Name:      wire.Name,
		Email:     wire.Email,
		Timestamp: wire.Timestamp.Time,
	}
}

func refNames(refs []refName) []string {
	if len(refs) == 0 {
		return nil
	}
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.Name
	}
	return names
}
