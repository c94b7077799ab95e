// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "strings"

// Kind is the classification of a single line of a profile file.
type Kind int

// Line kinds.
const (
	// Other is any line that is not one of the kinds below, such as a blank
	// line or text before the first section header.
	Other Kind = iota
	// Comment is a line whose first non-blank character is a semicolon.
	Comment
	// SectionHeader is a line whose first non-blank character is '['.
	SectionHeader
	// Entry is a non-comment line that contains an equals sign.
	Entry
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Other:
		return "Other"
	case Comment:
		return "Comment"
	case SectionHeader:
		return "SectionHeader"
	case Entry:
		return "Entry"
	default:
		return "Kind(?)"
	}
}

// Line terminators.
const (
	crlf = "\r\n"
	lf   = "\n"
)

// blanks are the characters trimmed from names read from a file.
// Carriage return and line feed are never blanks.
const blanks = " \t\v"

// A Line is one physical line of a Document.
type Line struct {
	Kind Kind
	// Text is the full line as decoded, without its terminator.
	Text string
	// Name is the section name of a SectionHeader or the key of an Entry,
	// with leading and trailing blanks removed.
	Name string
	// Value is the raw text after the first '=' of an Entry.
	Value string

	eol string
}

// classify builds a Line from decoded text that does not include a line
// terminator.
func classify(text string) *Line {
	rest := strings.TrimLeft(text, blanks)
	switch {
	case strings.HasPrefix(rest, "["):
		name := rest[1:]
		if i := strings.IndexByte(name, ']'); i >= 0 {
			name = name[:i]
		}
		return &Line{Kind: SectionHeader, Text: text, Name: strings.Trim(name, blanks)}
	case strings.HasPrefix(rest, ";"):
		return &Line{Kind: Comment, Text: text}
	}
	i := strings.IndexByte(text, '=')
	if i == -1 {
		return &Line{Kind: Other, Text: text}
	}
	return &Line{
		Kind:  Entry,
		Text:  text,
		Name:  strings.Trim(text[:i], blanks),
		Value: text[i+1:],
	}
}

// CommentText returns the comment starting at its semicolon. It returns the
// empty string for lines that are not comments.
func (ln *Line) CommentText() string {
	if ln.Kind != Comment {
		return ""
	}
	return strings.TrimLeft(ln.Text, blanks)
}

// matchName reports whether a name read from the file matches a name supplied
// by a caller. Only spaces are trimmed from the caller's side.
func matchName(stored, query string) bool {
	return strings.EqualFold(stored, strings.Trim(query, " "))
}

// EffectiveValue projects a raw entry value to the value returned by lookups:
// blanks are trimmed and then one pair of matching outer quotes is removed.
func EffectiveValue(raw string) string {
	v := strings.Trim(raw, blanks)
	if len(v) < 2 {
		return v
	}
	if first := v[0]; (first == '"' || first == '\'') && v[len(v)-1] == first {
		return v[1 : len(v)-1]
	}
	return v
}
