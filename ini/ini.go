// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"io"
	"strings"
)

// A Document is the sequence of lines of a profile file. The zero value is an
// empty single-byte document. Lookups on a nil *Document behave like lookups
// on an empty one.
//
// A Document may be read by multiple goroutines concurrently, but mutations
// must not run concurrently with any other method.
type Document struct {
	enc      Encoding
	lines    []*Line
	modified bool
	// tail holds the undecodable odd byte at the end of a UTF-16 file.
	tail []byte

	// cursors maps a section header to the line that new entries in that
	// section are inserted after.
	cursors map[*Line]*Line
}

// New returns an empty document that will be serialized with the given
// encoding.
func New(enc Encoding) *Document {
	return &Document{enc: enc}
}

// Parse parses the content of a profile file. Any byte sequence is accepted.
//
// The encoding is chosen by the byte order mark at the start of data. See the
// package documentation for details.
func Parse(data []byte) *Document {
	enc, body := detectEncoding(data)
	text, tail := decode(enc, body)
	d := &Document{enc: enc, lines: splitLines(text), tail: tail}
	if len(d.lines) == 0 && enc != CodePage {
		// A UTF-16 file holding only its byte order mark is read as a single
		// empty line.
		d.lines = []*Line{{Kind: Other}}
	}
	return d
}

// Read reads all of r and parses it.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}
	return Parse(data), nil
}

// splitLines splits text at "\r\n" or "\n". A lone carriage return does not
// end a line. An empty final line is not returned.
func splitLines(text string) []*Line {
	var lines []*Line
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i == -1 {
			lines = append(lines, classify(text))
			break
		}
		content, eol := text[:i], lf
		if strings.HasSuffix(content, "\r") {
			content, eol = content[:len(content)-1], crlf
		}
		ln := classify(content)
		ln.eol = eol
		lines = append(lines, ln)
		text = text[i+1:]
	}
	return lines
}

// Encoding returns the encoding the document is serialized with.
func (d *Document) Encoding() Encoding {
	if d == nil {
		return CodePage
	}
	return d.enc
}

// Modified reports whether the document has been changed since it was parsed.
func (d *Document) Modified() bool {
	return d != nil && d.modified
}

// Lines returns the lines of the document in order. The returned slice is a
// copy, but the lines themselves are shared with the document and must not be
// modified.
func (d *Document) Lines() []*Line {
	if d == nil {
		return nil
	}
	return append([]*Line(nil), d.lines...)
}

// findSection returns the index of the first header matching name and the
// index of the line that ends its extent.
func (d *Document) findSection(name string) (header, end int, ok bool) {
	if d == nil {
		return -1, -1, false
	}
	header = -1
	for i, ln := range d.lines {
		if ln.Kind != SectionHeader {
			continue
		}
		if header >= 0 {
			return header, i, true
		}
		if matchName(ln.Name, name) {
			header = i
		}
	}
	if header < 0 {
		return -1, -1, false
	}
	return header, len(d.lines), true
}

// findEntry returns the index of the first entry in the extent [start, end)
// whose key matches key.
func (d *Document) findEntry(start, end int, key string) int {
	for i := start; i < end; i++ {
		if ln := d.lines[i]; ln.Kind == Entry && matchName(ln.Name, key) {
			return i
		}
	}
	return -1
}

// HasSection reports whether the document has a section with the given name.
func (d *Document) HasSection(section string) bool {
	_, _, ok := d.findSection(section)
	return ok
}

// Value returns the effective value of the first entry with the given key in
// the first section with the given name. Names are compared without regard to
// case. Spaces around the arguments are ignored, but other blanks are not.
func (d *Document) Value(section, key string) (_ string, ok bool) {
	h, end, ok := d.findSection(section)
	if !ok {
		return "", false
	}
	i := d.findEntry(h+1, end, key)
	if i == -1 {
		return "", false
	}
	return EffectiveValue(d.lines[i].Value), true
}

// SectionNames returns the name of every section header in document order,
// including duplicates.
func (d *Document) SectionNames() []string {
	if d == nil {
		return nil
	}
	var names []string
	for _, ln := range d.lines {
		if ln.Kind == SectionHeader {
			names = append(names, ln.Name)
		}
	}
	return names
}

// Keys returns the key of every entry in the first section with the given
// name, in document order and including duplicates. Comment lines are not
// entries. ok is false if there is no such section.
func (d *Document) Keys(section string) (keys []string, ok bool) {
	h, end, ok := d.findSection(section)
	if !ok {
		return nil, false
	}
	for _, ln := range d.lines[h+1 : end] {
		if ln.Kind == Entry {
			keys = append(keys, ln.Name)
		}
	}
	return keys, true
}

// Entries is like Keys, but returns each entry as its key, an equals sign, and
// its raw value.
func (d *Document) Entries(section string) (entries []string, ok bool) {
	h, end, ok := d.findSection(section)
	if !ok {
		return nil, false
	}
	for _, ln := range d.lines[h+1 : end] {
		if ln.Kind == Entry {
			entries = append(entries, ln.Name+"="+ln.Value)
		}
	}
	return entries, true
}

// Bytes serializes the document in its encoding. An unmodified document
// serializes to the bytes it was parsed from. Once the document has been
// modified, every line ends with "\r\n".
func (d *Document) Bytes() ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	data, err := encode(d.enc, d.text())
	if err != nil {
		return nil, fmt.Errorf("marshal ini file: %w", err)
	}
	return append(data, d.tail...), nil
}

func (d *Document) text() string {
	sb := new(strings.Builder)
	for i, ln := range d.lines {
		sb.WriteString(ln.Text)
		eol := ln.eol
		if d.modified || eol == "" && i < len(d.lines)-1 {
			eol = crlf
		}
		sb.WriteString(eol)
	}
	return sb.String()
}

// MarshalText serializes the document. It is the same as Bytes.
func (d *Document) MarshalText() ([]byte, error) {
	return d.Bytes()
}

// UnmarshalText replaces the content of d with the parsed data.
func (d *Document) UnmarshalText(data []byte) error {
	*d = *Parse(data)
	return nil
}

// String returns the decoded text of the document.
func (d *Document) String() string {
	if d == nil {
		return ""
	}
	return d.text()
}
