// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strings"
)

// Set sets the value of the first entry with the given key in the first
// section with the given name.
//
// If the entry exists, only the text after its first equals sign is replaced;
// the key keeps its original spelling. Otherwise a new line "key=value" is
// inserted at the end of the section, creating the section at the end of the
// document if necessary. New names have spaces stripped from both ends; any
// other characters, including tabs and line breaks, are written verbatim.
//
// A key whose first non-blank character is a semicolon creates a comment line.
// Within one Document, new entries are appended after each other in call order
// while new comments are always inserted directly after the last new entry, so
// they end up in reverse call order.
func (d *Document) Set(section, key, value string) {
	h, end, ok := d.findSection(section)
	if !ok {
		header := classify("[" + strings.Trim(section, " ") + "]")
		header.eol = crlf
		d.lines = append(d.lines, header)
		h, end = len(d.lines)-1, len(d.lines)
	} else if i := d.findEntry(h+1, end, key); i >= 0 {
		ln := d.lines[i]
		eq := strings.IndexByte(ln.Text, '=')
		ln.Text = ln.Text[:eq+1] + value
		ln.Value = value
		d.modified = true
		return
	}

	ln := classify(strings.Trim(key, " ") + "=" + value)
	ln.eol = crlf
	header := d.lines[h]
	at := d.cursor(h, end) + 1
	d.lines = append(d.lines, nil)
	copy(d.lines[at+1:], d.lines[at:])
	d.lines[at] = ln
	if ln.Kind != Comment {
		d.setCursor(header, ln)
	} else {
		d.setCursor(header, d.lines[at-1])
	}
	d.modified = true
}

// cursor returns the index of the line that new lines of the section whose
// header is at index h are inserted after. end is the end of the section's
// extent.
func (d *Document) cursor(h, end int) int {
	if anchor := d.cursors[d.lines[h]]; anchor != nil {
		for i := h; i < end; i++ {
			if d.lines[i] == anchor {
				return i
			}
		}
	}
	return end - 1
}

func (d *Document) setCursor(header, anchor *Line) {
	if d.cursors == nil {
		d.cursors = make(map[*Line]*Line)
	}
	d.cursors[header] = anchor
}

// DeleteKey removes the first entry with the given key in the first section
// with the given name. Comment lines are never removed. DeleteKey reports
// whether an entry was removed.
func (d *Document) DeleteKey(section, key string) bool {
	h, end, ok := d.findSection(section)
	if !ok {
		return false
	}
	i := d.findEntry(h+1, end, key)
	if i == -1 {
		return false
	}
	d.remove(h, i)
	d.modified = true
	return true
}

// DeleteSection removes the header of the first section with the given name
// and every entry in it. Comments and other lines of the section stay where
// they are, outside of any section if no header precedes them. DeleteSection
// reports whether a section was removed.
func (d *Document) DeleteSection(section string) bool {
	h, end, ok := d.findSection(section)
	if !ok {
		return false
	}
	delete(d.cursors, d.lines[h])
	kept := d.lines[:h]
	for _, ln := range d.lines[h+1 : end] {
		if ln.Kind != Entry {
			kept = append(kept, ln)
		}
	}
	kept = append(kept, d.lines[end:]...)
	for i := len(kept); i < len(d.lines); i++ {
		d.lines[i] = nil
	}
	d.lines = kept
	d.modified = true
	return true
}

// remove deletes the line at index i from the section whose header is at
// index h. If the line was the section's cursor, the cursor moves to the
// preceding line.
func (d *Document) remove(h, i int) {
	header := d.lines[h]
	if d.cursors[header] == d.lines[i] {
		d.cursors[header] = d.lines[i-1]
	}
	copy(d.lines[i:], d.lines[i+1:])
	d.lines[len(d.lines)-1] = nil
	d.lines = d.lines[:len(d.lines)-1]
}
