// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini reads and writes profile files, the INI dialect understood by the
legacy Windows profile string functions (GetPrivateProfileString and friends).
See https://en.wikipedia.org/wiki/INI_file.

This package is designed for read-modify-write scenarios and for
compatibility, not for validation: every byte sequence parses, lookups behave
the way the legacy functions do, and an unmodified Document serializes to the
bytes it was parsed from.

Encoding

A file that starts with the bytes FF FE is UTF-16 little-endian. A file that
starts with FE FF is UTF-16 big-endian. Any other file is read one byte per
character in the Windows-1252 code page, so a UTF-8 byte order mark becomes
three characters at the start of the first line. Documents are written back in
the encoding they were read with. Nothing is replaced while decoding: the five
bytes that Windows-1252 leaves undefined read as the C1 control characters of
the same value, and unpaired UTF-16 surrogates and a trailing odd byte are
written back as they were read.

Once a Document has been modified, every line is written with a "\r\n"
terminator.

Syntax

Lines end at "\r\n" or "\n". A lone carriage return is part of the line.
Blanks are the space, horizontal tab and vertical tab characters. Each line is
one of:

	[section]    a section header; the name ends at the first ']'
	; comment    a comment; the first non-blank character is ';'
	key=value    an entry; the key ends at the first '='
	anything     any other line, such as a blank line

'#' is not special. Section names and keys are stored with surrounding blanks
removed. Raw values are stored as written.

A section is the run of lines after a header up to the next header of any
name. Only the first section with a given name is visible to lookups, and only
the first entry with a given key inside it. In the file below, fg reads as
"black" and bg is not found:

	[colors]
	fg=black
	fg=white
	[colors]
	bg=white

There are no inline comments: "a=b ; c" has the value "b ; c".

Names are compared without regard to case. Spaces around a name passed to a
lookup are ignored; tabs are not.

Values

The value returned by a lookup is the raw value with blanks trimmed and then
one pair of matching single or double quotes removed:

	key=  "  X  "     reads as `  X  `
	key='"  X  "'     reads as `"  X  "`
	key='"  X  '"     reads as `'"  X  '"`
*/
package ini
