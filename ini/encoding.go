// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding is the byte representation of a Document on disk.
type Encoding int

// Supported encodings.
const (
	// CodePage is the single-byte Windows-1252 code page. Files without a
	// UTF-16 byte order mark are read this way, byte for byte. Characters
	// that the code page cannot represent are written as '?'.
	CodePage Encoding = iota
	// UTF16LE is little-endian UTF-16 introduced by the bytes FF FE.
	UTF16LE
	// UTF16BE is big-endian UTF-16 introduced by the bytes FE FF. Support is
	// best effort: the legacy reader did not handle these files reliably.
	UTF16BE
)

// String returns the encoding's name.
func (enc Encoding) String() string {
	switch enc {
	case CodePage:
		return "CodePage"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	default:
		return fmt.Sprintf("Encoding(%d)", int(enc))
	}
}

var (
	utf16LEBOM = []byte{0xff, 0xfe}
	utf16BEBOM = []byte{0xfe, 0xff}
)

// substitute replaces characters the code page cannot represent.
const substitute = '?'

// detectEncoding inspects the byte order mark at the start of data.
// It returns the encoding and the data following the byte order mark.
// A UTF-8 byte order mark is not recognized and stays part of the text.
func detectEncoding(data []byte) (Encoding, []byte) {
	switch {
	case bytes.HasPrefix(data, utf16LEBOM):
		return UTF16LE, data[len(utf16LEBOM):]
	case bytes.HasPrefix(data, utf16BEBOM):
		return UTF16BE, data[len(utf16BEBOM):]
	default:
		return CodePage, data
	}
}

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// orderOf returns the byte order of a UTF-16 encoding.
func orderOf(enc Encoding) byteOrder {
	if enc == UTF16BE {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// decode converts the body of a file (without byte order mark) to a string.
// A trailing odd byte of a UTF-16 body cannot be decoded and is returned as
// tail.
func decode(enc Encoding, body []byte) (text string, tail []byte) {
	if enc == CodePage {
		return decodeCodePage(body), nil
	}
	n := len(body) / 2
	return decodeUTF16(orderOf(enc), body[:2*n]), body[2*n:]
}

// decodeCodePage maps every byte to one character. The five bytes that
// Windows-1252 leaves undefined map to the C1 control characters of the same
// value, as the Windows code page does.
func decodeCodePage(body []byte) string {
	sb := new(strings.Builder)
	sb.Grow(len(body))
	for _, b := range body {
		r := charmap.Windows1252.DecodeByte(b)
		if r == utf8.RuneError {
			r = rune(b)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// decodeUTF16 decodes code units without replacing malformed input. An
// unpaired surrogate is kept as its generalized UTF-8 form (three bytes
// starting with 0xED), which is not valid UTF-8 and so cannot collide with
// any other character.
func decodeUTF16(order binary.ByteOrder, body []byte) string {
	sb := new(strings.Builder)
	sb.Grow(len(body))
	for i := 0; i < len(body); i += 2 {
		u := rune(order.Uint16(body[i:]))
		if !utf16.IsSurrogate(u) {
			sb.WriteRune(u)
			continue
		}
		if i+4 <= len(body) {
			if r := utf16.DecodeRune(u, rune(order.Uint16(body[i+2:]))); r != utf8.RuneError {
				sb.WriteRune(r)
				i += 2
				continue
			}
		}
		sb.WriteString(string([]byte{0xe0 | byte(u>>12), 0x80 | byte(u>>6)&0x3f, 0x80 | byte(u)&0x3f}))
	}
	return sb.String()
}

// surrogate reports whether s starts with an unpaired surrogate as produced
// by decodeUTF16.
func surrogate(s string) (uint16, bool) {
	if len(s) < 3 || s[0] != 0xed || s[1] < 0xa0 || s[1] > 0xbf || s[2] < 0x80 || s[2] > 0xbf {
		return 0, false
	}
	return uint16(s[0]&0x0f)<<12 | uint16(s[1]&0x3f)<<6 | uint16(s[2]&0x3f), true
}

// c1Undefined reports whether r is one of the characters that decodeCodePage
// produces for the bytes Windows-1252 leaves undefined.
func c1Undefined(r rune) bool {
	switch r {
	case 0x81, 0x8d, 0x8f, 0x90, 0x9d:
		return true
	}
	return false
}

// encode converts text to the on-disk representation of enc, including the
// byte order mark for UTF-16 encodings.
func encode(enc Encoding, text string) ([]byte, error) {
	switch enc {
	case CodePage:
		buf := make([]byte, 0, len(text))
		for _, r := range text {
			b, ok := charmap.Windows1252.EncodeRune(r)
			switch {
			case ok:
			case c1Undefined(r):
				b = byte(r)
			default:
				b = substitute
			}
			buf = append(buf, b)
		}
		return buf, nil
	case UTF16LE, UTF16BE:
		order := orderOf(enc)
		buf := make([]byte, 0, 2*len(text)+2)
		buf = order.AppendUint16(buf, 0xfeff)
		var units []uint16
		for i := 0; i < len(text); {
			if u, ok := surrogate(text[i:]); ok {
				buf = order.AppendUint16(buf, u)
				i += 3
				continue
			}
			r, size := utf8.DecodeRuneInString(text[i:])
			i += size
			units = utf16.AppendRune(units[:0], r)
			for _, u := range units {
				buf = order.AppendUint16(buf, u)
			}
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("encode: unknown %v", enc)
	}
}
