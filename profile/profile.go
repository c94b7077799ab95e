// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/yourbase/profile/ini"
	"zombiezen.com/go/log"
)

// A Store performs profile operations on files. The zero value reads and writes
// the operating system's files, creates new files in the single-byte code page
// and locks files during writes.
type Store struct {
	// FS is the file system. If nil, OS is used.
	FS FileSystem
	// CreateEncoding is the encoding of files created by writes.
	CreateEncoding ini.Encoding
	// Locker serializes writes to the same path. If nil, a process-wide
	// FileLocker is used.
	Locker Locker
}

var defaultStore = new(Store)

func (s *Store) fs() FileSystem {
	if s.FS == nil {
		return OS
	}
	return s.FS
}

func (s *Store) locker() Locker {
	if s.Locker == nil {
		return defaultLocker
	}
	return s.Locker
}

// read parses the file at path.
func (s *Store) read(op, path string) (*ini.Document, error) {
	if path == "" {
		return nil, &Error{Kind: InvalidPath, Op: op}
	}
	data, err := s.fs().ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: hostKind(err, false), Op: op, Path: path, Err: err}
	}
	return ini.Parse(data), nil
}

// GetValue returns the value of key in section of the file at path, limited
// to capacity UTF-16 code units including a terminator, and its length.
//
// If the file, the section or the key does not exist, GetValue returns def
// without trailing blanks and an error of kind NotFound (FileNotFound for a
// missing file). If the result was truncated to fit capacity, the error is of
// kind MoreData instead. Other errors are returned with def.
//
// Values of exactly 65536 code units read as empty without an error, and longer
// values are cut to their length modulo 65536.
func (s *Store) GetValue(ctx context.Context, path, section, key, def string, capacity int) (string, int, error) {
	doc, err := s.read("get", path)
	if err == nil {
		raw, ok := doc.Value(section, key)
		if ok {
			v, overflowed := wrapLength(raw)
			if overflowed {
				log.Debugf(ctx, "Value of [%s] %s in %s exceeds %d characters; returning %d", section, key, path, lengthWrap-1, units(v))
			}
			return s.fitResult(path, v, capacity, nil)
		}
		err = &Error{Kind: NotFound, Op: "get", Path: path}
	}
	return s.fitResult(path, trimDefault(def), capacity, err)
}

// fitResult applies capacity to v. A truncation replaces a not found error.
func (s *Store) fitResult(path, v string, capacity int, err error) (string, int, error) {
	v, truncated := fitValue(v, capacity)
	if truncated && (err == nil || errors.Is(err, NotFound)) {
		err = &Error{Kind: MoreData, Op: "get", Path: path}
	}
	return v, units(v), err
}

// trimDefault removes the blanks that the legacy API strips from the end of
// default values. Leading blanks are kept.
func trimDefault(def string) string {
	return strings.TrimRight(def, " \t\v")
}

// GetSections returns the names of all sections of the file at path in file
// order, including duplicates, and the length of the legacy list buffer
// (see Buffer). The list is limited to capacity code units including two
// terminators; if it does not fit, it is cut short and the error is of kind
// MoreData.
func (s *Store) GetSections(ctx context.Context, path string, capacity int) ([]string, int, error) {
	doc, err := s.read("list sections", path)
	if err != nil {
		return nil, 0, err
	}
	return fitNames("list sections", path, doc.SectionNames(), capacity)
}

// GetSectionNames is an alias for GetSections.
func (s *Store) GetSectionNames(ctx context.Context, path string, capacity int) ([]string, int, error) {
	return s.GetSections(ctx, path, capacity)
}

// GetKeys returns the keys of the first section named section in the file at
// path, like GetSections. Comment lines are not keys. If the section does not
// exist, the error is of kind NotFound.
func (s *Store) GetKeys(ctx context.Context, path, section string, capacity int) ([]string, int, error) {
	doc, err := s.read("list keys", path)
	if err != nil {
		return nil, 0, err
	}
	keys, ok := doc.Keys(section)
	if !ok {
		return nil, 0, &Error{Kind: NotFound, Op: "list keys", Path: path}
	}
	return fitNames("list keys", path, keys, capacity)
}

// GetSection is like GetKeys, but returns every entry as "key=value" with the
// raw value as written in the file.
func (s *Store) GetSection(ctx context.Context, path, section string, capacity int) ([]string, int, error) {
	doc, err := s.read("get section", path)
	if err != nil {
		return nil, 0, err
	}
	entries, ok := doc.Entries(section)
	if !ok {
		return nil, 0, &Error{Kind: NotFound, Op: "get section", Path: path}
	}
	return fitNames("get section", path, entries, capacity)
}

func fitNames(op, path string, names []string, capacity int) ([]string, int, error) {
	names, n, truncated := fitList(names, capacity)
	if truncated {
		return names, n, &Error{Kind: MoreData, Op: op, Path: path}
	}
	return names, n, nil
}

// GetInt returns the leading decimal digits of the value of key in section as
// an integer. Values that do not start with a digit, including negative
// numbers, are zero. Values beyond the range of uint32 saturate. If the key
// cannot be found, GetInt returns def and an error of kind NotFound.
func (s *Store) GetInt(ctx context.Context, path, section, key string, def uint32) (uint32, error) {
	doc, err := s.read("get int", path)
	if err != nil {
		return def, err
	}
	v, ok := doc.Value(section, key)
	if !ok {
		return def, &Error{Kind: NotFound, Op: "get int", Path: path}
	}
	return parseUint32Prefix(v), nil
}

func parseUint32Prefix(v string) uint32 {
	const limit = 1<<32 - 1
	var n uint64
	for i := 0; i < len(v) && '0' <= v[i] && v[i] <= '9'; i++ {
		n = n*10 + uint64(v[i]-'0')
		if n > limit {
			return limit
		}
	}
	return uint32(n)
}

// SetValue sets key in section of the file at path to value, creating the
// file, section and key as needed. See ini.Document.Set for how the file
// changes.
func (s *Store) SetValue(ctx context.Context, path, section, key, value string) error {
	return s.edit(ctx, "set", path, func(doc *ini.Document) error {
		doc.Set(section, key, value)
		return nil
	})
}

// DeleteKey removes the first entry of key in section of the file at path.
// Deleting a key that does not exist is not an error.
func (s *Store) DeleteKey(ctx context.Context, path, section, key string) error {
	return s.edit(ctx, "delete key", path, func(doc *ini.Document) error {
		doc.DeleteKey(section, key)
		return nil
	})
}

// DeleteSection removes the header of the first section named section and
// all of its entries from the file at path. Comments in the section are kept.
// Deleting a section that does not exist is not an error.
func (s *Store) DeleteSection(ctx context.Context, path, section string) error {
	return s.edit(ctx, "delete section", path, func(doc *ini.Document) error {
		doc.DeleteSection(section)
		return nil
	})
}

// Edit runs f on the parsed file at path and writes the document back if f
// changed it. The path is locked until Edit returns. A missing file is passed
// to f as an empty document in s.CreateEncoding.
//
// All changes made by f happen on one document, so new comments are inserted
// in reverse order (see ini.Document.Set), unlike separate SetValue calls.
func (s *Store) Edit(ctx context.Context, path string, f func(doc *ini.Document) error) error {
	return s.edit(ctx, "edit", path, f)
}

func (s *Store) edit(ctx context.Context, op, path string, f func(doc *ini.Document) error) error {
	if path == "" {
		return &Error{Kind: InvalidPath, Op: op}
	}
	unlock, err := s.locker().Lock(ctx, path)
	if err != nil {
		return &Error{Kind: IO, Op: op, Path: path, Err: err}
	}
	defer unlock()

	doc, err := s.read(op, path)
	created := false
	if errors.Is(err, FileNotFound) {
		doc, err, created = ini.New(s.CreateEncoding), nil, true
	}
	if err != nil {
		return err
	}
	if err := f(doc); err != nil {
		return err
	}
	if !doc.Modified() {
		return nil
	}
	data, err := doc.Bytes()
	if err != nil {
		return &Error{Kind: IO, Op: op, Path: path, Err: err}
	}
	if err := s.fs().WriteFile(path, data); err != nil {
		return &Error{Kind: hostKind(err, true), Op: op, Path: path, Err: err}
	}
	if created {
		log.Debugf(ctx, "Created %s (%v)", path, doc.Encoding())
	}
	return nil
}

// GetValue calls GetValue on a zero Store.
func GetValue(ctx context.Context, path, section, key, def string, capacity int) (string, int, error) {
	return defaultStore.GetValue(ctx, path, section, key, def, capacity)
}

// GetSections calls GetSections on a zero Store.
func GetSections(ctx context.Context, path string, capacity int) ([]string, int, error) {
	return defaultStore.GetSections(ctx, path, capacity)
}

// GetKeys calls GetKeys on a zero Store.
func GetKeys(ctx context.Context, path, section string, capacity int) ([]string, int, error) {
	return defaultStore.GetKeys(ctx, path, section, capacity)
}

// GetSection calls GetSection on a zero Store.
func GetSection(ctx context.Context, path, section string, capacity int) ([]string, int, error) {
	return defaultStore.GetSection(ctx, path, section, capacity)
}

// GetInt calls GetInt on a zero Store.
func GetInt(ctx context.Context, path, section, key string, def uint32) (uint32, error) {
	return defaultStore.GetInt(ctx, path, section, key, def)
}

// SetValue calls SetValue on a zero Store.
func SetValue(ctx context.Context, path, section, key, value string) error {
	return defaultStore.SetValue(ctx, path, section, key, value)
}

// DeleteKey calls DeleteKey on a zero Store.
func DeleteKey(ctx context.Context, path, section, key string) error {
	return defaultStore.DeleteKey(ctx, path, section, key)
}

// DeleteSection calls DeleteSection on a zero Store.
func DeleteSection(ctx context.Context, path, section string) error {
	return defaultStore.DeleteSection(ctx, path, section)
}

// Edit calls Edit on a zero Store.
func Edit(ctx context.Context, path string, f func(doc *ini.Document) error) error {
	return defaultStore.Edit(ctx, path, f)
}
