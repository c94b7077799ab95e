// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"errors"
	"fmt"
)

// Kind is the abstract classification of a profile operation failure.
// A Kind is itself an error, so errors.Is(err, profile.NotFound) works on any
// error returned by this package. The zero Kind means no error.
type Kind int

// Failure kinds.
const (
	// IO is any failure of the host file system not listed below.
	IO Kind = 1 + iota
	// NotFound means a section or key does not exist. The default value was
	// returned.
	NotFound
	// FileNotFound means the file does not exist. The default value was
	// returned. errors.Is reports FileNotFound errors as NotFound, too.
	FileNotFound
	// PathNotFound means a directory of the path does not exist or the path
	// is too long.
	PathNotFound
	// MoreData means the capacity was too small and the result was truncated.
	// The truncated result was returned.
	MoreData
	// InvalidPath means the path is syntactically invalid.
	InvalidPath
	// AccessDenied means the host refused access to the path.
	AccessDenied
	// BadStruct means a struct value has the wrong size or checksum.
	BadStruct
)

var kindNames = [...]string{
	IO:           "i/o error",
	NotFound:     "not found",
	FileNotFound: "file not found",
	PathNotFound: "path not found",
	MoreData:     "more data available",
	InvalidPath:  "invalid path",
	AccessDenied: "access denied",
	BadStruct:    "bad struct value",
}

var kindIDs = [...]string{
	IO:           "IO",
	NotFound:     "NotFound",
	FileNotFound: "FileNotFound",
	PathNotFound: "PathNotFound",
	MoreData:     "MoreData",
	InvalidPath:  "InvalidPath",
	AccessDenied: "AccessDenied",
	BadStruct:    "BadStruct",
}

// Error returns a description of the kind.
func (k Kind) Error() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("profile error %d", int(k))
	}
	return kindNames[k]
}

// String returns the kind's identifier, like "NotFound".
func (k Kind) String() string {
	if k == 0 {
		return "OK"
	}
	if k < 0 || int(k) >= len(kindIDs) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindIDs[k]
}

// MarshalText formats the kind as its identifier.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind identifier.
func (k *Kind) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" || s == "OK" {
		*k = 0
		return nil
	}
	for i, id := range kindIDs {
		if id != "" && id == s {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unmarshal profile error kind: unknown %q", s)
}

// Is reports whether k matches target. FileNotFound matches NotFound.
func (k Kind) Is(target error) bool {
	t, ok := target.(Kind)
	if !ok {
		return false
	}
	return k == t || k == FileNotFound && t == NotFound
}

// Error is the error type returned by profile operations.
type Error struct {
	Kind Kind
	// Op is the operation, like "get" or "set".
	Op   string
	Path string
	// Err is the underlying host error, if any.
	Err error
}

func (e *Error) Error() string {
	msg := "profile " + e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", msg, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", msg, e.Kind)
}

// Unwrap returns the underlying host error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a Kind that matches e.Kind.
func (e *Error) Is(target error) bool {
	return e.Kind.Is(target)
}

// KindOf returns the Kind of the first *Error or Kind in err's chain.
// It returns IO for other non-nil errors and zero for nil.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return IO
}
