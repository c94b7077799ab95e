// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

//go:build !unix && !windows

package profile

import (
	"errors"
	"io/fs"
)

// hostKind maps an error from the file system to a Kind. write reports whether
// the failed operation was writing the file.
func hostKind(err error, write bool) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if write {
			return PathNotFound
		}
		return FileNotFound
	case errors.Is(err, fs.ErrPermission):
		return AccessDenied
	case errors.Is(err, fs.ErrInvalid):
		return InvalidPath
	default:
		return IO
	}
}
