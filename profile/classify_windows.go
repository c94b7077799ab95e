// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package profile

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

// hostKind maps an error from the file system to a Kind. write reports whether
// the failed operation was writing the file.
func hostKind(err error, write bool) Kind {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return IO
	}
	switch errno {
	case windows.ERROR_FILE_NOT_FOUND:
		if write {
			return PathNotFound
		}
		return FileNotFound
	case windows.ERROR_PATH_NOT_FOUND, windows.ERROR_FILENAME_EXCED_RANGE:
		return PathNotFound
	case windows.ERROR_ACCESS_DENIED, windows.ERROR_SHARING_VIOLATION, windows.ERROR_WRITE_PROTECT:
		return AccessDenied
	case windows.ERROR_INVALID_NAME, windows.ERROR_BAD_PATHNAME, windows.ERROR_DIRECTORY, windows.ERROR_INVALID_PARAMETER:
		return InvalidPath
	default:
		return IO
	}
}
