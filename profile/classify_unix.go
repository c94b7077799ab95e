// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

//go:build unix

package profile

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

// hostKind maps an error from the file system to a Kind. write reports whether
// the failed operation was writing the file.
func hostKind(err error, write bool) Kind {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return IO
	}
	switch errno {
	case unix.ENOENT:
		if write {
			// Files are created on write, so a missing directory is to blame.
			return PathNotFound
		}
		return FileNotFound
	case unix.ENOTDIR, unix.ENAMETOOLONG:
		return PathNotFound
	case unix.EACCES, unix.EPERM, unix.EISDIR, unix.EROFS:
		return AccessDenied
	case unix.EINVAL, unix.EILSEQ:
		return InvalidPath
	default:
		return IO
	}
}
