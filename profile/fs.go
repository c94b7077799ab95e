// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"os"
)

// FileSystem is the host collaborator that reads and writes whole files.
// Errors should wrap the host's error numbers (like *fs.PathError does) so
// they can be classified.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces the content of the file at path, creating it if it
	// does not exist. It must not create missing directories.
	WriteFile(path string, data []byte) error
}

// OS is the operating system's file system.
var OS FileSystem = osFS{}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (osFS) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o666)
}
