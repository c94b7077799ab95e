// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

//go:build !unix && !windows

package profile

// lockFile does nothing: there is no portable advisory lock. Paths are still
// locked within the process.
func lockFile(path string) (unlock func(), err error) {
	return func() {}, nil
}
