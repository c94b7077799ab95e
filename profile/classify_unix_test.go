// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

//go:build unix

package profile

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"golang.org/x/sys/unix"
	"zombiezen.com/go/log/testlog"
)

func TestHostKind(t *testing.T) {
	tests := []struct {
		errno syscall.Errno
		write bool
		want  Kind
	}{
		{errno: unix.ENOENT, want: FileNotFound},
		{errno: unix.ENOENT, write: true, want: PathNotFound},
		{errno: unix.ENOTDIR, want: PathNotFound},
		{errno: unix.ENAMETOOLONG, want: PathNotFound},
		{errno: unix.EACCES, want: AccessDenied},
		{errno: unix.EISDIR, write: true, want: AccessDenied},
		{errno: unix.EINVAL, want: InvalidPath},
		{errno: unix.EIO, want: IO},
	}
	for _, test := range tests {
		err := &fs.PathError{Op: "open", Path: "x.ini", Err: test.errno}
		if got := hostKind(err, test.write); got != test.want {
			t.Errorf("hostKind(%v, %t) = %v; want %v", err, test.write, got, test.want)
		}
	}
}

func TestDirectoryPath(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	dir := t.TempDir()
	got, _, err := GetValue(ctx, dir, "s", "k", "default", 100)
	if got != "default" || KindOf(err) != AccessDenied {
		t.Errorf("GetValue(ctx, dir, ...) = %q, _, %v; want \"default\", _, AccessDenied", got, err)
	}
	if err := SetValue(ctx, dir, "s", "k", "v"); KindOf(err) != AccessDenied {
		t.Errorf("SetValue(ctx, dir, ...) = %v; want AccessDenied", err)
	}
}

func TestFileUnderFile(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o666); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(file, "x.ini")
	if _, _, err := GetValue(ctx, path, "s", "k", "", 100); KindOf(err) != PathNotFound {
		t.Errorf("GetValue(ctx, %q, ...) error = %v; want PathNotFound", path, err)
	}
}
