// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"zombiezen.com/go/log/testlog"
)

func TestFileLocker(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	path := writeTestFile(t, "[s]\r\n")
	l := new(FileLocker)

	unlock, err := l.Lock(ctx, path)
	if err != nil {
		t.Fatal("Lock:", err)
	}

	// Different spellings of a path share a lock.
	sep := string(filepath.Separator)
	other := filepath.Dir(path) + sep + "." + sep + filepath.Base(path)
	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	_, err = l.Lock(waitCtx, other)
	cancel()
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("second Lock = %v; want %v", err, context.DeadlineExceeded)
	}

	unlock()
	unlock2, err := l.Lock(ctx, other)
	if err != nil {
		t.Fatal("Lock after unlock:", err)
	}
	unlock2()

	l.mu.Lock()
	n := len(l.paths)
	l.mu.Unlock()
	if n != 0 {
		t.Errorf("%d paths still tracked after unlocking", n)
	}
}

func TestFileLockerMissingFile(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	path := filepath.Join(t.TempDir(), "missing.ini")
	l := new(FileLocker)
	unlock, err := l.Lock(ctx, path)
	if err != nil {
		t.Fatal("Lock:", err)
	}

	// Without a file there is no advisory lock, but the process still holds
	// the path.
	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	_, err = l.Lock(waitCtx, path)
	cancel()
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("second Lock = %v; want %v", err, context.DeadlineExceeded)
	}
	unlock()
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Lock created %s (Stat error = %v)", path, err)
	}
}
