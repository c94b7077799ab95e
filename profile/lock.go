// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/yourbase/profile/retry"
)

// A Locker serializes read-modify-write cycles on a path. Lock blocks until
// the path is locked or ctx is Done. The returned function releases the lock.
type Locker interface {
	Lock(ctx context.Context, path string) (unlock func(), err error)
}

// NoLock is a Locker that does nothing. Concurrent writers then race and the
// last one wins.
var NoLock Locker = noLock{}

type noLock struct{}

func (noLock) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}

// errLockHeld is returned by lockFile when another process holds the lock.
var errLockHeld = errors.New("file locked by another process")

// FileLocker locks paths within the process and, for files that already
// exist, with an advisory lock that other processes using FileLocker observe.
// The zero value is ready to use.
//
// A file that does not exist yet cannot carry the advisory lock, so two
// processes that create the same file at the same time are not serialized:
// both writes succeed and the last one wins. Writers within one process are
// always serialized.
type FileLocker struct {
	// Backoff returns the strategy for waiting on other processes.
	// If nil, waits start at 5ms and grow to at most 250ms.
	Backoff func() retry.BackoffStrategy

	mu    sync.Mutex
	paths map[string]*pathLock
}

type pathLock struct {
	sem  chan struct{}
	refs int
}

var defaultLocker = new(FileLocker)

// Lock locks path.
func (l *FileLocker) Lock(ctx context.Context, path string) (unlock func(), err error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = filepath.Clean(path)
	}
	pl := l.acquire(key)
	select {
	case pl.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key)
		return nil, fmt.Errorf("lock %s: %w", path, ctx.Err())
	}

	var unlockFile func()
	err = retry.Do(ctx, "locking "+path, l.backoff(), func() error {
		var err error
		unlockFile, err = lockFile(path)
		if err != nil && !errors.Is(err, errLockHeld) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		<-pl.sem
		l.release(key)
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	return func() {
		unlockFile()
		<-pl.sem
		l.release(key)
	}, nil
}

func (l *FileLocker) backoff() retry.BackoffStrategy {
	if l.Backoff != nil {
		return l.Backoff()
	}
	return &retry.Exponential{Initial: 5 * time.Millisecond, Max: 250 * time.Millisecond}
}

func (l *FileLocker) acquire(key string) *pathLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.paths == nil {
		l.paths = make(map[string]*pathLock)
	}
	pl := l.paths[key]
	if pl == nil {
		pl = &pathLock{sem: make(chan struct{}, 1)}
		l.paths[key] = pl
	}
	pl.refs++
	return pl
}

func (l *FileLocker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pl := l.paths[key]
	pl.refs--
	if pl.refs == 0 {
		delete(l.paths, key)
	}
}
