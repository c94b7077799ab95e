// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIs(t *testing.T) {
	tests := []struct {
		err    error
		target error
		want   bool
	}{
		{err: &Error{Kind: NotFound}, target: NotFound, want: true},
		{err: &Error{Kind: FileNotFound}, target: NotFound, want: true},
		{err: &Error{Kind: FileNotFound}, target: FileNotFound, want: true},
		{err: &Error{Kind: NotFound}, target: FileNotFound, want: false},
		{err: &Error{Kind: MoreData}, target: NotFound, want: false},
		{err: fmt.Errorf("wrapped: %w", &Error{Kind: AccessDenied}), target: AccessDenied, want: true},
		{err: errors.New("bork"), target: IO, want: false},
	}
	for _, test := range tests {
		if got := errors.Is(test.err, test.target); got != test.want {
			t.Errorf("errors.Is(%v, %v) = %t; want %t", test.err, test.target, got, test.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{err: nil, want: 0},
		{err: &Error{Kind: MoreData}, want: MoreData},
		{err: fmt.Errorf("wrapped: %w", &Error{Kind: BadStruct}), want: BadStruct},
		{err: InvalidPath, want: InvalidPath},
		{err: errors.New("bork"), want: IO},
	}
	for _, test := range tests {
		if got := KindOf(test.err); got != test.want {
			t.Errorf("KindOf(%v) = %v; want %v", test.err, got, test.want)
		}
	}
}

func TestKindText(t *testing.T) {
	for k := Kind(0); k <= BadStruct; k++ {
		text, err := k.MarshalText()
		if err != nil {
			t.Errorf("%v.MarshalText(): %v", k, err)
			continue
		}
		var got Kind
		if err := got.UnmarshalText(text); err != nil {
			t.Errorf("UnmarshalText(%q): %v", text, err)
			continue
		}
		if got != k {
			t.Errorf("UnmarshalText(%q) = %v; want %v", text, got, k)
		}
	}
	var k Kind
	if err := k.UnmarshalText([]byte("Bogus")); err == nil {
		t.Error("UnmarshalText(\"Bogus\") did not return an error")
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: FileNotFound, Op: "get", Path: "x.ini", Err: errors.New("no such file")}
	if got, want := err.Error(), "profile get x.ini: file not found: no such file"; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
}
