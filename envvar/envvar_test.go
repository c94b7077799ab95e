// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package envvar

import "testing"

func TestGet(t *testing.T) {
	const key = "ENVVAR_TEST_GET"
	t.Setenv(key, "")
	if got := Get(key, "default"); got != "default" {
		t.Errorf("Get(%q, \"default\") = %q; want \"default\"", key, got)
	}
	t.Setenv(key, "app.ini")
	if got := Get(key, "default"); got != "app.ini" {
		t.Errorf("Get(%q, \"default\") = %q; want \"app.ini\"", key, got)
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"0", false},
		{"yes", false},
	}
	const key = "ENVVAR_TEST_BOOL"
	for _, test := range tests {
		t.Setenv(key, test.value)
		if got := Bool(key); got != test.want {
			t.Errorf("Bool(%q) with %q = %t; want %t", key, test.value, got, test.want)
		}
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 1024},
		{"16", 16},
		{"-3", -3},
		{"0x10", 1024},
		{"lots", 1024},
	}
	const key = "ENVVAR_TEST_INT"
	for _, test := range tests {
		t.Setenv(key, test.value)
		if got := Int(key, 1024); got != test.want {
			t.Errorf("Int(%q, 1024) with %q = %d; want %d", key, test.value, got, test.want)
		}
	}
}
