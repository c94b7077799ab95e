// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package remote serves profile operations over a WebSocket.
//
// Each WebSocket text message from the client is a JSON Request and is
// answered by exactly one JSON Reply with the same ID. Requests on one
// connection are handled in order.
package remote

import "github.com/yourbase/profile/profile"

// Operations.
const (
	OpGet           = "get"
	OpSections      = "sections"
	OpKeys          = "keys"
	OpSection       = "section"
	OpSet           = "set"
	OpDeleteKey     = "delete-key"
	OpDeleteSection = "delete-section"
)

// A Request is a single profile operation. Path is a slash-separated path
// relative to the server's root directory.
type Request struct {
	ID       uint64 `json:"id"`
	Op       string `json:"op"`
	Path     string `json:"path"`
	Section  string `json:"section,omitempty"`
	Key      string `json:"key,omitempty"`
	Value    string `json:"value,omitempty"`
	Default  string `json:"default,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

// A Reply is the result of a Request. Kind is zero on success. Error holds
// details for failures that are not described by Kind alone.
type Reply struct {
	ID     uint64       `json:"id"`
	Value  string       `json:"value,omitempty"`
	Names  []string     `json:"names,omitempty"`
	Length int          `json:"length"`
	Kind   profile.Kind `json:"kind,omitempty"`
	Error  string       `json:"error,omitempty"`
}
