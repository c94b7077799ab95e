// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/yourbase/profile/ini"
)

// WriteStruct stores data as the value of key in section: every byte as two
// uppercase hexadecimal digits, followed by a checksum byte that is the sum of
// all bytes modulo 256. A nil data deletes the key.
func (s *Store) WriteStruct(ctx context.Context, path, section, key string, data []byte) error {
	if data == nil {
		return s.DeleteKey(ctx, path, section, key)
	}
	value := encodeStruct(data)
	return s.edit(ctx, "write struct", path, func(doc *ini.Document) error {
		doc.Set(section, key, value)
		return nil
	})
}

// GetStruct reads a value written by WriteStruct. The value must hold exactly
// size bytes and a matching checksum, otherwise the error is of kind
// BadStruct.
func (s *Store) GetStruct(ctx context.Context, path, section, key string, size int) ([]byte, error) {
	doc, err := s.read("get struct", path)
	if err != nil {
		return nil, err
	}
	v, ok := doc.Value(section, key)
	if !ok {
		return nil, &Error{Kind: NotFound, Op: "get struct", Path: path}
	}
	data, err := decodeStruct(v, size)
	if err != nil {
		return nil, &Error{Kind: BadStruct, Op: "get struct", Path: path, Err: err}
	}
	return data, nil
}

func encodeStruct(data []byte) string {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return strings.ToUpper(hex.EncodeToString(append(data[:len(data):len(data)], sum)))
}

func decodeStruct(v string, size int) ([]byte, error) {
	if size < 0 || len(v) != 2*size+2 {
		return nil, fmt.Errorf("decode struct: %d hex digits for %d bytes", len(v), size)
	}
	buf, err := hex.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("decode struct: %w", err)
	}
	data, want := buf[:size], buf[size]
	var sum byte
	for _, b := range data {
		sum += b
	}
	if sum != want {
		return nil, fmt.Errorf("decode struct: checksum %02X does not match %02X", sum, want)
	}
	return data, nil
}

// WriteStruct calls WriteStruct on a zero Store.
func WriteStruct(ctx context.Context, path, section, key string, data []byte) error {
	return defaultStore.WriteStruct(ctx, path, section, key, data)
}

// GetStruct calls GetStruct on a zero Store.
func GetStruct(ctx context.Context, path, section, key string, size int) ([]byte, error) {
	return defaultStore.GetStruct(ctx, path, section, key, size)
}
