// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yourbase/profile/profile"
)

// A Client sends profile operations to a Handler. Its methods mirror the
// functions of package profile and return *profile.Error values with the
// server's error kinds. A Client is safe to use from multiple goroutines, but
// sends one request at a time. If a call's Context is Done while it waits,
// the connection becomes unusable.
type Client struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	nextID uint64
}

// Dial connects to the Handler at the given ws:// or wss:// URL.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial profile server: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}

func (c *Client) do(ctx context.Context, req *Request) (*Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	req.ID = c.nextID
	if err := writeJSON(ctx, c.conn, req); err != nil {
		return nil, &profile.Error{Kind: profile.IO, Op: req.Op, Path: req.Path, Err: err}
	}
	reply := new(Reply)
	if err := readJSON(ctx, c.conn, reply); err != nil {
		return nil, &profile.Error{Kind: profile.IO, Op: req.Op, Path: req.Path, Err: err}
	}
	if reply.ID != req.ID {
		err := fmt.Errorf("reply %d to request %d", reply.ID, req.ID)
		return nil, &profile.Error{Kind: profile.IO, Op: req.Op, Path: req.Path, Err: err}
	}
	return reply, nil
}

func replyError(req *Request, reply *Reply) error {
	if reply.Kind == 0 && reply.Error == "" {
		return nil
	}
	e := &profile.Error{Kind: reply.Kind, Op: req.Op, Path: req.Path}
	if e.Kind == 0 {
		e.Kind = profile.IO
	}
	if reply.Error != "" {
		e.Err = errors.New(reply.Error)
	}
	return e
}

func (c *Client) value(ctx context.Context, req *Request) (string, int, error) {
	reply, err := c.do(ctx, req)
	if err != nil {
		return "", 0, err
	}
	return reply.Value, reply.Length, replyError(req, reply)
}

func (c *Client) list(ctx context.Context, req *Request) ([]string, int, error) {
	reply, err := c.do(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	return reply.Names, reply.Length, replyError(req, reply)
}

func (c *Client) write(ctx context.Context, req *Request) error {
	reply, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	return replyError(req, reply)
}

// GetValue is the remote form of profile.GetValue.
func (c *Client) GetValue(ctx context.Context, path, section, key, def string, capacity int) (string, int, error) {
	return c.value(ctx, &Request{Op: OpGet, Path: path, Section: section, Key: key, Default: def, Capacity: capacity})
}

// GetSections is the remote form of profile.GetSections.
func (c *Client) GetSections(ctx context.Context, path string, capacity int) ([]string, int, error) {
	return c.list(ctx, &Request{Op: OpSections, Path: path, Capacity: capacity})
}

// GetKeys is the remote form of profile.GetKeys.
func (c *Client) GetKeys(ctx context.Context, path, section string, capacity int) ([]string, int, error) {
	return c.list(ctx, &Request{Op: OpKeys, Path: path, Section: section, Capacity: capacity})
}

// GetSection is the remote form of profile.GetSection.
func (c *Client) GetSection(ctx context.Context, path, section string, capacity int) ([]string, int, error) {
	return c.list(ctx, &Request{Op: OpSection, Path: path, Section: section, Capacity: capacity})
}

// SetValue is the remote form of profile.SetValue.
func (c *Client) SetValue(ctx context.Context, path, section, key, value string) error {
	return c.write(ctx, &Request{Op: OpSet, Path: path, Section: section, Key: key, Value: value})
}

// DeleteKey is the remote form of profile.DeleteKey.
func (c *Client) DeleteKey(ctx context.Context, path, section, key string) error {
	return c.write(ctx, &Request{Op: OpDeleteKey, Path: path, Section: section, Key: key})
}

// DeleteSection is the remote form of profile.DeleteSection.
func (c *Client) DeleteSection(ctx context.Context, path, section string) error {
	return c.write(ctx, &Request{Op: OpDeleteSection, Path: path, Section: section})
}
