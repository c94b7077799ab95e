// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gorilla/websocket"
	"github.com/yourbase/profile/profile"
	"zombiezen.com/go/log"
)

// Handler is an http.Handler that upgrades requests to WebSockets and serves
// profile operations on the files below Root.
type Handler struct {
	// Root is the directory that request paths are relative to.
	Root string
	// Store performs the operations. If nil, a zero profile.Store is used.
	Store    *profile.Store
	Upgrader websocket.Upgrader
}

// ServeHTTP upgrades the request and serves profile requests until the client
// closes the connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Warnf(ctx, "Upgrading connection from %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()
	log.Debugf(ctx, "Profile connection from %s", r.RemoteAddr)
	for {
		var req Request
		if err := readJSON(ctx, conn, &req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnf(ctx, "Reading profile request from %s: %v", r.RemoteAddr, err)
			}
			return
		}
		log.Debugf(ctx, "Profile request from %s: %s %q", r.RemoteAddr, req.Op, req.Path)
		reply := h.serve(ctx, &req)
		if err := writeJSON(ctx, conn, reply); err != nil {
			log.Warnf(ctx, "Replying to %s: %v", r.RemoteAddr, err)
			return
		}
	}
}

func (h *Handler) serve(ctx context.Context, req *Request) *Reply {
	reply := &Reply{ID: req.ID}
	path, err := h.resolve(req.Path)
	if err != nil {
		setError(reply, err)
		return reply
	}
	store := h.Store
	if store == nil {
		store = new(profile.Store)
	}
	switch req.Op {
	case OpGet:
		reply.Value, reply.Length, err = store.GetValue(ctx, path, req.Section, req.Key, req.Default, req.Capacity)
	case OpSections:
		reply.Names, reply.Length, err = store.GetSections(ctx, path, req.Capacity)
	case OpKeys:
		reply.Names, reply.Length, err = store.GetKeys(ctx, path, req.Section, req.Capacity)
	case OpSection:
		reply.Names, reply.Length, err = store.GetSection(ctx, path, req.Section, req.Capacity)
	case OpSet:
		err = store.SetValue(ctx, path, req.Section, req.Key, req.Value)
	case OpDeleteKey:
		err = store.DeleteKey(ctx, path, req.Section, req.Key)
	case OpDeleteSection:
		err = store.DeleteSection(ctx, path, req.Section)
	default:
		err = fmt.Errorf("unknown operation %q", req.Op)
	}
	if err != nil {
		setError(reply, err)
	}
	return reply
}

// resolve maps a request path to a path below h.Root.
func (h *Handler) resolve(path string) (string, error) {
	p := filepath.FromSlash(path)
	if !filepath.IsLocal(p) {
		return "", &profile.Error{Kind: profile.InvalidPath, Op: "resolve", Path: path}
	}
	return filepath.Join(h.Root, p), nil
}

// setError records err in reply. Host error details are not sent to the
// client, since they contain server paths.
func setError(reply *Reply, err error) {
	reply.Kind = profile.KindOf(err)
	var e *profile.Error
	if !errors.As(err, &e) {
		reply.Error = err.Error()
	}
}
