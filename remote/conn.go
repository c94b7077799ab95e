// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// readJSON reads the next text message from the connection and decodes it
// into v.
func readJSON(ctx context.Context, conn *websocket.Conn, v interface{}) error {
	typ, p, err := readMessage(ctx, conn)
	if err != nil {
		return err
	}
	if typ != websocket.TextMessage {
		return fmt.Errorf("read websocket message: unexpected message type %d", typ)
	}
	if err := json.Unmarshal(p, v); err != nil {
		return fmt.Errorf("read websocket message: %w", err)
	}
	return nil
}

// writeJSON encodes v and writes it as a text message.
func writeJSON(ctx context.Context, conn *websocket.Conn, v interface{}) error {
	p, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("write websocket message: %w", err)
	}
	return writeMessage(ctx, conn, websocket.TextMessage, p)
}

// readMessage reads the next message from the connection. If ctx is Done
// before a message arrives, the read deadline is moved to now, which leaves
// the connection unusable.
func readMessage(ctx context.Context, conn *websocket.Conn) (messageType int, p []byte, err error) {
	ctxDone := ctx.Done()
	if ctxDone == nil {
		return conn.ReadMessage()
	}
	select {
	case <-ctxDone:
		return 0, nil, fmt.Errorf("read websocket message: %w", ctx.Err())
	default:
	}
	read := make(chan struct{})
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		select {
		case <-read:
		case <-ctxDone:
			conn.SetReadDeadline(time.Now())
		}
	}()
	messageType, p, err = conn.ReadMessage()
	close(read)
	<-watchDone
	if err != nil && ctx.Err() != nil {
		err = fmt.Errorf("read websocket message: %w", ctx.Err())
	}
	return
}

// writeMessage writes a message to the connection.
func writeMessage(ctx context.Context, conn *websocket.Conn, messageType int, data []byte) error {
	ctxDone := ctx.Done()
	if ctxDone == nil {
		return conn.WriteMessage(messageType, data)
	}
	select {
	case <-ctxDone:
		return fmt.Errorf("write websocket message: %w", ctx.Err())
	default:
	}
	written := make(chan struct{})
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		select {
		case <-written:
		case <-ctxDone:
			// XXX This is racy because WriteMessage will unconditionally call
			// SetWriteDeadline.
			conn.UnderlyingConn().SetWriteDeadline(time.Now())
		}
	}()
	err := conn.WriteMessage(messageType, data)
	close(written)
	<-watchDone
	return err
}
