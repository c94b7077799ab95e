// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/yourbase/profile/remote"
	"zombiezen.com/go/log"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var addr, root string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the files of a directory over WebSocket",
		Long: `The serve command lets other profilectl instances operate on the files
below a directory with the --remote flag.

Example:
  profilectl serve --root /etc/myapp --addr localhost:8080
  profilectl --remote ws://localhost:8080/ -f app.ini get window title`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			log.Infof(ctx, "Serving %s on %s", root, l.Addr())
			return serve(ctx, l, &remote.Handler{Root: root, Store: g.store()})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "`address` to listen on")
	cmd.Flags().StringVar(&root, "root", ".", "`directory` of the served files")
	return cmd
}

// serve runs an HTTP server on l until ctx is Done.
func serve(ctx context.Context, l net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
