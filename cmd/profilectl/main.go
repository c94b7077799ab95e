// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// profilectl reads and writes INI files the way the Windows profile API does.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"zombiezen.com/go/log"
)

func main() {
	logs := &log.LevelFilter{
		Min:    log.Info,
		Output: log.New(os.Stderr, "profilectl: ", 0, nil),
	}
	log.SetDefault(logs)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(logs).ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "profilectl:", err)
		os.Exit(1)
	}
}
