// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yourbase/profile/envvar"
	"github.com/yourbase/profile/ini"
	"github.com/yourbase/profile/profile"
	"github.com/yourbase/profile/remote"
	"zombiezen.com/go/log"
)

// globalFlags are the flags shared by all subcommands.
type globalFlags struct {
	file     string
	capacity int
	unicode  bool
	debug    bool
	remote   string
	raw      bool
}

// backend is the set of operations that both a local profile.Store and a
// remote.Client perform.
type backend interface {
	GetValue(ctx context.Context, path, section, key, def string, capacity int) (string, int, error)
	GetSections(ctx context.Context, path string, capacity int) ([]string, int, error)
	GetKeys(ctx context.Context, path, section string, capacity int) ([]string, int, error)
	GetSection(ctx context.Context, path, section string, capacity int) ([]string, int, error)
	SetValue(ctx context.Context, path, section, key, value string) error
	DeleteKey(ctx context.Context, path, section, key string) error
	DeleteSection(ctx context.Context, path, section string) error
}

// newRootCmd returns the profilectl command. If logs is not nil, the --debug
// flag lowers its minimum level.
func newRootCmd(logs *log.LevelFilter) *cobra.Command {
	g := new(globalFlags)
	rootCmd := &cobra.Command{
		Use:   "profilectl",
		Short: "Read and write INI files like the Windows profile API",
		Long: `profilectl reads and writes INI files with the exact behavior of the
Windows GetPrivateProfileString and WritePrivateProfileString functions,
including their quirks around encodings, truncation, and comments.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logs != nil && g.debug {
				logs.Min = log.Debug
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&g.file, "file", "f", envvar.Get("PROFILE_FILE", ""), "INI `path` (or remote path with --remote)")
	rootCmd.PersistentFlags().IntVarP(&g.capacity, "capacity", "n", envvar.Int("PROFILE_CAPACITY", 1024), "buffer size in UTF-16 code units")
	rootCmd.PersistentFlags().BoolVar(&g.unicode, "unicode", envvar.Bool("PROFILE_UNICODE"), "create new files as UTF-16LE")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "show debug logs")
	rootCmd.PersistentFlags().StringVar(&g.remote, "remote", envvar.Get("PROFILE_ADDR", ""), "WebSocket `URL` of a profilectl server")
	rootCmd.PersistentFlags().BoolVar(&g.raw, "raw", false, "print lists as a NUL-separated buffer")

	rootCmd.AddCommand(
		newGetCmd(g),
		newListCmd(g, "sections", "List the sections of a file", 0),
		newListCmd(g, "keys", "List the keys of a section", 1),
		newListCmd(g, "section", "List the entries of a section", 1),
		newIntCmd(g),
		newSetCmd(g),
		newDeleteKeyCmd(g),
		newDeleteSectionCmd(g),
		newGetStructCmd(g),
		newSetStructCmd(g),
		newServeCmd(g),
	)
	return rootCmd
}

// store returns the local store configured by the flags.
func (g *globalFlags) store() *profile.Store {
	s := new(profile.Store)
	if g.unicode {
		s.CreateEncoding = ini.UTF16LE
	}
	return s
}

// backend returns the store or a remote client. The returned function
// releases the backend.
func (g *globalFlags) backend(ctx context.Context) (backend, func(), error) {
	if g.file == "" {
		return nil, nil, errors.New("no file given (use --file or PROFILE_FILE)")
	}
	if g.remote == "" {
		return g.store(), func() {}, nil
	}
	c, err := remote.Dial(ctx, g.remote)
	if err != nil {
		return nil, nil, err
	}
	return c, func() { c.Close() }, nil
}

// localStore is like backend, but rejects --remote for operations that the
// server does not support.
func (g *globalFlags) localStore(name string) (*profile.Store, error) {
	if g.file == "" {
		return nil, errors.New("no file given (use --file or PROFILE_FILE)")
	}
	if g.remote != "" {
		return nil, fmt.Errorf("%s is not supported with --remote", name)
	}
	return g.store(), nil
}

// report logs soft failures and returns hard ones. The legacy API returns a
// usable result together with NotFound and MoreData.
func report(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, profile.FileNotFound):
		log.Warnf(ctx, "%v", err)
		return nil
	case errors.Is(err, profile.NotFound), errors.Is(err, profile.MoreData):
		log.Infof(ctx, "%v", err)
		return nil
	default:
		return err
	}
}

func printList(w io.Writer, g *globalFlags, names []string) {
	if g.raw {
		io.WriteString(w, profile.Buffer(names))
		return
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}
