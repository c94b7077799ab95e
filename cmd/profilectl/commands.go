// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"zombiezen.com/go/log"
)

func newGetCmd(g *globalFlags) *cobra.Command {
	var def string
	cmd := &cobra.Command{
		Use:   "get <section> <key>",
		Short: "Print the value of a key",
		Long: `The get command prints the value of a key. If the key does not exist,
it prints the default value without trailing blanks.

Example:
  profilectl -f app.ini get window title
  profilectl -f app.ini get window width --default 640`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, release, err := g.backend(ctx)
			if err != nil {
				return err
			}
			defer release()
			v, n, err := b.GetValue(ctx, g.file, args[0], args[1], def, g.capacity)
			if err := report(ctx, err); err != nil {
				return err
			}
			log.Debugf(ctx, "Value has %d characters", n)
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().StringVarP(&def, "default", "d", "", "value to print if the key does not exist")
	return cmd
}

// newListCmd returns one of the list commands, which take nargs section
// arguments.
func newListCmd(g *globalFlags, name, short string, nargs int) *cobra.Command {
	use := name
	if nargs > 0 {
		use += " <section>"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, release, err := g.backend(ctx)
			if err != nil {
				return err
			}
			defer release()
			var names []string
			switch name {
			case "sections":
				names, _, err = b.GetSections(ctx, g.file, g.capacity)
			case "keys":
				names, _, err = b.GetKeys(ctx, g.file, args[0], g.capacity)
			case "section":
				names, _, err = b.GetSection(ctx, g.file, args[0], g.capacity)
			}
			if err := report(ctx, err); err != nil {
				return err
			}
			printList(cmd.OutOrStdout(), g, names)
			return nil
		},
	}
}

func newIntCmd(g *globalFlags) *cobra.Command {
	var def uint32
	cmd := &cobra.Command{
		Use:   "int <section> <key>",
		Short: "Print the value of a key as an unsigned integer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := g.localStore("int")
			if err != nil {
				return err
			}
			n, err := s.GetInt(ctx, g.file, args[0], args[1], def)
			if err := report(ctx, err); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	cmd.Flags().Uint32VarP(&def, "default", "d", 0, "value to print if the key does not exist")
	return cmd
}

func newSetCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <section> <key> <value>",
		Short: "Set the value of a key",
		Long: `The set command sets the value of a key, creating the file, the section,
and the key as needed. A key that starts with ";" inserts a comment line.

Example:
  profilectl -f app.ini set window title "My App"
  profilectl -f app.ini set window "; last changed by profilectl" ""`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, release, err := g.backend(ctx)
			if err != nil {
				return err
			}
			defer release()
			return b.SetValue(ctx, g.file, args[0], args[1], args[2])
		},
	}
}

func newDeleteKeyCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-key <section> <key>",
		Short: "Remove a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, release, err := g.backend(ctx)
			if err != nil {
				return err
			}
			defer release()
			return b.DeleteKey(ctx, g.file, args[0], args[1])
		},
	}
}

func newDeleteSectionCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-section <section>",
		Short: "Remove a section and its keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, release, err := g.backend(ctx)
			if err != nil {
				return err
			}
			defer release()
			return b.DeleteSection(ctx, g.file, args[0])
		},
	}
}

func newGetStructCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get-struct <section> <key> <size>",
		Short: "Print a checksummed binary value as hexadecimal",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			size, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("size: %w", err)
			}
			s, err := g.localStore("get-struct")
			if err != nil {
				return err
			}
			data, err := s.GetStruct(ctx, g.file, args[0], args[1], size)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
			return nil
		},
	}
}

func newSetStructCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set-struct <section> <key> <hex data>",
		Short: "Store binary data with a checksum",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := hex.DecodeString(args[2])
			if err != nil {
				return fmt.Errorf("data: %w", err)
			}
			s, err := g.localStore("set-struct")
			if err != nil {
				return err
			}
			return s.WriteStruct(ctx, g.file, args[0], args[1], data)
		},
	}
}
