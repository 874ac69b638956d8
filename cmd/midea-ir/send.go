// go-midea
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-midea.
//
// go-midea is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-midea is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-midea; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.


package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	midea "github.com/ZaparooProject/go-midea"
	"github.com/ZaparooProject/go-midea/library"
	"github.com/spf13/cobra"
)

func sendCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a command through a transmitter",
	}

	cmd.AddCommand(sendBytesCmd(flags))
	cmd.AddCommand(sendRawCmd(flags))
	cmd.AddCommand(sendLibraryCmd(flags))
	return cmd
}

func sendBytesCmd(flags *globalFlags) *cobra.Command {
	var checksum bool

	cmd := &cobra.Command{
		Use:     "bytes <hex>...",
		Short:   "Encode and send a byte payload",
		Example: "  midea-ir send bytes A1 82 42 FF FF 5F\n  midea-ir send bytes --checksum a18242ffff",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parsePayload(args, checksum)
			if err != nil {
				return err
			}
			return withBlaster(cmd.Context(), flags, func(ctx context.Context, b *midea.Blaster) error {
				if err := b.SendBytesContext(ctx, payload); err != nil {
					return fmt.Errorf("send failed: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sent %d bytes: %s\n", len(payload), midea.FormatHex(payload))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&checksum, "checksum", false, "Append the XOR checksum before sending")
	return cmd
}

func sendRawCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "raw <ticks>...",
		Short:   "Send a raw pulse/space sequence in 1 µs ticks (leader is added)",
		Example: "  midea-ir send raw 560 1600 560 560",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			durations, err := parseTicks(args)
			if err != nil {
				return err
			}
			return withBlaster(cmd.Context(), flags, func(ctx context.Context, b *midea.Blaster) error {
				if err := b.SendCommandContext(ctx, durations); err != nil {
					return fmt.Errorf("send failed: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sent %d durations\n", len(durations))
				return nil
			})
		},
	}
}

func sendLibraryCmd(flags *globalFlags) *cobra.Command {
	var libraryPath string

	cmd := &cobra.Command{
		Use:   "command <name>",
		Short: "Send a named command from a YAML library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := library.LoadFile(libraryPath)
			if err != nil {
				return err
			}
			entry, err := lib.Lookup(args[0])
			if err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(lib.Names(), ", "))
			}
			return withBlaster(cmd.Context(), flags, func(ctx context.Context, b *midea.Blaster) error {
				if err := entry.SendContext(ctx, b); err != nil {
					return fmt.Errorf("send %q failed: %w", entry.Name, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sent %s\n", entry.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&libraryPath, "library", "commands.yaml", "Path to the command library")
	return cmd
}

func withBlaster(ctx context.Context, flags *globalFlags, fn func(context.Context, *midea.Blaster) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := openBlaster(ctx, flags)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	return fn(ctx, b)
}

// parsePayload joins hex arguments so both "A1 82" and "A182" work
func parsePayload(args []string, checksum bool) ([]byte, error) {
	payload, err := midea.ParseHex(strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	if checksum {
		payload = midea.AppendChecksum(payload)
	}
	return payload, nil
}

func parseTicks(args []string) ([]midea.Ticks, error) {
	durations := make([]midea.Ticks, 0, len(args))
	for _, arg := range args {
		for _, field := range strings.FieldsFunc(arg, func(r rune) bool { return r == ',' || r == ' ' }) {
			v, err := strconv.ParseUint(field, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: bad duration %q", midea.ErrInvalidArgument, field)
			}
			durations = append(durations, midea.Ticks(v))
		}
	}
	return durations, nil
}
