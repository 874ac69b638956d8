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
	"fmt"

	midea "github.com/ZaparooProject/go-midea"
	"github.com/ZaparooProject/go-midea/detection"
	"github.com/spf13/cobra"
)

func encodeCmd() *cobra.Command {
	var checksum bool

	cmd := &cobra.Command{
		Use:   "encode <hex>...",
		Short: "Print the symbol table for a payload without sending it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parsePayload(args, checksum)
			if err != nil {
				return err
			}
			durations, err := midea.EncodeBytes(payload)
			if err != nil {
				return err
			}
			symbols, err := midea.PackSymbols(durations)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Payload: %s\n", midea.FormatHex(payload))
			_, _ = fmt.Fprintf(out, "Symbols: %d (%.1f ms on air)\n\n",
				len(symbols), float64(midea.TotalTicks(symbols))/1000)
			_, _ = fmt.Fprint(out, midea.FormatSymbols(symbols))
			return nil
		},
	}
	cmd.Flags().BoolVar(&checksum, "checksum", false, "Append the XOR checksum before encoding")
	return cmd
}

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "describe <hex>...",
		Short:   "Decode the AC settings in a captured frame",
		Example: "  midea-ir describe A1 82 42 FF FF 5F",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parsePayload(args, false)
			if err != nil {
				return err
			}
			analysis, err := midea.Analyze(payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), analysis.String())
			return nil
		},
	}
}

func detectCmd() *cobra.Command {
	var (
		all     bool
		blocked []string
		ignored []string
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "List IR transmitters attached to this machine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := detection.DefaultOptions()
			opts.IncludeUnknown = all
			opts.Blocklist = append(opts.Blocklist, blocked...)
			opts.IgnorePaths = ignored

			devices, err := detection.Detect(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(devices) == 0 {
				_, _ = fmt.Fprintln(out, "No transmitters found")
				return nil
			}
			for _, d := range devices {
				line := d.String()
				if d.VIDPID != "" {
					line += " [" + d.VIDPID + "]"
				}
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include USB serial ports with unknown VID:PID")
	cmd.Flags().StringSliceVar(&blocked, "block", nil,
		`Skip USB devices by VID:PID ("10C4:EA60" or "VID:10C4 PID:EA60")`)
	cmd.Flags().StringSliceVar(&ignored, "ignore", nil, "Skip device paths")
	return cmd
}
