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
	"os"
	"runtime"
	"time"

	midea "github.com/ZaparooProject/go-midea"
	"github.com/spf13/cobra"
)

var (
	// Build variables set by ldflags
	buildVersion = "dev"
	buildCommit  string
)

type globalFlags struct {
	device  string
	timeout time.Duration
	debug   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "midea-ir",
		Short: "Encode and send Midea air-conditioner IR commands",
		Long: `midea-ir turns captured Midea AC frames into 38 kHz IR timing and sends
them through a serial bridge, a GPIO pin or a Linux LIRC device.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				midea.SetDebugEnabled(true)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.device, "device", "",
		"Transmitter: serial path, lirc:/dev/lirc0 or gpio:GPIO18. Leave empty for auto-detection.")
	rootCmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 5*time.Second,
		"Time allowed for the transmitter to finish a command")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug output")

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(sendCmd(flags))
	rootCmd.AddCommand(encodeCmd())
	rootCmd.AddCommand(describeCmd())
	rootCmd.AddCommand(detectCmd())
	return rootCmd
}

func versionString() string {
	if buildCommit == "" {
		return buildVersion
	}
	return fmt.Sprintf("%s (%s)", buildVersion, buildCommit)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "midea-ir %s\n", versionString())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
