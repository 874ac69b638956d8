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

/*
Package midea provides a pure Go encoder and sender for Midea air-conditioner
infrared commands.

A Midea frame is a leader pulse/space followed by one pulse/space pair per
payload bit, most significant bit first. Every pulse is short; a long space
marks a '1' bit and a short space a '0'. The package turns a byte payload
into that timing, packs it into transmit symbols and hands the symbols,
exactly once, to a Transmitter.

Features:
  - Byte payload and raw timing entry points
  - Pluggable transmitters: serial bridge, GPIO PWM, Linux LIRC
  - Decoding of the power, mode, temperature, fan and swing fields of a frame
  - XOR checksum helpers
  - Named command libraries loaded from YAML

Basic Usage:

	import (
	    "github.com/ZaparooProject/go-midea"
	    "github.com/ZaparooProject/go-midea/transmitter/serial"
	)

	// Open a serial bridge; this configures the 38 kHz carrier
	tx, err := serial.New("/dev/ttyACM0")
	if err != nil {
	    log.Fatal(err)
	}

	blaster, err := midea.New(tx)
	if err != nil {
	    log.Fatal(err)
	}
	defer blaster.Close()

	// Send a captured frame
	if err := blaster.SendBytes([]byte{0xA1, 0x82, 0x42, 0xFF, 0xFF, 0x5F}); err != nil {
	    log.Fatal(err)
	}

	// Or replay raw timing (leader is added automatically)
	err = blaster.SendCommand([]midea.Ticks{560, 1600, 560, 560})

Encoding Without Hardware:

	durations, err := midea.EncodeBytes(payload)
	symbols, err := midea.PackSymbols(durations)

Error Handling:

Argument problems match ErrInvalidArgument, oversized commands match
ErrNoMemory, and transmitter failures are returned exactly as the
transmitter reported them:

	if errors.Is(err, midea.ErrNotInitialized) {
	    // open the transmitter first
	}

Thread Safety:

Blaster operations are not thread-safe. If you need concurrent access,
serialize sends in your application.
*/
package midea
