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

// Package frame provides framing and protocol constants for the IR bridge serial link
package frame

// Frame markers
const (
	StartCode1 = 0xA5 // Start code byte 1
	StartCode2 = 0x5A // Start code byte 2
)

// Commands from host to bridge. Replies carry the command with ReplyFlag set.
const (
	CmdConfigure = 0x01 // carrier frequency, duty and resolution
	CmdTransmit  = 0x02 // loop count followed by RMT symbol words
	CmdPing      = 0x03 // liveness check, empty payload

	ReplyFlag = 0x80
)

// Reply status codes
const (
	StatusOK       = 0x00
	StatusBusy     = 0x01
	StatusFault    = 0x02
	StatusBadFrame = 0x03
)

// Frame size limits
const (
	HeaderLength     = 6 // start codes + cmd + len(2) + lcs
	TrailerLength    = 1 // dcs
	ConfigureLength  = 9 // u32 carrier + u8 duty + u32 resolution
	SymbolWordLength = 4
	LoopCountLength  = 2

	// MaxSymbols is the RMT buffer size of the bridge firmware, leader included
	MaxSymbols = 1024

	// MaxPayloadLength fits a transmit command with MaxSymbols words
	MaxPayloadLength = LoopCountLength + MaxSymbols*SymbolWordLength
)
