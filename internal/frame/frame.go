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

package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Frame errors
var (
	ErrPayloadTooLarge  = errors.New("frame payload too large")
	ErrBadStartCode     = errors.New("bad frame start code")
	ErrLengthChecksum   = errors.New("frame length checksum mismatch")
	ErrDataChecksum     = errors.New("frame data checksum mismatch")
	ErrShortFrame       = errors.New("frame too short")
	ErrUnexpectedStatus = errors.New("unexpected reply")
)

// Frame is one decoded message on the bridge link
type Frame struct {
	Payload []byte
	Cmd     byte
}

// Build encodes a frame: start codes, cmd, little-endian length, LCS, payload, DCS
func Build(cmd byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadLength {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrPayloadTooLarge, len(payload), MaxPayloadLength)
	}

	length := uint16(len(payload))
	frm := make([]byte, 0, HeaderLength+len(payload)+TrailerLength)
	frm = append(frm, StartCode1, StartCode2, cmd)
	frm = binary.LittleEndian.AppendUint16(frm, length)
	frm = append(frm, CalculateLengthChecksum(length))
	frm = append(frm, payload...)
	frm = append(frm, CalculateDataChecksum(cmd, payload))
	return frm, nil
}

// Parse decodes exactly one frame from buf
func Parse(buf []byte) (*Frame, error) {
	if len(buf) < HeaderLength+TrailerLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortFrame, len(buf))
	}
	if buf[0] != StartCode1 || buf[1] != StartCode2 {
		return nil, fmt.Errorf("%w: %02X %02X", ErrBadStartCode, buf[0], buf[1])
	}
	if !ChecksumValid(buf[3:6]) {
		return nil, ErrLengthChecksum
	}

	length := int(binary.LittleEndian.Uint16(buf[3:5]))
	if length > MaxPayloadLength {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrPayloadTooLarge, length, MaxPayloadLength)
	}
	if len(buf) != HeaderLength+length+TrailerLength {
		return nil, fmt.Errorf("%w: header says %d payload bytes, have %d", ErrShortFrame, length, len(buf)-HeaderLength-TrailerLength)
	}

	cmd := buf[2]
	payload := buf[HeaderLength : HeaderLength+length]
	if CalculateChecksum(payload)+cmd+buf[len(buf)-1] != 0 {
		return nil, ErrDataChecksum
	}

	return &Frame{Cmd: cmd, Payload: append([]byte(nil), payload...)}, nil
}

// Read reads one frame from r, skipping any bytes before the start code
func Read(r io.Reader) (*Frame, error) {
	var b [1]byte
	var prev byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("waiting for start code: %w", err)
		}
		if prev == StartCode1 && b[0] == StartCode2 {
			break
		}
		prev = b[0]
	}

	header := make([]byte, HeaderLength)
	header[0], header[1] = StartCode1, StartCode2
	if _, err := io.ReadFull(r, header[2:]); err != nil {
		return nil, fmt.Errorf("reading frame header: %w", err)
	}
	if !ChecksumValid(header[3:6]) {
		return nil, ErrLengthChecksum
	}

	length := int(binary.LittleEndian.Uint16(header[3:5]))
	if length > MaxPayloadLength {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrPayloadTooLarge, length, MaxPayloadLength)
	}

	rest := make([]byte, length+TrailerLength)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, fmt.Errorf("reading frame body: %w", err)
	}

	return Parse(append(header, rest...))
}

// ConfigurePayload encodes the carrier setup for CmdConfigure
func ConfigurePayload(carrierHz uint32, dutyPercent uint8, resolutionHz uint32) []byte {
	p := make([]byte, 0, ConfigureLength)
	p = binary.LittleEndian.AppendUint32(p, carrierHz)
	p = append(p, dutyPercent)
	p = binary.LittleEndian.AppendUint32(p, resolutionHz)
	return p
}

// TransmitPayload encodes the loop count and symbol words for CmdTransmit
func TransmitPayload(loopCount uint16, words []uint32) ([]byte, error) {
	size := LoopCountLength + len(words)*SymbolWordLength
	if size > MaxPayloadLength {
		return nil, fmt.Errorf("%w: %d symbols", ErrPayloadTooLarge, len(words))
	}

	p := make([]byte, 0, size)
	p = binary.LittleEndian.AppendUint16(p, loopCount)
	for _, w := range words {
		p = binary.LittleEndian.AppendUint32(p, w)
	}
	return p, nil
}

// ReplyStatus checks that f answers cmd and returns its status byte
func ReplyStatus(f *Frame, cmd byte) (byte, error) {
	if f.Cmd != cmd|ReplyFlag {
		return 0, fmt.Errorf("%w: command %02X, want %02X", ErrUnexpectedStatus, f.Cmd, cmd|ReplyFlag)
	}
	if len(f.Payload) != 1 {
		return 0, fmt.Errorf("%w: %d status bytes", ErrUnexpectedStatus, len(f.Payload))
	}
	return f.Payload[0], nil
}
