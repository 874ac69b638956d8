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

// CalculateChecksum returns the byte sum of data, truncated to 8 bits
func CalculateChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// ChecksumValid reports whether data, trailing checksum byte included, sums to zero
func ChecksumValid(data []byte) bool {
	return CalculateChecksum(data) == 0
}

// CalculateLengthChecksum returns the LCS byte for a 16-bit payload length
func CalculateLengthChecksum(length uint16) byte {
	return ^(byte(length) + byte(length>>8)) + 1
}

// CalculateDataChecksum returns the DCS byte covering the command and payload
func CalculateDataChecksum(cmd byte, data []byte) byte {
	return ^(cmd + CalculateChecksum(data)) + 1
}
