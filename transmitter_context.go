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

package midea

import (
	"context"
	"fmt"
)

// ContextTransmitter is a Transmitter that can observe cancellation while
// a transmission is in flight
type ContextTransmitter interface {
	Transmitter

	// TransmitContext plays the symbols, giving up early if ctx is done
	TransmitContext(ctx context.Context, symbols []Symbol, config TransmitConfig) error
}

// transmitterContextAdapter wraps a Transmitter to provide context support
type transmitterContextAdapter struct {
	Transmitter
}

// TransmitContext checks the context before handing off to Transmit. Once the
// peripheral has the symbols the call runs to completion.
func (t *transmitterContextAdapter) TransmitContext(
	ctx context.Context, symbols []Symbol, config TransmitConfig,
) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled before transmit: %w", ctx.Err())
	default:
	}

	return t.Transmit(symbols, config)
}

// AsContextTransmitter converts a Transmitter to ContextTransmitter
func AsContextTransmitter(t Transmitter) ContextTransmitter {
	if tc, ok := t.(ContextTransmitter); ok {
		return tc
	}
	return &transmitterContextAdapter{Transmitter: t}
}
