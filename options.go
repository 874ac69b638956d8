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
	"fmt"
	"time"
)

// Option is a functional option for configuring a Blaster
type Option func(*Blaster) error

// WithMaxSymbols sets the symbol buffer limit for one command.
// Zero disables the limit.
func WithMaxSymbols(maxSymbols int) Option {
	return func(b *Blaster) error {
		if maxSymbols < 0 {
			return fmt.Errorf("%w: max symbols %d", ErrInvalidArgument, maxSymbols)
		}
		b.config.MaxSymbols = maxSymbols
		return nil
	}
}

// WithTimeout sets the default deadline applied to Context sends
func WithTimeout(timeout time.Duration) Option {
	return func(b *Blaster) error {
		if timeout < 0 {
			return fmt.Errorf("%w: timeout %s", ErrInvalidArgument, timeout)
		}
		b.config.Timeout = timeout
		return nil
	}
}

// WithCarrier records the carrier configuration the transmitter was opened with
func WithCarrier(carrier CarrierConfig) Option {
	return func(b *Blaster) error {
		if err := carrier.Validate(); err != nil {
			return fmt.Errorf("invalid carrier config: %w", err)
		}
		b.config.Carrier = carrier
		return nil
	}
}
