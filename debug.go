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
	"log"
	"os"
	"sync/atomic"
)

var (
	debugEnabled atomic.Bool
	debugLogger  = log.New(os.Stderr, "[midea] ", log.LstdFlags|log.Lmicroseconds)
)

// SetDebugEnabled turns verbose encoder and transmitter logging on or off
func SetDebugEnabled(enabled bool) {
	debugEnabled.Store(enabled)
}

// DebugEnabled reports whether debug logging is on
func DebugEnabled() bool {
	return debugEnabled.Load()
}

func debugf(format string, args ...any) {
	if debugEnabled.Load() {
		_ = debugLogger.Output(2, fmt.Sprintf(format, args...))
	}
}

func debugln(args ...any) {
	if debugEnabled.Load() {
		_ = debugLogger.Output(2, fmt.Sprintln(args...))
	}
}

// Debugf is an exported helper so transmitter backends log through the same switch.
func Debugf(format string, args ...any) {
	if debugEnabled.Load() {
		_ = debugLogger.Output(2, fmt.Sprintf(format, args...))
	}
}
