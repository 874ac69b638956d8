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


// Package library loads named Midea commands from a YAML file.
//
// A library maps command names to either a captured byte frame or a raw
// timing sequence:
//
//	commands:
//	  power-25:
//	    description: Captured from the wall remote
//	    bytes: "A1 82 48 FF FF 6B"
//	  test-pattern:
//	    timing: [560, 1600, 560, 560]
package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	midea "github.com/ZaparooProject/go-midea"
	"gopkg.in/yaml.v3"
)

// Library errors
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidEntry   = errors.New("invalid library entry")
)

// Command is one resolved library entry. Exactly one of Bytes and Timing is set.
type Command struct {
	Name        string
	Description string
	Bytes       []byte
	Timing      []midea.Ticks
}

// IsRaw reports whether the command carries raw timing instead of bytes
func (c Command) IsRaw() bool {
	return c.Timing != nil
}

// Send transmits the command through b
func (c Command) Send(b *midea.Blaster) error {
	return c.SendContext(context.Background(), b)
}

// SendContext transmits the command through b, honoring ctx
func (c Command) SendContext(ctx context.Context, b *midea.Blaster) error {
	if c.IsRaw() {
		return b.SendCommandContext(ctx, c.Timing)
	}
	return b.SendBytesContext(ctx, c.Bytes)
}

type entry struct {
	Description string   `yaml:"description"`
	Bytes       string   `yaml:"bytes"`
	Timing      []uint32 `yaml:"timing"`
}

type document struct {
	Commands map[string]entry `yaml:"commands"`
}

// Library is a set of named commands
type Library struct {
	commands map[string]Command
}

// Load parses a YAML library
func Load(r io.Reader) (*Library, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Library{commands: map[string]Command{}}, nil
		}
		return nil, fmt.Errorf("failed to parse library: %w", err)
	}

	lib := &Library{commands: make(map[string]Command, len(doc.Commands))}
	for name, e := range doc.Commands {
		cmd, err := resolve(name, e)
		if err != nil {
			return nil, err
		}
		lib.commands[name] = cmd
	}
	return lib, nil
}

// LoadFile reads a YAML library from disk
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	defer func() { _ = f.Close() }()

	lib, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

func resolve(name string, e entry) (Command, error) {
	cmd := Command{Name: name, Description: e.Description}

	switch {
	case e.Bytes != "" && len(e.Timing) > 0:
		return cmd, fmt.Errorf("%w: %q sets both bytes and timing", ErrInvalidEntry, name)
	case e.Bytes != "":
		data, err := midea.ParseHex(e.Bytes)
		if err != nil {
			return cmd, fmt.Errorf("%w: %q: %w", ErrInvalidEntry, name, err)
		}
		cmd.Bytes = data
	case len(e.Timing) > 0:
		cmd.Timing = make([]midea.Ticks, len(e.Timing))
		for i, v := range e.Timing {
			if v == 0 || v > uint32(midea.MaxTicks) {
				return cmd, fmt.Errorf("%w: %q: timing value %d at offset %d out of range",
					ErrInvalidEntry, name, v, i)
			}
			cmd.Timing[i] = midea.Ticks(v)
		}
	default:
		return cmd, fmt.Errorf("%w: %q needs bytes or timing", ErrInvalidEntry, name)
	}
	return cmd, nil
}

// Lookup returns the named command
func (l *Library) Lookup(name string) (Command, error) {
	cmd, ok := l.commands[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd, nil
}

// Names returns the command names in sorted order
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.commands))
	for name := range l.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of commands
func (l *Library) Len() int {
	return len(l.commands)
}
