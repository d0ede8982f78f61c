// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log is the user-facing console of gocp: verbose notices, skip notices
// and error reports, each mirrored to a zerolog logger.
package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎯 Console writes notices to out and errors to errOut. Decoration is only
// added on writers that are terminals.
type Console struct {
	zlog      zerolog.Logger
	out       io.Writer
	errOut    io.Writer
	styledOut bool
	styledErr bool
	mu        sync.Mutex
}

// 🏭 New creates a console. zlog receives a debug-level copy of every line.
func New(out, errOut io.Writer, zlog zerolog.Logger) *Console {
	return &Console{
		zlog:      zlog,
		out:       out,
		errOut:    errOut,
		styledOut: IsTerminal(out),
		styledErr: IsTerminal(errOut),
	}
}

// Discard returns a console that prints nothing
func Discard() *Console {
	return New(io.Discard, io.Discard, zerolog.Nop())
}

// 🖥️ IsTerminal reports whether w is a file attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// 📝 FileCopied prints "Copied <src> to <dst>"
func (c *Console) FileCopied(src, dst string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "Copied %s to %s\n", src, dst)
	c.zlog.Debug().Str("source", src).Str("destination", dst).Msg("file copied")
}

// 📝 DirCopied prints "Recursively copied directory <src> to <dst>"
func (c *Console) DirCopied(src, dst string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "Recursively copied directory %s to %s\n", src, dst)
	c.zlog.Debug().Str("source", src).Str("destination", dst).Msg("directory copied")
}

// 📝 NotOverwriting prints the notice for a declined overwrite
func (c *Console) NotOverwriting(dst string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := fmt.Sprintf("Not overwriting %s", dst)
	if c.styledOut {
		msg = color.New(color.FgYellow).Sprint(msg)
	}
	fmt.Fprintln(c.out, msg)
	c.zlog.Debug().Str("destination", dst).Msg("overwrite declined")
}

// ❌ Error reports a fatal error on errOut, as a pterm error box on a
// terminal and as the bare message otherwise
func (c *Console) Error(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.styledErr {
		pterm.Error.WithWriter(c.errOut).Println(err.Error())
	} else {
		fmt.Fprintln(c.errOut, err.Error())
	}
	c.zlog.Debug().Err(err).Msg("copy failed")
}
