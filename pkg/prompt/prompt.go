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

// Package prompt asks yes/no questions over a line-oriented terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/gocp/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🙋 Confirmer asks the user whether an existing destination may be replaced
type Confirmer interface {
	ConfirmOverwrite(ctx context.Context, path string) (bool, error)
}

// 💬 LinePrompter reads whole lines from in and writes questions to out.
// End of input counts as "no".
type LinePrompter struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	styled bool
}

var _ Confirmer = (*LinePrompter)(nil)

// NewLinePrompter creates a prompter over in and out
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:     bufio.NewReader(in),
		out:    out,
		styled: log.IsTerminal(out),
	}
}

// ConfirmOverwrite prints "Overwrite <path>? [y/N]: " and accepts only y or Y
func (p *LinePrompter) ConfirmOverwrite(ctx context.Context, path string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	shown, choices := path, "[y/N]"
	if p.styled {
		shown = color.New(color.Bold).Sprint(path)
		choices = color.New(color.Faint).Sprint(choices)
	}

	if _, err := fmt.Fprintf(p.out, "Overwrite %s? %s: ", shown, choices); err != nil {
		return false, errors.Errorf("writing prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, errors.Errorf("reading answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		// keep the next output off the prompt line
		fmt.Fprintln(p.out)
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("end of input at prompt, declining")
		return false, nil
	}

	answer := strings.TrimSpace(line)
	zerolog.Ctx(ctx).Debug().Str("path", path).Str("answer", answer).Msg("overwrite prompt answered")
	return strings.EqualFold(answer, "y"), nil
}
