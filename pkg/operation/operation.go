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

package operation

import (
	"context"

	"github.com/spf13/afero"
	"github.com/walteh/gocp/pkg/filter"
	"github.com/walteh/gocp/pkg/log"
	"github.com/walteh/gocp/pkg/prompt"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options is everything a single invocation asked for. It is built once and
// not changed afterwards.
type Options struct {
	Source      string
	Destination string
	Recursive   bool
	Verbose     bool
	Interactive bool
	// Exclude holds doublestar patterns matched against paths relative to
	// the source directory. Only used by recursive copies.
	Exclude []string
}

// ✅ Validate checks the options before anything touches the filesystem
func (o Options) Validate() error {
	if o.Source == "" {
		return errors.Errorf("source path is required")
	}
	if o.Destination == "" {
		return errors.Errorf("destination path is required")
	}
	if _, err := filter.New(o.Exclude); err != nil {
		return errors.Errorf("validating options: %w", err)
	}
	return nil
}

// 📊 Outcome is the result of one copy call
type Outcome int

const (
	OutcomeFailed Outcome = iota // the call returned an error
	OutcomeCopied                // the destination now holds the source content
	OutcomeSkipped               // the user declined to overwrite
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCopied:
		return "copied"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// 🔌 Env holds the collaborators a Copier talks to
type Env struct {
	// Fs defaults to the OS filesystem
	Fs afero.Fs
	// Confirmer is required when Options.Interactive is set
	Confirmer prompt.Confirmer
	// Console defaults to one that discards everything
	Console *log.Console
}

// 📦 Copier runs copies for one set of Options
type Copier struct {
	opts    Options
	fs      afero.Fs
	confirm prompt.Confirmer
	console *log.Console
	exclude *filter.Matcher
}

// 🏭 New creates a Copier
func New(opts Options, env Env) (*Copier, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Interactive && env.Confirmer == nil {
		return nil, errors.Errorf("confirmer is required in interactive mode")
	}

	exclude, err := filter.New(opts.Exclude)
	if err != nil {
		return nil, errors.Errorf("building exclude filter: %w", err)
	}

	if env.Fs == nil {
		env.Fs = afero.NewOsFs()
	}
	if env.Console == nil {
		env.Console = log.Discard()
	}

	return &Copier{
		opts:    opts,
		fs:      env.Fs,
		confirm: env.Confirmer,
		console: env.Console,
		exclude: exclude,
	}, nil
}

// ⚠️ checkContext turns a cancelled context into an error naming the path being worked on
func checkContext(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("interrupted at %s: %w", path, err)
	}
	return nil
}
