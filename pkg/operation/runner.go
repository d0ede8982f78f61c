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

	"github.com/rs/zerolog"
	"github.com/walteh/gocp/pkg/pathref"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Run copies Options.Source to Options.Destination.
//
// A missing source and a directory source without Recursive are rejected
// before the destination is looked at.
func (c *Copier) Run(ctx context.Context) (Outcome, error) {
	src, dst := c.opts.Source, c.opts.Destination
	logger := zerolog.Ctx(ctx)

	ref, err := pathref.Classify(c.fs, src)
	if err != nil {
		return OutcomeFailed, &IOError{Op: "reading source", Source: src, Err: err}
	}

	logger.Debug().Str("source", src).Str("kind", ref.Kind.String()).Msg("classified source")

	switch {
	case !ref.Exists():
		return OutcomeFailed, errors.Errorf("%w: %s", ErrSourceMissing, src)
	case ref.IsDir() && !c.opts.Recursive:
		return OutcomeFailed, errors.WithStack(ErrDirectoryWithoutRecursion)
	case ref.IsDir():
		return c.CopyDir(ctx, src, dst)
	default:
		return c.CopyFile(ctx, src, dst)
	}
}
