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
	"github.com/walteh/gocp/pkg/atomicfile"
	"github.com/walteh/gocp/pkg/pathref"
)

// 📄 CopyFile copies the file at src to dst.
//
// src must not be a directory. In interactive mode an existing dst is only
// replaced after the user confirms; a decline returns OutcomeSkipped and
// leaves dst as it was. dst ends up byte-identical to src or, on error,
// unchanged.
func (c *Copier) CopyFile(ctx context.Context, src, dst string) (Outcome, error) {
	logger := zerolog.Ctx(ctx).With().Str("source", src).Str("destination", dst).Logger()

	if err := checkContext(ctx, src); err != nil {
		return OutcomeFailed, err
	}

	if c.opts.Interactive {
		ref, err := pathref.Classify(c.fs, dst)
		if err != nil {
			return OutcomeFailed, &IOError{Op: "copying", Source: src, Destination: dst, Err: err}
		}

		if ref.Exists() {
			ok, err := c.confirm.ConfirmOverwrite(ctx, dst)
			if err != nil {
				return OutcomeFailed, &IOError{Op: "confirming overwrite of", Destination: dst, Err: err}
			}
			if !ok {
				logger.Debug().Msg("overwrite declined")
				c.console.NotOverwriting(dst)
				return OutcomeSkipped, nil
			}
		}
	}

	logger.Debug().Msg("copying file")

	written, err := atomicfile.CopyFile(c.fs, src, dst)
	if err != nil {
		return OutcomeFailed, &IOError{Op: "copying", Source: src, Destination: dst, Err: err}
	}

	logger.Debug().Int64("bytes", written).Msg("file copied")

	if c.opts.Verbose {
		c.console.FileCopied(src, dst)
	}

	return OutcomeCopied, nil
}
