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
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/gocp/pkg/pathref"
	"gitlab.com/tozd/go/errors"
)

// 📁 dirFrame is one directory on the work-list
type dirFrame struct {
	src     string
	dst     string
	rel     string // slash-separated, relative to the source root
	entries []os.FileInfo
	next    int
}

// 🌳 CopyDir copies the directory src and everything below it to dst.
//
// Destination directories are created as needed and entries that exist only
// under dst are left alone. Entries are visited in name order. The walk keeps
// its own stack, so tree depth is not limited by the goroutine stack. With
// Verbose a directory notice is printed after the directory's contents, so
// children are reported before their parents.
func (c *Copier) CopyDir(ctx context.Context, src, dst string) (Outcome, error) {
	logger := zerolog.Ctx(ctx)

	if err := c.checkNotInside(src, dst); err != nil {
		return OutcomeFailed, err
	}

	root, err := c.enterDir(ctx, src, dst, "")
	if err != nil {
		return OutcomeFailed, err
	}

	stack := []*dirFrame{root}
	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.next == len(top.entries) {
			stack = stack[:len(stack)-1]
			if c.opts.Verbose {
				c.console.DirCopied(top.src, top.dst)
			}
			continue
		}

		entry := top.entries[top.next]
		top.next++

		childSrc := filepath.Join(top.src, entry.Name())
		childDst := filepath.Join(top.dst, entry.Name())
		childRel := path.Join(top.rel, entry.Name())

		if err := checkContext(ctx, childSrc); err != nil {
			return OutcomeFailed, err
		}

		if pattern, ok := c.exclude.Match(childRel, c.excludeAsDir(childSrc, entry)); ok {
			logger.Debug().Str("path", childRel).Str("pattern", pattern).Msg("excluded by pattern")
			continue
		}

		ref, err := pathref.Classify(c.fs, childSrc)
		if err != nil {
			return OutcomeFailed, &IOError{Op: "copying", Source: childSrc, Destination: childDst, Err: err}
		}

		if ref.IsDir() {
			frame, err := c.enterDir(ctx, childSrc, childDst, childRel)
			if err != nil {
				return OutcomeFailed, err
			}
			stack = append(stack, frame)
			continue
		}

		if _, err := c.CopyFile(ctx, childSrc, childDst); err != nil {
			return OutcomeFailed, err
		}
	}

	return OutcomeCopied, nil
}

// excludeAsDir reports whether entry counts as a directory for exclude
// patterns. Symlinks count as what they point to, matching how they are copied.
func (c *Copier) excludeAsDir(src string, entry os.FileInfo) bool {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry.IsDir()
	}
	ref, err := pathref.Classify(c.fs, src)
	return err == nil && ref.IsDir()
}

// 📂 enterDir makes sure dst is a directory and lists src
func (c *Copier) enterDir(ctx context.Context, src, dst, rel string) (*dirFrame, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("source", src).Str("destination", dst).Msg("entering directory")

	ref, err := pathref.Classify(c.fs, dst)
	if err != nil {
		return nil, &IOError{Op: "creating directory", Destination: dst, Err: err}
	}

	switch {
	case !ref.Exists():
		if err := c.fs.MkdirAll(dst, 0o755); err != nil {
			return nil, &IOError{Op: "creating directory", Destination: dst, Err: err}
		}
	case !ref.IsDir():
		return nil, &IOError{Op: "creating directory", Destination: dst, Err: errors.Errorf("a file is in the way")}
	}

	// afero.ReadDir sorts by name
	entries, err := afero.ReadDir(c.fs, src)
	if err != nil {
		return nil, &IOError{Op: "listing directory", Source: src, Err: err}
	}

	return &dirFrame{src: src, dst: dst, rel: rel, entries: entries}, nil
}

// 🔒 checkNotInside refuses a destination equal to or below the source, which
// would otherwise keep growing the tree being walked
func (c *Copier) checkNotInside(src, dst string) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return errors.Errorf("resolving %s: %w", src, err)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return errors.Errorf("resolving %s: %w", dst, err)
	}

	rel, err := filepath.Rel(absSrc, absDst)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return errors.Errorf("%w: %s to %s", ErrCopyIntoSelf, src, dst)
	}
	return nil
}
