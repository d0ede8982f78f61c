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

// Package atomicfile writes files so that readers see either the old content or
// the complete new content, never a partial write.
package atomicfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// DefaultPerm is the mode given to files created by Write
const DefaultPerm os.FileMode = 0o644

// TempSuffix marks in-flight temp files
const TempSuffix = ".gocp-tmp"

// ErrIsDirectory is returned when the target of a write is an existing directory
var ErrIsDirectory = errors.Base("is a directory")

// TempName returns the temp file path used while writing dst
func TempName(dst string) string {
	return filepath.Join(filepath.Dir(dst), fmt.Sprintf(".%s.%s%s", filepath.Base(dst), uuid.NewString(), TempSuffix))
}

// 💾 Write copies r into dst on fsys.
//
// The bytes go to a temp file next to dst which is synced and then renamed over
// dst, so an existing dst is replaced in one step and is left untouched if
// anything fails. The temp file is removed on failure.
func Write(fsys afero.Fs, dst string, r io.Reader) (written int64, err error) {
	if info, serr := fsys.Stat(dst); serr == nil && info.IsDir() {
		return 0, errors.Errorf("writing %s: %w", dst, ErrIsDirectory)
	}

	tmp := TempName(dst)
	f, err := fsys.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultPerm)
	if err != nil {
		return 0, errors.Errorf("creating temp file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = fsys.Remove(tmp)
		}
	}()

	written, err = io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		return written, errors.Errorf("writing temp file: %w", err)
	}

	if err = f.Sync(); err != nil {
		_ = f.Close()
		return written, errors.Errorf("syncing temp file: %w", err)
	}

	if err = f.Close(); err != nil {
		return written, errors.Errorf("closing temp file: %w", err)
	}

	if err = fsys.Rename(tmp, dst); err != nil {
		return written, errors.Errorf("renaming temp file: %w", err)
	}

	return written, nil
}

// 📄 CopyFile copies the contents of src to dst on fsys with Write
func CopyFile(fsys afero.Fs, src, dst string) (int64, error) {
	in, err := fsys.Open(src)
	if err != nil {
		return 0, errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	return Write(fsys, dst, in)
}
