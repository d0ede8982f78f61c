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

// Package pathref classifies filesystem paths as missing, regular entries or directories.
package pathref

import (
	"io/fs"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 📊 Kind is the classification of a path
type Kind int

const (
	KindMissing Kind = iota // nothing at the path
	KindFile                // exists and is not a directory
	KindDir                 // exists and is a directory
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	default:
		return "unknown"
	}
}

// 📄 Ref is a path paired with its classification at the time it was checked
type Ref struct {
	Path string
	Kind Kind
}

// Exists reports whether anything was found at the path
func (r Ref) Exists() bool { return r.Kind != KindMissing }

// IsDir reports whether the path is a directory
func (r Ref) IsDir() bool { return r.Kind == KindDir }

// 🔍 Classify stats path on fsys, following symlinks.
//
// Only a not-exist result is reported as KindMissing. Every other stat failure
// (permission denied, a non-directory parent, I/O errors) is returned so the
// caller can tell an unreadable path from an absent one.
func Classify(fsys afero.Fs, path string) (Ref, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Ref{Path: path, Kind: KindMissing}, nil
		}
		return Ref{Path: path}, errors.Errorf("checking %s: %w", path, err)
	}

	if info.IsDir() {
		return Ref{Path: path, Kind: KindDir}, nil
	}
	return Ref{Path: path, Kind: KindFile}, nil
}
