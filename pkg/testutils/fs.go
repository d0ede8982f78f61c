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

// Package testutils holds filesystem fixtures shared by the package tests.
package testutils

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// 🎯 Op names a filesystem call that FailFs can break
type Op string

const (
	OpStat     Op = "stat"
	OpOpen     Op = "open"
	OpOpenFile Op = "openfile"
	OpMkdirAll Op = "mkdirall"
	OpRename   Op = "rename"
	OpWrite    Op = "write"
)

type failKey struct {
	op   Op
	path string
}

// 💥 FailFs wraps an afero.Fs and returns injected errors for chosen (op, path) pairs.
// For OpRename the path is the rename target, for OpWrite it is the directory the
// file is being created in.
type FailFs struct {
	afero.Fs

	mu    sync.Mutex
	fails map[failKey]error
}

// NewFailFs wraps base
func NewFailFs(base afero.Fs) *FailFs {
	return &FailFs{Fs: base, fails: make(map[failKey]error)}
}

// FailOn makes op on path return err
func (f *FailFs) FailOn(op Op, path string, err error) *FailFs {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fails[failKey{op: op, path: filepath.Clean(path)}] = err
	return f
}

func (f *FailFs) failure(op Op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fails[failKey{op: op, path: filepath.Clean(path)}]
}

func (f *FailFs) Stat(name string) (os.FileInfo, error) {
	if err := f.failure(OpStat, name); err != nil {
		return nil, &os.PathError{Op: "stat", Path: name, Err: err}
	}
	return f.Fs.Stat(name)
}

func (f *FailFs) Open(name string) (afero.File, error) {
	if err := f.failure(OpOpen, name); err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.Open(name)
}

func (f *FailFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := f.failure(OpOpenFile, name); err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	if werr := f.failure(OpWrite, filepath.Dir(name)); werr != nil {
		return &failingFile{File: file, err: werr}, nil
	}
	return file, nil
}

func (f *FailFs) MkdirAll(path string, perm os.FileMode) error {
	if err := f.failure(OpMkdirAll, path); err != nil {
		return &os.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return f.Fs.MkdirAll(path, perm)
}

func (f *FailFs) Rename(oldname, newname string) error {
	if err := f.failure(OpRename, newname); err != nil {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: err}
	}
	return f.Fs.Rename(oldname, newname)
}

// failingFile writes half of the first buffer and then fails. Every write
// path goes through Write, so io.Copy and WriterTo sources hit the failure.
type failingFile struct {
	afero.File
	err error
}

func (f *failingFile) Write(p []byte) (int, error) {
	n, _ := f.File.Write(p[:len(p)/2])
	return n, f.err
}

func (f *failingFile) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

func (f *failingFile) WriteAt(p []byte, off int64) (int, error) {
	return f.Write(p)
}

func (f *failingFile) ReadFrom(r io.Reader) (int64, error) {
	return io.Copy(struct{ io.Writer }{f}, r)
}

// 🌳 WriteTree creates files (path -> content) under root on fsys.
// A path ending in "/" creates an empty directory.
func WriteTree(t testing.TB, fsys afero.Fs, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, fsys.MkdirAll(p, 0o755), "creating dir %s", rel)
			continue
		}
		require.NoError(t, fsys.MkdirAll(filepath.Dir(p), 0o755), "creating parent of %s", rel)
		require.NoError(t, afero.WriteFile(fsys, p, []byte(content), 0o644), "writing %s", rel)
	}
}

// 📋 ReadTree returns every regular file under root as slash-separated relative
// path -> content, and every directory as a path with a trailing "/".
func ReadTree(t testing.TB, fsys afero.Fs, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := afero.Walk(fsys, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		content, err := afero.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		out[rel] = string(content)
		return nil
	})
	require.NoError(t, err, "walking %s", root)
	return out
}
