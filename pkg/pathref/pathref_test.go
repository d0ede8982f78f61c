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

package pathref_test

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/gocp/pkg/pathref"
	"github.com/walteh/gocp/pkg/testutils"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, fsys afero.Fs, root string)
		path     string
		wantKind pathref.Kind
	}{
		{
			name:     "missing",
			setup:    func(t *testing.T, fsys afero.Fs, root string) {},
			path:     "nope.txt",
			wantKind: pathref.KindMissing,
		},
		{
			name: "regular_file",
			setup: func(t *testing.T, fsys afero.Fs, root string) {
				testutils.WriteTree(t, fsys, root, map[string]string{"a.txt": "hi"})
			},
			path:     "a.txt",
			wantKind: pathref.KindFile,
		},
		{
			name: "empty_file",
			setup: func(t *testing.T, fsys afero.Fs, root string) {
				testutils.WriteTree(t, fsys, root, map[string]string{"empty": ""})
			},
			path:     "empty",
			wantKind: pathref.KindFile,
		},
		{
			name: "directory",
			setup: func(t *testing.T, fsys afero.Fs, root string) {
				testutils.WriteTree(t, fsys, root, map[string]string{"sub/": ""})
			},
			path:     "sub",
			wantKind: pathref.KindDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			root := "/work"
			require.NoError(t, fsys.MkdirAll(root, 0o755))
			tt.setup(t, fsys, root)

			ref, err := pathref.Classify(fsys, filepath.Join(root, tt.path))
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, ref.Kind)
			assert.Equal(t, filepath.Join(root, tt.path), ref.Path)
			assert.Equal(t, tt.wantKind != pathref.KindMissing, ref.Exists())
			assert.Equal(t, tt.wantKind == pathref.KindDir, ref.IsDir())
		})
	}
}

func TestClassifyPermissionDeniedIsNotMissing(t *testing.T) {
	fsys := testutils.NewFailFs(afero.NewMemMapFs()).
		FailOn(testutils.OpStat, "/locked/file", syscall.EACCES)

	_, err := pathref.Classify(fsys, "/locked/file")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "checking /locked/file")
}

func TestClassifyFollowsSymlinks(t *testing.T) {
	root := t.TempDir()
	fsys := afero.NewOsFs()
	testutils.WriteTree(t, fsys, root, map[string]string{"real/x.txt": "x"})
	link := filepath.Join(root, "link")
	if err := os.Symlink(filepath.Join(root, "real"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	ref, err := pathref.Classify(fsys, link)
	require.NoError(t, err)
	assert.Equal(t, pathref.KindDir, ref.Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "missing", pathref.KindMissing.String())
	assert.Equal(t, "file", pathref.KindFile.String())
	assert.Equal(t, "directory", pathref.KindDir.String())
	assert.Equal(t, "unknown", pathref.Kind(42).String())
}
