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

package operation_test

import (
	"syscall"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/gocp/pkg/operation"
	"github.com/walteh/gocp/pkg/testutils"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name        string
		opts        operation.Options
		wantOutcome operation.Outcome
		wantIs      error
		wantErr     string
		wantDst     map[string]string
	}{
		{
			name:        "file",
			opts:        operation.Options{Source: "/in/a.txt", Destination: "/out/a.txt"},
			wantOutcome: operation.OutcomeCopied,
			wantDst:     map[string]string{"a.txt": "a"},
		},
		{
			name:        "file_with_recursive_flag",
			opts:        operation.Options{Source: "/in/a.txt", Destination: "/out/a.txt", Recursive: true},
			wantOutcome: operation.OutcomeCopied,
			wantDst:     map[string]string{"a.txt": "a"},
		},
		{
			name:        "directory",
			opts:        operation.Options{Source: "/in", Destination: "/out", Recursive: true},
			wantOutcome: operation.OutcomeCopied,
			wantDst:     map[string]string{"a.txt": "a", "sub/": "", "sub/b.txt": "b"},
		},
		{
			name:        "missing_source",
			opts:        operation.Options{Source: "/nope", Destination: "/out/x"},
			wantOutcome: operation.OutcomeFailed,
			wantIs:      operation.ErrSourceMissing,
			wantErr:     "Source path does not exist: /nope",
			wantDst:     map[string]string{},
		},
		{
			name:        "directory_without_recursive",
			opts:        operation.Options{Source: "/in", Destination: "/out/copy"},
			wantOutcome: operation.OutcomeFailed,
			wantIs:      operation.ErrDirectoryWithoutRecursion,
			wantErr:     "Source is a directory. Use the -r flag to copy directories recursively.",
			wantDst:     map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			testutils.WriteTree(t, fsys, "/in", map[string]string{"a.txt": "a", "sub/b.txt": "b"})
			require.NoError(t, fsys.MkdirAll("/out", 0o755))
			env := newTestEnv(t, fsys, tt.opts)

			outcome, err := env.copier.Run(env.ctx)
			assert.Equal(t, tt.wantOutcome, outcome)
			if tt.wantIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantIs)
				assert.NotErrorIs(t, err, operation.ErrIO)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantDst, testutils.ReadTree(t, fsys, "/out"))
			assert.Equal(t, map[string]string{"a.txt": "a", "sub/": "", "sub/b.txt": "b"}, testutils.ReadTree(t, fsys, "/in"))
		})
	}
}

func TestRunSourceUnreadable(t *testing.T) {
	base := afero.NewMemMapFs()
	testutils.WriteTree(t, base, "/locked", map[string]string{"a.txt": "a"})
	fsys := testutils.NewFailFs(base).FailOn(testutils.OpStat, "/locked/a.txt", syscall.EACCES)
	env := newTestEnv(t, fsys, operation.Options{Source: "/locked/a.txt", Destination: "/out.txt"})

	_, err := env.copier.Run(env.ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, operation.ErrIO)
	assert.ErrorIs(t, err, syscall.EACCES)
	assert.NotErrorIs(t, err, operation.ErrSourceMissing, "permission denied is not reported as missing")
	assert.Contains(t, err.Error(), "reading source /locked/a.txt")
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    operation.Options
		env     operation.Env
		wantErr string
	}{
		{
			name: "valid",
			opts: operation.Options{Source: "a", Destination: "b"},
		},
		{
			name:    "missing_source",
			opts:    operation.Options{Destination: "b"},
			wantErr: "source path is required",
		},
		{
			name:    "missing_destination",
			opts:    operation.Options{Source: "a"},
			wantErr: "destination path is required",
		},
		{
			name:    "bad_exclude",
			opts:    operation.Options{Source: "a", Destination: "b", Exclude: []string{"[oops"}},
			wantErr: `invalid exclude pattern "[oops"`,
		},
		{
			name:    "interactive_needs_confirmer",
			opts:    operation.Options{Source: "a", Destination: "b", Interactive: true},
			wantErr: "confirmer is required in interactive mode",
		},
		{
			name: "interactive_with_confirmer",
			opts: operation.Options{Source: "a", Destination: "b", Interactive: true},
			env:  operation.Env{Confirmer: &countingConfirmer{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := operation.New(tt.opts, tt.env)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "copied", operation.OutcomeCopied.String())
	assert.Equal(t, "skipped", operation.OutcomeSkipped.String())
	assert.Equal(t, "failed", operation.OutcomeFailed.String())
}

func TestIOErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *operation.IOError
		want string
	}{
		{
			name: "pair",
			err:  &operation.IOError{Op: "copying", Source: "/a", Destination: "/b", Err: syscall.ENOSPC},
			want: "copying /a to /b: " + syscall.ENOSPC.Error(),
		},
		{
			name: "source_only",
			err:  &operation.IOError{Op: "listing directory", Source: "/a", Err: syscall.EACCES},
			want: "listing directory /a: " + syscall.EACCES.Error(),
		},
		{
			name: "destination_only",
			err:  &operation.IOError{Op: "creating directory", Destination: "/b", Err: syscall.EROFS},
			want: "creating directory /b: " + syscall.EROFS.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, operation.ErrIO)
		})
	}
}
