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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/walteh/gocp/pkg/log"
	"github.com/walteh/gocp/pkg/operation"
	"github.com/walteh/gocp/pkg/prompt"
)

// 🧪 testEnv is a copier wired to in-memory output
type testEnv struct {
	ctx    context.Context
	fs     afero.Fs
	out    *bytes.Buffer
	copier *operation.Copier
}

// 🧪 newTestEnv creates a copier over fsys; answers feed the overwrite prompt line by line
func newTestEnv(t *testing.T, fsys afero.Fs, opts operation.Options, answers ...string) *testEnv {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())
	out := &bytes.Buffer{}

	var input string
	if len(answers) > 0 {
		input = strings.Join(answers, "\n") + "\n"
	}

	c, err := operation.New(opts, operation.Env{
		Fs:        fsys,
		Confirmer: prompt.NewLinePrompter(strings.NewReader(input), out),
		Console:   log.New(out, &bytes.Buffer{}, logger),
	})
	require.NoError(t, err, "creating copier")

	return &testEnv{ctx: ctx, fs: fsys, out: out, copier: c}
}

// lines returns the non-empty output lines
func (e *testEnv) lines() []string {
	var out []string
	for _, l := range strings.Split(e.out.String(), "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// 📋 countingConfirmer records every prompt and always answers the same
type countingConfirmer struct {
	answer bool
	asked  []string
}

func (c *countingConfirmer) ConfirmOverwrite(ctx context.Context, path string) (bool, error) {
	c.asked = append(c.asked, path)
	return c.answer, nil
}
