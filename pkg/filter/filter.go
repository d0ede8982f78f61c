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

// Package filter decides which entries of a source tree are left out of a copy.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Matcher matches slash-separated paths relative to the source root
type Matcher struct {
	rules []rule
}

type rule struct {
	pattern string // as given, for reporting
	glob    string // pattern with any trailing slash removed
	dirOnly bool
}

// New validates patterns and returns a Matcher. An empty list matches nothing.
// A trailing slash restricts a pattern to directories, as in "node_modules/".
func New(patterns []string) (*Matcher, error) {
	rules := make([]rule, 0, len(patterns))
	for _, p := range patterns {
		glob := strings.TrimRight(p, "/")
		if glob == "" || !doublestar.ValidatePattern(glob) {
			return nil, errors.Errorf("invalid exclude pattern %q", p)
		}
		rules = append(rules, rule{pattern: p, glob: glob, dirOnly: glob != p})
	}
	return &Matcher{rules: rules}, nil
}

// Match reports whether rel is excluded and which pattern excluded it.
// A pattern without a slash also matches the base name at any depth.
func (m *Matcher) Match(rel string, isDir bool) (string, bool) {
	if m == nil || len(m.rules) == 0 {
		return "", false
	}

	rel = filepath.ToSlash(rel)
	base := rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		base = rel[i+1:]
	}

	for _, r := range m.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if doublestar.MatchUnvalidated(r.glob, rel) {
			return r.pattern, true
		}
		if !strings.Contains(r.glob, "/") && doublestar.MatchUnvalidated(r.glob, base) {
			return r.pattern, true
		}
	}
	return "", false
}
