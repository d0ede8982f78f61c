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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrSourceMissing is returned when the source path does not exist
	ErrSourceMissing = errors.Base("Source path does not exist")
	// ErrDirectoryWithoutRecursion is returned for a directory source without Recursive
	ErrDirectoryWithoutRecursion = errors.Base("Source is a directory. Use the -r flag to copy directories recursively.")
	// ErrCopyIntoSelf is returned when the destination lies inside the source directory
	ErrCopyIntoSelf = errors.Base("cannot copy a directory into itself")
	// ErrIO matches every *IOError
	ErrIO = errors.Base("i/o failure")
)

// 💥 IOError is a failed filesystem call during a copy, with the paths it concerned
type IOError struct {
	Op          string // what was being done, e.g. "copying" or "listing directory"
	Source      string
	Destination string
	Err         error
}

func (e *IOError) Error() string {
	switch {
	case e.Source != "" && e.Destination != "":
		return fmt.Sprintf("%s %s to %s: %v", e.Op, e.Source, e.Destination, e.Err)
	case e.Source != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Destination, e.Err)
	}
}

func (e *IOError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrIO) true for any IOError
func (e *IOError) Is(target error) bool { return target == ErrIO }
