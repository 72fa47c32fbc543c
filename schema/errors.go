// Copyright 2026 The Strada Authors
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

package schema

import (
	"errors"
	"sort"
	"strings"
)

// ErrValidation is a sentinel error for validation failures.
// Use errors.Is(err, ErrValidation) to detect validation errors without
// depending on the concrete *Error type.
var ErrValidation = errors.New("validation")

// Error aggregates every field failure found in one Validate call, keyed by
// field path ("count", "owner.id", "tags.2"). Validation never stops at the
// first failing field, so callers can report all problems at once.
type Error struct {
	Fields map[string]string
}

// Error returns all field failures joined as "path: message" pairs in
// sorted path order, so the message is deterministic.
func (e *Error) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for path := range e.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var sb strings.Builder
	for i, path := range paths {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(path)
		sb.WriteString(": ")
		sb.WriteString(e.Fields[path])
	}
	return sb.String()
}

// Unwrap returns ErrValidation for errors.Is compatibility.
func (e *Error) Unwrap() error {
	return ErrValidation
}

// add records one field failure. The first message per path wins.
func (e *Error) add(path, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, dup := e.Fields[path]; !dup {
		e.Fields[path] = message
	}
}

// empty reports whether no failures were recorded.
func (e *Error) empty() bool {
	return len(e.Fields) == 0
}
