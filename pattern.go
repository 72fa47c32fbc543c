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

package strada

import (
	"fmt"
	"regexp"
	"strings"
)

// compilePattern converts a path template into an anchored regular
// expression and the ordered list of parameter names it captures.
//
// The template is scanned left to right in two modes. A ':' switches to
// parameter mode: the name runs until the next delimiter ('/', '.' or '-')
// or end of string, and a capturing group matching any run of non-'/'
// characters is emitted. Everything else is literal and is regex-escaped,
// so a '.' in a template matches only a literal dot. Because parameter
// names stop at '.' and '-', a literal suffix can follow a parameter
// directly: "/files/:name.pdf" captures "name" and requires the ".pdf"
// suffix verbatim.
//
// The result matches whole paths only, never prefixes.
func compilePattern(template string) (*regexp.Regexp, []string, error) {
	var sb strings.Builder
	sb.WriteByte('^')

	var paramNames []string
	i := 0
	for i < len(template) {
		if template[i] != ':' {
			// Literal span: up to the next parameter marker.
			j := strings.IndexByte(template[i:], ':')
			if j < 0 {
				j = len(template) - i
			}
			sb.WriteString(regexp.QuoteMeta(template[i : i+j]))
			i += j
			continue
		}

		// Parameter: name runs until a delimiter or end of string.
		i++ // consume ':'
		start := i
		for i < len(template) && !isParamDelimiter(template[i]) {
			i++
		}
		if i == start {
			return nil, nil, fmt.Errorf("pattern %q at offset %d: %w", template, start-1, ErrEmptyParameterName)
		}
		paramNames = append(paramNames, template[start:i])
		sb.WriteString(`([^/]+)`)
	}

	sb.WriteByte('$')

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, nil, fmt.Errorf("pattern %q: %w", template, err)
	}
	return re, paramNames, nil
}

// isParamDelimiter reports whether c terminates a parameter name.
func isParamDelimiter(c byte) bool {
	return c == '/' || c == '.' || c == '-'
}

// joinPath concatenates two path fragments. An empty fragment is the
// identity element and duplicate separators at the junction collapse, so
// joinPath("/api/", "/users") == "/api/users".
func joinPath(base, path string) string {
	if base == "" {
		return path
	}
	if path == "" {
		return base
	}

	baseSlash := strings.HasSuffix(base, "/")
	pathSlash := strings.HasPrefix(path, "/")
	switch {
	case baseSlash && pathSlash:
		return base + path[1:]
	case !baseSlash && !pathSlash:
		return base + "/" + path
	default:
		return base + path
	}
}
