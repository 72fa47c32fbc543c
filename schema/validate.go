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
	"encoding/json"
	"strconv"
)

// Validate checks a loosely-typed input map against the compiled schema and
// returns the strictly-typed projection of it. Unknown input fields are
// dropped; absent optional fields stay absent in the output. On failure the
// returned error is an *Error carrying every field failure found.
//
// A nil input map is treated as an empty one, so a missing or unparsable
// request body surfaces as "is required" failures rather than a hard error.
func (s *Schema) Validate(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s.fields))
	verr := &Error{}

	s.validateInto(in, "", out, verr)

	if !verr.empty() {
		return nil, verr
	}
	return out, nil
}

// validateInto validates one object level, writing accepted values to out
// and failures to verr under the given path prefix.
func (s *Schema) validateInto(in map[string]any, prefix string, out map[string]any, verr *Error) {
	for name, cf := range s.fields {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		value, present := in[name]
		if !present {
			if !cf.field.optional {
				verr.add(path, "is required")
			}
			continue
		}

		if value == nil {
			if cf.field.nullable {
				out[name] = nil
			} else {
				verr.add(path, "must not be null")
			}
			continue
		}

		if accepted, ok := cf.validate(path, value, verr); ok {
			out[name] = accepted
		}
	}
}

// validate coerces and checks a single present, non-nil value.
func (cf *compiledField) validate(path string, value any, verr *Error) (any, bool) {
	switch cf.field.kind {
	case kindString:
		s, ok := value.(string)
		if !ok {
			verr.add(path, "must be a string")
			return nil, false
		}
		return s, true

	case kindNumber:
		n, ok := coerceNumber(value)
		if !ok {
			verr.add(path, "must be a number")
			return nil, false
		}
		return n, true

	case kindBoolean:
		b, ok := coerceBoolean(value)
		if !ok {
			verr.add(path, "must be a boolean")
			return nil, false
		}
		return b, true

	case kindArray:
		return cf.validateArray(path, value, verr)

	case kindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			verr.add(path, "must be an object")
			return nil, false
		}
		out := make(map[string]any, len(cf.sub.fields))
		before := len(verr.Fields)
		cf.sub.validateInto(obj, path, out, verr)
		if len(verr.Fields) > before {
			return nil, false
		}
		return out, true
	}

	verr.add(path, "has an unsupported type")
	return nil, false
}

// validateArray validates each element independently so every failing index
// is reported, not just the first.
func (cf *compiledField) validateArray(path string, value any, verr *Error) (any, bool) {
	elems, ok := asSlice(value)
	if !ok {
		verr.add(path, "must be an array")
		return nil, false
	}

	out := make([]any, 0, len(elems))
	failed := false
	for i, elem := range elems {
		elemPath := path + "." + strconv.Itoa(i)
		if elem == nil {
			if cf.elem != nil && cf.elem.field.nullable {
				out = append(out, nil)
				continue
			}
			verr.add(elemPath, "must not be null")
			failed = true
			continue
		}
		accepted, ok := cf.elem.validate(elemPath, elem, verr)
		if !ok {
			failed = true
			continue
		}
		out = append(out, accepted)
	}

	if failed {
		return nil, false
	}
	return out, true
}

// asSlice normalizes the slice shapes that reach the validator: []any from
// decoded JSON and []string from repeated query parameters.
func asSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		elems := make([]any, len(v))
		for i, s := range v {
			elems[i] = s
		}
		return elems, true
	default:
		return nil, false
	}
}

// coerceNumber accepts native numeric values and strings that parse fully
// as a number. The output is always float64.
func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// coerceBoolean accepts native booleans and the exact strings "true"/"1"
// and "false"/"0". Any other string is rejected.
func coerceBoolean(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch v {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		default:
			return false, false
		}
	default:
		return false, false
	}
}
