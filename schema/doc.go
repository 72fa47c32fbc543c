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

// Package schema provides a minimal type-coercing validator for
// loosely-typed request input such as query parameters and JSON bodies.
//
// A declarative field-type map is compiled once into a reusable Schema:
//
//	s := schema.Compile(schema.Fields{
//	    "name":  schema.String(),
//	    "count": schema.Number().Optional(),
//	})
//
//	out, err := s.Validate(map[string]any{"count": "42", "extra": true})
//	// out == map[string]any{"count": float64(42)} — "name" missing is an
//	// error; "extra" is silently dropped.
//
// Validation is a narrowing projection: unknown input fields never appear
// in the output, and numeric/boolean text coercion is applied because
// inputs commonly arrive as strings (query parameters, form values).
// All field failures are collected before returning, keyed by field path,
// so callers can render complete 400 error bodies in one pass.
package schema
