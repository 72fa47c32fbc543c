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

// kind enumerates the primitive field kinds a schema can declare.
type kind int

const (
	kindString kind = iota
	kindNumber
	kindBoolean
	kindArray
	kindObject
)

// String returns the human-readable name of the kind, used in error messages.
func (k kind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindBoolean:
		return "boolean"
	case kindArray:
		return "array"
	case kindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Field declares the expected type of a single input field. Fields are
// values; the marker methods (Optional, Nullable) return modified copies so
// declarations compose without shared state:
//
//	schema.Fields{
//	    "name":  schema.String(),
//	    "count": schema.Number().Optional(),
//	    "tags":  schema.Array(schema.String()),
//	    "owner": schema.Object(schema.Fields{"id": schema.String()}),
//	}
type Field struct {
	kind     kind
	optional bool
	nullable bool
	elem     *Field // element type for arrays
	fields   Fields // sub-fields for objects
}

// Fields maps field name to its declared type. It is the declarative input
// to Compile.
type Fields map[string]Field

// String declares a required string field.
func String() Field { return Field{kind: kindString} }

// Number declares a required numeric field. String inputs that parse fully
// as a number are coerced; anything else fails validation.
func Number() Field { return Field{kind: kindNumber} }

// Boolean declares a required boolean field. The strings "true"/"1" and
// "false"/"0" are coerced; any other string fails validation.
func Boolean() Field { return Field{kind: kindBoolean} }

// Array declares a field holding an array of elem. Every element is
// validated independently and element failures are reported by index.
func Array(elem Field) Field {
	return Field{kind: kindArray, elem: &elem}
}

// Object declares a nested object field validated against its own sub-schema.
func Object(fields Fields) Field {
	return Field{kind: kindObject, fields: fields}
}

// Optional marks the field as allowed to be absent. Absent optional fields
// are omitted from the output, never defaulted.
func (f Field) Optional() Field {
	f.optional = true
	return f
}

// Nullable marks the field as allowed to carry an explicit null.
func (f Field) Nullable() Field {
	f.nullable = true
	return f
}

// compiledField is a Field with its nested object schema pre-compiled.
type compiledField struct {
	field Field
	sub   *Schema // non-nil for object fields
	elem  *compiledField
}

// Schema is a compiled, reusable validator built once from a Fields
// declaration. A Schema is immutable after Compile and safe for concurrent
// use across requests.
type Schema struct {
	fields map[string]*compiledField
}

// Compile builds a reusable validator from a field declaration. Nested
// object and array types are compiled recursively so Validate does no
// per-call schema work. Compile(nil) returns nil, which Validate-callers
// treat as "no schema".
func Compile(fields Fields) *Schema {
	if fields == nil {
		return nil
	}

	compiled := make(map[string]*compiledField, len(fields))
	for name, f := range fields {
		compiled[name] = compileField(f)
	}
	return &Schema{fields: compiled}
}

func compileField(f Field) *compiledField {
	cf := &compiledField{field: f}
	switch f.kind {
	case kindObject:
		cf.sub = Compile(f.fields)
	case kindArray:
		if f.elem != nil {
			cf.elem = compileField(*f.elem)
		}
	}
	return cf
}
