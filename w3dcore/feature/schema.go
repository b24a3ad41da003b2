/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package feature

import (
	"fmt"
	"slices"
	"sort"

	"dirpx.dev/w3d/w3dcore/validate"
)

// Hook runs after a successful write of one attribute. It receives the
// value that was committed.
type Hook func(value any)

// Field declares one attribute of a feature kind.
//
// Fields are built with Attr and refined with WithDefault, Required and
// OnSet. A Field is a value; the builders return modified copies.
type Field struct {
	name       string
	validator  validate.Validator
	def        any
	hasDefault bool
	required   bool
	hook       Hook
}

// Attr declares an attribute named name, constrained by v.
func Attr(name string, v validate.Validator) Field {
	return Field{name: name, validator: v}
}

// WithDefault returns a copy of f whose value, when never written, is def.
func (f Field) WithDefault(def any) Field {
	f.def = def
	f.hasDefault = true
	return f
}

// Required returns a copy of f that Validate reports when it is never
// written.
func (f Field) Required() Field {
	f.required = true
	return f
}

// OnSet returns a copy of f that runs hook after every successful write.
func (f Field) OnSet(hook Hook) Field {
	f.hook = hook
	return f
}

// Name returns the attribute name.
func (f Field) Name() string { return f.name }

// Validator returns the attribute's validator.
func (f Field) Validator() validate.Validator { return f.validator }

// Default returns the declared default and whether one exists.
func (f Field) Default() (any, bool) { return f.def, f.hasDefault }

// IsRequired reports whether the attribute must be written explicitly.
func (f Field) IsRequired() bool { return f.required }

// Schema is the immutable attribute table of one feature kind: the legal
// attribute names, their validators, defaults, required flags, post-write
// hooks and the order used to present them.
//
// A Schema is declared once per kind as a package-level variable and shared
// by every instance of that kind. Construction panics on programming errors
// (duplicate names, invalid defaults, a field both required and defaulted),
// so a broken table stops the process at startup.
type Schema struct {
	kind   string
	fields map[string]Field
	order  []string
}

// NewSchema builds the schema of kind from fields. The presentation order
// is the sorted list of field names; use WithOrder to override it.
func NewSchema(kind string, fields ...Field) *Schema {
	s := &Schema{kind: kind, fields: make(map[string]Field, len(fields))}
	for _, f := range fields {
		if f.name == "" || f.validator == nil {
			panic(fmt.Sprintf("feature: %s declares a field without name or validator", kind))
		}
		if _, dup := s.fields[f.name]; dup {
			panic(fmt.Sprintf("feature: %s declares %s twice", kind, f.name))
		}
		if f.required && f.hasDefault {
			panic(fmt.Sprintf("feature: %s.%s is both required and defaulted", kind, f.name))
		}
		if f.hasDefault && !f.validator.Validate(f.def) {
			panic(fmt.Sprintf("feature: default %v of %s.%s fails %q", f.def, kind, f.name, f.validator.Describe()))
		}
		s.fields[f.name] = f
		s.order = append(s.order, f.name)
	}
	sort.Strings(s.order)
	return s
}

// WithOrder returns a copy of s presenting attributes in the given order.
// names MUST list every attribute exactly once.
func (s *Schema) WithOrder(names ...string) *Schema {
	if len(names) != len(s.fields) {
		panic(fmt.Sprintf("feature: order for %s lists %d of %d attributes", s.kind, len(names), len(s.fields)))
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := s.fields[n]; !ok || seen[n] {
			panic(fmt.Sprintf("feature: order for %s has unknown or repeated attribute %s", s.kind, n))
		}
		seen[n] = true
	}
	return &Schema{kind: s.kind, fields: s.fields, order: slices.Clone(names)}
}

// Kind returns the canonical kind name, for example "ObjectAction".
func (s *Schema) Kind() string { return s.kind }

// Field returns the declaration of name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Has reports whether name is an attribute of the kind.
func (s *Schema) Has(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Order returns the attribute names in presentation order.
func (s *Schema) Order() []string { return slices.Clone(s.order) }

// Default returns the declared default of name.
func (s *Schema) Default(name string) (any, bool) {
	f, ok := s.fields[name]
	if !ok || !f.hasDefault {
		return nil, false
	}
	return cloneValue(f.def), true
}
