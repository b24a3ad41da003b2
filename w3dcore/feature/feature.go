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

// Package feature provides the validated attribute container that every
// project entity is built on, together with the closed catalogs that map
// document tags to feature kinds.
//
// A feature kind is a Go type embedding Base and declaring a package-level
// Schema. The schema lists the legal attribute names, one validator per
// name, optional defaults, required flags and, exceptionally, a post-write
// hook. Schemas are built once at package initialization and MUST NOT be
// modified afterwards; NewSchema panics on a malformed table (a duplicate
// name, a default its own validator rejects, an unknown name in the order)
// so that a broken kind fails at startup rather than at the first write.
//
// # Write Contract
//
// Base enforces the following rules for every kind:
//
//   - Set rejects names outside the schema with *errors.InvalidAttributeError
//     and values failing the validator with *errors.InvalidValueError. A
//     rejected write changes nothing.
//   - Seed validates every pair before writing any of them. Either all
//     values are written or none is.
//   - Get returns the written value, else the default, else
//     *errors.MissingAttributeError. Reading never writes.
//   - IsDefault is true only while the attribute has never been written and a
//     default exists. Writing a value equal to the default still makes it
//     explicit.
//   - Slice and map values are copied on Set and on Get. Mutating a slice
//     after handing it to a feature, or mutating a slice read from one, does
//     not change the stored value.
//
// A hook runs after its attribute has been committed and only then. Hooks
// SHOULD be reserved for side effects that cannot be expressed as data; the
// only one in the project model switches the logger to debug level.
//
// # Document Mapping
//
// Each kind owns its document mapping: a ToDocument method that appends the
// kind's element to a parent node, and a FromDocument function that builds a
// new instance from a node. Single writes are always individually valid;
// rules spanning several attributes are checked by Validate, which
// ToDocument MUST call before writing anything. Readers MUST report
// structural problems as *errors.MalformedDocumentError and MUST NOT return
// a partially built feature together with an error.
//
// Kinds that share a document position (the actions, for example) are
// registered in a Catalog. Dispatch picks the factory by tag and fails with
// *errors.UnrecognizedKindError for any tag outside the catalog.
//
// # Reading Values
//
// Typed accessors (String, Float, Int, Bool, Floats, As) convert the stored
// value and fail with *errors.MarshalError when it has another shape. Int
// refuses fractional values and values outside the range of int. Bool also
// accepts the document tokens "True" and "False" held by attributes with an
// AlwaysValid validator.
//
// Equal compares the explicitly written attributes of two features of the
// same kind. It is the equality used by the round-trip law: for every valid
// feature x of kind K, Equal(x, K.FromDocument(x.ToDocument(nil))) holds.
//
// # Example
//
//	var schema = feature.NewSchema("Lamp",
//		feature.Attr("name", validate.String("Lamp name")).Required(),
//		feature.Attr("power", validate.Numeric().WithMin(0)).WithDefault(60),
//	)
//
//	type Lamp struct{ feature.Base }
//
//	l := &Lamp{Base: feature.NewBase(schema)}
//	if err := l.Set("power", -1); err != nil {
//		// *errors.InvalidValueError; power is still its default, 60
//	}
//
// Base is not safe for concurrent mutation. Concurrent reads of a feature
// that is no longer written are safe.
package feature

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/model"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Feature is the contract shared by every feature kind.
type Feature interface {
	model.Model

	// Kind returns the canonical kind name. It equals TypeName.
	Kind() string

	// Schema returns the kind's attribute table.
	Schema() *Schema

	Set(name string, value any) error
	Seed(values map[string]any) error
	Get(name string) (any, error)
	HasExplicit(name string) bool
	IsDefault(name string) bool

	// Explicit returns the written attribute names in presentation order.
	Explicit() []string

	// ToDocument appends the element representing the feature to parent
	// and returns it. A nil parent yields a detached element.
	ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error)
}

// Realizer is implemented by host integrations that turn a fully populated
// feature into scene content. Nothing in this module implements it; the
// module guarantees that attributes are validated and defaulted before a
// host calls Realize.
type Realizer interface {
	Realize() error
}

// Base is the attribute storage embedded by every feature kind.
type Base struct {
	schema *Schema
	values map[string]any
}

// NewBase returns an empty Base bound to s.
func NewBase(s *Schema) Base {
	return Base{schema: s, values: make(map[string]any)}
}

// Kind returns the schema's kind name.
func (b *Base) Kind() string { return b.schema.Kind() }

// TypeName returns the schema's kind name.
func (b *Base) TypeName() string { return b.schema.Kind() }

// Schema returns the attribute table.
func (b *Base) Schema() *Schema { return b.schema }

// Set validates and writes one attribute, then runs the attribute's hook.
func (b *Base) Set(name string, value any) error {
	f, err := b.check(name, value)
	if err != nil {
		return err
	}
	b.commit(f, value)
	return nil
}

// Seed writes several attributes at once. Every pair is validated before
// anything is written; if one fails, none is written. Hooks run in
// presentation order.
func (b *Base) Seed(values map[string]any) error {
	for _, name := range sortedKeys(values) {
		if _, err := b.check(name, values[name]); err != nil {
			return err
		}
	}
	for _, name := range b.schema.order {
		if v, ok := values[name]; ok {
			b.commit(b.schema.fields[name], v)
		}
	}
	return nil
}

func (b *Base) check(name string, value any) (Field, error) {
	f, ok := b.schema.fields[name]
	if !ok {
		return Field{}, &errors.InvalidAttributeError{Kind: b.schema.kind, Name: name}
	}
	if !f.validator.Validate(value) {
		return Field{}, &errors.InvalidValueError{
			Kind:       b.schema.kind,
			Name:       name,
			Value:      value,
			Constraint: f.validator.Describe(),
		}
	}
	return f, nil
}

func (b *Base) commit(f Field, value any) {
	if b.values == nil {
		b.values = make(map[string]any)
	}
	b.values[f.name] = cloneValue(value)
	if f.hook != nil {
		f.hook(value)
	}
}

// Get returns the written value of name, else its default. Slices and maps
// are returned as shallow copies.
func (b *Base) Get(name string) (any, error) {
	if v, ok := b.values[name]; ok {
		return cloneValue(v), nil
	}
	if !b.schema.Has(name) {
		return nil, &errors.InvalidAttributeError{Kind: b.schema.kind, Name: name}
	}
	if d, ok := b.schema.Default(name); ok {
		return d, nil
	}
	return nil, &errors.MissingAttributeError{Kind: b.schema.kind, Name: name}
}

// HasExplicit reports whether name has been written.
func (b *Base) HasExplicit(name string) bool {
	_, ok := b.values[name]
	return ok
}

// IsDefault reports whether name has never been written and has a default.
func (b *Base) IsDefault(name string) bool {
	if b.HasExplicit(name) {
		return false
	}
	_, ok := b.schema.Default(name)
	return ok
}

// Explicit returns the written attribute names in presentation order.
func (b *Base) Explicit() []string {
	out := make([]string, 0, len(b.values))
	for _, name := range b.schema.order {
		if _, ok := b.values[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// ToDocument is overridden by every kind. The base implementation fails.
func (b *Base) ToDocument(*xmldoc.Node) (*xmldoc.Node, error) {
	return nil, &errors.NotImplementedError{Kind: b.schema.kind, Operation: "ToDocument"}
}

// Validate reports the first required attribute that was never written.
// Kinds with cross-attribute rules call it before their own checks.
func (b *Base) Validate() error {
	for _, name := range b.schema.order {
		if b.schema.fields[name].required && !b.HasExplicit(name) {
			return &errors.MissingAttributeError{Kind: b.schema.kind, Name: name}
		}
	}
	return nil
}

// IsZero reports whether no attribute has been written.
func (b *Base) IsZero() bool { return len(b.values) == 0 }

// String renders the kind and every written attribute.
func (b *Base) String() string { return b.render(false) }

// Redacted renders like String but abbreviates long strings.
func (b *Base) Redacted() string { return b.render(true) }

const redactLimit = 24

func (b *Base) render(redact bool) string {
	var sb strings.Builder
	sb.WriteString(b.schema.kind)
	sb.WriteByte('{')
	for i, name := range b.Explicit() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(renderValue(b.values[name], redact))
	}
	sb.WriteByte('}')
	return sb.String()
}

func renderValue(v any, redact bool) string {
	switch x := v.(type) {
	case Feature:
		if redact {
			return x.Redacted()
		}
		return x.String()
	case string:
		if redact && len([]rune(x)) > redactLimit {
			return fmt.Sprintf("%q", string([]rune(x)[:redactLimit-3])+"...")
		}
		return fmt.Sprintf("%q", x)
	case []float64:
		return "(" + strings.TrimSuffix(strings.TrimPrefix(fmt.Sprint(x), "["), "]") + ")"
	default:
		return fmt.Sprint(v)
	}
}

// MarshalJSON renders the written attributes as a JSON object whose keys
// follow the presentation order.
func (b *Base) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range b.Explicit() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(name)
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(b.values[name])
		if err != nil {
			return nil, &errors.MarshalError{Type: b.schema.kind, Name: name, Reason: err.Error()}
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the written attributes as a mapping whose keys follow
// the presentation order.
func (b *Base) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range b.Explicit() {
		var val yaml.Node
		if err := val.Encode(b.values[name]); err != nil {
			return nil, &errors.MarshalError{Type: b.schema.kind, Name: name, Reason: err.Error()}
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&val,
		)
	}
	return node, nil
}

// Element appends a child named tag to parent, or returns a detached node
// when parent is nil.
func Element(parent *xmldoc.Node, tag string, attrs ...xmldoc.Attr) *xmldoc.Node {
	if parent == nil {
		return xmldoc.NewNode(tag, attrs...)
	}
	return parent.Append(tag, attrs...)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cloneValue returns a shallow copy of slice and map values so that neither
// the caller of Set nor the caller of Get shares storage with the feature.
// Other values are returned as is.
func cloneValue(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface()
	default:
		return v
	}
}
