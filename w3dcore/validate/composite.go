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

package validate

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// OptionFromSet accepts a string that is one of a fixed set of options.
type OptionFromSet struct {
	options []string
}

// OneOf returns an OptionFromSet validator accepting exactly the given
// options, compared case-sensitively.
func OneOf(options ...string) OptionFromSet {
	return OptionFromSet{options: slices.Clone(options)}
}

// Options returns a copy of the accepted options in declaration order.
func (v OptionFromSet) Options() []string {
	return slices.Clone(v.options)
}

// Validate reports whether value is one of the options.
func (v OptionFromSet) Validate(value any) bool {
	s, ok := value.(string)
	return ok && slices.Contains(v.options, s)
}

// Describe returns, for example, `One of: "Play Sound", "Stop Sound"`.
func (v OptionFromSet) Describe() string {
	quoted := make([]string, len(v.options))
	for i, o := range v.options {
		quoted[i] = strconv.Quote(o)
	}
	return "One of: " + strings.Join(quoted, ", ")
}

// Kinded is the structural contract FeatureOfType checks. Every feature in
// this module satisfies it.
type Kinded interface {
	Kind() string
}

// FeatureOfType accepts a non-nil value whose Kind is one of the expected
// kinds. It does not validate the feature's own attributes.
type FeatureOfType struct {
	kinds []string
}

// FeatureOf returns a FeatureOfType validator for the given kinds.
func FeatureOf(kinds ...string) FeatureOfType {
	return FeatureOfType{kinds: slices.Clone(kinds)}
}

// Validate reports whether value is a feature of an expected kind.
func (v FeatureOfType) Validate(value any) bool {
	if isNil(value) {
		return false
	}
	k, ok := value.(Kinded)
	if !ok {
		return false
	}
	return slices.Contains(v.kinds, k.Kind())
}

// Describe returns, for example, "A Placement feature".
func (v FeatureOfType) Describe() string {
	return "A " + strings.Join(v.kinds, " or ") + " feature"
}

// MappingOf accepts a Go map whose every key satisfies Key and every value
// satisfies Value. Key uniqueness is guaranteed by the map type itself and
// is not checked here.
type MappingOf struct {
	Key, Value Validator
}

// MapOf returns a MappingOf validator.
func MapOf(key, value Validator) MappingOf {
	return MappingOf{Key: key, Value: value}
}

// Validate reports whether value is a map with valid keys and values.
func (v MappingOf) Validate(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return false
	}
	iter := rv.MapRange()
	for iter.Next() {
		if !v.Key.Validate(iter.Key().Interface()) || !v.Value.Validate(iter.Value().Interface()) {
			return false
		}
	}
	return true
}

// Describe returns "Mapping of (key) to (value)".
func (v MappingOf) Describe() string {
	return "Mapping of (" + v.Key.Describe() + ") to (" + v.Value.Describe() + ")"
}

// ListOfValidator accepts a slice or array whose every element satisfies
// Element. Length 0 means any length is accepted.
type ListOfValidator struct {
	Element Validator
	Length  int
}

// ListOf returns a ListOfValidator of unconstrained length.
func ListOf(element Validator) ListOfValidator {
	return ListOfValidator{Element: element}
}

// WithLength returns a copy of v requiring exactly n elements.
func (v ListOfValidator) WithLength(n int) ListOfValidator {
	v.Length = n
	return v
}

// Validate reports whether value is a sequence of valid elements.
func (v ListOfValidator) Validate(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	if v.Length > 0 && rv.Len() != v.Length {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if !v.Element.Validate(rv.Index(i).Interface()) {
			return false
		}
	}
	return true
}

// Describe returns "List of (element)" or "List of 3 (element)".
func (v ListOfValidator) Describe() string {
	if v.Length > 0 {
		return "List of " + strconv.Itoa(v.Length) + " (" + v.Element.Describe() + ")"
	}
	return "List of (" + v.Element.Describe() + ")"
}
