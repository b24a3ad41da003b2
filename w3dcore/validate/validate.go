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

// Package validate provides composable predicates that decide whether a
// candidate attribute value is acceptable for a feature.
//
// Every Validator is a pure function of one argument: Validate MUST NOT
// panic, MUST NOT mutate its argument and MUST NOT consult external state.
// Describe returns a short, human-readable statement of the constraint, used
// in InvalidValueError messages and in editor help text.
//
// Validators are plain values. They are meant to be declared once, inside a
// feature kind's schema, and shared by every instance of that kind. Builder
// methods such as WithMin or WithLength return a modified copy and never
// change the receiver, so a partially configured validator MAY be reused as
// the base of several others.
//
// # Variants
//
//   - NumericInRange (Numeric): any Go integer or float kind, optionally
//     bounded below, above or both, optionally required to be whole. Bools
//     and numeric strings are rejected. Integer attributes that are later
//     read with feature.Int SHOULD carry both bounds so that every accepted
//     value fits in an int.
//   - NumericIterable (Tuple): a slice or array of numbers, optionally of a
//     fixed length.
//   - OptionFromSet (OneOf): a string member of a fixed set.
//   - BooleanValue (Boolean), StringValue (String), AlwaysValid (Any).
//   - FeatureOfType (FeatureOf): a non-nil value whose Kind is one of a set.
//   - MappingOf (MapOf) and ListOfValidator (ListOf): containers whose keys and elements are
//     checked by inner validators.
//   - Described: any validator with its description replaced.
//
// # Composition
//
// Composite validators (ListOf, MapOf) delegate to their inner validators
// element by element and add only structural constraints such as a required
// length. Validators check shape, not cross-feature consistency: FeatureOf
// confirms that a value is a feature of the expected kind, it does not
// re-validate that feature's attributes. Rules spanning several attributes
// belong in the owning kind's Validate method.
//
// # Example
//
//	background := validate.Described(
//		validate.ListOf(validate.Numeric().WithMin(0).WithMax(255).Integer()).WithLength(3),
//		"Red, Green, Blue values")
//
//	background.Validate([]int{0, 128, 255})   // true
//	background.Validate([]int{0, 128})        // false: length
//	background.Validate([]float64{0, 0.5, 1}) // false: not whole
package validate

import "reflect"

// Validator decides whether a value is acceptable for one attribute.
type Validator interface {
	// Validate reports whether value satisfies the constraint.
	// It MUST NOT panic and MUST NOT mutate value.
	Validate(value any) bool

	// Describe returns a human-readable statement of the constraint,
	// for example "Integer between 0 and 255".
	Describe() string
}

// AlwaysValid accepts every value, including nil. Help is returned by
// Describe and documents what the attribute is expected to hold.
type AlwaysValid struct {
	Help string
}

// Any returns an AlwaysValid validator with the given help text.
func Any(help string) AlwaysValid {
	return AlwaysValid{Help: help}
}

// Validate always returns true.
func (v AlwaysValid) Validate(any) bool { return true }

// Describe returns the help text, or "Any value" when none was given.
func (v AlwaysValid) Describe() string {
	if v.Help == "" {
		return "Any value"
	}
	return v.Help
}

// BooleanValue accepts Go bool values only.
type BooleanValue struct{}

// Boolean returns a BooleanValue validator.
func Boolean() BooleanValue { return BooleanValue{} }

// Validate reports whether value is a bool.
func (BooleanValue) Validate(value any) bool {
	_, ok := value.(bool)
	return ok
}

// Describe returns "Either true or false".
func (BooleanValue) Describe() string { return "Either true or false" }

// StringValue accepts any Go string, including the empty string.
type StringValue struct {
	Help string
}

// String returns a StringValue validator with the given help text.
func String(help string) StringValue {
	return StringValue{Help: help}
}

// Validate reports whether value is a string.
func (v StringValue) Validate(value any) bool {
	_, ok := value.(string)
	return ok
}

// Describe returns the help text, or "A string" when none was given.
func (v StringValue) Describe() string {
	if v.Help == "" {
		return "A string"
	}
	return v.Help
}

type described struct {
	Validator
	help string
}

func (d described) Describe() string { return d.help }

// Described wraps v so that Describe returns help instead of v's own
// description. Validation is delegated to v unchanged.
func Described(v Validator, help string) Validator {
	return described{Validator: v, help: help}
}

// isNil reports whether value is nil or a typed nil pointer, map, slice or
// interface.
func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
