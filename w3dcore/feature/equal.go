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
	"reflect"
	"slices"

	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Equal reports whether a and b are the same kind and hold the same
// explicitly written attributes with equal values.
//
// Defaults do not take part: an attribute written with its default value is
// not equal to the same attribute left unwritten. Values compare as follows:
// numbers numerically regardless of Go type, a bool and a document boolean
// token ("True", "false") by truth value, sequences element by element,
// maps key by key, nested features recursively, anything else with
// reflect.DeepEqual.
func Equal(a, b Feature) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	names := a.Explicit()
	if !slices.Equal(names, b.Explicit()) {
		return false
	}
	for _, name := range names {
		va, _ := a.Get(name)
		vb, _ := b.Get(name)
		if !valuesEqual(va, vb) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if fa, ok := a.(Feature); ok {
		fb, ok := b.(Feature)
		return ok && Equal(fa, fb)
	}
	if _, ok := b.(Feature); ok {
		return false
	}

	if ba, bb, ok := boolPair(a, b); ok {
		return ba == bb
	}

	na, aNum := validate.ToFloat(a)
	nb, bNum := validate.ToFloat(b)
	if aNum || bNum {
		return aNum && bNum && na == nb
	}

	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if isSequence(ra) && isSequence(rb) {
		if ra.Len() != rb.Len() {
			return false
		}
		for i := 0; i < ra.Len(); i++ {
			if !valuesEqual(ra.Index(i).Interface(), rb.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
	if ra.Kind() == reflect.Map && rb.Kind() == reflect.Map {
		if ra.Len() != rb.Len() || ra.Type().Key() != rb.Type().Key() {
			return false
		}
		iter := ra.MapRange()
		for iter.Next() {
			other := rb.MapIndex(iter.Key())
			if !other.IsValid() || !valuesEqual(iter.Value().Interface(), other.Interface()) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func isSequence(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

// boolPair reads a and b as booleans when at least one of them is a bool
// and the other is a bool or a document boolean token such as "True".
func boolPair(a, b any) (bool, bool, bool) {
	_, aBool := a.(bool)
	_, bBool := b.(bool)
	if !aBool && !bBool {
		return false, false, false
	}
	ba, okA := asBool(a)
	bb, okB := asBool(b)
	return ba, bb, okA && okB
}

func asBool(v any) (bool, bool) {
	switch v := v.(type) {
	case bool:
		return v, true
	case string:
		b, err := xmldoc.ParseBool(v)
		return b, err == nil
	default:
		return false, false
	}
}
