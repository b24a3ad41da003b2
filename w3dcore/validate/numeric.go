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
	"math"
	"reflect"
	"strconv"
)

// ToFloat converts any Go integer or floating point value to float64.
//
// The second result is false for every other type, including bool, string
// and nil, and for NaN. Callers use ToFloat to read numeric attributes
// without caring which numeric type the writer chose.
func ToFloat(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NumericInRange accepts numbers, optionally bounded on either side.
//
// Bounds are inclusive. A validator with only a minimum does not constrain
// the maximum and vice versa. When Integral is set, only whole numbers are
// accepted (the Go type may still be a float).
type NumericInRange struct {
	Min, Max       float64
	HasMin, HasMax bool
	Integral       bool
}

// Numeric returns an unbounded NumericInRange validator.
func Numeric() NumericInRange {
	return NumericInRange{}
}

// WithMin returns a copy of v with an inclusive lower bound.
func (v NumericInRange) WithMin(min float64) NumericInRange {
	v.Min, v.HasMin = min, true
	return v
}

// WithMax returns a copy of v with an inclusive upper bound.
func (v NumericInRange) WithMax(max float64) NumericInRange {
	v.Max, v.HasMax = max, true
	return v
}

// Integer returns a copy of v that only accepts whole numbers.
func (v NumericInRange) Integer() NumericInRange {
	v.Integral = true
	return v
}

// Validate reports whether value is a number within the bounds.
func (v NumericInRange) Validate(value any) bool {
	f, ok := ToFloat(value)
	if !ok {
		return false
	}
	if v.Integral && (math.IsInf(f, 0) || math.Trunc(f) != f) {
		return false
	}
	if v.HasMin && f < v.Min {
		return false
	}
	if v.HasMax && f > v.Max {
		return false
	}
	return true
}

// Describe returns, for example, "Integer between 0 and 255" or
// "Number greater than or equal to 0".
func (v NumericInRange) Describe() string {
	noun := "Number"
	if v.Integral {
		noun = "Integer"
	}
	switch {
	case v.HasMin && v.HasMax:
		return noun + " between " + formatBound(v.Min) + " and " + formatBound(v.Max)
	case v.HasMin:
		return noun + " greater than or equal to " + formatBound(v.Min)
	case v.HasMax:
		return noun + " less than or equal to " + formatBound(v.Max)
	default:
		return noun
	}
}

// NumericIterable accepts a slice or array whose elements are all numbers.
// Length 0 means any length is accepted.
type NumericIterable struct {
	Length int
}

// Tuple returns a NumericIterable validator requiring exactly length
// elements, or any number of elements when length is 0.
func Tuple(length int) NumericIterable {
	return NumericIterable{Length: length}
}

// Validate reports whether value is a sequence of numbers of the required
// length.
func (v NumericIterable) Validate(value any) bool {
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
		if _, ok := ToFloat(rv.Index(i).Interface()); !ok {
			return false
		}
	}
	return true
}

// Describe returns "Sequence of 3 numbers" or "Sequence of numbers".
func (v NumericIterable) Describe() string {
	if v.Length > 0 {
		return "Sequence of " + strconv.Itoa(v.Length) + " numbers"
	}
	return "Sequence of numbers"
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
