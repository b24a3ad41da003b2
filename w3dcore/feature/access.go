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
	"math"
	"reflect"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Getter is the read side of a feature.
type Getter interface {
	Kind() string
	Get(name string) (any, error)
}

func mismatch(g Getter, name, want string, got any) error {
	return &errors.MarshalError{
		Type:   g.Kind(),
		Name:   name,
		Reason: fmt.Sprintf("expected %s, got %T", want, got),
	}
}

// String reads name as a string.
func String(g Getter, name string) (string, error) {
	v, err := g.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", mismatch(g, name, "a string", v)
	}
	return s, nil
}

// Float reads name as a number of any Go numeric type.
func Float(g Getter, name string) (float64, error) {
	v, err := g.Get(name)
	if err != nil {
		return 0, err
	}
	f, ok := validate.ToFloat(v)
	if !ok {
		return 0, mismatch(g, name, "a number", v)
	}
	return f, nil
}

// Int reads name as a whole number. Values outside the range of int fail
// with *errors.MarshalError instead of wrapping around.
func Int(g Getter, name string) (int, error) {
	f, err := Float(g, name)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, mismatch(g, name, "a whole number", f)
	}
	if f < minInt || f >= -minInt {
		return 0, mismatch(g, name, "a whole number within int range", f)
	}
	return int(f), nil
}

// minInt is math.MinInt as an exact float64; -minInt is the first value
// past math.MaxInt.
const minInt = float64(math.MinInt)

// Bool reads name as a boolean. Attributes declared with an AlwaysValid
// validator may hold the document tokens "True" and "False" instead of a
// bool; both forms are accepted.
func Bool(g Getter, name string) (bool, error) {
	v, err := g.Get(name)
	if err != nil {
		return false, err
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, perr := xmldoc.ParseBool(b)
		if perr != nil {
			return false, mismatch(g, name, "a boolean", v)
		}
		return parsed, nil
	default:
		return false, mismatch(g, name, "a boolean", v)
	}
}

// Floats reads name as a sequence of numbers. Any slice or array of Go
// numeric values is accepted.
func Floats(g Getter, name string) ([]float64, error) {
	v, err := g.Get(name)
	if err != nil {
		return nil, err
	}
	if fs, ok := v.([]float64); ok {
		return fs, nil
	}
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, mismatch(g, name, "a sequence of numbers", v)
	}
	out := make([]float64, rv.Len())
	for i := range out {
		f, ok := validate.ToFloat(rv.Index(i).Interface())
		if !ok {
			return nil, mismatch(g, name, "a sequence of numbers", v)
		}
		out[i] = f
	}
	return out, nil
}

// As reads name as a value of type T.
//
// Example:
//
//	p, err := feature.As[*placement.Placement](a, "placement")
func As[T any](g Getter, name string) (T, error) {
	var zero T
	v, err := g.Get(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, mismatch(g, name, reflect.TypeFor[T]().String(), v)
	}
	return t, nil
}
