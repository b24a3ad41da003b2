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

package validate_test

import (
	"math"
	"testing"

	"dirpx.dev/w3d/w3dcore/validate"
)

type kinded string

func (k kinded) Kind() string { return string(k) }

type nilKinded struct{}

func (*nilKinded) Kind() string { return "Placement" }

func TestValidators(t *testing.T) {
	var typedNil *nilKinded

	tests := []struct {
		name  string
		v     validate.Validator
		value any
		want  bool
	}{
		{"min 0 accepts 0", validate.Numeric().WithMin(0), 0, true},
		{"min 0 rejects -0.0001", validate.Numeric().WithMin(0), -0.0001, false},
		{"min only has no max", validate.Numeric().WithMin(0), 1e12, true},
		{"max only has no min", validate.Numeric().WithMax(2), -1e12, true},
		{"max 2 rejects 2.5", validate.Numeric().WithMax(2), 2.5, false},
		{"range inclusive low", validate.Numeric().WithMin(0.5).WithMax(2), 0.5, true},
		{"range inclusive high", validate.Numeric().WithMin(0.5).WithMax(2), float32(2), true},
		{"numeric rejects string", validate.Numeric(), "1", false},
		{"numeric rejects bool", validate.Numeric(), true, false},
		{"numeric rejects nil", validate.Numeric(), nil, false},
		{"numeric rejects NaN", validate.Numeric(), math.NaN(), false},
		{"numeric accepts uint8", validate.Numeric(), uint8(7), true},
		{"integer accepts whole float", validate.Numeric().Integer(), 3.0, true},
		{"integer rejects fraction", validate.Numeric().Integer(), 3.5, false},
		{"integer rejects inf", validate.Numeric().Integer(), math.Inf(1), false},

		{"tuple 3 accepts 3 ints", validate.Tuple(3), []int{1, 2, 3}, true},
		{"tuple 3 accepts mixed array", validate.Tuple(3), [3]any{1, 2.5, int64(3)}, true},
		{"tuple 3 rejects 2", validate.Tuple(3), []float64{1, 2}, false},
		{"tuple 3 rejects 4", validate.Tuple(3), []float64{1, 2, 3, 4}, false},
		{"tuple rejects non-numeric element", validate.Tuple(3), []any{1, "2", 3}, false},
		{"tuple 0 is unconstrained", validate.Tuple(0), []float64{}, true},
		{"tuple rejects scalar", validate.Tuple(0), 1.0, false},

		{"one of accepts member", validate.OneOf("Play Sound", "Stop Sound"), "Stop Sound", true},
		{"one of is case sensitive", validate.OneOf("Play Sound", "Stop Sound"), "stop sound", false},
		{"one of rejects non-string", validate.OneOf("1"), 1, false},

		{"any accepts nil", validate.Any("x"), nil, true},
		{"boolean accepts false", validate.Boolean(), false, true},
		{"boolean rejects text", validate.Boolean(), "True", false},
		{"string accepts empty", validate.String(""), "", true},
		{"string rejects number", validate.String(""), 1, false},

		{"feature of matching kind", validate.FeatureOf("Placement"), kinded("Placement"), true},
		{"feature of other kind", validate.FeatureOf("Placement"), kinded("Rotation"), false},
		{"feature of any listed kind", validate.FeatureOf("A", "B"), kinded("B"), true},
		{"feature of typed nil", validate.FeatureOf("Placement"), typedNil, false},
		{"feature of plain value", validate.FeatureOf("Placement"), "Placement", false},

		{"map of valid", validate.MapOf(validate.OneOf("Center"), validate.FeatureOf("Placement")),
			map[string]kinded{"Center": "Placement"}, true},
		{"map of bad key", validate.MapOf(validate.OneOf("Center"), validate.FeatureOf("Placement")),
			map[string]kinded{"Ceiling": "Placement"}, false},
		{"map of bad value", validate.MapOf(validate.OneOf("Center"), validate.FeatureOf("Placement")),
			map[string]kinded{"Center": "Rotation"}, false},
		{"map of rejects slice", validate.MapOf(validate.Any(""), validate.Any("")), []int{}, false},

		{"list of valid", validate.ListOf(validate.String("")), []string{"a", "b"}, true},
		{"list of nil slice", validate.ListOf(validate.String("")), []string(nil), true},
		{"list of invalid element", validate.ListOf(validate.Numeric()), []any{1, "x"}, false},
		{"list length enforced", validate.ListOf(validate.Numeric().Integer().WithMin(0).WithMax(255)).WithLength(3), []int{0, 0}, false},
		{"list length satisfied", validate.ListOf(validate.Numeric().Integer().WithMin(0).WithMax(255)).WithLength(3), []int{0, 128, 255}, true},
		{"list element range", validate.ListOf(validate.Numeric().Integer().WithMin(0).WithMax(255)).WithLength(3), []int{0, 128, 256}, false},

		{"described delegates", validate.Described(validate.Boolean(), "flag"), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Validate(tt.value); got != tt.want {
				t.Errorf("Validate(%#v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		v    validate.Validator
		want string
	}{
		{"unbounded", validate.Numeric(), "Number"},
		{"min", validate.Numeric().WithMin(0), "Number greater than or equal to 0"},
		{"max", validate.Numeric().WithMax(2), "Number less than or equal to 2"},
		{"integer range", validate.Numeric().Integer().WithMin(0).WithMax(255), "Integer between 0 and 255"},
		{"fractional bound", validate.Numeric().WithMin(0.5), "Number greater than or equal to 0.5"},
		{"tuple", validate.Tuple(3), "Sequence of 3 numbers"},
		{"tuple any", validate.Tuple(0), "Sequence of numbers"},
		{"one of", validate.OneOf("Start", "Stop"), `One of: "Start", "Stop"`},
		{"any", validate.Any("Name of an object"), "Name of an object"},
		{"any default", validate.Any(""), "Any value"},
		{"boolean", validate.Boolean(), "Either true or false"},
		{"feature", validate.FeatureOf("Placement"), "A Placement feature"},
		{"list", validate.ListOf(validate.Boolean()), "List of (Either true or false)"},
		{"list length", validate.ListOf(validate.Boolean()).WithLength(2), "List of 2 (Either true or false)"},
		{"map", validate.MapOf(validate.String("wall"), validate.FeatureOf("Placement")), "Mapping of (wall) to (A Placement feature)"},
		{"described", validate.Described(validate.Tuple(3), "Red, Green, Blue values"), "Red, Green, Blue values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Describe(); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOneOf_OptionsIsCopy(t *testing.T) {
	v := validate.OneOf("Positional", "Fixed")
	opts := v.Options()
	opts[0] = "Mutated"

	if !v.Validate("Positional") {
		t.Error("mutating Options() result changed the validator")
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{1, 1, true},
		{int8(-3), -3, true},
		{uint64(10), 10, true},
		{float32(0.5), 0.5, true},
		{"1", 0, false},
		{false, 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		got, ok := validate.ToFloat(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ToFloat(%#v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
