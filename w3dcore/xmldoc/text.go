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

package xmldoc

import (
	"strconv"
	"strings"

	"dirpx.dev/w3d/w3dcore/errors"
)

// Boolean tokens as written to documents.
const (
	TrueText  = "True"
	FalseText = "False"
)

// FormatBool returns "True" or "False".
func FormatBool(b bool) string {
	if b {
		return TrueText
	}
	return FalseText
}

// ParseBool accepts "true" and "false" in any letter case, with surrounding
// whitespace. Any other input yields an *errors.ParseError.
func ParseBool(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, &errors.ParseError{Type: "bool", Value: text}
	}
}

// FormatNumber renders f in the shortest form that parses back to the same
// value: 1 is written "1", 0.25 is written "0.25".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ParseNumber parses a decimal number with surrounding whitespace.
func ParseNumber(text string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, &errors.ParseError{Type: "number", Value: text}
	}
	return f, nil
}

// FormatInt renders a whole number in plain decimal, never in exponent form.
func FormatInt(i int) string {
	return strconv.Itoa(i)
}

// ParseInt parses a decimal integer with surrounding whitespace.
func ParseInt(text string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &errors.ParseError{Type: "integer", Value: text}
	}
	return i, nil
}

// Tuple layouts used by W3D documents.
const (
	// CompactSep joins tuple elements without spaces: "255,0,0".
	CompactSep = ","
	// SpacedSep joins tuple elements with one space: "0, 0, 0".
	SpacedSep = ", "
)

// FormatTuple joins values with sep. When parens is true the result is
// wrapped as "(x, y, z)", the form used for positions and vectors.
func FormatTuple(values []float64, sep string, parens bool) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatNumber(v)
	}
	s := strings.Join(parts, sep)
	if parens {
		return "(" + s + ")"
	}
	return s
}

// ParseTuple reads comma separated numbers. Surrounding parentheses and
// whitespace around every element are ignored, so "(1, 2, 3)", "1,2,3" and
// " 1 ,2, 3 " all yield [1 2 3]. An empty element yields *errors.ParseError.
func ParseTuple(text string) ([]float64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	if strings.TrimSpace(s) == "" {
		return nil, &errors.ParseError{Type: "tuple", Value: text}
	}

	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, &errors.ParseError{Type: "tuple", Value: text}
		}
		out[i] = v
	}
	return out, nil
}
