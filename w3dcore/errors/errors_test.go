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

package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"invalid attribute",
			&InvalidAttributeError{Kind: "ObjectAction", Name: "speed"},
			"w3d: speed is not a valid attribute of ObjectAction",
		},
		{
			"invalid value",
			&InvalidValueError{Kind: "ObjectAction", Name: "duration", Value: -1, Constraint: "Number greater than or equal to 0"},
			"w3d: invalid value -1 for ObjectAction.duration: expected Number greater than or equal to 0",
		},
		{
			"missing attribute",
			&MissingAttributeError{Kind: "Sound", Name: "filename"},
			"w3d: Sound.filename is not set and has no default",
		},
		{
			"malformed without cause",
			&MalformedDocumentError{Tag: "Movement", Reason: "requires Placement child"},
			"w3d: malformed Movement element: requires Placement child",
		},
		{
			"malformed with cause",
			&MalformedDocumentError{Tag: "Visible", Reason: "bad text", Err: &ParseError{Type: "bool", Value: "maybe"}},
			"w3d: malformed Visible element: bad text: w3d: invalid bool value: maybe",
		},
		{
			"unrecognized kind",
			&UnrecognizedKindError{Family: "action", Tag: "Teleport"},
			"w3d: unrecognized action kind: Teleport",
		},
		{
			"not implemented",
			&NotImplementedError{Kind: "Feature", Operation: "ToDocument"},
			"w3d: ToDocument not implemented for Feature",
		},
		{
			"parse",
			&ParseError{Type: "tuple", Value: "1,a"},
			"w3d: invalid tuple value: 1,a",
		},
		{
			"marshal",
			&MarshalError{Type: "ObjectAction", Name: "visible", Reason: "expected a boolean"},
			"w3d: cannot marshal ObjectAction.visible: expected a boolean",
		},
		{
			"duplicate name",
			&DuplicateNameError{Kind: "Object", Name: "door"},
			"w3d: duplicate Object name: door",
		},
		{
			"dangling reference",
			&DanglingReferenceError{From: "Group walls", Kind: "Object", Name: "north"},
			"w3d: Group walls references unknown Object north",
		},
		{
			"unmarshal",
			&UnmarshalError{Type: "Document", Reason: "unexpected EOF"},
			"w3d: cannot unmarshal Document: unexpected EOF",
		},
		{
			"validation with field",
			&ValidationError{Type: "ObjectAction", Field: "move_relative", Reason: "must be set when placement is set"},
			"w3d: invalid ObjectAction.move_relative: must be set when placement is set",
		},
		{
			"validation without field",
			&ValidationError{Type: "Project", Reason: "duplicate object names"},
			"w3d: invalid Project: duplicate object names",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMalformedDocumentError_Unwrap(t *testing.T) {
	cause := &ParseError{Type: "number", Value: "x"}
	err := error(&MalformedDocumentError{Tag: "Scale", Reason: "bad number", Err: cause})

	var pe *ParseError
	if !stderrors.As(err, &pe) {
		t.Fatalf("errors.As did not find ParseError in %v", err)
	}
	if pe != cause {
		t.Errorf("unwrapped %p, want %p", pe, cause)
	}

	if (&MalformedDocumentError{Tag: "X", Reason: "y"}).Unwrap() != nil {
		t.Error("Unwrap() without cause should be nil")
	}
}
