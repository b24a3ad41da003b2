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

// Package errors provides the error taxonomy shared by every w3d package.
//
// The errors in this package are simple value carriers with stable message
// formats. They are designed to be:
//
//   - easy to construct at the exact point where a problem is detected,
//   - easy to recognize via errors.As,
//   - and easy for users to understand when a load or save is aborted.
//
// # Error Types
//
//   - InvalidAttributeError
//     An attribute name is not part of a feature's schema. Raised by
//     Feature.Set before anything is written.
//
//   - InvalidValueError
//     A value does not satisfy the validator declared for an attribute.
//     Raised by Feature.Set before anything is written.
//
//   - MissingAttributeError
//     An attribute was read that has neither a stored value nor a default.
//
//   - MalformedDocumentError
//     A structurally required element or attribute is absent from a
//     document, or present with content that cannot be interpreted.
//
//   - UnrecognizedKindError
//     A document tag does not correspond to any registered feature kind.
//
//   - NotImplementedError
//     A feature kind does not provide a conversion it was asked for.
//
//   - DuplicateNameError, DanglingReferenceError
//     Project-wide consistency: names must be unique per kind and every
//     reference must resolve.
//
//   - ParseError, UnmarshalError, MarshalError, ValidationError
//     Lower level carriers for text tokens, document syntax, rendering of
//     stored values and cross-attribute consistency.
//
// No error in this package is ever recovered by the core. Absence of an
// attribute resolving to its declared default is normal control flow and is
// not represented here.
package errors

import "fmt"

// InvalidAttributeError is returned when an attribute name is not declared in
// the schema of the feature it is written to.
//
// Kind identifies the feature kind (for example, "ObjectAction") and Name the
// rejected attribute name. The feature is left untouched.
type InvalidAttributeError struct {
	// Kind is the feature kind that rejected the attribute.
	Kind string

	// Name is the attribute name that is not part of the schema.
	Name string
}

// Error implements the error interface for InvalidAttributeError.
//
// The error message format is:
//
//	"w3d: {Name} is not a valid attribute of {Kind}"
func (e *InvalidAttributeError) Error() string {
	return "w3d: " + e.Name + " is not a valid attribute of " + e.Kind
}

// InvalidValueError is returned when a value fails the validator declared for
// an attribute.
//
// Constraint carries the validator's own description so that the message
// tells the user what would have been accepted.
type InvalidValueError struct {
	// Kind is the feature kind owning the attribute.
	Kind string

	// Name is the attribute name.
	Name string

	// Value is the rejected value.
	Value any

	// Constraint is the human-readable description of the validator.
	Constraint string
}

// Error implements the error interface for InvalidValueError.
//
// The error message format is:
//
//	"w3d: invalid value {Value} for {Kind}.{Name}: expected {Constraint}"
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("w3d: invalid value %v for %s.%s: expected %s", e.Value, e.Kind, e.Name, e.Constraint)
}

// MissingAttributeError is returned when an attribute is read that was never
// written and has no declared default.
type MissingAttributeError struct {
	// Kind is the feature kind that was read.
	Kind string

	// Name is the attribute that has no value.
	Name string
}

// Error implements the error interface for MissingAttributeError.
//
// The error message format is:
//
//	"w3d: {Kind}.{Name} is not set and has no default"
func (e *MissingAttributeError) Error() string {
	return "w3d: " + e.Kind + "." + e.Name + " is not set and has no default"
}

// MalformedDocumentError is returned when a document lacks a structurally
// required element or attribute, or carries content that cannot be
// interpreted for the element being read.
//
// A MalformedDocumentError is always fatal for the entity being parsed: no
// partially populated feature is ever returned alongside it.
type MalformedDocumentError struct {
	// Tag is the element being read when the problem was detected.
	Tag string

	// Reason describes what is missing or wrong.
	Reason string

	// Err is an optional underlying cause (for example, a ParseError).
	Err error
}

// Error implements the error interface for MalformedDocumentError.
//
// The error message format is:
//
//	"w3d: malformed {Tag} element: {Reason}"
//	"w3d: malformed {Tag} element: {Reason}: {Err}" (when Err is set)
func (e *MalformedDocumentError) Error() string {
	msg := "w3d: malformed " + e.Tag + " element: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// UnrecognizedKindError is returned by a catalog when a document tag does not
// match any registered kind of the family being dispatched.
type UnrecognizedKindError struct {
	// Family names the catalog (for example, "action").
	Family string

	// Tag is the offending element name.
	Tag string
}

// Error implements the error interface for UnrecognizedKindError.
//
// The error message format is:
//
//	"w3d: unrecognized {Family} kind: {Tag}"
func (e *UnrecognizedKindError) Error() string {
	return "w3d: unrecognized " + e.Family + " kind: " + e.Tag
}

// NotImplementedError is returned when a feature kind does not provide a
// conversion. Every concrete kind in this module overrides the base
// behavior, so seeing this error indicates a programming error.
type NotImplementedError struct {
	// Kind is the feature kind.
	Kind string

	// Operation is the missing conversion (for example, "ToDocument").
	Operation string
}

// Error implements the error interface for NotImplementedError.
func (e *NotImplementedError) Error() string {
	return "w3d: " + e.Operation + " not implemented for " + e.Kind
}

// ParseError is returned when a textual token from a document cannot be
// interpreted as the logical type it stands for.
//
// Type identifies the logical type being parsed (for example, "bool",
// "tuple"), and Value contains the exact string that could not be
// interpreted.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "bool").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"w3d: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "w3d: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when a stored value cannot be rendered into the
// textual form a document requires.
//
// This happens for attributes whose validator accepts anything (for example,
// a boolean-like flag declared as always valid) but whose document encoding
// needs a concrete type.
type MarshalError struct {
	// Type is the feature kind being written.
	Type string

	// Name is the attribute that could not be rendered.
	Name string

	// Reason explains what form was expected.
	Reason string
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"w3d: cannot marshal {Type}.{Name}: {Reason}"
func (e *MarshalError) Error() string {
	return "w3d: cannot marshal " + e.Type + "." + e.Name + ": " + e.Reason
}

// UnmarshalError is returned when raw document text cannot be turned into a
// node tree at all, before any feature sees it.
//
// Data contains the original payload when it is small enough to be useful.
// The Data field is intentionally not included in the formatted message to
// avoid excessively verbose logs.
type UnmarshalError struct {
	// Type is the logical name of what was being decoded.
	Type string

	// Data is the raw input that failed to decode. MAY be nil.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"w3d: cannot unmarshal {Type}: {Reason}"
func (e *UnmarshalError) Error() string {
	return "w3d: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when validation of a feature fails on rules
// that span more than one attribute, or when a required attribute is absent
// at serialization time.
//
// Type identifies the feature kind, Field optionally identifies the
// attribute at fault, Reason explains the failure and Value optionally holds
// the problematic value.
//
// # Example
//
//	if a.HasExplicit("placement") && !a.HasExplicit("move_relative") {
//	    return &errors.ValidationError{
//	        Type:   "ObjectAction",
//	        Field:  "move_relative",
//	        Reason: "must be set when placement is set",
//	    }
//	}
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"w3d: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"w3d: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "w3d: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "w3d: invalid " + e.Type + ": " + e.Reason
}

// DuplicateNameError is returned when two entities of the same kind in a
// project share a name.
type DuplicateNameError struct {
	// Kind is the entity kind (for example, "Object").
	Kind string

	// Name is the repeated name.
	Name string
}

// Error implements the error interface for DuplicateNameError.
//
// The error message format is:
//
//	"w3d: duplicate {Kind} name: {Name}"
func (e *DuplicateNameError) Error() string {
	return "w3d: duplicate " + e.Kind + " name: " + e.Name
}

// DanglingReferenceError is returned when an entity names another entity
// that does not exist in the project.
type DanglingReferenceError struct {
	// From describes the referring entity (for example, "Timeline intro").
	From string

	// Kind is the kind of the missing entity.
	Kind string

	// Name is the missing name.
	Name string
}

// Error implements the error interface for DanglingReferenceError.
//
// The error message format is:
//
//	"w3d: {From} references unknown {Kind} {Name}"
func (e *DanglingReferenceError) Error() string {
	return "w3d: " + e.From + " references unknown " + e.Kind + " " + e.Name
}
