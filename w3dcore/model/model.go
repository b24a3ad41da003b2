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

// Package model defines the contracts that every w3d project entity MUST
// implement, and generic helpers built on those contracts.
//
// Every feature kind representing part of a project (objects, actions,
// sounds, placements, the project itself) implements Model through the
// feature.Base type it embeds. The contracts establish a common baseline:
// validation of cross-attribute invariants, export to JSON and YAML for
// inspection, safe logging, a canonical kind name, and zero detection.
//
// The document format (W3D XML) is not part of this contract; it is owned by
// each kind's ToDocument method and FromDocument function because the
// mapping differs for every kind.
//
// Unless explicitly documented otherwise, implementations are not safe for
// concurrent mutation. Concurrent reads of a feature that is no longer being
// written are safe.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining the contracts required for w3d
// entities.
//
// Example compile-time check:
//
//	var _ model.Model = (*ObjectAction)(nil)
type Model interface {
	Validatable
	Exportable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that validate their own state.
//
// Individual attribute values are already validated when written, so
// Validate is concerned with what a single write cannot see: required
// attributes that were never written, and rules that span several attributes
// (for example, a placement change needs to know whether it is relative).
//
// Validate MUST NOT mutate the receiver, MUST be deterministic and MUST NOT
// perform I/O. Serialization to a document calls Validate first and refuses
// to write an inconsistent entity.
type Validatable interface {
	Validate() error
}

// Exportable defines the contract for types that can be rendered to JSON and
// YAML for inspection and tooling.
//
// Export is one-way: the authoritative round-trippable format is the W3D
// document. Exported output contains only explicitly written attributes, in
// the kind's presentation order.
type Exportable interface {
	json.Marshaler
	yaml.Marshaler
}

// Loggable defines the contract for types that provide string
// representations for logging.
//
// Redacted MUST be safe for production logs. Project entities hold no
// secrets, but they can hold long free-form text and file system paths;
// Redacted abbreviates such values. String MAY include everything.
type Loggable interface {
	Redacted() string
	String() string
}

// Identifiable defines the contract for types that identify their kind by a
// canonical CamelCase name, constant for the type (for example,
// "ObjectAction", "Placement").
type Identifiable interface {
	TypeName() string
}

// ZeroCheckable defines the contract for types that can report whether they
// carry any explicitly written data. A feature whose every attribute is at
// its default, by absence, is zero.
type ZeroCheckable interface {
	IsZero() bool
}
