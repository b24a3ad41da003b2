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

// Package placement defines where things sit in a project: a position
// relative to one of the walls and an optional rotation.
//
// Document form:
//
//	<Placement>
//		<RelativeTo>Center</RelativeTo>
//		<Position>(0, 1.5, -2)</Position>
//		<LookAt target="(0, 0, 0)" up="(0, 1, 0)"/>
//	</Placement>
package placement

import (
	"slices"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Kind is the kind name of Placement.
const Kind = "Placement"

// Tag is the document element of a Placement.
const Tag = "Placement"

// Wall names. A placement is expressed relative to one of them.
const (
	Center    = "Center"
	FrontWall = "FrontWall"
	LeftWall  = "LeftWall"
	RightWall = "RightWall"
	FloorWall = "FloorWall"
)

// Walls lists every wall name in document order.
func Walls() []string {
	return []string{Center, FrontWall, LeftWall, RightWall, FloorWall}
}

// WallValidator accepts a wall name.
func WallValidator() validate.OptionFromSet {
	return validate.OneOf(Walls()...)
}

var schema = feature.NewSchema(Kind,
	feature.Attr("relative_to", WallValidator()).WithDefault(Center),
	feature.Attr("position", validate.Tuple(3)).WithDefault([]float64{0, 0, 0}),
	feature.Attr("rotation", validate.FeatureOf(RotationKind)),
).WithOrder("relative_to", "position", "rotation")

// Placement is a position and orientation relative to a wall.
type Placement struct {
	feature.Base
}

var _ feature.Feature = (*Placement)(nil)

// New returns an empty placement: Center, at the origin, unrotated.
func New() *Placement {
	return &Placement{Base: feature.NewBase(schema)}
}

// At returns a placement at position relative to the Center, with an
// optional rotation.
func At(position []float64, rotation *Rotation) *Placement {
	p := New()
	values := map[string]any{"position": slices.Clone(position)}
	if rotation != nil {
		values["rotation"] = rotation
	}
	mustSeed(p, values)
	return p
}

// RelativeTo returns the wall the placement is relative to.
func (p *Placement) RelativeTo() string {
	s, _ := feature.String(p, "relative_to")
	return s
}

// Position returns the position as (x, y, z).
func (p *Placement) Position() []float64 {
	v, _ := feature.Floats(p, "position")
	return v
}

// Rotation returns the rotation, or nil when none was written.
func (p *Placement) Rotation() *Rotation {
	r, _ := feature.As[*Rotation](p, "rotation")
	return r
}

// Validate checks required attributes of the placement and its rotation.
func (p *Placement) Validate() error {
	if err := p.Base.Validate(); err != nil {
		return err
	}
	if r := p.Rotation(); r != nil {
		return r.Validate()
	}
	return nil
}

// ToDocument appends a Placement element to parent.
func (p *Placement) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, Tag)
	if p.HasExplicit("relative_to") {
		node.Append("RelativeTo").SetText(p.RelativeTo())
	}
	if p.HasExplicit("position") {
		node.Append("Position").SetText(formatVector(p.Position()))
	}
	if r := p.Rotation(); r != nil {
		if _, err := r.ToDocument(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// FromDocument builds a Placement from a Placement element. At most one
// Axis, LookAt or Normal child is read as the rotation.
func FromDocument(n *xmldoc.Node) (*Placement, error) {
	if n == nil || n.Tag != Tag {
		return nil, &errors.MalformedDocumentError{Tag: Tag, Reason: "expected Placement element"}
	}
	p := New()
	if rel := n.Find("RelativeTo"); rel != nil {
		if err := p.Set("relative_to", rel.Text()); err != nil {
			return nil, &errors.MalformedDocumentError{Tag: Tag, Reason: "bad RelativeTo", Err: err}
		}
	}
	if pos := n.Find("Position"); pos != nil {
		if err := setTuple(p, "position", Tag, pos.Text()); err != nil {
			return nil, err
		}
	}
	for _, c := range n.Children {
		if _, ok := vectorAttr[c.Tag]; !ok {
			continue
		}
		r, err := RotationFromDocument(c)
		if err != nil {
			return nil, err
		}
		if err := p.Set("rotation", r); err != nil {
			return nil, err
		}
		break
	}
	return p, nil
}
