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

package placement

import (
	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Rotation modes. The mode is also the document tag of the rotation.
const (
	// ModeAxis rotates by rotation_angle degrees about rotation_vector.
	ModeAxis = "Axis"
	// ModeLookAt orients the item towards the point rotation_vector, keeping
	// up_vector upwards.
	ModeLookAt = "LookAt"
	// ModeNormal aligns the item's normal with rotation_vector, then rotates
	// it by rotation_angle degrees about that normal.
	ModeNormal = "Normal"
)

// RotationKind is the kind name of Rotation.
const RotationKind = "Rotation"

var rotationSchema = feature.NewSchema(RotationKind,
	feature.Attr("rotation_mode", validate.OneOf(ModeAxis, ModeLookAt, ModeNormal)).Required(),
	feature.Attr("rotation_vector", validate.Tuple(3)).Required(),
	feature.Attr("up_vector", validate.Tuple(3)).WithDefault([]float64{0, 1, 0}),
	feature.Attr("rotation_angle", validate.Numeric()).WithDefault(0),
).WithOrder("rotation_mode", "rotation_vector", "up_vector", "rotation_angle")

// Rotation is the orientation part of a Placement.
type Rotation struct {
	feature.Base
}

var _ feature.Feature = (*Rotation)(nil)

// NewRotation returns an empty rotation.
func NewRotation() *Rotation {
	return &Rotation{Base: feature.NewBase(rotationSchema)}
}

// Axis returns a rotation of angle degrees about axis.
func Axis(axis []float64, angle float64) *Rotation {
	r := NewRotation()
	mustSeed(r, map[string]any{"rotation_mode": ModeAxis, "rotation_vector": axis, "rotation_angle": angle})
	return r
}

// LookAt returns a rotation facing target with the given up direction.
func LookAt(target, up []float64) *Rotation {
	r := NewRotation()
	mustSeed(r, map[string]any{"rotation_mode": ModeLookAt, "rotation_vector": target, "up_vector": up})
	return r
}

func mustSeed(f interface{ Seed(map[string]any) error }, values map[string]any) {
	if err := f.Seed(values); err != nil {
		panic(err)
	}
}

// Mode returns the rotation mode, or "" when unset.
func (r *Rotation) Mode() string {
	s, _ := feature.String(r, "rotation_mode")
	return s
}

// Vector returns the axis, target or normal depending on the mode.
func (r *Rotation) Vector() []float64 {
	v, _ := feature.Floats(r, "rotation_vector")
	return v
}

// Up returns the up vector of a LookAt rotation.
func (r *Rotation) Up() []float64 {
	v, _ := feature.Floats(r, "up_vector")
	return v
}

// Angle returns the rotation angle in degrees.
func (r *Rotation) Angle() float64 {
	f, _ := feature.Float(r, "rotation_angle")
	return f
}

// Validate checks that up_vector is only written for LookAt rotations and
// rotation_angle only for Axis and Normal rotations.
func (r *Rotation) Validate() error {
	if err := r.Base.Validate(); err != nil {
		return err
	}
	mode := r.Mode()
	if mode != ModeLookAt && r.HasExplicit("up_vector") {
		return &errors.ValidationError{Type: RotationKind, Field: "up_vector", Reason: "only used by LookAt rotations", Value: mode}
	}
	if mode == ModeLookAt && r.HasExplicit("rotation_angle") {
		return &errors.ValidationError{Type: RotationKind, Field: "rotation_angle", Reason: "not used by LookAt rotations", Value: mode}
	}
	return nil
}

// vectorAttr is the document attribute holding rotation_vector per mode.
var vectorAttr = map[string]string{
	ModeAxis:   "rotation",
	ModeLookAt: "target",
	ModeNormal: "normal",
}

// ToDocument appends <Axis rotation= angle=>, <LookAt target= up=> or
// <Normal normal= angle=> to parent.
func (r *Rotation) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	mode := r.Mode()
	node := feature.Element(parent, mode, xmldoc.A(vectorAttr[mode], formatVector(r.Vector())))
	if r.HasExplicit("up_vector") {
		node.SetAttr("up", formatVector(r.Up()))
	}
	if r.HasExplicit("rotation_angle") {
		node.SetAttr("angle", xmldoc.FormatNumber(r.Angle()))
	}
	return node, nil
}

// RotationFromDocument builds a Rotation from an Axis, LookAt or Normal
// element.
func RotationFromDocument(n *xmldoc.Node) (*Rotation, error) {
	attr, ok := vectorAttr[n.Tag]
	if !ok {
		return nil, &errors.UnrecognizedKindError{Family: "rotation", Tag: n.Tag}
	}
	r := NewRotation()
	if err := r.Set("rotation_mode", n.Tag); err != nil {
		return nil, err
	}

	text, ok := n.Attr(attr)
	if !ok {
		return nil, &errors.MalformedDocumentError{Tag: n.Tag, Reason: "missing " + attr + " attribute"}
	}
	if err := setTuple(r, "rotation_vector", n.Tag, text); err != nil {
		return nil, err
	}
	if text, ok := n.Attr("up"); ok {
		if err := setTuple(r, "up_vector", n.Tag, text); err != nil {
			return nil, err
		}
	}
	if text, ok := n.Attr("angle"); ok {
		f, err := xmldoc.ParseNumber(text)
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: n.Tag, Reason: "bad angle", Err: err}
		}
		if err := r.Set("rotation_angle", f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func formatVector(v []float64) string {
	return xmldoc.FormatTuple(v, xmldoc.SpacedSep, true)
}

func setTuple(f feature.Feature, name, tag, text string) error {
	v, err := xmldoc.ParseTuple(text)
	if err != nil {
		return &errors.MalformedDocumentError{Tag: tag, Reason: "bad " + name, Err: err}
	}
	return f.Set(name, v)
}
