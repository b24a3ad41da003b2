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

package action

import (
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

var objectSchema = feature.NewSchema(ObjectActionKind,
	append([]feature.Field{
		feature.Attr("object_name", validate.Any("Name of an object")).Required(),
	}, transitionFields()...)...,
).WithOrder(append([]string{"object_name"}, transitionOrder...)...)

// ObjectAction changes one object over a transition: its visibility,
// placement, color, scale, sound or link.
//
// Document form:
//
//	<ObjectChange name="Cube">
//		<Transition duration="2">
//			<Visible>False</Visible>
//			<MoveRel><Placement>...</Placement></MoveRel>
//			<Color>255,0,0</Color>
//			<Scale>1.5</Scale>
//			<Sound action="Play Sound"/>
//			<LinkChange><link_off/></LinkChange>
//		</Transition>
//	</ObjectChange>
type ObjectAction struct {
	feature.Base
}

var _ Action = (*ObjectAction)(nil)

// NewObjectAction returns an action changing the named object.
func NewObjectAction(objectName string) *ObjectAction {
	a := &ObjectAction{Base: feature.NewBase(objectSchema)}
	if objectName != "" {
		_ = a.Set("object_name", objectName)
	}
	return a
}

// Tag returns "ObjectChange".
func (a *ObjectAction) Tag() string { return ObjectChangeTag }

// ObjectName returns the name of the changed object.
func (a *ObjectAction) ObjectName() string {
	s, _ := feature.String(a, "object_name")
	return s
}

// Duration returns the transition duration in seconds.
func (a *ObjectAction) Duration() float64 {
	f, _ := feature.Float(a, "duration")
	return f
}

// Validate checks required attributes and that placement and
// move_relative are written together.
func (a *ObjectAction) Validate() error {
	if err := a.Base.Validate(); err != nil {
		return err
	}
	if _, err := feature.String(a, "object_name"); err != nil {
		return err
	}
	return validateTransition(a)
}

// ToDocument appends an ObjectChange element to parent.
func (a *ObjectAction) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, ObjectChangeTag, xmldoc.A("name", a.ObjectName()))
	if err := writeTransition(a, node); err != nil {
		return nil, err
	}
	return node, nil
}

// ObjectActionFromDocument builds an ObjectAction from an ObjectChange
// element. The name attribute and the Transition child are required.
func ObjectActionFromDocument(n *xmldoc.Node) (*ObjectAction, error) {
	name, err := n.RequireAttr("name")
	if err != nil {
		return nil, err
	}
	a := NewObjectAction("")
	if err := a.Set("object_name", name); err != nil {
		return nil, err
	}
	if err := readTransition(a, n); err != nil {
		return nil, err
	}
	return a, nil
}
