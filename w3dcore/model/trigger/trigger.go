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

// Package trigger defines event triggers: boxes in space that run actions
// when the viewer's head, or one of a set of objects, enters or leaves them.
package trigger

import (
	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/model/action"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Kind is the kind name of EventTrigger.
const Kind = "EventTrigger"

// Tag is the document element of an EventTrigger.
const Tag = "EventTrigger"

// Tracked subjects.
const (
	HeadTrack = "HeadTrack"
	MoveTrack = "MoveTrack"
)

// Directions.
const (
	Inside  = "Inside"
	Outside = "Outside"
)

var schema = feature.NewSchema(Kind,
	feature.Attr("name", validate.String("Unique name of the trigger")).Required(),
	feature.Attr("enabled", validate.Boolean()).WithDefault(true),
	feature.Attr("remain_enabled", validate.Boolean()).WithDefault(true),
	feature.Attr("duration", validate.Described(validate.Numeric().WithMin(0), "Seconds before the actions run")).WithDefault(0),
	feature.Attr("trigger_type", validate.OneOf(HeadTrack, MoveTrack)).Required(),
	feature.Attr("corner1", validate.Tuple(3)).Required(),
	feature.Attr("corner2", validate.Tuple(3)).Required(),
	feature.Attr("ignore_y", validate.Boolean()).WithDefault(false),
	feature.Attr("direction", validate.OneOf(Inside, Outside)).WithDefault(Inside),
	feature.Attr("objects", validate.ListOf(validate.String("Object name"))).WithDefault([]string{}),
	feature.Attr("actions", validate.ListOf(action.Validator())).WithDefault([]action.Action{}),
).WithOrder("name", "enabled", "remain_enabled", "duration", "trigger_type",
	"corner1", "corner2", "ignore_y", "direction", "objects", "actions")

// EventTrigger runs actions when its subject crosses a box.
//
//	<EventTrigger name="door" remain-enabled="False">
//		<MoveTrack>
//			<Objects name="ball"/>
//			<Box ignore-Y="True" corner1="(-1, 0, -1)" corner2="(1, 2, 1)"/>
//			<Movement><Outside/></Movement>
//		</MoveTrack>
//		<Actions>
//			<SoundRef name="bell"/>
//		</Actions>
//	</EventTrigger>
type EventTrigger struct {
	feature.Base
}

var _ feature.Feature = (*EventTrigger)(nil)

// New returns a trigger of the given type over the box spanned by the two
// corners.
func New(name, triggerType string, corner1, corner2 []float64) (*EventTrigger, error) {
	et := &EventTrigger{Base: feature.NewBase(schema)}
	values := map[string]any{"trigger_type": triggerType, "corner1": corner1, "corner2": corner2}
	if name != "" {
		values["name"] = name
	}
	if err := et.Seed(values); err != nil {
		return nil, err
	}
	return et, nil
}

// Name returns the trigger name.
func (et *EventTrigger) Name() string {
	s, _ := feature.String(et, "name")
	return s
}

// Type returns HeadTrack or MoveTrack.
func (et *EventTrigger) Type() string {
	s, _ := feature.String(et, "trigger_type")
	return s
}

// Direction returns Inside or Outside.
func (et *EventTrigger) Direction() string {
	s, _ := feature.String(et, "direction")
	return s
}

// Objects returns the names of tracked objects.
func (et *EventTrigger) Objects() []string {
	s, _ := feature.As[[]string](et, "objects")
	return s
}

// Actions returns the actions to run.
func (et *EventTrigger) Actions() []action.Action {
	as, _ := feature.As[[]action.Action](et, "actions")
	return as
}

// Box returns the minimum and maximum corners.
func (et *EventTrigger) Box() (lo, hi [3]float64) {
	c1, _ := feature.Floats(et, "corner1")
	c2, _ := feature.Floats(et, "corner2")
	if len(c1) != 3 || len(c2) != 3 {
		return lo, hi
	}
	for i := range 3 {
		lo[i], hi[i] = min(c1[i], c2[i]), max(c1[i], c2[i])
	}
	return lo, hi
}

// Contains reports whether point lies within the box. With ignore_y set the
// vertical coordinate is not compared.
func (et *EventTrigger) Contains(point [3]float64) bool {
	lo, hi := et.Box()
	ignoreY, _ := feature.Bool(et, "ignore_y")
	for i := range 3 {
		if i == 1 && ignoreY {
			continue
		}
		if point[i] < lo[i] || point[i] > hi[i] {
			return false
		}
	}
	return true
}

// Validate checks that objects are given exactly for MoveTrack triggers and
// that every action is valid.
func (et *EventTrigger) Validate() error {
	if err := et.Base.Validate(); err != nil {
		return err
	}
	switch et.Type() {
	case HeadTrack:
		if et.HasExplicit("objects") && len(et.Objects()) > 0 {
			return &errors.ValidationError{Type: Kind, Field: "objects", Reason: "only MoveTrack triggers track objects"}
		}
	case MoveTrack:
		if len(et.Objects()) == 0 {
			return &errors.ValidationError{Type: Kind, Field: "objects", Reason: "MoveTrack trigger needs at least one object"}
		}
	}
	if et.HasExplicit("objects") {
		if _, err := feature.As[[]string](et, "objects"); err != nil {
			return err
		}
	}
	if et.HasExplicit("actions") {
		if _, err := feature.As[[]action.Action](et, "actions"); err != nil {
			return err
		}
	}
	for _, a := range et.Actions() {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToDocument appends an EventTrigger element to parent.
func (et *EventTrigger) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := et.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, Tag, xmldoc.A("name", et.Name()))
	for _, f := range []struct{ name, attr string }{{"enabled", "enabled"}, {"remain_enabled", "remain-enabled"}} {
		if et.HasExplicit(f.name) {
			b, _ := feature.Bool(et, f.name)
			node.SetAttr(f.attr, xmldoc.FormatBool(b))
		}
	}
	if et.HasExplicit("duration") {
		d, _ := feature.Float(et, "duration")
		node.SetAttr("duration", xmldoc.FormatNumber(d))
	}

	track := node.Append(et.Type())
	if et.Type() == MoveTrack {
		for _, o := range et.Objects() {
			track.Append("Objects", xmldoc.A("name", o))
		}
	}
	c1, _ := feature.Floats(et, "corner1")
	c2, _ := feature.Floats(et, "corner2")
	box := track.Append("Box")
	if et.HasExplicit("ignore_y") {
		b, _ := feature.Bool(et, "ignore_y")
		box.SetAttr("ignore-Y", xmldoc.FormatBool(b))
	}
	box.SetAttr("corner1", xmldoc.FormatTuple(c1, xmldoc.SpacedSep, true))
	box.SetAttr("corner2", xmldoc.FormatTuple(c2, xmldoc.SpacedSep, true))
	if et.HasExplicit("direction") {
		track.Append("Movement").Append(et.Direction())
	}

	actions := node.Append("Actions")
	for _, a := range et.Actions() {
		if _, err := a.ToDocument(actions); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// FromDocument builds an EventTrigger from an EventTrigger element.
func FromDocument(n *xmldoc.Node) (*EventTrigger, error) {
	name, err := n.RequireAttr("name")
	if err != nil {
		return nil, err
	}

	var track *xmldoc.Node
	for _, t := range []string{HeadTrack, MoveTrack} {
		if track = n.Find(t); track != nil {
			break
		}
	}
	if track == nil {
		return nil, &errors.MalformedDocumentError{Tag: Tag, Reason: "missing HeadTrack or MoveTrack child"}
	}
	box, err := track.Require("Box")
	if err != nil {
		return nil, err
	}
	var corners [2][]float64
	for i, attr := range []string{"corner1", "corner2"} {
		text, err := box.RequireAttr(attr)
		if err != nil {
			return nil, err
		}
		if corners[i], err = xmldoc.ParseTuple(text); err != nil {
			return nil, &errors.MalformedDocumentError{Tag: "Box", Reason: "bad " + attr + " attribute", Err: err}
		}
	}
	et, err := New(name, track.Tag, corners[0], corners[1])
	if err != nil {
		return nil, &errors.MalformedDocumentError{Tag: "Box", Reason: "invalid corners", Err: err}
	}

	for _, f := range []struct {
		node       *xmldoc.Node
		attr, name string
	}{
		{n, "enabled", "enabled"},
		{n, "remain-enabled", "remain_enabled"},
		{box, "ignore-Y", "ignore_y"},
	} {
		text, ok := f.node.Attr(f.attr)
		if !ok {
			continue
		}
		b, err := xmldoc.ParseBool(text)
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: f.node.Tag, Reason: "bad " + f.attr + " attribute", Err: err}
		}
		if err := et.Set(f.name, b); err != nil {
			return nil, err
		}
	}
	if text, ok := n.Attr("duration"); ok {
		d, err := xmldoc.ParseNumber(text)
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: Tag, Reason: "bad duration attribute", Err: err}
		}
		if err := et.Set("duration", d); err != nil {
			return nil, &errors.MalformedDocumentError{Tag: Tag, Reason: "bad duration attribute", Err: err}
		}
	}

	var objects []string
	for _, o := range track.FindAll("Objects") {
		ref, err := o.RequireAttr("name")
		if err != nil {
			return nil, err
		}
		objects = append(objects, ref)
	}
	if len(objects) > 0 {
		if err := et.Set("objects", objects); err != nil {
			return nil, err
		}
	}

	if mv := track.Find("Movement"); mv != nil {
		switch {
		case mv.Find(Inside) != nil:
			err = et.Set("direction", Inside)
		case mv.Find(Outside) != nil:
			err = et.Set("direction", Outside)
		default:
			err = &errors.MalformedDocumentError{Tag: "Movement", Reason: "missing Inside or Outside child"}
		}
		if err != nil {
			return nil, err
		}
	}

	if root := n.Find("Actions"); root != nil {
		actions, err := action.DispatchChildren(root)
		if err != nil {
			return nil, err
		}
		if len(actions) > 0 {
			if err := et.Set("actions", actions); err != nil {
				return nil, err
			}
		}
	}
	return et, nil
}
