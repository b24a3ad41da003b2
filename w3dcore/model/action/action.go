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

// Package action defines the discrete changes a project can trigger:
// changing an object or group, starting or stopping a timeline or sound,
// enabling an event trigger, moving the whole scene, and resetting it.
//
// Actions appear wherever something reacts: in link actions of objects, in
// timelines and in event triggers. Each kind has its own document element;
// Dispatch maps an element to the kind registered for its tag.
//
//	| tag          | kind               |
//	|--------------|--------------------|
//	| ObjectChange | ObjectAction       |
//	| GroupRef     | GroupAction        |
//	| TimerChange  | TimelineAction     |
//	| SoundRef     | SoundAction        |
//	| Event        | EventTriggerAction |
//	| MoveCave     | MoveCaveAction     |
//	| Restart      | CaveResetAction    |
package action

import (
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Action is implemented by every action kind.
type Action interface {
	feature.Feature

	// Tag returns the document element name of the kind.
	Tag() string
}

// Document tags of the action kinds.
const (
	ObjectChangeTag = "ObjectChange"
	GroupRefTag     = "GroupRef"
	TimerChangeTag  = "TimerChange"
	SoundRefTag     = "SoundRef"
	EventTag        = "Event"
	MoveCaveTag     = "MoveCave"
	RestartTag      = "Restart"
)

// Kind names of the action kinds.
const (
	ObjectActionKind       = "ObjectAction"
	GroupActionKind        = "GroupAction"
	TimelineActionKind     = "TimelineAction"
	SoundActionKind        = "SoundAction"
	EventTriggerActionKind = "EventTriggerAction"
	MoveCaveActionKind     = "MoveCaveAction"
	CaveResetActionKind    = "CaveResetAction"
)

// Family is the catalog family name reported by UnrecognizedKindError.
const Family = "action"

var catalog = feature.NewCatalog(Family, map[string]feature.Factory[Action]{
	ObjectChangeTag: func(n *xmldoc.Node) (Action, error) { return ObjectActionFromDocument(n) },
	GroupRefTag:     func(n *xmldoc.Node) (Action, error) { return GroupActionFromDocument(n) },
	TimerChangeTag:  func(n *xmldoc.Node) (Action, error) { return TimelineActionFromDocument(n) },
	SoundRefTag:     func(n *xmldoc.Node) (Action, error) { return SoundActionFromDocument(n) },
	EventTag:        func(n *xmldoc.Node) (Action, error) { return EventTriggerActionFromDocument(n) },
	MoveCaveTag:     func(n *xmldoc.Node) (Action, error) { return MoveCaveActionFromDocument(n) },
	RestartTag:      func(n *xmldoc.Node) (Action, error) { return CaveResetActionFromDocument(n) },
})

func init() {
	catalog.Require(Tags()...)
}

// Tags returns the document tags of every action kind.
func Tags() []string {
	return []string{ObjectChangeTag, GroupRefTag, TimerChangeTag, SoundRefTag, EventTag, MoveCaveTag, RestartTag}
}

// Kinds returns the kind names of every action kind.
func Kinds() []string {
	return []string{
		ObjectActionKind, GroupActionKind, TimelineActionKind, SoundActionKind,
		EventTriggerActionKind, MoveCaveActionKind, CaveResetActionKind,
	}
}

// Validator accepts any action.
func Validator() validate.FeatureOfType {
	return validate.FeatureOf(Kinds()...)
}

// IsAction reports whether tag names an action element.
func IsAction(tag string) bool {
	return catalog.Has(tag)
}

// Dispatch builds the action registered for n's tag. An unknown tag yields
// *errors.UnrecognizedKindError.
//
// A factory that fails returns a nil Action, never a typed nil pointer.
func Dispatch(n *xmldoc.Node) (Action, error) {
	a, err := catalog.Dispatch(n)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// DispatchChildren builds an action from every child of n whose tag is an
// action tag, in document order. Other children are skipped.
func DispatchChildren(n *xmldoc.Node) ([]Action, error) {
	var out []Action
	for _, c := range n.Children {
		if !IsAction(c.Tag) {
			continue
		}
		a, err := Dispatch(c)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
