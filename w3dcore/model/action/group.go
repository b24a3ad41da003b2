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
	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

var groupSchema = feature.NewSchema(GroupActionKind,
	append([]feature.Field{
		feature.Attr("group_name", validate.Any("Name of a group")).Required(),
		feature.Attr("choose_random", validate.Boolean()).WithDefault(false),
	}, transitionFields()...)...,
).WithOrder(append([]string{"group_name", "choose_random"}, transitionOrder...)...)

// GroupAction applies an object transition to every object of a group, or
// to one object chosen at random.
//
//	<GroupRef name="Walls" random="True">
//		<Transition duration="1">...</Transition>
//	</GroupRef>
type GroupAction struct {
	feature.Base
}

var _ Action = (*GroupAction)(nil)

// NewGroupAction returns an action changing the named group.
func NewGroupAction(groupName string) *GroupAction {
	a := &GroupAction{Base: feature.NewBase(groupSchema)}
	if groupName != "" {
		_ = a.Set("group_name", groupName)
	}
	return a
}

// Tag returns "GroupRef".
func (a *GroupAction) Tag() string { return GroupRefTag }

// GroupName returns the name of the changed group.
func (a *GroupAction) GroupName() string {
	s, _ := feature.String(a, "group_name")
	return s
}

// ChooseRandom reports whether only one random member is changed.
func (a *GroupAction) ChooseRandom() bool {
	b, _ := feature.Bool(a, "choose_random")
	return b
}

// Validate checks required attributes and the transition.
func (a *GroupAction) Validate() error {
	if err := a.Base.Validate(); err != nil {
		return err
	}
	if _, err := feature.String(a, "group_name"); err != nil {
		return err
	}
	return validateTransition(a)
}

// ToDocument appends a GroupRef element to parent.
func (a *GroupAction) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, GroupRefTag, xmldoc.A("name", a.GroupName()))
	if a.HasExplicit("choose_random") {
		node.SetAttr("random", xmldoc.FormatBool(a.ChooseRandom()))
	}
	if err := writeTransition(a, node); err != nil {
		return nil, err
	}
	return node, nil
}

// GroupActionFromDocument builds a GroupAction from a GroupRef element.
func GroupActionFromDocument(n *xmldoc.Node) (*GroupAction, error) {
	name, err := n.RequireAttr("name")
	if err != nil {
		return nil, err
	}
	a := NewGroupAction("")
	if err := a.Set("group_name", name); err != nil {
		return nil, err
	}
	if text, ok := n.Attr("random"); ok {
		b, err := xmldoc.ParseBool(text)
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: GroupRefTag, Reason: "bad random attribute", Err: err}
		}
		if err := a.Set("choose_random", b); err != nil {
			return nil, err
		}
	}
	if err := readTransition(a, n); err != nil {
		return nil, err
	}
	return a, nil
}
