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

// Package group defines named collections of objects and other groups.
//
//	<Group name="walls">
//		<Objects name="north"/>
//		<Objects name="south"/>
//		<Groups name="doors"/>
//	</Group>
package group

import (
	"slices"

	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Kind is the kind name of Group.
const Kind = "Group"

// Tag is the document element of a Group.
const Tag = "Group"

var schema = feature.NewSchema(Kind,
	feature.Attr("name", validate.String("Unique name of the group")).Required(),
	feature.Attr("objects", validate.ListOf(validate.String("Object name"))).WithDefault([]string{}),
	feature.Attr("groups", validate.ListOf(validate.String("Group name"))).WithDefault([]string{}),
).WithOrder("name", "objects", "groups")

// Group names objects and nested groups by reference.
type Group struct {
	feature.Base
}

var _ feature.Feature = (*Group)(nil)

// New returns a group holding the named objects.
func New(name string, objects ...string) *Group {
	g := &Group{Base: feature.NewBase(schema)}
	if name != "" {
		_ = g.Set("name", name)
	}
	if len(objects) > 0 {
		_ = g.Set("objects", slices.Clone(objects))
	}
	return g
}

// Name returns the group name.
func (g *Group) Name() string {
	s, _ := feature.String(g, "name")
	return s
}

// Objects returns the names of member objects.
func (g *Group) Objects() []string {
	s, _ := feature.As[[]string](g, "objects")
	return s
}

// Groups returns the names of nested groups.
func (g *Group) Groups() []string {
	s, _ := feature.As[[]string](g, "groups")
	return s
}

// Contains reports whether the group directly nests the named group.
func (g *Group) Contains(name string) bool {
	return slices.Contains(g.Groups(), name)
}

// ToDocument appends a Group element to parent.
func (g *Group) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, Tag, xmldoc.A("name", g.Name()))
	for _, o := range g.Objects() {
		node.Append("Objects", xmldoc.A("name", o))
	}
	for _, sub := range g.Groups() {
		node.Append("Groups", xmldoc.A("name", sub))
	}
	return node, nil
}

// FromDocument builds a Group from a Group element.
func FromDocument(n *xmldoc.Node) (*Group, error) {
	name, err := n.RequireAttr("name")
	if err != nil {
		return nil, err
	}
	g := New(name)
	for _, list := range []struct{ attr, tag string }{{"objects", "Objects"}, {"groups", "Groups"}} {
		var names []string
		for _, c := range n.FindAll(list.tag) {
			ref, err := c.RequireAttr("name")
			if err != nil {
				return nil, err
			}
			names = append(names, ref)
		}
		if len(names) == 0 {
			continue
		}
		if err := g.Set(list.attr, names); err != nil {
			return nil, err
		}
	}
	return g, nil
}
