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

// Package object defines the visible items of a project: objects, their
// content, and the clickable links that run actions.
//
// Document form:
//
//	<Object name="sign">
//		<Visible>True</Visible>
//		<Color>255, 255, 255</Color>
//		<Scale>2</Scale>
//		<SoundRef>bell</SoundRef>
//		<Placement>...</Placement>
//		<Content><Text><text>Welcome</text></Text></Content>
//		<LinkRoot><Link>...</Link></LinkRoot>
//	</Object>
package object

import (
	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/model/placement"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Kind is the kind name of Object.
const Kind = "Object"

// Tag is the document element of an Object.
const Tag = "Object"

var schema = feature.NewSchema(Kind,
	feature.Attr("name", validate.String("Unique name of the object")).Required(),
	feature.Attr("visible", validate.Boolean()).WithDefault(true),
	feature.Attr("color", validate.Tuple(3)).WithDefault([]float64{255, 255, 255}),
	feature.Attr("lighting", validate.Boolean()).WithDefault(false),
	feature.Attr("click_through", validate.Boolean()).WithDefault(false),
	feature.Attr("around_own_axis", validate.Boolean()).WithDefault(false),
	feature.Attr("scale", validate.Numeric().WithMin(0)).WithDefault(1),
	feature.Attr("sound", validate.String("Name of a sound")),
	feature.Attr("placement", validate.FeatureOf(placement.Kind)),
	feature.Attr("content", validate.FeatureOf(ContentKind)).Required(),
	feature.Attr("link", validate.FeatureOf(LinkKind)),
).WithOrder("name", "visible", "color", "lighting", "click_through", "around_own_axis",
	"scale", "sound", "placement", "content", "link")

// flags maps boolean attributes to their document elements.
var flags = []struct{ name, tag string }{
	{"visible", "Visible"},
	{"lighting", "Lighting"},
	{"click_through", "ClickThrough"},
	{"around_own_axis", "AroundSelfAxis"},
}

// Object is one item of the scene.
type Object struct {
	feature.Base
}

var _ feature.Feature = (*Object)(nil)

// New returns an object named name showing content.
func New(name string, content *Content) *Object {
	o := &Object{Base: feature.NewBase(schema)}
	values := map[string]any{}
	if name != "" {
		values["name"] = name
	}
	if content != nil {
		values["content"] = content
	}
	_ = o.Seed(values)
	return o
}

// Name returns the object's unique name.
func (o *Object) Name() string {
	s, _ := feature.String(o, "name")
	return s
}

// Sound returns the name of the object's sound, or "".
func (o *Object) Sound() string {
	s, _ := feature.String(o, "sound")
	return s
}

// Content returns the object's content, or nil.
func (o *Object) Content() *Content {
	c, _ := feature.As[*Content](o, "content")
	return c
}

// Placement returns the object's placement, or nil.
func (o *Object) Placement() *placement.Placement {
	p, _ := feature.As[*placement.Placement](o, "placement")
	return p
}

// Link returns the object's link, or nil.
func (o *Object) Link() *Link {
	l, _ := feature.As[*Link](o, "link")
	return l
}

// Validate checks the object and its nested features.
func (o *Object) Validate() error {
	if err := o.Base.Validate(); err != nil {
		return err
	}
	if err := o.Content().Validate(); err != nil {
		return err
	}
	if p := o.Placement(); p != nil {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	if l := o.Link(); l != nil {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToDocument appends an Object element to parent.
func (o *Object) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, Tag, xmldoc.A("name", o.Name()))

	if o.HasExplicit("visible") {
		b, _ := feature.Bool(o, "visible")
		node.Append("Visible").SetText(xmldoc.FormatBool(b))
	}
	if o.HasExplicit("color") {
		c, _ := feature.Floats(o, "color")
		node.Append("Color").SetText(xmldoc.FormatTuple(c, xmldoc.SpacedSep, false))
	}
	for _, f := range flags[1:] {
		if o.HasExplicit(f.name) {
			b, _ := feature.Bool(o, f.name)
			node.Append(f.tag).SetText(xmldoc.FormatBool(b))
		}
	}
	if o.HasExplicit("scale") {
		s, _ := feature.Float(o, "scale")
		node.Append("Scale").SetText(xmldoc.FormatNumber(s))
	}
	if o.HasExplicit("sound") {
		node.Append("SoundRef").SetText(o.Sound())
	}
	if p := o.Placement(); p != nil {
		if _, err := p.ToDocument(node); err != nil {
			return nil, err
		}
	}
	if _, err := o.Content().ToDocument(node); err != nil {
		return nil, err
	}
	if l := o.Link(); l != nil {
		if _, err := l.ToDocument(node.Append("LinkRoot")); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// FromDocument builds an Object from an Object element. The name attribute
// and the Content child are required.
func FromDocument(n *xmldoc.Node) (*Object, error) {
	name, err := n.RequireAttr("name")
	if err != nil {
		return nil, err
	}
	cn, err := n.Require("Content")
	if err != nil {
		return nil, err
	}
	content, err := ContentFromDocument(cn)
	if err != nil {
		return nil, err
	}
	o := New("", nil)
	if err := o.Seed(map[string]any{"name": name, "content": content}); err != nil {
		return nil, err
	}

	for _, f := range flags {
		c := n.Find(f.tag)
		if c == nil {
			continue
		}
		b, err := xmldoc.ParseBool(c.Text())
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: f.tag, Reason: "bad boolean", Err: err}
		}
		if err := o.Set(f.name, b); err != nil {
			return nil, err
		}
	}
	if c := n.Find("Color"); c != nil {
		v, err := xmldoc.ParseTuple(c.Text())
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: "Color", Reason: "bad color", Err: err}
		}
		if err := o.Set("color", v); err != nil {
			return nil, err
		}
	}
	if c := n.Find("Scale"); c != nil {
		s, err := xmldoc.ParseNumber(c.Text())
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: "Scale", Reason: "bad scale", Err: err}
		}
		if err := o.Set("scale", s); err != nil {
			return nil, err
		}
	}
	if c := n.Find("SoundRef"); c != nil {
		if err := o.Set("sound", c.Text()); err != nil {
			return nil, err
		}
	}
	if c := n.Find(placement.Tag); c != nil {
		p, err := placement.FromDocument(c)
		if err != nil {
			return nil, err
		}
		if err := o.Set("placement", p); err != nil {
			return nil, err
		}
	}
	if root := n.Find("LinkRoot"); root != nil {
		ln, err := root.Require("Link")
		if err != nil {
			return nil, err
		}
		l, err := LinkFromDocument(ln)
		if err != nil {
			return nil, err
		}
		if err := o.Set("link", l); err != nil {
			return nil, err
		}
	}
	return o, nil
}
