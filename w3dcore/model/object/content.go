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

package object

import (
	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// ContentKind is the kind name of Content.
const ContentKind = "Content"

// Content types.
const (
	TextContent  = "text"
	ImageContent = "image"
	ModelContent = "model"
	ShapeContent = "shape"
)

// Shapes.
const (
	Cube   = "Cube"
	Sphere = "Sphere"
)

var contentSchema = feature.NewSchema(ContentKind,
	feature.Attr("content_type", validate.OneOf(TextContent, ImageContent, ModelContent, ShapeContent)).Required(),
	feature.Attr("text", validate.String("Text to display")),
	feature.Attr("filename", validate.String("Image or model file")),
	feature.Attr("shape", validate.OneOf(Cube, Sphere)),
).WithOrder("content_type", "text", "filename", "shape")

// Content is what an object displays: text, an image, a model file or a
// primitive shape.
//
//	<Content><Text><text>Hello</text></Text></Content>
//	<Content><Image filename="logo.png"/></Content>
//	<Content><Model filename="chair.obj"/></Content>
//	<Content><Shape><Cube/></Shape></Content>
type Content struct {
	feature.Base
}

var _ feature.Feature = (*Content)(nil)

// NewContent returns empty content.
func NewContent() *Content {
	return &Content{Base: feature.NewBase(contentSchema)}
}

// Text returns text content.
func Text(text string) *Content {
	c := NewContent()
	_ = c.Seed(map[string]any{"content_type": TextContent, "text": text})
	return c
}

// Image returns image content read from filename.
func Image(filename string) *Content {
	c := NewContent()
	_ = c.Seed(map[string]any{"content_type": ImageContent, "filename": filename})
	return c
}

// Model returns model content read from filename.
func Model(filename string) *Content {
	c := NewContent()
	_ = c.Seed(map[string]any{"content_type": ModelContent, "filename": filename})
	return c
}

// Shape returns a primitive shape; shape is Cube or Sphere.
func Shape(shape string) (*Content, error) {
	c := NewContent()
	if err := c.Seed(map[string]any{"content_type": ShapeContent, "shape": shape}); err != nil {
		return nil, err
	}
	return c, nil
}

// Type returns the content type.
func (c *Content) Type() string {
	s, _ := feature.String(c, "content_type")
	return s
}

// requiredBy maps a content type to the attribute it needs.
var requiredBy = map[string]string{
	TextContent:  "text",
	ImageContent: "filename",
	ModelContent: "filename",
	ShapeContent: "shape",
}

// Validate checks that the attribute matching the content type is written
// and no attribute of another type is.
func (c *Content) Validate() error {
	if err := c.Base.Validate(); err != nil {
		return err
	}
	need := requiredBy[c.Type()]
	if !c.HasExplicit(need) {
		return &errors.ValidationError{Type: ContentKind, Field: need, Reason: "required by " + c.Type() + " content"}
	}
	for _, name := range []string{"text", "filename", "shape"} {
		if name != need && c.HasExplicit(name) {
			return &errors.ValidationError{Type: ContentKind, Field: name, Reason: "not used by " + c.Type() + " content"}
		}
	}
	return nil
}

// ToDocument appends a Content element to parent.
func (c *Content) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, "Content")
	switch c.Type() {
	case TextContent:
		text, _ := feature.String(c, "text")
		node.Append("Text").Append("text").SetText(text)
	case ImageContent:
		name, _ := feature.String(c, "filename")
		node.Append("Image", xmldoc.A("filename", name))
	case ModelContent:
		name, _ := feature.String(c, "filename")
		node.Append("Model", xmldoc.A("filename", name))
	case ShapeContent:
		shape, _ := feature.String(c, "shape")
		node.Append("Shape").Append(shape)
	}
	return node, nil
}

// ContentFromDocument builds Content from a Content element.
func ContentFromDocument(n *xmldoc.Node) (*Content, error) {
	switch {
	case n.Find("Text") != nil:
		t := n.Find("Text").Find("text")
		if t == nil {
			return nil, &errors.MalformedDocumentError{Tag: "Text", Reason: "missing text child"}
		}
		return Text(t.RawText()), nil
	case n.Find("Image") != nil:
		name, err := n.Find("Image").RequireAttr("filename")
		if err != nil {
			return nil, err
		}
		return Image(name), nil
	case n.Find("Model") != nil:
		name, err := n.Find("Model").RequireAttr("filename")
		if err != nil {
			return nil, err
		}
		return Model(name), nil
	case n.Find("Shape") != nil:
		shape := n.Find("Shape")
		for _, s := range []string{Cube, Sphere} {
			if shape.Find(s) != nil {
				return Shape(s)
			}
		}
		return nil, &errors.MalformedDocumentError{Tag: "Shape", Reason: "missing Cube or Sphere child"}
	}
	return nil, &errors.MalformedDocumentError{Tag: "Content", Reason: "missing Text, Image, Model or Shape child"}
}
