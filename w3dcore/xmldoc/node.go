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

// Package xmldoc is the structured-document adapter used by every feature
// kind. It owns the in-memory node tree, reading that tree from XML text,
// writing it back as pretty-printed XML, and the textual encodings of
// booleans, numbers and numeric tuples used inside W3D documents.
//
// Features MUST NOT touch encoding/xml directly. They build and inspect Node
// values through the element, attribute and text primitives defined here,
// which keeps element order, attribute order and formatting under the
// control of a single package.
//
// # Reading
//
// Parse builds a tree from XML text. Comments, processing instructions and
// text consisting only of whitespace are dropped, so indentation never
// reaches a feature. Text is kept verbatim otherwise; Text trims it and
// RawText does not. Syntax errors, an empty input and a second root element
// are reported as *errors.UnmarshalError. Require and RequireAttr report a
// missing child or attribute as *errors.MalformedDocumentError naming the
// parent element.
//
// # Writing
//
// Encode and String write the declaration `<?xml version="1.0" ?>`, then
// the tree with one child element per line, indented by one unit per level
// (a tab unless Indent says otherwise). Elements without children or text
// are self-closing. Blank lines are never written. WithoutHeader omits the
// declaration, which is useful for fragments in tests and logs.
//
// # Text Encodings
//
//   - Booleans are written as "True" and "False"; ParseBool accepts any
//     letter case with surrounding whitespace.
//   - Numbers are written in the shortest form that parses back to the same
//     float64 (FormatNumber). Counts that are read back with ParseInt MUST
//     be written with FormatInt, which never uses exponent notation.
//   - Tuples are joined with CompactSep ("255,0,0") or SpacedSep
//     ("0, 0, 0"), optionally wrapped in parentheses. ParseTuple accepts
//     either form.
//
// # Example
//
//	root := xmldoc.NewNode("Story", xmldoc.A("version", "8"))
//	root.Append("Background", xmldoc.A("color", xmldoc.FormatTuple([]float64{0, 0, 0}, xmldoc.SpacedSep, false)))
//	fmt.Print(xmldoc.String(root))
//	// <?xml version="1.0" ?>
//	// <Story version="8">
//	// 	<Background color="0, 0, 0"/>
//	// </Story>
package xmldoc

import (
	"strings"

	"dirpx.dev/w3d/w3dcore/errors"
)

// Attr is one attribute of a Node. Attribute order is preserved.
type Attr struct {
	Name  string
	Value string
}

// A is shorthand for constructing an Attr.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// Node is one element of a document: a tag, ordered attributes, ordered
// child elements and optional text content.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node

	text string
}

// NewNode returns a detached element.
func NewNode(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs}
}

// Append creates a new element as the last child of n and returns it.
func (n *Node) Append(tag string, attrs ...Attr) *Node {
	child := NewNode(tag, attrs...)
	n.Children = append(n.Children, child)
	return child
}

// AppendNode adds an existing element as the last child of n.
func (n *Node) AppendNode(child *Node) {
	n.Children = append(n.Children, child)
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing an existing value in place or
// appending a new attribute.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Find returns the first direct child with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns every direct child with the given tag in document order.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// RequireAttr returns the named attribute or a *errors.MalformedDocumentError
// naming n's tag.
func (n *Node) RequireAttr(name string) (string, error) {
	v, ok := n.Attr(name)
	if !ok {
		return "", &errors.MalformedDocumentError{Tag: n.Tag, Reason: "missing " + name + " attribute"}
	}
	return v, nil
}

// Require returns the first direct child with the given tag or a
// *errors.MalformedDocumentError naming n's tag.
func (n *Node) Require(tag string) (*Node, error) {
	c := n.Find(tag)
	if c == nil {
		return nil, &errors.MalformedDocumentError{Tag: n.Tag, Reason: "missing " + tag + " child"}
	}
	return c, nil
}

// SetText replaces the text content of n and returns n.
func (n *Node) SetText(text string) *Node {
	n.text = text
	return n
}

// Text returns the text content of n with surrounding whitespace removed,
// so that pretty-printed and compact documents read the same.
func (n *Node) Text() string {
	return strings.TrimSpace(n.text)
}

// RawText returns the text content exactly as stored.
func (n *Node) RawText() string {
	return n.text
}
