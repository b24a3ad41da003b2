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

package xmldoc

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"dirpx.dev/w3d/w3dcore/errors"
)

// Parse reads exactly one XML element tree from r.
//
// Whitespace-only text between elements is discarded, which makes parsing
// insensitive to pretty-printing. Comments, processing instructions and
// directives are ignored. Namespace prefixes are dropped; W3D documents do
// not use namespaces.
//
// Syntax errors, an empty input or more than one root element yield an
// *errors.UnmarshalError.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &errors.UnmarshalError{Type: "Document", Reason: err.Error()}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != nil {
				return nil, &errors.UnmarshalError{Type: "Document", Reason: "multiple root elements"}
			}
			node := NewNode(t.Name.Local)
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				root = node
			} else {
				stack[len(stack)-1].AppendNode(node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) != 0 {
					return nil, &errors.UnmarshalError{Type: "Document", Reason: "text outside root element"}
				}
				continue
			}
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			cur.text += string(t)
		}
	}

	if root == nil {
		return nil, &errors.UnmarshalError{Type: "Document", Reason: "no root element"}
	}
	return root, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}
