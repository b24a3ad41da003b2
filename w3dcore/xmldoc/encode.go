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
)

// DefaultIndent is the indentation unit used when no Indent option is given.
const DefaultIndent = "\t"

// Header is the XML declaration written before the root element.
const Header = `<?xml version="1.0" ?>`

type encodeOptions struct {
	indent string
	header bool
}

// Option configures Encode.
type Option func(*encodeOptions)

// Indent sets the indentation unit. An empty unit still places every element
// on its own line.
func Indent(unit string) Option {
	return func(o *encodeOptions) { o.indent = unit }
}

// WithoutHeader suppresses the XML declaration.
func WithoutHeader() Option {
	return func(o *encodeOptions) { o.header = false }
}

// Encode writes n as pretty-printed XML.
//
// Every element starts on its own line. Elements without children or text are
// self-closed; elements with text only keep their text inline. Newlines in
// text and attribute values are written as character references, so lines
// that contain only whitespace can be removed from the output safely.
func Encode(w io.Writer, n *Node, opts ...Option) error {
	o := encodeOptions{indent: DefaultIndent, header: true}
	for _, opt := range opts {
		opt(&o)
	}

	var buf bytes.Buffer
	if o.header {
		buf.WriteString(Header)
		buf.WriteByte('\n')
	}
	writeNode(&buf, n, o.indent, 0)

	var out bytes.Buffer
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	_, err := w.Write(out.Bytes())
	return err
}

// String renders n with Encode and returns the result. It is meant for
// tests and diagnostics; write errors cannot occur on a bytes.Buffer.
func String(n *Node, opts ...Option) string {
	var buf bytes.Buffer
	_ = Encode(&buf, n, opts...)
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *Node, indent string, depth int) {
	pad := strings.Repeat(indent, depth)
	buf.WriteString(pad)
	buf.WriteByte('<')
	buf.WriteString(n.Tag)
	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		escape(buf, a.Value)
		buf.WriteByte('"')
	}

	switch {
	case len(n.Children) == 0 && n.text == "":
		buf.WriteString("/>\n")
	case len(n.Children) == 0:
		buf.WriteByte('>')
		escape(buf, n.text)
		buf.WriteString("</")
		buf.WriteString(n.Tag)
		buf.WriteString(">\n")
	default:
		buf.WriteString(">\n")
		if n.text != "" {
			buf.WriteString(pad)
			buf.WriteString(indent)
			escape(buf, n.text)
			buf.WriteByte('\n')
		}
		for _, c := range n.Children {
			writeNode(buf, c, indent, depth+1)
		}
		buf.WriteString(pad)
		buf.WriteString("</")
		buf.WriteString(n.Tag)
		buf.WriteString(">\n")
	}
}

func escape(buf *bytes.Buffer, s string) {
	// xml.EscapeText only fails when the writer fails.
	_ = xml.EscapeText(buf, []byte(s))
}
