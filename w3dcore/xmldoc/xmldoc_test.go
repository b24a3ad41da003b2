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

package xmldoc_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

func TestParse_TolerantOfWhitespace(t *testing.T) {
	compact := `<ObjectChange name="Cube"><Transition duration="2"><Visible>True</Visible></Transition></ObjectChange>`
	pretty := `<?xml version="1.0" ?>
<!-- authored by hand -->
<ObjectChange name="Cube">

	<Transition duration="2">
		<Visible>
			True
		</Visible>
	</Transition>
</ObjectChange>
`

	for name, doc := range map[string]string{"compact": compact, "pretty": pretty} {
		t.Run(name, func(t *testing.T) {
			root, err := xmldoc.ParseString(doc)
			require.NoError(t, err)

			assert.Equal(t, "ObjectChange", root.Tag)
			v, ok := root.Attr("name")
			assert.True(t, ok)
			assert.Equal(t, "Cube", v)

			trans := root.Find("Transition")
			require.NotNil(t, trans)
			require.Len(t, trans.Children, 1)
			assert.Equal(t, "True", trans.Find("Visible").Text())
			assert.Empty(t, root.Text())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"only declaration", `<?xml version="1.0" ?>`},
		{"unclosed", `<Story><ObjectRoot></Story>`},
		{"two roots", `<A/><B/>`},
		{"trailing text", `<A/>oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := xmldoc.ParseString(tt.doc)
			require.Error(t, err)
			var ue *errors.UnmarshalError
			assert.True(t, stderrors.As(err, &ue), "want UnmarshalError, got %T", err)
		})
	}
}

func TestEncode_PrettyPrint(t *testing.T) {
	root := xmldoc.NewNode("Sound", xmldoc.A("name", "bell"), xmldoc.A("filename", "a&b.wav"))
	root.Append("Mode").Append("Positional")
	repeat := root.Append("Repeat")
	repeat.Append("RepeatNum").SetText("3")
	root.Append("Settings")

	want := `<?xml version="1.0" ?>
<Sound name="bell" filename="a&amp;b.wav">
	<Mode>
		<Positional/>
	</Mode>
	<Repeat>
		<RepeatNum>3</RepeatNum>
	</Repeat>
	<Settings/>
</Sound>
`
	assert.Equal(t, want, xmldoc.String(root))

	noHeader := xmldoc.String(xmldoc.NewNode("Restart"), xmldoc.WithoutHeader(), xmldoc.Indent("  "))
	assert.Equal(t, "<Restart/>\n", noHeader)
}

func TestEncode_RoundTrip(t *testing.T) {
	root := xmldoc.NewNode("Story", xmldoc.A("version", "8"))
	text := root.Append("Content").Append("Text").Append("text")
	text.SetText("line one\n\nline <three>")

	out := xmldoc.String(root, xmldoc.Indent("  "))
	back, err := xmldoc.ParseString(out)
	require.NoError(t, err)

	got := back.Find("Content").Find("Text").Find("text")
	require.NotNil(t, got)
	assert.Equal(t, "line one\n\nline <three>", got.RawText())
}

func TestNode_Primitives(t *testing.T) {
	n := xmldoc.NewNode("Group", xmldoc.A("name", "g"))
	n.SetAttr("name", "h")
	n.SetAttr("random", "True")
	n.Append("Objects", xmldoc.A("name", "a"))
	n.Append("Groups", xmldoc.A("name", "b"))
	n.Append("Objects", xmldoc.A("name", "c"))

	assert.Equal(t, []xmldoc.Attr{xmldoc.A("name", "h"), xmldoc.A("random", "True")}, n.Attrs)
	_, ok := n.Attr("missing")
	assert.False(t, ok)

	objs := n.FindAll("Objects")
	require.Len(t, objs, 2)
	first, _ := objs[0].Attr("name")
	second, _ := objs[1].Attr("name")
	assert.Equal(t, []string{"a", "c"}, []string{first, second})
	assert.Nil(t, n.Find("Nope"))
	assert.Empty(t, n.FindAll("Nope"))
}

func TestTextTokens(t *testing.T) {
	assert.Equal(t, "True", xmldoc.FormatBool(true))
	assert.Equal(t, "False", xmldoc.FormatBool(false))

	for _, in := range []string{"True", "true", " TRUE\n"} {
		b, err := xmldoc.ParseBool(in)
		require.NoError(t, err)
		assert.True(t, b)
	}
	_, err := xmldoc.ParseBool("yes")
	var pe *errors.ParseError
	assert.True(t, stderrors.As(err, &pe))

	assert.Equal(t, "1", xmldoc.FormatNumber(1))
	assert.Equal(t, "0.25", xmldoc.FormatNumber(0.25))
	assert.Equal(t, "-1", xmldoc.FormatNumber(-1))

	f, err := xmldoc.ParseNumber(" 2.5 ")
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)
	_, err = xmldoc.ParseNumber("two")
	assert.Error(t, err)

	assert.Equal(t, "2e+06", xmldoc.FormatNumber(2000000))
	assert.Equal(t, "2000000", xmldoc.FormatInt(2000000))
	assert.Equal(t, "-1", xmldoc.FormatInt(-1))

	i, err := xmldoc.ParseInt("\n3\n")
	require.NoError(t, err)
	assert.Equal(t, 3, i)
	_, err = xmldoc.ParseInt("3.5")
	assert.Error(t, err)
}

func TestTuples(t *testing.T) {
	assert.Equal(t, "255,0,0", xmldoc.FormatTuple([]float64{255, 0, 0}, xmldoc.CompactSep, false))
	assert.Equal(t, "(0, 1.25, 8)", xmldoc.FormatTuple([]float64{0, 1.25, 8}, xmldoc.SpacedSep, true))

	for _, in := range []string{"(1, 2, 3)", "1,2,3", " 1 ,2, 3 ", "(1,2,3)"} {
		got, err := xmldoc.ParseTuple(in)
		require.NoError(t, err, in)
		assert.Equal(t, []float64{1, 2, 3}, got, in)
	}

	for _, in := range []string{"", "()", "1,,2", "a,b,c"} {
		_, err := xmldoc.ParseTuple(in)
		assert.Error(t, err, in)
	}
}

func TestNode_Require(t *testing.T) {
	n := xmldoc.NewNode("Sound", xmldoc.A("name", "bell"))
	n.Append("Mode")

	v, err := n.RequireAttr("name")
	require.NoError(t, err)
	assert.Equal(t, "bell", v)

	_, err = n.RequireAttr("filename")
	var md *errors.MalformedDocumentError
	require.True(t, stderrors.As(err, &md))
	assert.Equal(t, "Sound", md.Tag)

	mode, err := n.Require("Mode")
	require.NoError(t, err)
	assert.Equal(t, "Mode", mode.Tag)

	_, err = n.Require("Repeat")
	assert.True(t, stderrors.As(err, &md))
}
