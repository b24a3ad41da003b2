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

package object_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/model/action"
	"dirpx.dev/w3d/w3dcore/model/object"
	"dirpx.dev/w3d/w3dcore/model/placement"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

func TestContent_Validate(t *testing.T) {
	cube, err := object.Shape(object.Cube)
	require.NoError(t, err)

	mixed := object.Text("hi")
	require.NoError(t, mixed.Set("filename", "a.png"))

	empty := object.NewContent()
	require.NoError(t, empty.Set("content_type", object.ImageContent))

	tests := []struct {
		name    string
		c       *object.Content
		wantErr bool
	}{
		{"text", object.Text("hello"), false},
		{"image", object.Image("logo.png"), false},
		{"model", object.Model("chair.obj"), false},
		{"shape", cube, false},
		{"no type", object.NewContent(), true},
		{"foreign attribute", mixed, true},
		{"missing filename", empty, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	_, err = object.Shape("Cone")
	var iv *errors.InvalidValueError
	assert.True(t, stderrors.As(err, &iv))
}

func TestContent_RoundTrip(t *testing.T) {
	sphere, err := object.Shape(object.Sphere)
	require.NoError(t, err)

	for name, c := range map[string]*object.Content{
		"text":   object.Text("  two\nlines "),
		"image":  object.Image("img/logo.png"),
		"model":  object.Model("chair.obj"),
		"sphere": sphere,
	} {
		t.Run(name, func(t *testing.T) {
			node, err := c.ToDocument(nil)
			require.NoError(t, err)
			parsed, err := xmldoc.ParseString(xmldoc.String(node))
			require.NoError(t, err)
			back, err := object.ContentFromDocument(parsed)
			require.NoError(t, err)
			assert.True(t, feature.Equal(c, back), "got %s, want %s", back, c)
		})
	}
}

func TestLinkAction_Clicks(t *testing.T) {
	anyClick := object.NewLinkAction(action.NewSoundAction("bell"))

	twice := object.NewLinkAction(action.NewSoundAction("bell"))
	require.NoError(t, twice.Seed(map[string]any{"clicks": 2, "reset": true}))

	many := object.NewLinkAction(action.NewSoundAction("bell"))
	require.NoError(t, many.Set("clicks", 3000000))

	tests := []struct {
		name string
		la   *object.LinkAction
		want string
	}{
		{"any", anyClick, "<Actions>\n\t<SoundRef name=\"bell\"/>\n\t<Clicks>\n\t\t<Any/>\n\t</Clicks>\n</Actions>\n"},
		{"num", twice, "<Actions>\n\t<SoundRef name=\"bell\"/>\n\t<Clicks>\n\t\t<NumClicks num_clicks=\"2\" reset=\"True\"/>\n\t</Clicks>\n</Actions>\n"},
		{"many", many, "<Actions>\n\t<SoundRef name=\"bell\"/>\n\t<Clicks>\n\t\t<NumClicks num_clicks=\"3000000\"/>\n\t</Clicks>\n</Actions>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := tt.la.ToDocument(nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, xmldoc.String(node, xmldoc.WithoutHeader()))

			back, err := object.LinkActionFromDocument(node)
			require.NoError(t, err)
			assert.True(t, feature.Equal(tt.la, back))
			assert.Equal(t, tt.la.Clicks(), back.Clicks())
		})
	}

	require.Error(t, twice.Set("clicks", -1))
	require.Error(t, twice.Set("clicks", 1.5))
	require.Error(t, twice.Set("clicks", 1e30))
}

func sample(t *testing.T) *object.Object {
	t.Helper()
	la := object.NewLinkAction(action.NewObjectAction("door"))
	require.NoError(t, la.Set("clicks", 1))
	link := object.NewLink(la, object.NewLinkAction(action.NewCaveResetAction()))
	require.NoError(t, link.Seed(map[string]any{
		"remain_enabled": false,
		"selected_color": []float64{10, 20, 30},
	}))

	o := object.New("sign", object.Text("Welcome"))
	require.NoError(t, o.Seed(map[string]any{
		"visible":         false,
		"color":           []float64{255, 0, 0},
		"lighting":        true,
		"click_through":   true,
		"around_own_axis": false,
		"scale":           2.5,
		"sound":           "bell",
		"placement":       placement.At([]float64{0, 1, -2}, placement.Axis([]float64{0, 1, 0}, 45)),
		"link":            link,
	}))
	return o
}

func TestObject_ToDocument(t *testing.T) {
	o := object.New("box", object.Text("hi"))
	require.NoError(t, o.Set("scale", 2))

	want := `<Object name="box">
	<Scale>2</Scale>
	<Content>
		<Text>
			<text>hi</text>
		</Text>
	</Content>
</Object>
`
	node, err := o.ToDocument(xmldoc.NewNode("ObjectRoot"))
	require.NoError(t, err)
	assert.Equal(t, want, xmldoc.String(node, xmldoc.WithoutHeader()))
}

func TestObject_RoundTrip(t *testing.T) {
	for name, o := range map[string]*object.Object{
		"minimal": object.New("plain", object.Image("a.png")),
		"full":    sample(t),
	} {
		t.Run(name, func(t *testing.T) {
			node, err := o.ToDocument(nil)
			require.NoError(t, err)

			text := xmldoc.String(node)
			parsed, err := xmldoc.ParseString(text)
			require.NoError(t, err)

			back, err := object.FromDocument(parsed)
			require.NoError(t, err)
			assert.True(t, feature.Equal(o, back), "got %s\nwant %s\n%s", back, o, text)
		})
	}
}

func TestObject_Accessors(t *testing.T) {
	o := sample(t)
	assert.Equal(t, "sign", o.Name())
	assert.Equal(t, "bell", o.Sound())
	assert.Equal(t, object.TextContent, o.Content().Type())
	require.NotNil(t, o.Placement())
	require.NotNil(t, o.Link())
	require.Len(t, o.Link().Actions(), 2)
	assert.Equal(t, 1, o.Link().Actions()[0].Clicks())

	bare := object.New("bare", object.Text("x"))
	assert.Nil(t, bare.Placement())
	assert.Nil(t, bare.Link())
	assert.True(t, bare.IsDefault("visible"))
}

func TestObject_Validate(t *testing.T) {
	noContent := object.New("empty", nil)
	var missing *errors.MissingAttributeError
	assert.True(t, stderrors.As(noContent.Validate(), &missing))

	bad := object.New("bad", object.NewContent())
	assert.Error(t, bad.Validate())

	_, err := bad.ToDocument(nil)
	assert.Error(t, err)
}

func TestObject_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no name", `<Object><Content><Text><text>a</text></Text></Content></Object>`},
		{"no content", `<Object name="a"/>`},
		{"empty content", `<Object name="a"><Content/></Object>`},
		{"text without text", `<Object name="a"><Content><Text/></Content></Object>`},
		{"image without file", `<Object name="a"><Content><Image/></Content></Object>`},
		{"unknown shape", `<Object name="a"><Content><Shape><Cone/></Shape></Content></Object>`},
		{"bad visible", `<Object name="a"><Visible>maybe</Visible><Content><Text><text>a</text></Text></Content></Object>`},
		{"bad color", `<Object name="a"><Color>red</Color><Content><Text><text>a</text></Text></Content></Object>`},
		{"bad scale", `<Object name="a"><Scale>big</Scale><Content><Text><text>a</text></Text></Content></Object>`},
		{"empty link root", `<Object name="a"><Content><Text><text>a</text></Text></Content><LinkRoot/></Object>`},
		{"two actions", `<Object name="a"><Content><Text><text>a</text></Text></Content><LinkRoot><Link><Actions><Restart/><Restart/></Actions></Link></LinkRoot></Object>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := xmldoc.ParseString(tt.doc)
			require.NoError(t, err)
			_, err = object.FromDocument(root)
			var md *errors.MalformedDocumentError
			assert.True(t, stderrors.As(err, &md), "got %T: %v", err, err)
		})
	}
}
