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

package feature_test

import (
	"encoding/json"
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

var hooked []bool

var widgetSchema = feature.NewSchema("Widget",
	feature.Attr("name", validate.Any("Widget name")).Required(),
	feature.Attr("size", validate.Numeric().WithMin(0)).WithDefault(1),
	feature.Attr("color", validate.Tuple(3)),
	feature.Attr("mode", validate.OneOf("A", "B")),
	feature.Attr("flag", validate.Boolean()).OnSet(func(v any) { hooked = append(hooked, v.(bool)) }),
	feature.Attr("child", validate.FeatureOf("Widget")),
	feature.Attr("note", validate.String("")),
)

type widget struct {
	feature.Base
}

func newWidget() *widget {
	return &widget{Base: feature.NewBase(widgetSchema)}
}

var _ feature.Feature = (*widget)(nil)

func TestSetGet_Identity(t *testing.T) {
	tests := []struct {
		name  string
		attr  string
		value any
	}{
		{"any string", "name", "Cube"},
		{"int", "size", 3},
		{"float", "size", 2.5},
		{"zero", "size", 0},
		{"tuple", "color", []float64{1, 2, 3}},
		{"int tuple", "color", [3]int{255, 0, 0}},
		{"option", "mode", "B"},
		{"bool", "flag", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWidget()
			require.NoError(t, w.Set(tt.attr, tt.value))
			got, err := w.Get(tt.attr)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
			assert.True(t, w.HasExplicit(tt.attr))
		})
	}
}

func TestSet_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		attr  string
		value any
		want  any
	}{
		{"unknown attribute", "weight", 1, &errors.InvalidAttributeError{}},
		{"negative size", "size", -0.0001, &errors.InvalidValueError{}},
		{"string size", "size", "1", &errors.InvalidValueError{}},
		{"short tuple", "color", []float64{1, 2}, &errors.InvalidValueError{}},
		{"bad option", "mode", "C", &errors.InvalidValueError{}},
		{"string flag", "flag", "True", &errors.InvalidValueError{}},
		{"wrong child", "child", "Widget", &errors.InvalidValueError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWidget()
			require.NoError(t, w.Set("size", 2))
			err := w.Set(tt.attr, tt.value)
			require.Error(t, err)

			switch tt.want.(type) {
			case *errors.InvalidAttributeError:
				var target *errors.InvalidAttributeError
				assert.True(t, stderrors.As(err, &target))
			case *errors.InvalidValueError:
				var target *errors.InvalidValueError
				require.True(t, stderrors.As(err, &target))
				assert.Equal(t, "Widget", target.Kind)
				assert.Equal(t, tt.attr, target.Name)
			}

			size, _ := w.Get("size")
			assert.Equal(t, 2, size, "a rejected write must not change other attributes")
			if tt.attr != "size" {
				assert.False(t, w.HasExplicit(tt.attr))
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	w := newWidget()

	got, err := w.Get("size")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.True(t, w.IsDefault("size"))
	assert.False(t, w.HasExplicit("size"), "reading a default must not write it")

	require.NoError(t, w.Set("size", 1))
	assert.False(t, w.IsDefault("size"), "an explicit write equal to the default is not a default")
	assert.True(t, w.HasExplicit("size"))

	assert.False(t, w.IsDefault("color"), "no default declared")

	_, err = w.Get("color")
	var missing *errors.MissingAttributeError
	assert.True(t, stderrors.As(err, &missing))

	_, err = w.Get("weight")
	var invalid *errors.InvalidAttributeError
	assert.True(t, stderrors.As(err, &invalid))
}

func TestSeed_IsAtomic(t *testing.T) {
	w := newWidget()
	err := w.Seed(map[string]any{"name": "a", "size": -1})
	require.Error(t, err)
	assert.True(t, w.IsZero())

	require.NoError(t, w.Seed(map[string]any{"name": "a", "size": 4, "flag": true}))
	assert.Equal(t, []string{"flag", "name", "size"}, w.Explicit())
}

func TestHook_RunsAfterSuccessfulWrite(t *testing.T) {
	hooked = nil
	w := newWidget()

	require.NoError(t, w.Set("flag", true))
	require.Error(t, w.Set("flag", 1))
	require.NoError(t, w.Set("flag", false))

	assert.Equal(t, []bool{true, false}, hooked)
}

func TestValidate_Required(t *testing.T) {
	w := newWidget()
	err := w.Validate()
	var missing *errors.MissingAttributeError
	require.True(t, stderrors.As(err, &missing))
	assert.Equal(t, "name", missing.Name)

	require.NoError(t, w.Set("name", "w"))
	assert.NoError(t, w.Validate())
}

func TestToDocument_BaseIsNotImplemented(t *testing.T) {
	_, err := newWidget().ToDocument(xmldoc.NewNode("Root"))
	var ni *errors.NotImplementedError
	require.True(t, stderrors.As(err, &ni))
	assert.Equal(t, "Widget", ni.Kind)
}

func TestSchema_Order(t *testing.T) {
	assert.Equal(t, []string{"child", "color", "flag", "mode", "name", "note", "size"}, widgetSchema.Order())

	ordered := widgetSchema.WithOrder("name", "size", "color", "mode", "flag", "child", "note")
	w := &widget{Base: feature.NewBase(ordered)}
	require.NoError(t, w.Set("size", 2))
	require.NoError(t, w.Set("name", "w"))
	assert.Equal(t, []string{"name", "size"}, w.Explicit())

	assert.Panics(t, func() { widgetSchema.WithOrder("name") })
}

func TestSchema_Panics(t *testing.T) {
	tests := []struct {
		name   string
		fields []feature.Field
	}{
		{"duplicate", []feature.Field{
			feature.Attr("a", validate.Boolean()),
			feature.Attr("a", validate.Boolean()),
		}},
		{"invalid default", []feature.Field{
			feature.Attr("a", validate.Numeric().WithMin(0)).WithDefault(-1),
		}},
		{"required and defaulted", []feature.Field{
			feature.Attr("a", validate.Boolean()).WithDefault(true).Required(),
		}},
		{"no validator", []feature.Field{
			feature.Attr("a", nil),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { feature.NewSchema("Broken", tt.fields...) })
		})
	}
}

func TestSchema_DefaultIsCopied(t *testing.T) {
	s := feature.NewSchema("Vec", feature.Attr("v", validate.Tuple(3)).WithDefault([]float64{0, 1, 0}))
	w := &widget{Base: feature.NewBase(s)}

	v, err := feature.Floats(w, "v")
	require.NoError(t, err)
	v[0] = 9

	again, _ := feature.Floats(w, "v")
	assert.Equal(t, []float64{0, 1, 0}, again)
}

func TestSet_CopiesSequences(t *testing.T) {
	w := newWidget()
	color := []float64{1, 2, 3}
	require.NoError(t, w.Set("color", color))

	color[0] = 0
	got, err := feature.Floats(w, "color")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got)

	got[1] = 0
	again, err := feature.Floats(w, "color")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, again)

	seeded := []int{4, 5, 6}
	require.NoError(t, w.Seed(map[string]any{"color": seeded}))
	seeded[2] = 0
	ints, err := feature.As[[]int](w, "color")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, ints)
}

func TestLoggable(t *testing.T) {
	w := newWidget()
	require.NoError(t, w.Set("name", "w"))
	require.NoError(t, w.Set("note", "a note that is much longer than the redaction limit"))
	require.NoError(t, w.Set("color", []float64{1, 2, 3}))

	assert.Equal(t, "Widget", w.TypeName())
	assert.Equal(t, `Widget{color=(1 2 3), name="w", note="a note that is much longer than the redaction limit"}`, w.String())
	assert.Equal(t, `Widget{color=(1 2 3), name="w", note="a note that is much l..."}`, w.Redacted())
}

func TestExport(t *testing.T) {
	child := newWidget()
	require.NoError(t, child.Set("name", "inner"))

	w := newWidget()
	require.NoError(t, w.Set("size", 2))
	require.NoError(t, w.Set("name", "w"))
	require.NoError(t, w.Set("child", child))

	js, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, `{"child":{"name":"inner"},"name":"w","size":2}`, string(js))

	ys, err := yaml.Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, "child:\n    name: inner\nname: w\nsize: 2\n", string(ys))
}

func TestEqual(t *testing.T) {
	build := func(values map[string]any) *widget {
		w := newWidget()
		require.NoError(t, w.Seed(values))
		return w
	}
	inner := func(name string) *widget { return build(map[string]any{"name": name}) }

	tests := []struct {
		name string
		a, b map[string]any
		want bool
	}{
		{"empty", nil, nil, true},
		{"numeric types", map[string]any{"size": 1}, map[string]any{"size": 1.0}, true},
		{"tuple types", map[string]any{"color": []int{1, 2, 3}}, map[string]any{"color": []float64{1, 2, 3}}, true},
		{"tuple differs", map[string]any{"color": []int{1, 2, 3}}, map[string]any{"color": []float64{1, 2, 4}}, false},
		{"explicit vs default", map[string]any{"size": 1}, nil, false},
		{"nested equal", map[string]any{"child": inner("x")}, map[string]any{"child": inner("x")}, true},
		{"nested differs", map[string]any{"child": inner("x")}, map[string]any{"child": inner("y")}, false},
		{"string", map[string]any{"name": "a"}, map[string]any{"name": "b"}, false},
		{"bool token", map[string]any{"name": "True"}, map[string]any{"name": true}, true},
		{"bool token lower case", map[string]any{"name": false}, map[string]any{"name": "false"}, true},
		{"bool token differs", map[string]any{"name": "False"}, map[string]any{"name": true}, false},
		{"plain string vs bool", map[string]any{"name": "yes"}, map[string]any{"name": true}, false},
		{"bool vs number", map[string]any{"name": true}, map[string]any{"name": 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, feature.Equal(build(tt.a), build(tt.b)))
		})
	}

	other := feature.NewSchema("Gadget", feature.Attr("name", validate.Any("")))
	assert.False(t, feature.Equal(newWidget(), &widget{Base: feature.NewBase(other)}))
}

func TestAccessors(t *testing.T) {
	s := feature.NewSchema("Bag",
		feature.Attr("s", validate.Any("")),
		feature.Attr("n", validate.Any("")),
		feature.Attr("b", validate.Any("")),
		feature.Attr("v", validate.Any("")),
	)
	w := &widget{Base: feature.NewBase(s)}
	require.NoError(t, w.Seed(map[string]any{"s": "x", "n": 3, "b": "true", "v": []int{1, 2}}))

	str, err := feature.String(w, "s")
	require.NoError(t, err)
	assert.Equal(t, "x", str)

	f, err := feature.Float(w, "n")
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	i, err := feature.Int(w, "n")
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	b, err := feature.Bool(w, "b")
	require.NoError(t, err)
	assert.True(t, b)

	fs, err := feature.Floats(w, "v")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, fs)

	ints, err := feature.As[[]int](w, "v")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ints)

	for _, n := range []any{1e30, -1e30, math.MaxFloat64, 2.5} {
		require.NoError(t, w.Set("n", n))
		_, err := feature.Int(w, "n")
		var me *errors.MarshalError
		assert.True(t, stderrors.As(err, &me), "Int(%v) = %v", n, err)
	}
	require.NoError(t, w.Set("n", -1e15))
	i, err = feature.Int(w, "n")
	require.NoError(t, err)
	assert.Equal(t, -1000000000000000, i)

	var me *errors.MarshalError
	_, err = feature.Bool(w, "n")
	assert.True(t, stderrors.As(err, &me))
	_, err = feature.Float(w, "s")
	assert.True(t, stderrors.As(err, &me))
	_, err = feature.As[string](w, "n")
	assert.True(t, stderrors.As(err, &me))
}

func TestCatalog(t *testing.T) {
	c := feature.NewCatalog("widget", map[string]feature.Factory[*widget]{
		"Widget": func(n *xmldoc.Node) (*widget, error) {
			w := newWidget()
			name, _ := n.Attr("name")
			return w, w.Set("name", name)
		},
	})

	w, err := c.Dispatch(xmldoc.NewNode("Widget", xmldoc.A("name", "a")))
	require.NoError(t, err)
	name, err := feature.String(w, "name")
	require.NoError(t, err)
	assert.Equal(t, "a", name)

	_, err = c.Dispatch(xmldoc.NewNode("Gizmo"))
	var uk *errors.UnrecognizedKindError
	require.True(t, stderrors.As(err, &uk))
	assert.Equal(t, "Gizmo", uk.Tag)
	assert.Equal(t, "widget", uk.Family)

	assert.Equal(t, []string{"Widget"}, c.Tags())
	assert.NotPanics(t, func() { c.Require("Widget") })
	assert.Panics(t, func() { c.Require("Widget", "Gizmo") })
}
