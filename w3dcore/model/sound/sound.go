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

// Package sound defines project sounds and the process-wide cache of the
// audio clips they refer to.
//
// Document form:
//
//	<Sound name="bell" filename="bell.wav" autostart="True">
//		<Mode><Positional/></Mode>
//		<Repeat><RepeatNum>3</RepeatNum></Repeat>
//		<Settings freq="1.5" volume="0.5" pan="-1"/>
//	</Sound>
package sound

import (
	"math"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Kind is the kind name of Sound.
const Kind = "Sound"

// Tag is the document element of a Sound.
const Tag = "Sound"

// Movement modes.
const (
	// Positional sounds come from an apparent position in the scene.
	Positional = "Positional"
	// Fixed sounds are ambient.
	Fixed = "Fixed"
)

var modes = []string{Positional, Fixed}

// settingsAttrs maps Settings attributes to sound attributes.
var settingsAttrs = []struct{ attr, name string }{
	{"freq", "frequency_scale"},
	{"volume", "volume_scale"},
	{"pan", "pan"},
}

var schema = feature.NewSchema(Kind,
	feature.Attr("name", validate.String("Unique name of the sound")).Required(),
	feature.Attr("filename", validate.String("Audio file")).Required(),
	feature.Attr("autostart", validate.Boolean()).WithDefault(false),
	feature.Attr("movement_mode", validate.OneOf(modes...)).WithDefault(Positional),
	feature.Attr("repetitions", validate.Numeric().WithMin(math.MinInt32).WithMax(math.MaxInt32).Integer()).WithDefault(0),
	feature.Attr("frequency_scale", validate.Numeric().WithMin(0.5).WithMax(2)).WithDefault(1),
	feature.Attr("volume_scale", validate.Numeric().WithMin(0).WithMax(2)).WithDefault(1),
	feature.Attr("pan", validate.Numeric().WithMin(-1).WithMax(1)).WithDefault(0),
).WithOrder("name", "filename", "autostart", "movement_mode", "repetitions", "frequency_scale", "volume_scale", "pan")

// Sound is an audio clip that actions can start and stop.
//
// A negative repetitions value loops forever; zero plays once.
type Sound struct {
	feature.Base
}

var _ feature.Feature = (*Sound)(nil)

// New returns a sound named name playing filename.
func New(name, filename string) *Sound {
	s := &Sound{Base: feature.NewBase(schema)}
	values := map[string]any{}
	if name != "" {
		values["name"] = name
	}
	if filename != "" {
		values["filename"] = filename
	}
	_ = s.Seed(values)
	return s
}

// Name returns the sound's unique name.
func (s *Sound) Name() string {
	v, _ := feature.String(s, "name")
	return v
}

// Filename returns the audio file, relative to the project directory
// unless absolute.
func (s *Sound) Filename() string {
	v, _ := feature.String(s, "filename")
	return v
}

// Autostart reports whether the sound starts with the project.
func (s *Sound) Autostart() bool {
	v, _ := feature.Bool(s, "autostart")
	return v
}

// MovementMode returns Positional or Fixed.
func (s *Sound) MovementMode() string {
	v, _ := feature.String(s, "movement_mode")
	return v
}

// Repetitions returns the repeat count.
func (s *Sound) Repetitions() int {
	v, _ := feature.Int(s, "repetitions")
	return v
}

// ToDocument appends a Sound element to parent. Mode, Repeat and Settings
// are always written; Settings carries only written attributes.
func (s *Sound) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, Tag, xmldoc.A("name", s.Name()), xmldoc.A("filename", s.Filename()))
	if s.HasExplicit("autostart") {
		node.SetAttr("autostart", xmldoc.FormatBool(s.Autostart()))
	}

	node.Append("Mode").Append(s.MovementMode())

	repeat := node.Append("Repeat")
	switch n := s.Repetitions(); {
	case n == 0:
		repeat.Append("NoRepeat")
	case n < 0:
		repeat.Append("RepeatForever")
	default:
		repeat.Append("RepeatNum").SetText(xmldoc.FormatInt(n))
	}

	settings := node.Append("Settings")
	for _, a := range settingsAttrs {
		if !s.HasExplicit(a.name) {
			continue
		}
		f, err := feature.Float(s, a.name)
		if err != nil {
			return nil, err
		}
		settings.SetAttr(a.attr, xmldoc.FormatNumber(f))
	}
	return node, nil
}

// FromDocument builds a Sound from a Sound element. name, filename and the
// Mode, Repeat and Settings children are required.
//
// A mode or repeat count equal to its default is left unwritten, so a sound
// that only set its name and filename reads back the same way.
func FromDocument(n *xmldoc.Node) (*Sound, error) {
	name, err := n.RequireAttr("name")
	if err != nil {
		return nil, err
	}
	filename, err := n.RequireAttr("filename")
	if err != nil {
		return nil, err
	}
	s := New("", "")
	if err := s.Seed(map[string]any{"name": name, "filename": filename}); err != nil {
		return nil, err
	}

	if text, ok := n.Attr("autostart"); ok {
		b, err := xmldoc.ParseBool(text)
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: Tag, Reason: "bad autostart attribute", Err: err}
		}
		if err := s.Set("autostart", b); err != nil {
			return nil, err
		}
	}

	mode, err := n.Require("Mode")
	if err != nil {
		return nil, err
	}
	found := ""
	for _, m := range modes {
		if mode.Find(m) != nil {
			found = m
			break
		}
	}
	if found == "" {
		return nil, &errors.MalformedDocumentError{Tag: "Mode", Reason: "missing Positional or Fixed child"}
	}
	if found != Positional {
		if err := s.Set("movement_mode", found); err != nil {
			return nil, err
		}
	}

	repeat, err := n.Require("Repeat")
	if err != nil {
		return nil, err
	}
	reps, err := readRepeat(repeat)
	if err != nil {
		return nil, err
	}
	if reps != 0 {
		if err := s.Set("repetitions", reps); err != nil {
			return nil, err
		}
	}

	settings, err := n.Require("Settings")
	if err != nil {
		return nil, err
	}
	for _, a := range settingsAttrs {
		text, ok := settings.Attr(a.attr)
		if !ok {
			continue
		}
		f, err := xmldoc.ParseNumber(text)
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: "Settings", Reason: "bad " + a.attr + " attribute", Err: err}
		}
		if err := s.Set(a.name, f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func readRepeat(n *xmldoc.Node) (int, error) {
	switch {
	case n.Find("NoRepeat") != nil:
		return 0, nil
	case n.Find("RepeatForever") != nil:
		return -1, nil
	}
	num, err := n.Require("RepeatNum")
	if err != nil {
		return 0, &errors.MalformedDocumentError{Tag: "Repeat", Reason: "missing NoRepeat, RepeatForever or RepeatNum child"}
	}
	reps, err := xmldoc.ParseInt(num.Text())
	if err != nil {
		return 0, &errors.MalformedDocumentError{Tag: "RepeatNum", Reason: "bad repetitions", Err: err}
	}
	return reps, nil
}
