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

package action

import (
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Sound changes.
const (
	SoundStart = "Start"
	SoundStop  = "Stop"
)

var soundSchema = feature.NewSchema(SoundActionKind,
	feature.Attr("sound_name", validate.Any("Name of a sound")).Required(),
	feature.Attr("change", validate.OneOf(SoundStart, SoundStop)).WithDefault(SoundStart),
).WithOrder("sound_name", "change")

// SoundAction starts or stops a sound.
//
//	<SoundRef name="bell" action="Stop"/>
type SoundAction struct {
	feature.Base
}

var _ Action = (*SoundAction)(nil)

// NewSoundAction returns an action starting the named sound.
func NewSoundAction(soundName string) *SoundAction {
	a := &SoundAction{Base: feature.NewBase(soundSchema)}
	if soundName != "" {
		_ = a.Set("sound_name", soundName)
	}
	return a
}

// Tag returns "SoundRef".
func (a *SoundAction) Tag() string { return SoundRefTag }

// SoundName returns the name of the affected sound.
func (a *SoundAction) SoundName() string {
	s, _ := feature.String(a, "sound_name")
	return s
}

// Change returns "Start" or "Stop".
func (a *SoundAction) Change() string {
	s, _ := feature.String(a, "change")
	return s
}

// Validate checks required attributes.
func (a *SoundAction) Validate() error {
	if err := a.Base.Validate(); err != nil {
		return err
	}
	_, err := feature.String(a, "sound_name")
	return err
}

// ToDocument appends a SoundRef element to parent.
func (a *SoundAction) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, SoundRefTag, xmldoc.A("name", a.SoundName()))
	if a.HasExplicit("change") {
		node.SetAttr("action", a.Change())
	}
	return node, nil
}

// SoundActionFromDocument builds a SoundAction from a SoundRef element.
func SoundActionFromDocument(n *xmldoc.Node) (*SoundAction, error) {
	name, err := n.RequireAttr("name")
	if err != nil {
		return nil, err
	}
	a := NewSoundAction("")
	if err := a.Set("sound_name", name); err != nil {
		return nil, err
	}
	if change, ok := n.Attr("action"); ok {
		if err := a.Set("change", change); err != nil {
			return nil, err
		}
	}
	return a, nil
}
