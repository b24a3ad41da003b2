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
	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/model/placement"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Sound changes carried by a transition.
const (
	PlaySound = "Play Sound"
	StopSound = "Stop Sound"
)

// Link changes carried by a transition.
const (
	LinkEnable           = "Enable"
	LinkDisable          = "Disable"
	LinkActivate         = "Activate"
	LinkActivateIfEnable = "Activate if enabled"
)

// DefaultDuration is the transition duration, in seconds, of object and
// group changes.
const DefaultDuration = 1

// transitionFields are shared by ObjectAction and GroupAction.
func transitionFields() []feature.Field {
	return []feature.Field{
		feature.Attr("duration", validate.Numeric().WithMin(0)).WithDefault(DefaultDuration),
		feature.Attr("visible", validate.Any("Either true or false")),
		feature.Attr("placement", validate.Any("A Placement feature")),
		feature.Attr("move_relative", validate.Any("Either true or false")),
		feature.Attr("color", validate.Tuple(3)),
		feature.Attr("scale", validate.Numeric().WithMin(0)),
		feature.Attr("sound_change", validate.OneOf(PlaySound, StopSound)),
		feature.Attr("link_change", validate.OneOf(LinkEnable, LinkDisable, LinkActivate, LinkActivateIfEnable)),
	}
}

var transitionOrder = []string{
	"duration", "visible", "placement", "move_relative", "color", "scale", "sound_change", "link_change",
}

// linkMarkers maps link_change values to the marker element written under
// LinkChange.
var linkMarkers = []struct{ change, tag string }{
	{LinkEnable, "link_on"},
	{LinkDisable, "link_off"},
	{LinkActivate, "activate"},
	{LinkActivateIfEnable, "activate_if_on"},
}

// validateTransition checks that placement and move_relative are written
// together.
func validateTransition(f feature.Feature) error {
	hasPlacement := f.HasExplicit("placement")
	hasRelative := f.HasExplicit("move_relative")
	switch {
	case hasPlacement && !hasRelative:
		return &errors.ValidationError{Type: f.Kind(), Field: "move_relative", Reason: "must be set when placement is set"}
	case hasRelative && !hasPlacement:
		return &errors.ValidationError{Type: f.Kind(), Field: "placement", Reason: "must be set when move_relative is set"}
	}
	if hasPlacement {
		p, err := feature.As[*placement.Placement](f, "placement")
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if _, err := feature.Bool(f, "move_relative"); err != nil {
			return err
		}
	}
	if f.HasExplicit("visible") {
		if _, err := feature.Bool(f, "visible"); err != nil {
			return err
		}
	}
	return nil
}

// writeTransition appends the Transition element. Only written attributes
// produce children; duration is always written.
func writeTransition(f feature.Feature, parent *xmldoc.Node) error {
	duration, err := feature.Float(f, "duration")
	if err != nil {
		return err
	}
	trans := parent.Append("Transition", xmldoc.A("duration", xmldoc.FormatNumber(duration)))

	if f.HasExplicit("visible") {
		v, err := feature.Bool(f, "visible")
		if err != nil {
			return err
		}
		trans.Append("Visible").SetText(xmldoc.FormatBool(v))
	}
	if f.HasExplicit("placement") {
		relative, err := feature.Bool(f, "move_relative")
		if err != nil {
			return err
		}
		p, err := feature.As[*placement.Placement](f, "placement")
		if err != nil {
			return err
		}
		tag := "Movement"
		if relative {
			tag = "MoveRel"
		}
		if _, err := p.ToDocument(trans.Append(tag)); err != nil {
			return err
		}
	}
	if f.HasExplicit("color") {
		c, err := feature.Floats(f, "color")
		if err != nil {
			return err
		}
		trans.Append("Color").SetText(xmldoc.FormatTuple(c, xmldoc.CompactSep, false))
	}
	if f.HasExplicit("scale") {
		s, err := feature.Float(f, "scale")
		if err != nil {
			return err
		}
		trans.Append("Scale").SetText(xmldoc.FormatNumber(s))
	}
	if f.HasExplicit("sound_change") {
		s, err := feature.String(f, "sound_change")
		if err != nil {
			return err
		}
		trans.Append("Sound", xmldoc.A("action", s))
	}
	if f.HasExplicit("link_change") {
		l, err := feature.String(f, "link_change")
		if err != nil {
			return err
		}
		node := trans.Append("LinkChange")
		for _, m := range linkMarkers {
			if m.change == l {
				node.Append(m.tag)
			}
		}
	}
	return nil
}

// readTransition populates f from the Transition child of n.
//
// A duration equal to DefaultDuration is left at its default, so an action
// written with only defaults reads back with IsDefault("duration") true.
func readTransition(f feature.Feature, n *xmldoc.Node) error {
	trans, err := n.Require("Transition")
	if err != nil {
		return err
	}

	if text, ok := trans.Attr("duration"); ok {
		d, err := xmldoc.ParseNumber(text)
		if err != nil {
			return &errors.MalformedDocumentError{Tag: "Transition", Reason: "bad duration", Err: err}
		}
		if d != DefaultDuration {
			if err := f.Set("duration", d); err != nil {
				return err
			}
		}
	}

	if node := trans.Find("Visible"); node != nil {
		v, err := xmldoc.ParseBool(node.Text())
		if err != nil {
			return &errors.MalformedDocumentError{Tag: "Visible", Reason: "bad boolean", Err: err}
		}
		if err := f.Set("visible", v); err != nil {
			return err
		}
	}

	move := trans.Find("MoveRel")
	relative := move != nil
	if move == nil {
		move = trans.Find("Movement")
	}
	if move != nil {
		pn, err := move.Require(placement.Tag)
		if err != nil {
			return err
		}
		p, err := placement.FromDocument(pn)
		if err != nil {
			return err
		}
		if err := f.Seed(map[string]any{"move_relative": relative, "placement": p}); err != nil {
			return err
		}
	}

	if node := trans.Find("Color"); node != nil {
		c, err := xmldoc.ParseTuple(node.Text())
		if err != nil {
			return &errors.MalformedDocumentError{Tag: "Color", Reason: "bad color", Err: err}
		}
		if err := f.Set("color", c); err != nil {
			return err
		}
	}

	if node := trans.Find("Scale"); node != nil {
		s, err := xmldoc.ParseNumber(node.Text())
		if err != nil {
			return &errors.MalformedDocumentError{Tag: "Scale", Reason: "bad scale", Err: err}
		}
		if err := f.Set("scale", s); err != nil {
			return err
		}
	}

	if node := trans.Find("Sound"); node != nil {
		s, err := node.RequireAttr("action")
		if err != nil {
			return err
		}
		if err := f.Set("sound_change", s); err != nil {
			return err
		}
	}

	if node := trans.Find("LinkChange"); node != nil {
		found := false
		for _, m := range linkMarkers {
			if node.Find(m.tag) != nil {
				if err := f.Set("link_change", m.change); err != nil {
					return err
				}
				found = true
				break
			}
		}
		if !found {
			return &errors.MalformedDocumentError{Tag: "LinkChange", Reason: "missing link_on, link_off, activate or activate_if_on child"}
		}
	}
	return nil
}
