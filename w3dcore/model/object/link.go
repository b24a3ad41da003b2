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
	"math"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/model/action"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Kind names of Link and LinkAction.
const (
	LinkKind       = "Link"
	LinkActionKind = "LinkAction"
)

var linkActionSchema = feature.NewSchema(LinkActionKind,
	feature.Attr("action", action.Validator()).Required(),
	feature.Attr("clicks", validate.Described(validate.Numeric().WithMin(0).WithMax(math.MaxInt32).Integer(), "Number of clicks, 0 for any")).WithDefault(0),
	feature.Attr("reset", validate.Boolean()).WithDefault(false),
).WithOrder("action", "clicks", "reset")

// LinkAction is an action run when a link is clicked.
//
// With clicks set to n > 0 the action runs on the n-th click; with reset
// the count restarts afterwards. The default runs on any click.
//
//	<Actions>
//		<SoundRef name="bell"/>
//		<Clicks><NumClicks num_clicks="2" reset="True"/></Clicks>
//	</Actions>
type LinkAction struct {
	feature.Base
}

var _ feature.Feature = (*LinkAction)(nil)

// NewLinkAction returns a link action running a on any click.
func NewLinkAction(a action.Action) *LinkAction {
	la := &LinkAction{Base: feature.NewBase(linkActionSchema)}
	if a != nil {
		_ = la.Set("action", a)
	}
	return la
}

// Action returns the action to run.
func (la *LinkAction) Action() action.Action {
	a, _ := feature.As[action.Action](la, "action")
	return a
}

// Clicks returns the click count, 0 meaning any click.
func (la *LinkAction) Clicks() int {
	n, _ := feature.Int(la, "clicks")
	return n
}

// Reset reports whether the click count restarts after the action runs.
func (la *LinkAction) Reset() bool {
	b, _ := feature.Bool(la, "reset")
	return b
}

// Validate checks the action.
func (la *LinkAction) Validate() error {
	if err := la.Base.Validate(); err != nil {
		return err
	}
	return la.Action().Validate()
}

// ToDocument appends an Actions element to parent.
func (la *LinkAction) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := la.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, "Actions")
	if _, err := la.Action().ToDocument(node); err != nil {
		return nil, err
	}
	clicks := node.Append("Clicks")
	if !la.HasExplicit("clicks") && !la.HasExplicit("reset") {
		clicks.Append("Any")
		return node, nil
	}
	num := clicks.Append("NumClicks")
	if la.HasExplicit("clicks") {
		num.SetAttr("num_clicks", xmldoc.FormatInt(la.Clicks()))
	}
	if la.HasExplicit("reset") {
		num.SetAttr("reset", xmldoc.FormatBool(la.Reset()))
	}
	return node, nil
}

// LinkActionFromDocument builds a LinkAction from an Actions element
// holding exactly one action and an optional Clicks child.
func LinkActionFromDocument(n *xmldoc.Node) (*LinkAction, error) {
	actions, err := action.DispatchChildren(n)
	if err != nil {
		return nil, err
	}
	if len(actions) != 1 {
		return nil, &errors.MalformedDocumentError{Tag: "Actions", Reason: "expected exactly one action"}
	}
	la := NewLinkAction(actions[0])

	clicks := n.Find("Clicks")
	if clicks == nil {
		return la, nil
	}
	num := clicks.Find("NumClicks")
	if num == nil {
		return la, nil
	}
	if text, ok := num.Attr("num_clicks"); ok {
		c, err := xmldoc.ParseInt(text)
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: "NumClicks", Reason: "bad num_clicks attribute", Err: err}
		}
		if err := la.Set("clicks", c); err != nil {
			return nil, err
		}
	}
	if text, ok := num.Attr("reset"); ok {
		b, err := xmldoc.ParseBool(text)
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: "NumClicks", Reason: "bad reset attribute", Err: err}
		}
		if err := la.Set("reset", b); err != nil {
			return nil, err
		}
	}
	return la, nil
}

var linkSchema = feature.NewSchema(LinkKind,
	feature.Attr("enabled", validate.Boolean()).WithDefault(true),
	feature.Attr("remain_enabled", validate.Boolean()).WithDefault(true),
	feature.Attr("enabled_color", validate.Tuple(3)).WithDefault([]float64{0, 128, 255}),
	feature.Attr("selected_color", validate.Tuple(3)).WithDefault([]float64{255, 0, 0}),
	feature.Attr("actions", validate.ListOf(validate.FeatureOf(LinkActionKind))),
).WithOrder("enabled", "remain_enabled", "enabled_color", "selected_color", "actions")

// Link makes an object clickable.
//
//	<Link>
//		<Enabled>True</Enabled>
//		<RemainEnabled>False</RemainEnabled>
//		<EnabledColor>0, 128, 255</EnabledColor>
//		<SelectedColor>255, 0, 0</SelectedColor>
//		<Actions>...</Actions>
//	</Link>
type Link struct {
	feature.Base
}

var _ feature.Feature = (*Link)(nil)

// NewLink returns a link running the given actions.
func NewLink(actions ...*LinkAction) *Link {
	l := &Link{Base: feature.NewBase(linkSchema)}
	if len(actions) > 0 {
		_ = l.Set("actions", actions)
	}
	return l
}

// Actions returns the link actions in document order.
func (l *Link) Actions() []*LinkAction {
	as, _ := feature.As[[]*LinkAction](l, "actions")
	return as
}

var linkFlags = []struct{ name, tag string }{
	{"enabled", "Enabled"},
	{"remain_enabled", "RemainEnabled"},
}

var linkColors = []struct{ name, tag string }{
	{"enabled_color", "EnabledColor"},
	{"selected_color", "SelectedColor"},
}

// Validate checks every link action.
func (l *Link) Validate() error {
	if err := l.Base.Validate(); err != nil {
		return err
	}
	if !l.HasExplicit("actions") {
		return nil
	}
	as, err := feature.As[[]*LinkAction](l, "actions")
	if err != nil {
		return err
	}
	for _, la := range as {
		if err := la.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToDocument appends a Link element to parent.
func (l *Link) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, "Link")
	for _, f := range linkFlags {
		if l.HasExplicit(f.name) {
			b, _ := feature.Bool(l, f.name)
			node.Append(f.tag).SetText(xmldoc.FormatBool(b))
		}
	}
	for _, c := range linkColors {
		if l.HasExplicit(c.name) {
			v, _ := feature.Floats(l, c.name)
			node.Append(c.tag).SetText(xmldoc.FormatTuple(v, xmldoc.SpacedSep, false))
		}
	}
	for _, la := range l.Actions() {
		if _, err := la.ToDocument(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// LinkFromDocument builds a Link from a Link element.
func LinkFromDocument(n *xmldoc.Node) (*Link, error) {
	l := NewLink()
	for _, f := range linkFlags {
		if c := n.Find(f.tag); c != nil {
			b, err := xmldoc.ParseBool(c.Text())
			if err != nil {
				return nil, &errors.MalformedDocumentError{Tag: f.tag, Reason: "bad boolean", Err: err}
			}
			if err := l.Set(f.name, b); err != nil {
				return nil, err
			}
		}
	}
	for _, col := range linkColors {
		if c := n.Find(col.tag); c != nil {
			v, err := xmldoc.ParseTuple(c.Text())
			if err != nil {
				return nil, &errors.MalformedDocumentError{Tag: col.tag, Reason: "bad color", Err: err}
			}
			if err := l.Set(col.name, v); err != nil {
				return nil, err
			}
		}
	}
	var actions []*LinkAction
	for _, c := range n.FindAll("Actions") {
		la, err := LinkActionFromDocument(c)
		if err != nil {
			return nil, err
		}
		actions = append(actions, la)
	}
	if len(actions) > 0 {
		if err := l.Set("actions", actions); err != nil {
			return nil, err
		}
	}
	return l, nil
}
