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

var moveCaveSchema = feature.NewSchema(MoveCaveActionKind,
	feature.Attr("relative", validate.Any("Either true or false")),
	feature.Attr("duration", validate.Numeric().WithMin(0)).WithDefault(0),
	feature.Attr("placement", validate.Any("A Placement feature")).Required(),
).WithOrder("relative", "duration", "placement")

// MoveCaveAction moves the whole scene to a new placement.
//
//	<MoveCave relative="True" duration="3">
//		<Placement>...</Placement>
//	</MoveCave>
type MoveCaveAction struct {
	feature.Base
}

var _ Action = (*MoveCaveAction)(nil)

// NewMoveCaveAction returns an action moving the scene to p.
func NewMoveCaveAction(p *placement.Placement) *MoveCaveAction {
	a := &MoveCaveAction{Base: feature.NewBase(moveCaveSchema)}
	if p != nil {
		_ = a.Set("placement", p)
	}
	return a
}

// Tag returns "MoveCave".
func (a *MoveCaveAction) Tag() string { return MoveCaveTag }

// Placement returns the target placement, or nil.
func (a *MoveCaveAction) Placement() *placement.Placement {
	p, _ := feature.As[*placement.Placement](a, "placement")
	return p
}

// Duration returns the move duration in seconds.
func (a *MoveCaveAction) Duration() float64 {
	f, _ := feature.Float(a, "duration")
	return f
}

// Validate checks that the placement is a valid Placement and relative is
// boolean-like.
func (a *MoveCaveAction) Validate() error {
	if err := a.Base.Validate(); err != nil {
		return err
	}
	p, err := feature.As[*placement.Placement](a, "placement")
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if a.HasExplicit("relative") {
		if _, err := feature.Bool(a, "relative"); err != nil {
			return err
		}
	}
	return nil
}

// ToDocument appends a MoveCave element to parent.
func (a *MoveCaveAction) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, MoveCaveTag)
	if a.HasExplicit("relative") {
		b, _ := feature.Bool(a, "relative")
		node.SetAttr("relative", xmldoc.FormatBool(b))
	}
	if a.HasExplicit("duration") {
		node.SetAttr("duration", xmldoc.FormatNumber(a.Duration()))
	}
	if _, err := a.Placement().ToDocument(node); err != nil {
		return nil, err
	}
	return node, nil
}

// MoveCaveActionFromDocument builds a MoveCaveAction from a MoveCave
// element. The Placement child is required.
func MoveCaveActionFromDocument(n *xmldoc.Node) (*MoveCaveAction, error) {
	pn, err := n.Require(placement.Tag)
	if err != nil {
		return nil, err
	}
	p, err := placement.FromDocument(pn)
	if err != nil {
		return nil, err
	}
	a := NewMoveCaveAction(p)
	if text, ok := n.Attr("relative"); ok {
		b, err := xmldoc.ParseBool(text)
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: MoveCaveTag, Reason: "bad relative attribute", Err: err}
		}
		if err := a.Set("relative", b); err != nil {
			return nil, err
		}
	}
	if text, ok := n.Attr("duration"); ok {
		d, err := xmldoc.ParseNumber(text)
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: MoveCaveTag, Reason: "bad duration attribute", Err: err}
		}
		if err := a.Set("duration", d); err != nil {
			return nil, err
		}
	}
	return a, nil
}

var resetSchema = feature.NewSchema(CaveResetActionKind)

// CaveResetAction restores the scene to its initial state.
//
//	<Restart/>
type CaveResetAction struct {
	feature.Base
}

var _ Action = (*CaveResetAction)(nil)

// NewCaveResetAction returns a reset action.
func NewCaveResetAction() *CaveResetAction {
	return &CaveResetAction{Base: feature.NewBase(resetSchema)}
}

// Tag returns "Restart".
func (a *CaveResetAction) Tag() string { return RestartTag }

// ToDocument appends a Restart element to parent.
func (a *CaveResetAction) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	return feature.Element(parent, RestartTag), nil
}

// CaveResetActionFromDocument builds a CaveResetAction from a Restart
// element.
func CaveResetActionFromDocument(*xmldoc.Node) (*CaveResetAction, error) {
	return NewCaveResetAction(), nil
}
