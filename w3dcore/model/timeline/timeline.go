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

// Package timeline defines scripted sequences of actions keyed by time.
//
//	<Timeline name="intro" start-immediately="True">
//		<TimedActions seconds-time="0">
//			<SoundRef name="bell"/>
//		</TimedActions>
//		<TimedActions seconds-time="2.5">
//			<ObjectChange name="door">...</ObjectChange>
//		</TimedActions>
//	</Timeline>
//
// Actions are kept and written in the order they were added; the document
// does not require them to be sorted by time.
package timeline

import (
	"cmp"
	"slices"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/model/action"
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Kind names.
const (
	Kind            = "Timeline"
	TimedActionKind = "TimedAction"
)

// Tag is the document element of a Timeline.
const Tag = "Timeline"

var timedSchema = feature.NewSchema(TimedActionKind,
	feature.Attr("time", validate.Described(validate.Numeric().WithMin(0), "Seconds after start")).Required(),
	feature.Attr("action", action.Validator()).Required(),
).WithOrder("time", "action")

// TimedAction runs an action a number of seconds after its timeline starts.
type TimedAction struct {
	feature.Base
}

var _ feature.Feature = (*TimedAction)(nil)

// At returns a timed action running a after seconds.
func At(seconds float64, a action.Action) (*TimedAction, error) {
	ta := &TimedAction{Base: feature.NewBase(timedSchema)}
	if err := ta.Seed(map[string]any{"time": seconds, "action": a}); err != nil {
		return nil, err
	}
	return ta, nil
}

// Time returns the offset in seconds.
func (ta *TimedAction) Time() float64 {
	f, _ := feature.Float(ta, "time")
	return f
}

// Action returns the action to run.
func (ta *TimedAction) Action() action.Action {
	a, _ := feature.As[action.Action](ta, "action")
	return a
}

// Validate checks the nested action.
func (ta *TimedAction) Validate() error {
	if err := ta.Base.Validate(); err != nil {
		return err
	}
	return ta.Action().Validate()
}

// ToDocument appends a TimedActions element to parent.
func (ta *TimedAction) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := ta.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, "TimedActions", xmldoc.A("seconds-time", xmldoc.FormatNumber(ta.Time())))
	if _, err := ta.Action().ToDocument(node); err != nil {
		return nil, err
	}
	return node, nil
}

// TimedActionFromDocument builds a TimedAction from a TimedActions element
// holding exactly one action.
func TimedActionFromDocument(n *xmldoc.Node) (*TimedAction, error) {
	text, err := n.RequireAttr("seconds-time")
	if err != nil {
		return nil, err
	}
	seconds, err := xmldoc.ParseNumber(text)
	if err != nil {
		return nil, &errors.MalformedDocumentError{Tag: "TimedActions", Reason: "bad seconds-time attribute", Err: err}
	}
	actions, err := action.DispatchChildren(n)
	if err != nil {
		return nil, err
	}
	if len(actions) != 1 {
		return nil, &errors.MalformedDocumentError{Tag: "TimedActions", Reason: "expected exactly one action"}
	}
	return At(seconds, actions[0])
}

var schema = feature.NewSchema(Kind,
	feature.Attr("name", validate.String("Unique name of the timeline")).Required(),
	feature.Attr("start_immediately", validate.Boolean()).WithDefault(false),
	feature.Attr("actions", validate.ListOf(validate.FeatureOf(TimedActionKind))).WithDefault([]*TimedAction{}),
).WithOrder("name", "start_immediately", "actions")

// Timeline is a named sequence of timed actions.
type Timeline struct {
	feature.Base
}

var _ feature.Feature = (*Timeline)(nil)

// New returns an empty timeline.
func New(name string) *Timeline {
	tl := &Timeline{Base: feature.NewBase(schema)}
	if name != "" {
		_ = tl.Set("name", name)
	}
	return tl
}

// Name returns the timeline name.
func (tl *Timeline) Name() string {
	s, _ := feature.String(tl, "name")
	return s
}

// StartImmediately reports whether the timeline starts with the project.
func (tl *Timeline) StartImmediately() bool {
	b, _ := feature.Bool(tl, "start_immediately")
	return b
}

// Actions returns the timed actions in insertion order.
func (tl *Timeline) Actions() []*TimedAction {
	as, _ := feature.As[[]*TimedAction](tl, "actions")
	return as
}

// Add appends timed actions.
func (tl *Timeline) Add(actions ...*TimedAction) error {
	return tl.Set("actions", append(slices.Clone(tl.Actions()), actions...))
}

// Sorted returns the timed actions ordered by time. Actions sharing a time
// keep their insertion order.
func (tl *Timeline) Sorted() []*TimedAction {
	as := slices.Clone(tl.Actions())
	slices.SortStableFunc(as, func(a, b *TimedAction) int {
		return cmp.Compare(a.Time(), b.Time())
	})
	return as
}

// Validate checks every timed action.
func (tl *Timeline) Validate() error {
	if err := tl.Base.Validate(); err != nil {
		return err
	}
	if _, err := feature.As[[]*TimedAction](tl, "actions"); err != nil {
		return err
	}
	for _, ta := range tl.Actions() {
		if err := ta.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToDocument appends a Timeline element to parent. start-immediately is
// always written.
func (tl *Timeline) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, Tag,
		xmldoc.A("name", tl.Name()),
		xmldoc.A("start-immediately", xmldoc.FormatBool(tl.StartImmediately())),
	)
	for _, ta := range tl.Actions() {
		if _, err := ta.ToDocument(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// FromDocument builds a Timeline from a Timeline element. A start-immediately
// value of False is left at its default.
func FromDocument(n *xmldoc.Node) (*Timeline, error) {
	name, err := n.RequireAttr("name")
	if err != nil {
		return nil, err
	}
	tl := New(name)
	if text, ok := n.Attr("start-immediately"); ok {
		b, err := xmldoc.ParseBool(text)
		if err != nil {
			return nil, &errors.MalformedDocumentError{Tag: Tag, Reason: "bad start-immediately attribute", Err: err}
		}
		if b {
			if err := tl.Set("start_immediately", true); err != nil {
				return nil, err
			}
		}
	}
	var actions []*TimedAction
	for _, c := range n.FindAll("TimedActions") {
		ta, err := TimedActionFromDocument(c)
		if err != nil {
			return nil, err
		}
		actions = append(actions, ta)
	}
	if len(actions) > 0 {
		if err := tl.Set("actions", actions); err != nil {
			return nil, err
		}
	}
	return tl, nil
}
