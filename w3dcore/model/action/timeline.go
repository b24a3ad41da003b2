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
	"dirpx.dev/w3d/w3dcore/validate"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Timeline changes.
const (
	TimelineStart             = "Start"
	TimelineStop              = "Stop"
	TimelineContinue          = "Continue"
	TimelineStartIfNotStarted = "Start if not started"
)

var timerMarkers = []struct{ change, tag string }{
	{TimelineStart, "start"},
	{TimelineStop, "stop"},
	{TimelineContinue, "continue"},
	{TimelineStartIfNotStarted, "start_if_not_started"},
}

var timelineSchema = feature.NewSchema(TimelineActionKind,
	feature.Attr("timeline_name", validate.Any("Name of a timeline")).Required(),
	feature.Attr("change", validate.OneOf(TimelineStart, TimelineStop, TimelineContinue, TimelineStartIfNotStarted)).Required(),
).WithOrder("timeline_name", "change")

// TimelineAction starts, stops or continues a timeline.
//
//	<TimerChange name="intro"><start/></TimerChange>
type TimelineAction struct {
	feature.Base
}

var _ Action = (*TimelineAction)(nil)

// NewTimelineAction returns an action applying change to the named
// timeline.
func NewTimelineAction(timelineName, change string) (*TimelineAction, error) {
	a := &TimelineAction{Base: feature.NewBase(timelineSchema)}
	if err := a.Seed(map[string]any{"timeline_name": timelineName, "change": change}); err != nil {
		return nil, err
	}
	return a, nil
}

// Tag returns "TimerChange".
func (a *TimelineAction) Tag() string { return TimerChangeTag }

// TimelineName returns the name of the affected timeline.
func (a *TimelineAction) TimelineName() string {
	s, _ := feature.String(a, "timeline_name")
	return s
}

// Change returns the timeline change.
func (a *TimelineAction) Change() string {
	s, _ := feature.String(a, "change")
	return s
}

// Validate checks required attributes.
func (a *TimelineAction) Validate() error {
	if err := a.Base.Validate(); err != nil {
		return err
	}
	_, err := feature.String(a, "timeline_name")
	return err
}

// ToDocument appends a TimerChange element to parent.
func (a *TimelineAction) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	node := feature.Element(parent, TimerChangeTag, xmldoc.A("name", a.TimelineName()))
	change := a.Change()
	for _, m := range timerMarkers {
		if m.change == change {
			node.Append(m.tag)
		}
	}
	return node, nil
}

// TimelineActionFromDocument builds a TimelineAction from a TimerChange
// element. Exactly one marker child selects the change.
func TimelineActionFromDocument(n *xmldoc.Node) (*TimelineAction, error) {
	name, err := n.RequireAttr("name")
	if err != nil {
		return nil, err
	}
	for _, m := range timerMarkers {
		if n.Find(m.tag) != nil {
			return NewTimelineAction(name, m.change)
		}
	}
	return nil, &errors.MalformedDocumentError{Tag: TimerChangeTag, Reason: "missing start, stop, continue or start_if_not_started child"}
}
