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

var eventSchema = feature.NewSchema(EventTriggerActionKind,
	feature.Attr("trigger_name", validate.Any("Name of a trigger")).Required(),
	feature.Attr("enable", validate.Any("Either true or false")).Required(),
).WithOrder("trigger_name", "enable")

// EventTriggerAction enables or disables an event trigger.
//
//	<Event name="door" enable="True"/>
type EventTriggerAction struct {
	feature.Base
}

var _ Action = (*EventTriggerAction)(nil)

// NewEventTriggerAction returns an action enabling or disabling the named
// trigger.
func NewEventTriggerAction(triggerName string, enable bool) *EventTriggerAction {
	a := &EventTriggerAction{Base: feature.NewBase(eventSchema)}
	_ = a.Seed(map[string]any{"trigger_name": triggerName, "enable": enable})
	return a
}

// Tag returns "Event".
func (a *EventTriggerAction) Tag() string { return EventTag }

// TriggerName returns the name of the affected trigger.
func (a *EventTriggerAction) TriggerName() string {
	s, _ := feature.String(a, "trigger_name")
	return s
}

// Enable reports whether the trigger is enabled rather than disabled.
func (a *EventTriggerAction) Enable() bool {
	b, _ := feature.Bool(a, "enable")
	return b
}

// Validate checks required attributes and that enable is boolean-like.
func (a *EventTriggerAction) Validate() error {
	if err := a.Base.Validate(); err != nil {
		return err
	}
	if _, err := feature.String(a, "trigger_name"); err != nil {
		return err
	}
	_, err := feature.Bool(a, "enable")
	return err
}

// ToDocument appends an Event element to parent.
func (a *EventTriggerAction) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return feature.Element(parent, EventTag,
		xmldoc.A("name", a.TriggerName()),
		xmldoc.A("enable", xmldoc.FormatBool(a.Enable())),
	), nil
}

// EventTriggerActionFromDocument builds an EventTriggerAction from an
// Event element. Both attributes are required.
func EventTriggerActionFromDocument(n *xmldoc.Node) (*EventTriggerAction, error) {
	name, err := n.RequireAttr("name")
	if err != nil {
		return nil, err
	}
	text, err := n.RequireAttr("enable")
	if err != nil {
		return nil, err
	}
	enable, err := xmldoc.ParseBool(text)
	if err != nil {
		return nil, &errors.MalformedDocumentError{Tag: EventTag, Reason: "bad enable attribute", Err: err}
	}
	return NewEventTriggerAction(name, enable), nil
}
