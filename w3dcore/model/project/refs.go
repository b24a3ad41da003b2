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

package project

import (
	"slices"

	"dirpx.dev/rxmerr"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/model/action"
	"dirpx.dev/w3d/w3dcore/model/group"
)

// SortGroups reorders the groups so that no group precedes a group it
// contains. Groups are taken from the end of the list; each is inserted
// before the first already placed group that contains it, or appended.
func (p *Project) SortGroups() error {
	pending := slices.Clone(p.Groups())
	sorted := make([]*group.Group, 0, len(pending))
	for len(pending) > 0 {
		g := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		at := slices.IndexFunc(sorted, func(other *group.Group) bool {
			return other.Contains(g.Name())
		})
		if at < 0 {
			sorted = append(sorted, g)
			continue
		}
		sorted = slices.Insert(sorted, at, g)
	}
	return p.Set("groups", sorted)
}

// names indexes entity names of one kind and records duplicates.
type names map[string]struct{}

func index[T interface{ Name() string }](errs *[]error, kind string, items []T) names {
	seen := make(names, len(items))
	for _, item := range items {
		n := item.Name()
		if _, dup := seen[n]; dup {
			*errs = append(*errs, &errors.DuplicateNameError{Kind: kind, Name: n})
			continue
		}
		seen[n] = struct{}{}
	}
	return seen
}

// refs checks references against the indexed project.
type refs struct {
	errs                                       []error
	objects, groups, timelines, sounds, events names
}

func (r *refs) check(from, kind string, in names, name string) {
	if _, ok := in[name]; !ok {
		r.errs = append(r.errs, &errors.DanglingReferenceError{From: from, Kind: kind, Name: name})
	}
}

func (r *refs) action(from string, a action.Action) {
	switch a := a.(type) {
	case *action.ObjectAction:
		r.check(from, "Object", r.objects, a.ObjectName())
	case *action.GroupAction:
		r.check(from, "Group", r.groups, a.GroupName())
	case *action.TimelineAction:
		r.check(from, "Timeline", r.timelines, a.TimelineName())
	case *action.SoundAction:
		r.check(from, "Sound", r.sounds, a.SoundName())
	case *action.EventTriggerAction:
		r.check(from, "EventTrigger", r.events, a.TriggerName())
	}
}

// CheckReferences reports duplicate names within each kind of entity and
// every name that does not resolve: object sounds, group members, trigger
// objects, and the targets of every action in links, timelines and
// triggers. All problems are returned together.
func (p *Project) CheckReferences() error {
	var r refs
	r.objects = index(&r.errs, "Object", p.Objects())
	r.groups = index(&r.errs, "Group", p.Groups())
	r.timelines = index(&r.errs, "Timeline", p.Timelines())
	r.sounds = index(&r.errs, "Sound", p.Sounds())
	r.events = index(&r.errs, "EventTrigger", p.Triggers())

	for _, o := range p.Objects() {
		from := "Object " + o.Name()
		if o.HasExplicit("sound") {
			r.check(from, "Sound", r.sounds, o.Sound())
		}
		if l := o.Link(); l != nil {
			for _, la := range l.Actions() {
				r.action(from, la.Action())
			}
		}
	}
	for _, g := range p.Groups() {
		from := "Group " + g.Name()
		for _, name := range g.Objects() {
			r.check(from, "Object", r.objects, name)
		}
		for _, name := range g.Groups() {
			if name == g.Name() {
				r.errs = append(r.errs, &errors.ValidationError{Type: group.Kind, Field: "groups", Reason: "group " + name + " contains itself"})
				continue
			}
			r.check(from, "Group", r.groups, name)
		}
	}
	for _, tl := range p.Timelines() {
		from := "Timeline " + tl.Name()
		for _, ta := range tl.Actions() {
			r.action(from, ta.Action())
		}
	}
	for _, et := range p.Triggers() {
		from := "EventTrigger " + et.Name()
		for _, name := range et.Objects() {
			r.check(from, "Object", r.objects, name)
		}
		for _, a := range et.Actions() {
			r.action(from, a)
		}
	}
	c := rxmerr.NewCollector()
	for _, err := range r.errs {
		c.Append(err)
	}
	return c.Err()
}
