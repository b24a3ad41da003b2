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

// Package project defines the root of a W3D document: the Story holding
// every object, group, timeline, sound and trigger of a project together
// with camera, navigation and wall settings.
//
// A Project is built with New, read with Load or Parse, checked with
// Validate and CheckReferences, and written with Save or Encode.
package project

import (
	"fmt"
	"maps"
	"slices"

	"dirpx.dev/rxmerr"

	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/logger"
	"dirpx.dev/w3d/w3dcore/model"
	"dirpx.dev/w3d/w3dcore/model/group"
	"dirpx.dev/w3d/w3dcore/model/object"
	"dirpx.dev/w3d/w3dcore/model/placement"
	"dirpx.dev/w3d/w3dcore/model/sound"
	"dirpx.dev/w3d/w3dcore/model/timeline"
	"dirpx.dev/w3d/w3dcore/model/trigger"
	"dirpx.dev/w3d/w3dcore/validate"
)

// Kind is the kind name of Project.
const Kind = "Project"

// Default values of the Global section.
const (
	DefaultFarClip = 100
)

var schema = feature.NewSchema(Kind,
	feature.Attr("objects", validate.ListOf(validate.FeatureOf(object.Kind))),
	feature.Attr("groups", validate.ListOf(validate.FeatureOf(group.Kind))),
	feature.Attr("timelines", validate.ListOf(validate.FeatureOf(timeline.Kind))),
	feature.Attr("sounds", validate.ListOf(validate.FeatureOf(sound.Kind))),
	feature.Attr("trigger_events", validate.ListOf(validate.FeatureOf(trigger.Kind))),
	feature.Attr("camera_placement", validate.Described(validate.FeatureOf(placement.Kind), "Orientation and position of the camera")),
	feature.Attr("desktop_camera_placement", validate.Described(validate.FeatureOf(placement.Kind), "Camera placement in desktop preview")),
	feature.Attr("far_clip", validate.Numeric().WithMin(0)).WithDefault(DefaultFarClip),
	feature.Attr("background", validate.Described(
		validate.ListOf(validate.Numeric().WithMin(0).WithMax(255).Integer()).WithLength(3),
		"Red, Green, Blue values")).WithDefault([]int{0, 0, 0}),
	feature.Attr("allow_movement", validate.Boolean()).WithDefault(true),
	feature.Attr("allow_rotation", validate.Boolean()).WithDefault(true),
	feature.Attr("debug", validate.Boolean()).WithDefault(false).OnSet(func(v any) {
		on, _ := v.(bool)
		logger.SetDebug(on)
	}),
	feature.Attr("profile", validate.Boolean()).WithDefault(false),
	feature.Attr("wall_placements", validate.Described(
		validate.MapOf(placement.WallValidator(), validate.FeatureOf(placement.Kind)),
		"Wall names mapped to placements")),
).WithOrder("objects", "groups", "timelines", "sounds", "trigger_events",
	"camera_placement", "desktop_camera_placement", "far_clip", "background",
	"allow_movement", "allow_rotation", "debug", "profile", "wall_placements")

// Project is a whole W3D story.
type Project struct {
	feature.Base
}

var _ feature.Feature = (*Project)(nil)

// DefaultWalls returns the standard placements of the five walls of a cave.
func DefaultWalls() map[string]*placement.Placement {
	up := []float64{0, 1, 0}
	origin := []float64{0, 0, 0}
	return map[string]*placement.Placement{
		placement.Center:    placement.At(origin, placement.Axis(up, 0)),
		placement.FrontWall: placement.At([]float64{0, 0, -4}, placement.LookAt(origin, up)),
		placement.LeftWall:  placement.At([]float64{-4, 0, 0}, placement.LookAt(origin, up)),
		placement.RightWall: placement.At([]float64{4, 0, 0}, placement.LookAt(origin, up)),
		placement.FloorWall: placement.At([]float64{0, -4, 0}, placement.LookAt(origin, up)),
	}
}

// New returns an empty project with the standard cameras and walls.
func New() *Project {
	p := &Project{Base: feature.NewBase(schema)}
	if err := p.Seed(map[string]any{
		"objects":                  []*object.Object{},
		"groups":                   []*group.Group{},
		"timelines":                []*timeline.Timeline{},
		"sounds":                   []*sound.Sound{},
		"trigger_events":           []*trigger.EventTrigger{},
		"camera_placement":         placement.At([]float64{0, 0, 0}, nil),
		"desktop_camera_placement": placement.At([]float64{0, 1.25, 8}, nil),
		"wall_placements":          DefaultWalls(),
	}); err != nil {
		panic(fmt.Sprintf("project: default values rejected: %v", err))
	}
	return model.MustValidate(p)
}

// Objects returns the project's objects.
func (p *Project) Objects() []*object.Object { return list[*object.Object](p, "objects") }

// Groups returns the project's groups.
func (p *Project) Groups() []*group.Group { return list[*group.Group](p, "groups") }

// Timelines returns the project's timelines.
func (p *Project) Timelines() []*timeline.Timeline { return list[*timeline.Timeline](p, "timelines") }

// Sounds returns the project's sounds.
func (p *Project) Sounds() []*sound.Sound { return list[*sound.Sound](p, "sounds") }

// Triggers returns the project's event triggers.
func (p *Project) Triggers() []*trigger.EventTrigger {
	return list[*trigger.EventTrigger](p, "trigger_events")
}

func list[T any](p *Project, name string) []T {
	l, _ := feature.As[[]T](p, name)
	return l
}

// AddObjects appends objects to the project.
func (p *Project) AddObjects(objects ...*object.Object) error {
	return add(p, "objects", objects)
}

// AddGroups appends groups to the project.
func (p *Project) AddGroups(groups ...*group.Group) error {
	return add(p, "groups", groups)
}

// AddTimelines appends timelines to the project.
func (p *Project) AddTimelines(timelines ...*timeline.Timeline) error {
	return add(p, "timelines", timelines)
}

// AddSounds appends sounds to the project.
func (p *Project) AddSounds(sounds ...*sound.Sound) error {
	return add(p, "sounds", sounds)
}

// AddTriggers appends event triggers to the project.
func (p *Project) AddTriggers(triggers ...*trigger.EventTrigger) error {
	return add(p, "trigger_events", triggers)
}

func add[T any](p *Project, name string, items []T) error {
	return p.Set(name, append(slices.Clone(list[T](p, name)), items...))
}

// CameraPlacement returns the placement of the cave camera.
func (p *Project) CameraPlacement() *placement.Placement {
	c, _ := feature.As[*placement.Placement](p, "camera_placement")
	return c
}

// DesktopCameraPlacement returns the placement of the desktop preview camera.
func (p *Project) DesktopCameraPlacement() *placement.Placement {
	c, _ := feature.As[*placement.Placement](p, "desktop_camera_placement")
	return c
}

// FarClip returns the distance beyond which nothing is drawn.
func (p *Project) FarClip() float64 {
	f, _ := feature.Float(p, "far_clip")
	return f
}

// Background returns the background color.
func (p *Project) Background() []float64 {
	c, _ := feature.Floats(p, "background")
	return c
}

// Debug reports whether debug logging is on.
func (p *Project) Debug() bool {
	b, _ := feature.Bool(p, "debug")
	return b
}

// WallPlacements returns a copy of the wall placements.
func (p *Project) WallPlacements() map[string]*placement.Placement {
	m, _ := feature.As[map[string]*placement.Placement](p, "wall_placements")
	return maps.Clone(m)
}

// Validate checks the project and every entity in it. All problems are
// reported together.
func (p *Project) Validate() error {
	if err := p.Base.Validate(); err != nil {
		return err
	}
	c := rxmerr.NewCollector()

	for _, err := range []error{
		validateList[*object.Object](p, "objects"),
		validateList[*group.Group](p, "groups"),
		validateList[*timeline.Timeline](p, "timelines"),
		validateList[*sound.Sound](p, "sounds"),
		validateList[*trigger.EventTrigger](p, "trigger_events"),
	} {
		if err != nil {
			c.Append(err)
		}
	}

	for _, name := range []string{"camera_placement", "desktop_camera_placement"} {
		if !p.HasExplicit(name) {
			continue
		}
		cam, err := feature.As[*placement.Placement](p, name)
		if err != nil {
			c.Append(err)
			continue
		}
		if err := cam.Validate(); err != nil {
			c.Append(fmt.Errorf("%s: %w", name, err))
		}
	}
	if p.HasExplicit("wall_placements") {
		walls, err := feature.As[map[string]*placement.Placement](p, "wall_placements")
		if err != nil {
			c.Append(err)
		}
		for _, wall := range placement.Walls() {
			if w, ok := walls[wall]; ok {
				if err := w.Validate(); err != nil {
					c.Append(fmt.Errorf("wall %s: %w", wall, err))
				}
			}
		}
	}
	return c.Err()
}

func validateList[T model.Model](p *Project, name string) error {
	if !p.HasExplicit(name) {
		return nil
	}
	items, err := feature.As[[]T](p, name)
	if err != nil {
		return err
	}
	return model.ValidateAll(items)
}
