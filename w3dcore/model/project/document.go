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
	"github.com/blang/semver/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/logger"
	"dirpx.dev/w3d/w3dcore/model/group"
	"dirpx.dev/w3d/w3dcore/model/object"
	"dirpx.dev/w3d/w3dcore/model/placement"
	"dirpx.dev/w3d/w3dcore/model/sound"
	"dirpx.dev/w3d/w3dcore/model/timeline"
	"dirpx.dev/w3d/w3dcore/model/trigger"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Tag is the root element of a project document.
const Tag = "Story"

// Version is the document format version written by this package.
const Version = "8"

// supported is the format version this package reads without warning.
var supported = semver.MustParse("8.0.0")

// ToDocument appends a Story element to parent, or returns a new root when
// parent is nil.
//
//	<Story version="8">
//		<ObjectRoot>...</ObjectRoot>
//		<GroupRoot>...</GroupRoot>
//		<TimelineRoot>...</TimelineRoot>
//		<SoundRoot>...</SoundRoot>
//		<EventRoot>...</EventRoot>
//		<Global>
//			<CameraPos far-clip="100"><Placement>...</Placement></CameraPos>
//			<CaveCameraPos far-clip="100"><Placement>...</Placement></CaveCameraPos>
//			<Background color="0, 0, 0"/>
//			<WandNavigation allow-rotation="True" allow-movement="True"/>
//			<Debug>False</Debug>
//			<Profile>False</Profile>
//		</Global>
//		<PlacementRoot>
//			<Placement name="Center">...</Placement>
//		</PlacementRoot>
//	</Story>
func (p *Project) ToDocument(parent *xmldoc.Node) (*xmldoc.Node, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	root := feature.Element(parent, Tag, xmldoc.A("version", Version))

	if err := writeList(root.Append("ObjectRoot"), p.Objects()); err != nil {
		return nil, err
	}
	if err := writeList(root.Append("GroupRoot"), p.Groups()); err != nil {
		return nil, err
	}
	if err := writeList(root.Append("TimelineRoot"), p.Timelines()); err != nil {
		return nil, err
	}
	if err := writeList(root.Append("SoundRoot"), p.Sounds()); err != nil {
		return nil, err
	}
	if err := writeList(root.Append("EventRoot"), p.Triggers()); err != nil {
		return nil, err
	}
	if err := p.writeGlobal(root.Append("Global")); err != nil {
		return nil, err
	}

	walls := root.Append("PlacementRoot")
	placements := p.WallPlacements()
	for _, name := range placement.Walls() {
		w, ok := placements[name]
		if !ok {
			continue
		}
		node, err := w.ToDocument(walls)
		if err != nil {
			return nil, err
		}
		node.SetAttr("name", name)
	}

	logger.Log.WithFields(logrus.Fields{
		"objects":   len(p.Objects()),
		"groups":    len(p.Groups()),
		"timelines": len(p.Timelines()),
		"sounds":    len(p.Sounds()),
		"triggers":  len(p.Triggers()),
	}).Debug("project written")
	return root, nil
}

func writeList[T feature.Feature](parent *xmldoc.Node, items []T) error {
	for _, item := range items {
		if _, err := item.ToDocument(parent); err != nil {
			return err
		}
	}
	return nil
}

func (p *Project) writeGlobal(global *xmldoc.Node) error {
	farClip := xmldoc.A("far-clip", xmldoc.FormatNumber(p.FarClip()))
	for _, cam := range []struct {
		tag string
		p   *placement.Placement
	}{
		{"CameraPos", p.CameraPlacement()},
		{"CaveCameraPos", p.DesktopCameraPlacement()},
	} {
		node := global.Append(cam.tag, farClip)
		pl := cam.p
		if pl == nil {
			pl = placement.New()
		}
		if _, err := pl.ToDocument(node); err != nil {
			return err
		}
	}

	global.Append("Background", xmldoc.A("color", xmldoc.FormatTuple(p.Background(), xmldoc.SpacedSep, false)))

	rotation, _ := feature.Bool(p, "allow_rotation")
	movement, _ := feature.Bool(p, "allow_movement")
	global.Append("WandNavigation",
		xmldoc.A("allow-rotation", xmldoc.FormatBool(rotation)),
		xmldoc.A("allow-movement", xmldoc.FormatBool(movement)),
	)

	profile, _ := feature.Bool(p, "profile")
	global.Append("Debug").SetText(xmldoc.FormatBool(p.Debug()))
	global.Append("Profile").SetText(xmldoc.FormatBool(profile))
	return nil
}

type readOptions struct {
	sequential bool
}

// ReadOption configures FromDocument, Parse and Load.
type ReadOption func(*readOptions)

// Sequential reads the entity lists one after another instead of
// concurrently.
func Sequential() ReadOption {
	return func(o *readOptions) { o.sequential = true }
}

// FromDocument builds a Project from a Story element.
//
// The object, group, timeline, sound and trigger lists are read
// concurrently; each keeps document order and the first failure is
// returned. The Global section and its CameraPos, CaveCameraPos, Background
// and WandNavigation children are required. Global values equal to their
// defaults are left unset, so a document written from a new project reads
// back equal to it. A legacy ParticleActionRoot is ignored.
func FromDocument(n *xmldoc.Node, opts ...ReadOption) (*Project, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}
	if n == nil || n.Tag != Tag {
		return nil, &errors.MalformedDocumentError{Tag: Tag, Reason: "expected Story element"}
	}
	if err := checkVersion(n); err != nil {
		return nil, err
	}

	var (
		objects   []*object.Object
		groups    []*group.Group
		timelines []*timeline.Timeline
		sounds    []*sound.Sound
		triggers  []*trigger.EventTrigger
	)
	var g errgroup.Group
	if o.sequential {
		g.SetLimit(1)
	}
	g.Go(func() (err error) {
		objects, err = readList(n, "ObjectRoot", object.Tag, object.FromDocument)
		return err
	})
	g.Go(func() (err error) {
		groups, err = readList(n, "GroupRoot", group.Tag, group.FromDocument)
		return err
	})
	g.Go(func() (err error) {
		timelines, err = readList(n, "TimelineRoot", timeline.Tag, timeline.FromDocument)
		return err
	})
	g.Go(func() (err error) {
		sounds, err = readList(n, "SoundRoot", sound.Tag, sound.FromDocument)
		return err
	})
	g.Go(func() (err error) {
		triggers, err = readList(n, "EventRoot", trigger.Tag, trigger.FromDocument)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if particles := n.Find("ParticleActionRoot"); particles != nil && len(particles.Children) > 0 {
		logger.Log.WithField("count", len(particles.Children)).Warn("particle actions are not supported and were ignored")
	}

	p := New()
	if err := p.Seed(map[string]any{
		"objects":        objects,
		"groups":         groups,
		"timelines":      timelines,
		"sounds":         sounds,
		"trigger_events": triggers,
	}); err != nil {
		return nil, err
	}
	if err := p.readGlobal(n); err != nil {
		return nil, err
	}
	if err := p.readWalls(n); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"objects":   len(objects),
		"groups":    len(groups),
		"timelines": len(timelines),
		"sounds":    len(sounds),
		"triggers":  len(triggers),
	}).Debug("project read")
	return p, nil
}

func checkVersion(n *xmldoc.Node) error {
	text, ok := n.Attr("version")
	if !ok {
		logger.Log.Debug("story has no version attribute")
		return nil
	}
	v, err := semver.ParseTolerant(text)
	if err != nil {
		return &errors.MalformedDocumentError{Tag: Tag, Reason: "bad version attribute", Err: err}
	}
	if v.Major != supported.Major {
		logger.Log.WithFields(logrus.Fields{
			"version":   v.String(),
			"supported": supported.String(),
		}).Warn("story format version differs from the supported one")
	}
	return nil
}

func readList[T any](n *xmldoc.Node, rootTag, tag string, read func(*xmldoc.Node) (T, error)) ([]T, error) {
	items := []T{}
	root := n.Find(rootTag)
	if root == nil {
		return items, nil
	}
	for _, c := range root.FindAll(tag) {
		item, err := read(c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *Project) readGlobal(n *xmldoc.Node) error {
	global, err := n.Require("Global")
	if err != nil {
		return err
	}

	var farClip *float64
	for _, cam := range []struct{ tag, attr string }{
		{"CameraPos", "camera_placement"},
		{"CaveCameraPos", "desktop_camera_placement"},
	} {
		node, err := global.Require(cam.tag)
		if err != nil {
			return err
		}
		if text, ok := node.Attr("far-clip"); ok {
			f, err := xmldoc.ParseNumber(text)
			if err != nil {
				return &errors.MalformedDocumentError{Tag: cam.tag, Reason: "bad far-clip attribute", Err: err}
			}
			farClip = &f
		}
		pn, err := node.Require(placement.Tag)
		if err != nil {
			return err
		}
		pl, err := placement.FromDocument(pn)
		if err != nil {
			return err
		}
		if err := p.Set(cam.attr, pl); err != nil {
			return err
		}
	}
	if farClip != nil && *farClip != DefaultFarClip {
		if err := p.Set("far_clip", *farClip); err != nil {
			return &errors.MalformedDocumentError{Tag: "CameraPos", Reason: "bad far-clip attribute", Err: err}
		}
	}

	bg, err := global.Require("Background")
	if err != nil {
		return err
	}
	if text, ok := bg.Attr("color"); ok {
		color, err := xmldoc.ParseTuple(text)
		if err != nil {
			return &errors.MalformedDocumentError{Tag: "Background", Reason: "bad color attribute", Err: err}
		}
		if !isBlack(color) {
			if err := p.Set("background", color); err != nil {
				return &errors.MalformedDocumentError{Tag: "Background", Reason: "bad color attribute", Err: err}
			}
		}
	}

	wand, err := global.Require("WandNavigation")
	if err != nil {
		return err
	}
	for _, f := range []struct{ attr, name string }{
		{"allow-rotation", "allow_rotation"},
		{"allow-movement", "allow_movement"},
	} {
		text, ok := wand.Attr(f.attr)
		if !ok {
			continue
		}
		b, err := xmldoc.ParseBool(text)
		if err != nil {
			return &errors.MalformedDocumentError{Tag: "WandNavigation", Reason: "bad " + f.attr + " attribute", Err: err}
		}
		if !b {
			if err := p.Set(f.name, false); err != nil {
				return err
			}
		}
	}

	for _, f := range []struct{ tag, name string }{{"Debug", "debug"}, {"Profile", "profile"}} {
		c := global.Find(f.tag)
		if c == nil {
			continue
		}
		b, err := xmldoc.ParseBool(c.Text())
		if err != nil {
			return &errors.MalformedDocumentError{Tag: f.tag, Reason: "bad boolean", Err: err}
		}
		if b {
			if err := p.Set(f.name, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func isBlack(color []float64) bool {
	for _, c := range color {
		if c != 0 {
			return false
		}
	}
	return len(color) == 3
}

func (p *Project) readWalls(n *xmldoc.Node) error {
	root := n.Find("PlacementRoot")
	if root == nil {
		return nil
	}
	walls := p.WallPlacements()
	for _, c := range root.FindAll(placement.Tag) {
		name, err := c.RequireAttr("name")
		if err != nil {
			return err
		}
		if !placement.WallValidator().Validate(name) {
			return &errors.MalformedDocumentError{Tag: placement.Tag, Reason: "unknown wall " + name}
		}
		pl, err := placement.FromDocument(c)
		if err != nil {
			return err
		}
		walls[name] = pl
	}
	return p.Set("wall_placements", walls)
}
