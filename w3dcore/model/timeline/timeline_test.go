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

package timeline_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/feature"
	"dirpx.dev/w3d/w3dcore/model/action"
	"dirpx.dev/w3d/w3dcore/model/timeline"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

func timed(t *testing.T, seconds float64, a action.Action) *timeline.TimedAction {
	t.Helper()
	ta, err := timeline.At(seconds, a)
	require.NoError(t, err)
	return ta
}

func TestTimeline_ToDocument(t *testing.T) {
	tl := timeline.New("intro")
	require.NoError(t, tl.Add(timed(t, 2.5, action.NewSoundAction("bell"))))

	want := `<Timeline name="intro" start-immediately="False">
	<TimedActions seconds-time="2.5">
		<SoundRef name="bell"/>
	</TimedActions>
</Timeline>
`
	node, err := tl.ToDocument(nil)
	require.NoError(t, err)
	assert.Equal(t, want, xmldoc.String(node, xmldoc.WithoutHeader()))
}

func TestTimeline_RoundTrip(t *testing.T) {
	full := timeline.New("intro")
	require.NoError(t, full.Set("start_immediately", true))
	require.NoError(t, full.Add(
		timed(t, 3, action.NewObjectAction("door")),
		timed(t, 0, action.NewEventTriggerAction("gate", true)),
		timed(t, 1, action.NewCaveResetAction()),
	))

	for name, tl := range map[string]*timeline.Timeline{
		"empty": timeline.New("quiet"),
		"full":  full,
	} {
		t.Run(name, func(t *testing.T) {
			node, err := tl.ToDocument(xmldoc.NewNode("TimelineRoot"))
			require.NoError(t, err)

			parsed, err := xmldoc.ParseString(xmldoc.String(node))
			require.NoError(t, err)
			back, err := timeline.FromDocument(parsed)
			require.NoError(t, err)
			assert.True(t, feature.Equal(tl, back), "got %s\nwant %s", back, tl)
		})
	}
}

func TestTimeline_Sorted(t *testing.T) {
	tl := timeline.New("t")
	first := timed(t, 1, action.NewSoundAction("a"))
	second := timed(t, 1, action.NewSoundAction("b"))
	early := timed(t, 0.5, action.NewSoundAction("c"))
	require.NoError(t, tl.Add(first, second))
	require.NoError(t, tl.Add(early))

	assert.Equal(t, []*timeline.TimedAction{first, second, early}, tl.Actions())
	assert.Equal(t, []*timeline.TimedAction{early, first, second}, tl.Sorted())
}

func TestTimedAction_Validate(t *testing.T) {
	_, err := timeline.At(-1, action.NewSoundAction("a"))
	var iv *errors.InvalidValueError
	assert.True(t, stderrors.As(err, &iv))

	_, err = timeline.At(1, nil)
	assert.Error(t, err)

	ta := timed(t, 1, action.NewObjectAction(""))
	var missing *errors.MissingAttributeError
	assert.True(t, stderrors.As(ta.Validate(), &missing))
}

func TestTimeline_Malformed(t *testing.T) {
	for name, doc := range map[string]string{
		"no name":       `<Timeline start-immediately="True"/>`,
		"bad start":     `<Timeline name="t" start-immediately="soon"/>`,
		"no time":       `<Timeline name="t"><TimedActions><Restart/></TimedActions></Timeline>`,
		"bad time":      `<Timeline name="t"><TimedActions seconds-time="x"><Restart/></TimedActions></Timeline>`,
		"no action":     `<Timeline name="t"><TimedActions seconds-time="1"/></Timeline>`,
		"two actions":   `<Timeline name="t"><TimedActions seconds-time="1"><Restart/><Restart/></TimedActions></Timeline>`,
		"broken action": `<Timeline name="t"><TimedActions seconds-time="1"><SoundRef/></TimedActions></Timeline>`,
	} {
		t.Run(name, func(t *testing.T) {
			root, err := xmldoc.ParseString(doc)
			require.NoError(t, err)
			_, err = timeline.FromDocument(root)
			var md *errors.MalformedDocumentError
			assert.True(t, stderrors.As(err, &md), "got %T: %v", err, err)
		})
	}
}
