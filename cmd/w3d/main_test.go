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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/w3d/w3dcore/model/group"
	"dirpx.dev/w3d/w3dcore/model/project"
	"dirpx.dev/w3d/w3dcore/model/sound"
)

// run executes the root command with an empty configuration file.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, nil, 0o644))

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func save(t *testing.T, p *project.Project) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "story.xml")
	require.NoError(t, p.Save(path))
	return path
}

func TestValidate(t *testing.T) {
	good := save(t, project.New())

	dangling := project.New()
	require.NoError(t, dangling.AddGroups(group.New("g", "ghost")))
	bad := save(t, dangling)

	tests := []struct {
		name    string
		args    []string
		wantOut []string
		wantErr string
	}{
		{
			name:    "valid",
			args:    []string{"validate", good},
			wantOut: []string{good + ": ok"},
		},
		{
			name:    "dangling reference",
			args:    []string{"validate", good, bad},
			wantOut: []string{good + ": ok", bad + ": ", "references unknown Object ghost"},
			wantErr: "1 of 2 documents invalid",
		},
		{
			name:    "missing file",
			args:    []string{"validate", filepath.Join(t.TempDir(), "nope.xml")},
			wantOut: []string{"nope.xml: project:"},
			wantErr: "1 of 1 documents invalid",
		},
		{
			name:    "no arguments",
			args:    []string{"validate"},
			wantErr: "requires at least 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestValidateCheckFiles(t *testing.T) {
	dir := t.TempDir()
	wav := []byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00\x44\xac\x00\x00")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hum.wav"), wav, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("plain text"), 0o644))

	tests := []struct {
		name     string
		filename string
		wantErr  string
	}{
		{name: "audio", filename: "hum.wav"},
		{name: "not audio", filename: "notes.txt", wantErr: "not an audio file"},
		{name: "missing", filename: "gone.wav", wantErr: "sound hum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := project.New()
			require.NoError(t, p.AddSounds(sound.New("hum", tt.filename)))
			path := filepath.Join(dir, tt.name+".xml")
			require.NoError(t, p.Save(path))

			out, err := run(t, "validate", path)
			require.NoError(t, err, "sound files are not opened without --check-files")
			assert.Contains(t, out, ": ok")

			out, err = run(t, "validate", "--check-files", path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, out, tt.wantErr)
		})
	}
}

func TestFmt(t *testing.T) {
	path := save(t, project.New())

	out, err := run(t, "fmt", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" ?>`))
	assert.Contains(t, out, "\n\t<ObjectRoot")

	require.NoError(t, os.WriteFile(path, []byte(strings.ReplaceAll(out, "\t", "  ")), 0o644))
	_, err = run(t, "fmt", "-w", path)
	require.NoError(t, err)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, out, string(written))
}

func TestFmtMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<Story version="8"><ObjectRoot>`), 0o644))

	_, err := run(t, "fmt", path)
	assert.ErrorContains(t, err, "project: load")
}

func TestExport(t *testing.T) {
	path := save(t, project.New())

	tests := []struct {
		format  string
		want    string
		wantErr string
	}{
		{format: "yaml", want: "camera_placement:"},
		{format: "json", want: `"camera_placement":`},
		{format: "toml", wantErr: `unknown format "toml"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := run(t, "export", "--format", tt.format, path)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "w3d version "+Version)
	assert.Contains(t, out, "document version "+project.Version)
}

func TestBadLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "version")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.xml")
	require.NoError(t, os.WriteFile(path, []byte("<Story/>"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, path, 20*time.Millisecond, func() { calls.Add(1) })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.xml"), []byte("<Story/>"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("<Story version=\"8\"/>"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := watch(context.Background(), filepath.Join(t.TempDir(), "gone", "story.xml"), time.Millisecond, func() {})
	assert.ErrorContains(t, err, "watch")
}
