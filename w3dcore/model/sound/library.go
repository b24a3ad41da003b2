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

package sound

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/h2non/filetype"

	"dirpx.dev/w3d/w3dcore/errors"
)

// headerSize is the number of leading bytes filetype needs to identify
// every format it knows.
const headerSize = 262

// Clip is an audio file that has been located and identified.
type Clip struct {
	// Path is the absolute, cleaned path of the file.
	Path string

	// MIME is the detected media type, for example "audio/x-wav".
	MIME string

	// Extension is the canonical extension of the detected format,
	// without the dot.
	Extension string
}

// Library memoizes clips by absolute path so that a file referenced by many
// sounds is opened and identified once.
//
// Library is safe for concurrent use.
type Library struct {
	mu    sync.Mutex
	clips map[string]*Clip
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{clips: make(map[string]*Clip)}
}

// DefaultLibrary is the process-wide clip cache.
var DefaultLibrary = NewLibrary()

// Open returns the clip for path, identifying the file on first use.
//
// Files that cannot be read fail with the underlying error wrapped; files
// that are not audio fail with *errors.ValidationError. Failures are not
// cached.
func (l *Library) Open(path string) (*Clip, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("sound: resolve %s: %w", path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.clips[abs]; ok {
		return c, nil
	}
	c, err := identify(abs)
	if err != nil {
		return nil, err
	}
	l.clips[abs] = c
	return c, nil
}

// Len returns the number of cached clips.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clips)
}

// Reset empties the cache.
func (l *Library) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.clips)
}

func identify(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sound: open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("sound: read %s: %w", path, err)
	}
	head = head[:n]

	if !filetype.IsAudio(head) {
		return nil, &errors.ValidationError{Type: Kind, Field: "filename", Reason: "not an audio file", Value: path}
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return nil, fmt.Errorf("sound: identify %s: %w", path, err)
	}
	return &Clip{Path: path, MIME: kind.MIME.Value, Extension: kind.Extension}, nil
}

// Resolve opens the sound's file through lib. A relative filename is taken
// relative to dir, the directory of the project document.
func (s *Sound) Resolve(lib *Library, dir string) (*Clip, error) {
	name := s.Filename()
	if name == "" {
		return nil, &errors.MissingAttributeError{Kind: Kind, Name: "filename"}
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	return lib.Open(name)
}
