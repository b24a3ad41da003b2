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
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"dirpx.dev/w3d/w3dcore/logger"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Parse reads a project document from r.
func Parse(r io.Reader, opts ...ReadOption) (*Project, error) {
	root, err := xmldoc.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromDocument(root, opts...)
}

// Load reads the project document at path.
func Load(path string, opts ...ReadOption) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	defer f.Close()

	p, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("project: load %s: %w", path, err)
	}
	logger.Log.WithField("path", path).Debug("project loaded")
	return p, nil
}

// Encode writes the project document to w.
func (p *Project) Encode(w io.Writer, opts ...xmldoc.Option) error {
	root, err := p.ToDocument(nil)
	if err != nil {
		return err
	}
	return xmldoc.Encode(w, root, opts...)
}

// Save writes the project document to path. The file is replaced only once
// the whole document has been rendered. An existing file keeps its
// permissions; a new one is created with mode 0644.
func (p *Project) Save(path string, opts ...xmldoc.Option) error {
	var buf bytes.Buffer
	if err := p.Encode(&buf, opts...); err != nil {
		return fmt.Errorf("project: save %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("project: save %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("project: save %s: %w", path, err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("project: save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("project: save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("project: save %s: %w", path, err)
	}
	logger.Log.WithField("path", path).Debug("project saved")
	return nil
}

// Dir returns the directory relative file names in the project at path are
// resolved against.
func Dir(path string) string {
	return filepath.Dir(filepath.Clean(path))
}
