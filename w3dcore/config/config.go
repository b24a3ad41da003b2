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

// Package config loads tool settings.
//
// Sources, lowest precedence first:
//
//  1. built-in defaults (Default);
//  2. a YAML file, by default ~/.config/w3d/config.yaml;
//  3. W3D_* environment variables.
package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"dirpx.dev/w3d/w3dcore/errors"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "~/.config/w3d/config.yaml"

// Config holds the settings shared by every command.
type Config struct {
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level" env:"W3D_LOG_LEVEL"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format" env:"W3D_LOG_FORMAT"`

	// Indent is the unit of indentation of written documents.
	Indent string `yaml:"indent" env:"W3D_INDENT"`

	// Parallel parses the entity lists of a project concurrently.
	Parallel bool `yaml:"parallel" env:"W3D_PARALLEL"`

	// CheckFiles makes validation open every referenced sound file.
	CheckFiles bool `yaml:"check_files" env:"W3D_CHECK_FILES"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:  "warning",
		LogFormat: "text",
		Indent:    "\t",
		Parallel:  true,
	}
}

// Load returns the settings from path and the environment on top of the
// defaults. An empty path reads DefaultPath when it exists; a named file
// must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if err := cfg.readFile(path); err != nil {
		if explicit || !stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("config: expand %s: %w", path, err)
	}
	f, err := os.Open(expanded)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return &errors.UnmarshalError{Type: "Config", Reason: expanded + ": " + err.Error()}
	}
	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return &errors.ValidationError{Type: "Config", Field: "log_level", Reason: "unknown level", Value: c.LogLevel}
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return &errors.ValidationError{Type: "Config", Field: "log_format", Reason: "must be text or json", Value: c.LogFormat}
	}
	if strings.Trim(c.Indent, " \t") != "" {
		return &errors.ValidationError{Type: "Config", Field: "indent", Reason: "must be spaces or tabs", Value: c.Indent}
	}
	return nil
}
