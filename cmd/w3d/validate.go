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
	"fmt"

	"dirpx.dev/rxmerr"
	"github.com/spf13/cobra"

	"dirpx.dev/w3d/w3dcore/logger"
	"dirpx.dev/w3d/w3dcore/model"
	"dirpx.dev/w3d/w3dcore/model/project"
	"dirpx.dev/w3d/w3dcore/model/sound"
)

func validateCmd(s *settings) *cobra.Command {
	var checkFiles bool

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check project documents",
		Long: `Validate parses every FILE, checks each entity and resolves every
reference between entities. With --check-files the sound files are opened
and must be audio.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("check-files") {
				s.cfg.CheckFiles = checkFiles
			}
			failed := 0
			for _, path := range args {
				if err := s.check(path); err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkFiles, "check-files", false, "Open every referenced sound file")
	return cmd
}

// check loads the project at path and reports every problem found in it.
func (s *settings) check(path string) error {
	p, err := project.Load(path, s.readOptions()...)
	if err != nil {
		return err
	}
	logger.Log.WithField("project", model.SafeString(p, false)).Debug("checking project")

	var errs []error
	if err := p.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := p.CheckReferences(); err != nil {
		errs = append(errs, err)
	}
	if s.cfg.CheckFiles {
		dir := project.Dir(path)
		for _, snd := range p.Sounds() {
			clip, err := snd.Resolve(sound.DefaultLibrary, dir)
			if err != nil {
				errs = append(errs, fmt.Errorf("sound %s: %w", snd.Name(), err))
				continue
			}
			logger.Log.WithField("sound", snd.Name()).WithField("mime", clip.MIME).Debug("sound file resolved")
		}
	}

	c := rxmerr.NewCollector()
	for _, err := range errs {
		c.Append(err)
	}
	return c.Err()
}
