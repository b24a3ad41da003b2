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
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"dirpx.dev/w3d/w3dcore/logger"
)

// defaultDebounce is how long a file must stay quiet before it is checked
// again. Editors usually write a document in several steps.
const defaultDebounce = 300 * time.Millisecond

func watchCmd(s *settings) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Validate a project document every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			path := args[0]
			report := func() {
				stamp := time.Now().Format(time.TimeOnly)
				if err := s.check(path); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", stamp, path, err)
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: ok\n", stamp, path)
			}

			report()
			return watch(ctx, path, debounce, report)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "Quiet period before re-validating")
	return cmd
}

// watch calls onChange each time the file at path is written, created or
// renamed into place, once per burst of events separated by less than
// delay. The parent directory is watched so that editors replacing the file
// are followed. onChange runs on the calling goroutine. watch returns when
// ctx is done.
func watch(ctx context.Context, path string, delay time.Duration, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Log.WithField("path", abs).WithField("debounce", delay).Info("watching")

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Log.WithField("event", ev.Op.String()).Debug("document changed")
			if timer == nil {
				timer = time.AfterFunc(delay, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
				continue
			}
			timer.Reset(delay)

		case <-fire:
			onChange()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Log.WithError(err).Warn("watch error")
		}
	}
}
