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

	"github.com/spf13/cobra"

	"dirpx.dev/w3d/w3dcore/config"
	"dirpx.dev/w3d/w3dcore/logger"
	"dirpx.dev/w3d/w3dcore/model/project"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// settings is shared by every subcommand. It is filled by the root
// command's PersistentPreRunE before any subcommand runs.
type settings struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func (s *settings) load(cmd *cobra.Command) error {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = s.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	s.cfg = cfg
	logger.Log.WithField("config", s.configPath).Debug("configuration loaded")
	return nil
}

func (s *settings) readOptions() []project.ReadOption {
	if s.cfg.Parallel {
		return nil
	}
	return []project.ReadOption{project.Sequential()}
}

func (s *settings) encodeOptions() []xmldoc.Option {
	return []xmldoc.Option{xmldoc.Indent(s.cfg.Indent)}
}

func rootCmd() *cobra.Command {
	s := &settings{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "W3D project tool",
		Long: `w3d reads, checks and writes W3D (Cave) project documents.

Settings come from ~/.config/w3d/config.yaml (or --config) and the
W3D_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&s.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "warning", "Log level (debug, info, warning, error)")

	cmd.AddCommand(
		validateCmd(s),
		fmtCmd(s),
		exportCmd(s),
		watchCmd(s),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s, document version %s)\n",
				appName, Version, BuildTime, project.Version)
		},
	}
}
