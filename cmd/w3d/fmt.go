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
	"github.com/spf13/cobra"

	"dirpx.dev/w3d/w3dcore/model/project"
)

func fmtCmd(s *settings) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Rewrite a project document in canonical form",
		Long: `Fmt reads FILE and prints it back in canonical form: fixed element
order, configured indentation, no blank lines. With -w the file is replaced
instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(args[0], s.readOptions()...)
			if err != nil {
				return err
			}
			if write {
				return p.Save(args[0], s.encodeOptions()...)
			}
			return p.Encode(cmd.OutOrStdout(), s.encodeOptions()...)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result to FILE")
	return cmd
}
