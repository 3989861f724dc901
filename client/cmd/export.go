// Copyright 2024 Nokia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:          "export [category]",
	Short:        "download a file export (device state, packet captures)",
	Example:      `  panfw export device-state -o state.tgz`,
	SilenceUsage: true,
	Args:         cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := createFirewall(cmd.Context())
		if err != nil {
			return err
		}
		att, err := f.Export(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		out := exportOut
		if out == "" {
			out = att.Filename
		}
		if out == "" {
			out = args[0] + ".bin"
		}
		if err := os.WriteFile(out, att.Data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %d bytes to %s\n", len(att.Data), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: device-provided filename)")
}
