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
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"
)

var opVsys string

// opCmd represents the op command
var opCmd = &cobra.Command{
	Use:          "op [command words]",
	Short:        "run an operational command",
	Example:      `  panfw op show system info`,
	SilenceUsage: true,
	Args:         cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := createFirewall(cmd.Context())
		if err != nil {
			return err
		}
		result, err := f.Op(cmd.Context(), strings.Join(args, " "), opVsys, true)
		if err != nil {
			return err
		}
		doc := etree.NewDocument()
		doc.SetRoot(result)
		doc.Indent(2)
		s, err := doc.WriteToString()
		if err != nil {
			return err
		}
		fmt.Println(s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(opCmd)

	opCmd.Flags().StringVarP(&opVsys, "vsys", "", "", "vsys context for the command")
}
