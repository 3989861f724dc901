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
	"time"

	"github.com/spf13/cobra"

	"github.com/panfw/panfw/pkg/job"
)

var jobWait bool
var jobTimeout time.Duration
var jobInterval time.Duration

// jobCmd represents the job command
var jobCmd = &cobra.Command{
	Use:          "job [id]",
	Short:        "show or wait for a device job",
	SilenceUsage: true,
	Args:         cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := createFirewall(cmd.Context())
		if err != nil {
			return err
		}
		if jobWait {
			tr := job.NewTracker(jobInterval, f.Base().Name(), nil)
			res, err := tr.Wait(cmd.Context(), args[0], jobTimeout, f.JobStatus)
			if err != nil {
				return err
			}
			printJobResult(res)
			return nil
		}
		jobElem, err := f.JobStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printJobResult(job.Parse(jobElem))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobCmd)

	jobCmd.Flags().BoolVarP(&jobWait, "wait", "w", false, "poll until the job is terminal")
	jobCmd.Flags().DurationVarP(&jobTimeout, "timeout", "", 10*time.Minute, "poll timeout with --wait, 0 waits forever")
	jobCmd.Flags().DurationVarP(&jobInterval, "interval", "", 5*time.Second, "poll interval with --wait")
}
