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
	"time"

	"github.com/spf13/cobra"

	"github.com/panfw/panfw/pkg/device"
	"github.com/panfw/panfw/pkg/job"
)

var commitSync bool
var commitForce bool
var commitDescription string
var commitAdmins []string
var commitTimeout time.Duration
var commitDeviceGroup string

func printJobResult(res *job.Result) {
	if res.ID == "" {
		fmt.Println("commit: nothing to do")
		return
	}
	fmt.Printf("job %s: status %s, progress %s%%\n", res.ID, res.Status, res.Progress)
	for _, m := range res.Messages {
		fmt.Println("  " + m)
	}
	for _, d := range res.Devices {
		fmt.Printf("  device %s (%s): %s\n", d.Name, d.Serial, d.Status)
	}
}

// commitCmd represents the commit command
var commitCmd = &cobra.Command{
	Use:          "commit",
	Short:        "commit the candidate configuration",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := createFirewall(cmd.Context())
		if err != nil {
			return err
		}
		res, err := f.Commit(cmd.Context(), device.CommitParams{
			Sync:        commitSync,
			Force:       commitForce,
			Admins:      commitAdmins,
			Description: commitDescription,
			Timeout:     commitTimeout,
		})
		if err != nil {
			return err
		}
		printJobResult(res)
		if res.Terminal() && !res.Success {
			return fmt.Errorf("commit failed")
		}
		return nil
	},
}

// commitAllCmd represents the commit-all command
var commitAllCmd = &cobra.Command{
	Use:          "commit-all",
	Short:        "push a device-group's shared policy from panorama",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := createPanorama(cmd.Context())
		if err != nil {
			return err
		}
		res, err := p.CommitAll(cmd.Context(), commitDeviceGroup, device.CommitParams{
			Sync:    commitSync,
			Timeout: commitTimeout,
		})
		if err != nil {
			return err
		}
		printJobResult(res)
		if res.Terminal() && !res.Success {
			return fmt.Errorf("commit-all failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(commitAllCmd)

	commitCmd.Flags().BoolVarP(&commitSync, "sync", "", true, "wait for the commit job to finish")
	commitCmd.Flags().BoolVarP(&commitForce, "force", "", false, "force the commit")
	commitCmd.Flags().StringVarP(&commitDescription, "description", "", "", "commit description")
	commitCmd.Flags().StringSliceVarP(&commitAdmins, "admin", "", nil, "partial commit for the named administrators")
	commitCmd.Flags().DurationVarP(&commitTimeout, "timeout", "", 10*time.Minute, "job poll timeout, 0 waits forever")

	commitAllCmd.Flags().BoolVarP(&commitSync, "sync", "", true, "wait for the push job to finish")
	commitAllCmd.Flags().StringVarP(&commitDeviceGroup, "device-group", "g", "", "device group to push")
	commitAllCmd.Flags().DurationVarP(&commitTimeout, "timeout", "", 10*time.Minute, "job poll timeout, 0 waits forever")
	_ = commitAllCmd.MarkFlagRequired("device-group")
}
