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

	"github.com/spf13/cobra"

	"github.com/panfw/panfw/pkg/device"
)

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:          "keygen",
	Short:        "generate an API key from the configured credentials",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dc, err := selectDevice(cfg)
		if err != nil {
			return err
		}
		if dc.Password == "" {
			dc.Password, err = promptPassword(dc.Username)
			if err != nil {
				return err
			}
		}
		// build without a key on purpose, the point is to mint one
		dc.APIKey = ""
		f := device.NewFirewall(dc)
		key, err := f.GenerateAPIKey(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
