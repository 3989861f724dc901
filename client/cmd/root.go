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

// Package cmd implements the panfw command line client.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/panfw/panfw/pkg/config"
	"github.com/panfw/panfw/pkg/device"
)

var cfgFile string
var deviceName string
var debug bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "panfw",
	Short:        "manage firewall and panorama configuration over the XML API",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ~/.panfw/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&deviceName, "device", "D", "", "device name from the config file (default: first entry)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "set log level to DEBUG")
	// accept underscore spellings of multi-word flags
	rootCmd.PersistentFlags().SetNormalizeFunc(func(fs *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
}

func loadConfig() (*config.Config, error) {
	file := cfgFile
	if file == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, err
		}
		file = filepath.Join(home, ".panfw", "config.yaml")
	}
	return config.New(file)
}

func selectDevice(cfg *config.Config) (*config.DeviceConfig, error) {
	if len(cfg.Devices) == 0 {
		return nil, fmt.Errorf("no devices in config")
	}
	if deviceName == "" {
		return cfg.Devices[0], nil
	}
	for _, d := range cfg.Devices {
		if d.Name == deviceName {
			return d, nil
		}
	}
	return nil, fmt.Errorf("device %q not found in config", deviceName)
}

func promptPassword(user string) (string, error) {
	fmt.Fprintf(os.Stderr, "password for %s: ", user)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// createFirewall builds and connects the selected device, pairing it with
// its configured HA peer when one is declared.
func createFirewall(ctx context.Context) (*device.Firewall, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dc, err := selectDevice(cfg)
	if err != nil {
		return nil, err
	}
	if dc.APIKey == "" && dc.Password == "" {
		dc.Password, err = promptPassword(dc.Username)
		if err != nil {
			return nil, err
		}
	}

	f := device.NewFirewall(dc)
	if dc.HAPeer != "" {
		for _, pc := range cfg.Devices {
			if pc.Name == dc.HAPeer {
				device.SetHAPeers(f, device.NewFirewall(pc))
			}
		}
	}
	if err := f.Connect(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

func createPanorama(ctx context.Context) (*device.Panorama, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dc, err := selectDevice(cfg)
	if err != nil {
		return nil, err
	}
	if dc.Mode != "panorama" {
		return nil, fmt.Errorf("device %q is not a panorama", dc.Name)
	}
	p := device.NewPanorama(dc)
	if err := p.Connect(ctx); err != nil {
		return nil, err
	}
	return p, nil
}
