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

// Package config holds the YAML client configuration: device endpoints,
// credentials, TLS material and polling behavior.
package config

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
	"sigs.k8s.io/controller-runtime/pkg/certwatcher"
)

type Config struct {
	Devices []*DeviceConfig `yaml:"devices,omitempty" json:"devices,omitempty"`
	Poll    *PollConfig     `yaml:"poll,omitempty" json:"poll,omitempty"`
}

// DeviceConfig describes one firewall or manager endpoint.
type DeviceConfig struct {
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Hostname string `yaml:"hostname,omitempty" json:"hostname,omitempty"`
	// Mode is "firewall" or "panorama".
	Mode     string        `yaml:"mode,omitempty" json:"mode,omitempty"`
	Scheme   string        `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	Port     int           `yaml:"port,omitempty" json:"port,omitempty"`
	Username string        `yaml:"username,omitempty" json:"username,omitempty"`
	Password string        `yaml:"password,omitempty" json:"password,omitempty"`
	APIKey   string        `yaml:"api-key,omitempty" json:"api-key,omitempty"`
	Serial   string        `yaml:"serial,omitempty" json:"serial,omitempty"`
	Vsys     string        `yaml:"vsys,omitempty" json:"vsys,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	TLS      *TLS          `yaml:"tls,omitempty" json:"tls,omitempty"`

	// HAPeer names the other DeviceConfig of an active/passive pair.
	HAPeer string `yaml:"ha-peer,omitempty" json:"ha-peer,omitempty"`
}

// PollConfig drives the job tracker.
type PollConfig struct {
	Interval time.Duration `yaml:"interval,omitempty" json:"interval,omitempty"`
	// Timeout 0 means wait forever.
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

type TLS struct {
	CA         string `yaml:"ca,omitempty" json:"ca,omitempty"`
	Cert       string `yaml:"cert,omitempty" json:"cert,omitempty"`
	Key        string `yaml:"key,omitempty" json:"key,omitempty"`
	SkipVerify bool   `yaml:"skip-verify,omitempty" json:"skip-verify,omitempty"`
}

func New(file string) (*Config, error) {
	c := new(Config)
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}

		err = yaml.Unmarshal(b, c)
		if err != nil {
			return nil, err
		}
	}
	err := c.validateSetDefaults()
	return c, err
}

func (c *Config) validateSetDefaults() error {
	names := make(map[string]bool, len(c.Devices))
	for _, d := range c.Devices {
		if err := d.validateSetDefaults(); err != nil {
			return err
		}
		if names[d.Name] {
			return fmt.Errorf("duplicate device name %q", d.Name)
		}
		names[d.Name] = true
	}
	for _, d := range c.Devices {
		if d.HAPeer != "" && !names[d.HAPeer] {
			return fmt.Errorf("device %q references unknown ha-peer %q", d.Name, d.HAPeer)
		}
	}
	if c.Poll == nil {
		c.Poll = &PollConfig{}
	}
	if c.Poll.Interval <= 0 {
		c.Poll.Interval = defaultPollInterval
	}
	return nil
}

func (d *DeviceConfig) validateSetDefaults() error {
	if d.Hostname == "" {
		return fmt.Errorf("device %q: missing hostname", d.Name)
	}
	if d.Name == "" {
		d.Name = d.Hostname
	}
	switch d.Mode {
	case "":
		d.Mode = "firewall"
	case "firewall", "panorama":
	default:
		return fmt.Errorf("device %q: unknown mode %q", d.Name, d.Mode)
	}
	switch d.Scheme {
	case "":
		d.Scheme = defaultScheme
	case "http", "https":
	default:
		return fmt.Errorf("device %q: unknown scheme %q", d.Name, d.Scheme)
	}
	if d.Port == 0 {
		d.Port = defaultPort
	}
	if d.Vsys == "" {
		d.Vsys = defaultVsys
	}
	if d.Timeout <= 0 {
		d.Timeout = defaultTimeout
	}
	if d.APIKey == "" && (d.Username == "" || d.Password == "") {
		return fmt.Errorf("device %q: either api-key or username/password required", d.Name)
	}
	return nil
}

// NewConfig builds a client tls.Config. Client certificates are served
// through a certwatcher so the running process follows renewals on disk.
func (t *TLS) NewConfig(ctx context.Context) (*tls.Config, error) {
	tlsCfg := &tls.Config{InsecureSkipVerify: t.SkipVerify}
	if t.CA != "" {
		ca, err := os.ReadFile(t.CA)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		if len(ca) != 0 {
			caCertPool := x509.NewCertPool()
			caCertPool.AppendCertsFromPEM(ca)
			tlsCfg.RootCAs = caCertPool
		}
	}

	if t.Cert != "" && t.Key != "" {
		certWatcher, err := certwatcher.New(t.Cert, t.Key)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := certWatcher.Start(ctx); err != nil {
				log.Errorf("certificate watcher error: %v", err)
			}
		}()
		tlsCfg.GetClientCertificate = func(*tls.CertificateRequestInfo) (*tls.Certificate, error) {
			return certWatcher.GetCertificate(nil)
		}
	}
	return tlsCfg, nil
}
