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

// Package device implements the firewall and manager clients: the HTTP
// transport with HA-aware routing, the typed device verbs, locks and the
// pending-change ledger, and commit/job orchestration.
package device

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/panfw/panfw/pkg/config"
	"github.com/panfw/panfw/pkg/node"
	"github.com/panfw/panfw/pkg/version"
)

var firewallMeta = &node.Meta{Name: "firewall"}
var panoramaMeta = &node.Meta{Name: "panorama"}

// Firewall is a device root entity. Nodes added under it resolve absolute
// paths against its schema anchors and issue verbs through its transport.
//
// The tree rooted at a Firewall is unsynchronized state: concurrent
// mutation from multiple goroutines must be serialized by the caller.
type Firewall struct {
	node.Node

	cfg     *config.DeviceConfig
	client  *http.Client
	logger  *log.Entry
	metrics *Metrics

	apiKey    string
	swVersion version.Number
	serial    string
	model     string
	multiVsys bool

	// proxy, when set, redirects every request through a manager with
	// target=<serial>.
	proxy *Firewall

	// HA pair state. peer is symmetric; exactly one of the pair is
	// active absent a failure.
	peer   *Firewall
	active bool
	failed bool

	// pending is the config-change ledger: scopes with uncommitted edits.
	pending map[string]struct{}
	// locked tracks config locks this client holds, by scope.
	locked map[string]struct{}
}

// Option customizes a device at construction.
type Option func(*Firewall)

// WithLogger injects a pre-scoped structured logger.
func WithLogger(l *log.Entry) Option { return func(f *Firewall) { f.logger = l } }

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *Metrics) Option { return func(f *Firewall) { f.metrics = m } }

// WithHTTPClient overrides the HTTP client (tests, custom transports).
func WithHTTPClient(c *http.Client) Option { return func(f *Firewall) { f.client = c } }

// NewFirewall builds a firewall client from its configuration. No network
// traffic happens until Connect or the first verb.
func NewFirewall(cfg *config.DeviceConfig, opts ...Option) *Firewall {
	f := &Firewall{
		cfg:     cfg,
		apiKey:  cfg.APIKey,
		active:  true,
		pending: make(map[string]struct{}),
		locked:  make(map[string]struct{}),
	}
	f.Init(firewallMeta, f, cfg.Name)
	for _, o := range opts {
		o(f)
	}
	if f.logger == nil {
		f.logger = log.NewEntry(log.StandardLogger())
	}
	f.logger = f.logger.WithField("device", cfg.Name)
	return f
}

// Connect prepares the HTTP client, acquires an API key when only
// username/password are configured, and negotiates the device version.
func (f *Firewall) Connect(ctx context.Context) error {
	if f.client == nil {
		tlsCfg := &config.TLS{}
		if f.cfg.TLS != nil {
			tlsCfg = f.cfg.TLS
		}
		tc, err := tlsCfg.NewConfig(ctx)
		if err != nil {
			return err
		}
		f.client = &http.Client{
			Timeout:   f.cfg.Timeout,
			Transport: &http.Transport{TLSClientConfig: tc},
		}
	}
	if f.apiKey == "" {
		key, err := f.GenerateAPIKey(ctx)
		if err != nil {
			return err
		}
		f.apiKey = key
	}
	return f.RefreshSystemInfo(ctx)
}

// Version returns the negotiated software version; zero until connected.
func (f *Firewall) Version() version.Number { return f.swVersion }

// Serial returns the device serial number learned from system info.
func (f *Firewall) Serial() string { return f.serial }

// Model returns the platform model learned from system info.
func (f *Firewall) Model() string { return f.model }

// MultiVsys reports whether the device runs in multi-vsys mode.
func (f *Firewall) MultiVsys() bool { return f.multiVsys }

// Transport exposes the device as the verb sink for its entity tree.
func (f *Firewall) Transport() node.Transport { return f }

// DefaultScope is the ledger scope for edits that carry no vsys or
// device-group ancestor.
func (f *Firewall) DefaultScope() string { return f.cfg.Vsys }

// AnchorPath maps a subtree's root kind to the absolute xpath prefix it
// attaches under on this device.
func (f *Firewall) AnchorPath(root node.RootKind) string {
	const devicePrefix = "/config/devices/entry[@name='localhost.localdomain']"
	switch root {
	case node.RootVsys:
		if f.cfg.Vsys == "shared" {
			return "/config/shared"
		}
		return devicePrefix + fmt.Sprintf("/vsys/entry[@name='%s']", f.cfg.Vsys)
	case node.RootMgmtConfig:
		return "/config/mgt-config"
	case node.RootPanoramaShared:
		return "/config/shared"
	}
	return devicePrefix
}

// MarkPending records that scope has uncommitted edits.
func (f *Firewall) MarkPending(scope string) {
	if scope == "" {
		scope = f.DefaultScope()
	}
	f.pending[scope] = struct{}{}
}

// Pending lists the scopes with uncommitted edits, sorted.
func (f *Firewall) Pending() []string {
	scopes := make([]string, 0, len(f.pending))
	for s := range f.pending {
		scopes = append(scopes, s)
	}
	sort.Strings(scopes)
	return scopes
}

// NeedsConfigLock reports whether scope has pending edits not yet covered
// by a lock held through this client. Whether to then take the lock is the
// caller's policy.
func (f *Firewall) NeedsConfigLock(scope string) bool {
	if scope == "" {
		scope = f.DefaultScope()
	}
	_, pending := f.pending[scope]
	_, held := f.locked[scope]
	return pending && !held
}

func (f *Firewall) clearPending() { f.pending = make(map[string]struct{}) }

func (f *Firewall) clearPendingScope(scope string) { delete(f.pending, scope) }

// RefreshSystemInfo queries `show system info` and stores the negotiated
// version, serial, model and vsys mode.
func (f *Firewall) RefreshSystemInfo(ctx context.Context) error {
	result, err := f.Op(ctx, "show system info", "", true)
	if err != nil {
		return fmt.Errorf("refresh system info: %w", err)
	}
	sys := result.SelectElement("system")
	if sys == nil {
		return fmt.Errorf("refresh system info: no <system> in response")
	}
	get := func(tag string) string {
		if e := sys.SelectElement(tag); e != nil {
			return strings.TrimSpace(e.Text())
		}
		return ""
	}
	v, err := version.Parse(get("sw-version"))
	if err != nil {
		return fmt.Errorf("refresh system info: %w", err)
	}
	f.swVersion = v
	f.serial = get("serial")
	f.model = get("model")
	f.multiVsys = strings.EqualFold(get("multi-vsys"), "on")
	f.logger.WithFields(log.Fields{
		"version": f.swVersion.String(),
		"serial":  f.serial,
		"model":   f.model,
	}).Info("system info refreshed")
	return nil
}

// Panorama is the centralized manager device type. It shares the firewall
// transport but anchors shared objects under /config/shared and can
// redirect verbs to managed firewalls by serial.
type Panorama struct {
	Firewall
}

// NewPanorama builds a manager client.
func NewPanorama(cfg *config.DeviceConfig, opts ...Option) *Panorama {
	p := &Panorama{}
	p.cfg = cfg
	p.apiKey = cfg.APIKey
	p.active = true
	p.pending = make(map[string]struct{})
	p.locked = make(map[string]struct{})
	p.Init(panoramaMeta, p, cfg.Name)
	for _, o := range opts {
		o(&p.Firewall)
	}
	if p.logger == nil {
		p.logger = log.NewEntry(log.StandardLogger())
	}
	p.logger = p.logger.WithField("device", cfg.Name)
	return p
}

// AnchorPath on a manager anchors vsys-rooted subtrees under shared:
// object types declared for firewalls live in the shared branch here.
func (p *Panorama) AnchorPath(root node.RootKind) string {
	switch root {
	case node.RootVsys, node.RootPanoramaShared:
		return "/config/shared"
	case node.RootMgmtConfig:
		return "/config/mgt-config"
	}
	return "/config/devices/entry[@name='localhost.localdomain']"
}

// DefaultScope on a manager is the shared scope.
func (p *Panorama) DefaultScope() string { return "shared" }

// ManagedFirewall returns a client for a firewall managed by this
// Panorama, redirecting every request through the manager with the
// firewall's serial number as target.
func (p *Panorama) ManagedFirewall(serial string, vsys string) *Firewall {
	cfg := *p.cfg
	cfg.Name = fmt.Sprintf("%s/%s", p.cfg.Name, serial)
	cfg.Serial = serial
	if vsys != "" {
		cfg.Vsys = vsys
	} else {
		cfg.Vsys = "vsys1"
	}
	f := NewFirewall(&cfg, WithLogger(p.logger), WithHTTPClient(p.client))
	f.apiKey = p.apiKey
	f.metrics = p.metrics
	f.proxy = &p.Firewall
	return f
}
