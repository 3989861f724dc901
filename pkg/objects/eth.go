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

package objects

import (
	"github.com/panfw/panfw/pkg/node"
	"github.com/panfw/panfw/pkg/schema"
)

// layer3Profile and layer2Profile are independent capability descriptor
// sets; the interface type composes them at construction instead of
// inheriting parameter mixins.
var layer3Profile = schema.NewProfile(
	schema.Spec{Attr: "ip", Path: "{mode}/ip", Kind: schema.KindEntry},
	schema.Spec{Attr: "mtu", Path: "layer3/mtu", Kind: schema.KindScalar,
		ParentParam: "mode", ParentValue: "layer3"},
	schema.Spec{Attr: "dhcp", Path: "layer3/dhcp-client/enable", Kind: schema.KindBool,
		ParentParam: "mode", ParentValue: "layer3"},
)

var layer2Profile = schema.NewProfile(
	schema.Spec{Attr: "lldp", Path: "layer2/lldp/enable", Kind: schema.KindBool,
		ParentParam: "mode", ParentValue: "layer2"},
)

var commonIfProfile = schema.NewProfile(
	schema.Spec{Attr: "mode", Path: "mode", Kind: schema.KindScalar},
	schema.Spec{Attr: "link-state", Path: "link-state", Kind: schema.KindScalar},
	schema.Spec{Attr: "comment", Path: "comment", Kind: schema.KindScalar},
)

var ethernetMeta = &node.Meta{
	Name:     "ethernet-interface",
	Template: "network/interface/ethernet",
	Suffix:   node.SuffixEntry,
	Root:     node.RootDevice,
	Profile:  schema.Merge(commonIfProfile, layer3Profile, layer2Profile),
}

// EthernetInterface is a physical interface. Its mode attribute gates the
// per-mode parameter blocks: the ip list path depends on the mode value,
// and layer3-only knobs are conditioned descriptors.
type EthernetInterface struct {
	node.Node
}

func NewEthernetInterface(name string) *EthernetInterface {
	e := &EthernetInterface{}
	e.Init(ethernetMeta, e, name)
	return e
}

// SetMode selects layer3, layer2 or tap operation. While unset, none of
// the mode-gated attributes serialize.
func (e *EthernetInterface) SetMode(m string) { e.SetScalar("mode", m) }
func (e *EthernetInterface) Mode() string     { v, _ := e.Scalar("mode"); return v }

func (e *EthernetInterface) SetIPs(ips []string) { e.SetList("ip", ips) }
func (e *EthernetInterface) IPs() []string       { return e.List("ip") }

func (e *EthernetInterface) SetMTU(mtu string) { e.SetScalar("mtu", mtu) }
func (e *EthernetInterface) MTU() string       { v, _ := e.Scalar("mtu"); return v }

func (e *EthernetInterface) SetDHCP(b bool) { e.SetFlag("dhcp", b) }
func (e *EthernetInterface) DHCP() bool     { v, _ := e.Flag("dhcp"); return v }

func (e *EthernetInterface) SetLLDP(b bool) { e.SetFlag("lldp", b) }
func (e *EthernetInterface) LLDP() bool     { v, _ := e.Flag("lldp"); return v }

func (e *EthernetInterface) SetComment(c string) { e.SetScalar("comment", c) }
func (e *EthernetInterface) Comment() string     { v, _ := e.Scalar("comment"); return v }
