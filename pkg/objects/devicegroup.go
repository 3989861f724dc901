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

var deviceGroupMeta = &node.Meta{
	Name:     "device-group",
	Template: "device-group",
	Suffix:   node.SuffixEntry,
	Root:     node.RootDevice,
	Profile: schema.NewProfile(
		schema.Spec{Attr: "description", Path: "description", Kind: schema.KindScalar},
		schema.Spec{Attr: "devices", Path: "devices", Kind: schema.KindEntry},
	),
	Children: []node.ChildDef{
		{Template: "address", New: func() node.Entity { return NewAddress("") }},
		{Template: "address-group", New: func() node.Entity { return NewAddressGroup("") }},
		{Template: "service", New: func() node.Entity { return NewService("") }},
		{Template: "tag", New: func() node.Entity { return NewTag("") }},
	},
}

// DeviceGroup is a manager-side grouping of firewalls sharing policy.
// Objects placed under it are pushed to every member on commit-all.
type DeviceGroup struct {
	node.Node
}

func NewDeviceGroup(name string) *DeviceGroup {
	g := &DeviceGroup{}
	g.Init(deviceGroupMeta, g, name)
	return g
}

func (g *DeviceGroup) SetDescription(v string) { g.SetScalar("description", v) }
func (g *DeviceGroup) Description() string     { v, _ := g.Scalar("description"); return v }

// SetDevices lists member firewalls by serial number.
func (g *DeviceGroup) SetDevices(serials []string) { g.SetList("devices", serials) }
func (g *DeviceGroup) Devices() []string           { return g.List("devices") }
