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

var vsysMeta = &node.Meta{
	Name:     "vsys",
	Template: "vsys",
	Suffix:   node.SuffixEntry,
	Root:     node.RootDevice,
	Profile: schema.NewProfile(
		schema.Spec{Attr: "display-name", Path: "display-name", Kind: schema.KindScalar},
		schema.Spec{Attr: "interface", Path: "import/network/interface", Kind: schema.KindMember},
	),
	Children: []node.ChildDef{
		{Template: "address", New: func() node.Entity { return NewAddress("") }},
		{Template: "address-group", New: func() node.Entity { return NewAddressGroup("") }},
		{Template: "service", New: func() node.Entity { return NewService("") }},
		{Template: "tag", New: func() node.Entity { return NewTag("") }},
		{Template: "rulebase/security/rules", New: func() node.Entity { return NewSecurityRule("") }},
	},
}

// Vsys is a virtual system partition. Objects and rules added under a Vsys
// scope to that partition instead of the device's default vsys.
type Vsys struct {
	node.Node
}

func NewVsys(name string) *Vsys {
	v := &Vsys{}
	v.Init(vsysMeta, v, name)
	return v
}

func (v *Vsys) SetDisplayName(n string) { v.SetScalar("display-name", n) }
func (v *Vsys) DisplayName() string     { s, _ := v.Scalar("display-name"); return s }

// SetImportedInterfaces declares the interfaces visible inside the vsys.
func (v *Vsys) SetImportedInterfaces(ifs []string) { v.SetList("interface", ifs) }
func (v *Vsys) ImportedInterfaces() []string       { return v.List("interface") }
