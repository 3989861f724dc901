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

var addressGroupMeta = &node.Meta{
	Name:     "address-group",
	Template: "address-group",
	Suffix:   node.SuffixEntry,
	Root:     node.RootVsys,
	Profile: schema.NewProfile(
		// pre-9.0 groups were flat member lists directly under the entry;
		// 9.0 moved them under <static> alongside dynamic groups
		schema.Spec{Attr: "static", Path: "member", Kind: schema.KindMember},
		schema.Spec{Attr: "static", Path: "static", Kind: schema.KindMember, Floor: v90},
		schema.Spec{Attr: "dynamic-filter", Path: "dynamic/filter", Kind: schema.KindScalar, Floor: v90},
		schema.Spec{Attr: "description", Path: "description", Kind: schema.KindScalar},
		schema.Spec{Attr: "tag", Path: "tag", Kind: schema.KindMember},
	),
}

// AddressGroup is a static or dynamic group of address objects.
type AddressGroup struct {
	node.Node
}

func NewAddressGroup(name string) *AddressGroup {
	g := &AddressGroup{}
	g.Init(addressGroupMeta, g, name)
	return g
}

func (g *AddressGroup) SetStatic(members []string) { g.SetList("static", members) }
func (g *AddressGroup) Static() []string           { return g.List("static") }

func (g *AddressGroup) SetDynamicFilter(f string) { g.SetScalar("dynamic-filter", f) }
func (g *AddressGroup) DynamicFilter() string {
	v, _ := g.Scalar("dynamic-filter")
	return v
}

func (g *AddressGroup) SetDescription(v string) { g.SetScalar("description", v) }
func (g *AddressGroup) Description() string     { v, _ := g.Scalar("description"); return v }

func (g *AddressGroup) SetTags(tags []string) { g.SetList("tag", tags) }
func (g *AddressGroup) Tags() []string        { return g.List("tag") }
