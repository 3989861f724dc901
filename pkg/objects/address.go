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

// Package objects declares the concrete configuration entity types and
// their descriptor tables. Tables are package-level, built once, and never
// mutated, keeping descriptor resolution pure.
package objects

import (
	"github.com/panfw/panfw/pkg/node"
	"github.com/panfw/panfw/pkg/schema"
	"github.com/panfw/panfw/pkg/version"
)

var v90 = version.MustParse("9.0.0")
var v91 = version.MustParse("9.1.0")

var addressMeta = &node.Meta{
	Name:     "address",
	Template: "address",
	Suffix:   node.SuffixEntry,
	Root:     node.RootVsys,
	Profile: schema.NewProfile(
		schema.Spec{Attr: "ip-netmask", Path: "ip-netmask", Kind: schema.KindScalar},
		schema.Spec{Attr: "ip-range", Path: "ip-range", Kind: schema.KindScalar},
		schema.Spec{Attr: "fqdn", Path: "fqdn", Kind: schema.KindScalar},
		schema.Spec{Attr: "description", Path: "description", Kind: schema.KindScalar},
		schema.Spec{Attr: "tag", Path: "tag", Kind: schema.KindMember},
	),
}

// Address is a named address object (host, range or FQDN).
type Address struct {
	node.Node
}

func NewAddress(name string) *Address {
	a := &Address{}
	a.Init(addressMeta, a, name)
	return a
}

// SetIPNetmask sets the value and clears the competing representations;
// an address object carries exactly one of netmask, range or fqdn.
func (a *Address) SetIPNetmask(v string) {
	a.Unset("ip-range")
	a.Unset("fqdn")
	a.SetScalar("ip-netmask", v)
}

func (a *Address) SetIPRange(v string) {
	a.Unset("ip-netmask")
	a.Unset("fqdn")
	a.SetScalar("ip-range", v)
}

func (a *Address) SetFQDN(v string) {
	a.Unset("ip-netmask")
	a.Unset("ip-range")
	a.SetScalar("fqdn", v)
}

func (a *Address) IPNetmask() string { v, _ := a.Scalar("ip-netmask"); return v }
func (a *Address) IPRange() string   { v, _ := a.Scalar("ip-range"); return v }
func (a *Address) FQDN() string      { v, _ := a.Scalar("fqdn"); return v }

func (a *Address) SetDescription(v string) { a.SetScalar("description", v) }
func (a *Address) Description() string     { v, _ := a.Scalar("description"); return v }

func (a *Address) SetTags(tags []string) { a.SetList("tag", tags) }
func (a *Address) Tags() []string        { return a.List("tag") }
