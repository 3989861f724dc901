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

var securityRuleMeta = &node.Meta{
	Name:     "security-rule",
	Template: "rulebase/security/rules",
	Suffix:   node.SuffixEntry,
	Root:     node.RootVsys,
	Profile: schema.NewProfile(
		schema.Spec{Attr: "from", Path: "from", Kind: schema.KindMember},
		schema.Spec{Attr: "to", Path: "to", Kind: schema.KindMember},
		schema.Spec{Attr: "source", Path: "source", Kind: schema.KindMember},
		schema.Spec{Attr: "destination", Path: "destination", Kind: schema.KindMember},
		schema.Spec{Attr: "application", Path: "application", Kind: schema.KindMember},
		schema.Spec{Attr: "service", Path: "service", Kind: schema.KindMember},
		schema.Spec{Attr: "action", Path: "action", Kind: schema.KindScalar},
		schema.Spec{Attr: "disabled", Path: "disabled", Kind: schema.KindBool},
		schema.Spec{Attr: "log-end", Path: "log-end", Kind: schema.KindBool},
		schema.Spec{Attr: "description", Path: "description", Kind: schema.KindScalar},
		// rule uuids only exist on 9.1 and later
		schema.Spec{Attr: "uuid", Path: "uuid", Kind: schema.KindScalar, Floor: v91},
	),
}

// SecurityRule is one entry of the security rulebase. Rule order inside
// the rulebase is semantic; use MoveTo to reorder device-side.
type SecurityRule struct {
	node.Node
}

func NewSecurityRule(name string) *SecurityRule {
	r := &SecurityRule{}
	r.Init(securityRuleMeta, r, name)
	return r
}

func (r *SecurityRule) SetFrom(zones []string) { r.SetList("from", zones) }
func (r *SecurityRule) From() []string         { return r.List("from") }

func (r *SecurityRule) SetTo(zones []string) { r.SetList("to", zones) }
func (r *SecurityRule) To() []string         { return r.List("to") }

func (r *SecurityRule) SetSource(v []string) { r.SetList("source", v) }
func (r *SecurityRule) Source() []string     { return r.List("source") }

func (r *SecurityRule) SetDestination(v []string) { r.SetList("destination", v) }
func (r *SecurityRule) Destination() []string     { return r.List("destination") }

func (r *SecurityRule) SetApplication(v []string) { r.SetList("application", v) }
func (r *SecurityRule) Application() []string     { return r.List("application") }

func (r *SecurityRule) SetService(v []string) { r.SetList("service", v) }
func (r *SecurityRule) Service() []string     { return r.List("service") }

func (r *SecurityRule) SetAction(a string) { r.SetScalar("action", a) }
func (r *SecurityRule) Action() string     { v, _ := r.Scalar("action"); return v }

func (r *SecurityRule) SetDisabled(d bool) { r.SetFlag("disabled", d) }
func (r *SecurityRule) Disabled() bool     { v, _ := r.Flag("disabled"); return v }

func (r *SecurityRule) SetLogEnd(l bool) { r.SetFlag("log-end", l) }
func (r *SecurityRule) LogEnd() bool     { v, _ := r.Flag("log-end"); return v }

func (r *SecurityRule) SetDescription(v string) { r.SetScalar("description", v) }
func (r *SecurityRule) Description() string     { v, _ := r.Scalar("description"); return v }

func (r *SecurityRule) UUID() string { v, _ := r.Scalar("uuid"); return v }
