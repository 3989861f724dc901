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

package schema

// Profile is the immutable descriptor table of one concrete entity type.
// It is built once at type construction and never mutated afterwards, so
// resolution stays pure.
type Profile struct {
	order []string
	specs map[string][]*Spec
	// discriminators are attributes some other descriptor depends on,
	// either through a "{attr}" placeholder or a ParentParam condition.
	discriminators map[string]bool
}

// NewProfile builds a Profile from descriptor variants. Declaration order of
// first appearance per attribute is preserved and drives serialization order
// within each pass.
func NewProfile(specs ...Spec) *Profile {
	p := &Profile{
		specs:          make(map[string][]*Spec, len(specs)),
		discriminators: make(map[string]bool),
	}
	for i := range specs {
		s := specs[i]
		if _, ok := p.specs[s.Attr]; !ok {
			p.order = append(p.order, s.Attr)
		}
		p.specs[s.Attr] = append(p.specs[s.Attr], &s)
		for _, ref := range s.placeholderRefs() {
			p.discriminators[ref] = true
		}
		if s.ParentParam != "" {
			p.discriminators[s.ParentParam] = true
		}
	}
	return p
}

// Merge combines capability profiles into one table. Mixin parameter sets
// (layer2 vs layer3 blocks and the like) are declared as independent
// profiles and merged here at type construction, selected by the type's
// capability tags rather than by an inheritance hierarchy.
func Merge(profiles ...*Profile) *Profile {
	m := &Profile{
		specs:          make(map[string][]*Spec),
		discriminators: make(map[string]bool),
	}
	for _, p := range profiles {
		if p == nil {
			continue
		}
		for _, attr := range p.order {
			if _, ok := m.specs[attr]; !ok {
				m.order = append(m.order, attr)
			}
			m.specs[attr] = append(m.specs[attr], p.specs[attr]...)
		}
		for d := range p.discriminators {
			m.discriminators[d] = true
		}
	}
	return m
}

// Attrs returns attribute names in declaration order.
func (p *Profile) Attrs() []string { return p.order }

// Variants returns all descriptor variants declared for attr.
func (p *Profile) Variants(attr string) []*Spec { return p.specs[attr] }

// IsDiscriminator reports whether attr gates other descriptors and must be
// serialized (and parsed) before its dependents.
func (p *Profile) IsDiscriminator(attr string) bool { return p.discriminators[attr] }
