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

// Package schema holds the declarative path descriptors that drive the XML
// (de)serialization of entity attributes, and the resolver that picks the
// single applicable descriptor for a negotiated device version.
package schema

import (
	"strings"

	"github.com/panfw/panfw/pkg/version"
)

// Kind describes how an attribute value is rendered at the leaf of its
// resolved path.
type Kind int

const (
	// KindScalar renders the value as element text.
	KindScalar Kind = iota
	// KindMember renders one <member> child per list item, order preserved.
	KindMember
	// KindEntry renders one <entry name="..."> child per list item.
	KindEntry
	// KindBool renders the yes/no sentinel text.
	KindBool
	// KindExist conveys true by element presence, false by absence.
	KindExist
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMember:
		return "member"
	case KindEntry:
		return "entry"
	case KindBool:
		return "bool"
	case KindExist:
		return "exist"
	}
	return "unknown"
}

// Spec is one path descriptor variant for a logical attribute. A concrete
// entity type declares one or more Specs per attribute; the resolver picks
// exactly one given the negotiated version and the parent's state.
//
// Path is a relative template under the owning entity's element, segments
// separated by "/". A segment of the form "{attr}" is substituted at
// serialization time with the current value of the named sibling attribute;
// while that attribute is unset the whole descriptor is skipped.
type Spec struct {
	Attr string
	Path string
	Kind Kind

	// Floor is the lowest device version this variant applies to.
	// The zero value means "since forever".
	Floor version.Number

	// Parents restricts the variant to entities whose parent type name is
	// listed. Empty means type-agnostic.
	Parents []string

	// ParentParam/ParentValue optionally condition the variant on the
	// current value of a discriminator attribute (e.g. only when
	// mode == "layer3").
	ParentParam string
	ParentValue string
}

// Segments returns the template split into path segments. An empty Path
// yields no segments: the leaf is written directly under the entity element.
func (s *Spec) Segments() []string {
	if s.Path == "" {
		return nil
	}
	return strings.Split(s.Path, "/")
}

// Conditioned reports whether this variant carries a discriminator condition.
func (s *Spec) Conditioned() bool { return s.ParentParam != "" }

// appliesToParent reports whether the variant is valid under the given
// parent type name. Type-agnostic variants always apply.
func (s *Spec) appliesToParent(parentType string) bool {
	if len(s.Parents) == 0 {
		return true
	}
	for _, p := range s.Parents {
		if p == parentType {
			return true
		}
	}
	return false
}

// placeholderRefs returns the attribute names referenced by "{attr}"
// segments of the template.
func (s *Spec) placeholderRefs() []string {
	var refs []string
	for _, seg := range s.Segments() {
		if len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
			refs = append(refs, seg[1:len(seg)-1])
		}
	}
	return refs
}
