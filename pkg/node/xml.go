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

package node

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/panfw/panfw/pkg/schema"
	"github.com/panfw/panfw/pkg/version"
)

// ToElement serializes an entity's attributes and children into an XML
// element according to its descriptor profile resolved at version v.
//
// Serialization runs in two stable passes: discriminator attributes first,
// dependents second. The ordering is a correctness requirement — a
// conditioned or placeholder path can only be resolved once its
// discriminator is known — not an optimization.
func ToElement(e Entity, v version.Number) (*etree.Element, error) {
	n := e.Base()
	meta := e.Meta()

	elem := etree.NewElement(elementTag(meta))
	if meta.Suffix == SuffixEntry {
		elem.CreateAttr("name", n.Name())
	}

	if meta.Profile != nil {
		params := n.discriminatorParams()
		parentType := n.parentTypeName()
		for _, pass := range []bool{true, false} {
			for _, attr := range meta.Profile.Attrs() {
				if meta.Profile.IsDiscriminator(attr) != pass {
					continue
				}
				if err := writeAttr(elem, n, attr, v, parentType, params); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, c := range n.Children() {
		childElem, err := ToElement(c, v)
		if err != nil {
			return nil, err
		}
		attachChild(elem, c, childElem)
	}
	return elem, nil
}

// elementTag is the tag of an entity's own element: "entry" for entry
// suffixed types, otherwise the last segment of the template.
func elementTag(meta *Meta) string {
	switch meta.Suffix {
	case SuffixEntry:
		return "entry"
	case SuffixMember:
		return "member"
	}
	if meta.Template == "" {
		return meta.Name
	}
	segs := strings.Split(meta.Template, "/")
	return segs[len(segs)-1]
}

// attachChild places a serialized child element under the right nested
// container of the parent element, derived from the child's template.
func attachChild(parent *etree.Element, c Entity, childElem *etree.Element) {
	segs := strings.Split(c.Meta().Template, "/")
	switch c.Meta().Suffix {
	case SuffixEntry, SuffixMember:
		container := fastForward(parent, segs)
		container.AddChild(childElem)
	default:
		// the child element itself is the last template segment
		container := fastForward(parent, segs[:len(segs)-1])
		container.AddChild(childElem)
	}
}

// writeAttr resolves and renders one attribute into elem. An unset
// attribute, an unresolvable descriptor or an unset placeholder source all
// skip the attribute silently.
func writeAttr(elem *etree.Element, n *Node, attr string, v version.Number, parentType string, params map[string]string) error {
	val, ok := n.values[attr]
	if !ok {
		return nil
	}
	spec := schema.Resolve(n.meta.Profile.Variants(attr), v, parentType, params)
	if spec == nil {
		return nil
	}
	segs, ok := resolveSegments(spec, n)
	if !ok {
		// the discriminator gating this path is not set yet; conditional
		// schema elements must not be emitted before it is known
		return nil
	}

	switch spec.Kind {
	case schema.KindScalar:
		s, ok := val.(string)
		if !ok {
			return kindMismatch(attr, spec, val)
		}
		fastForward(elem, segs).SetText(s)
	case schema.KindBool:
		b, ok := val.(bool)
		if !ok {
			return kindMismatch(attr, spec, val)
		}
		text := "no"
		if b {
			text = "yes"
		}
		fastForward(elem, segs).SetText(text)
	case schema.KindExist:
		b, ok := val.(bool)
		if !ok {
			return kindMismatch(attr, spec, val)
		}
		if b {
			fastForward(elem, segs)
		}
	case schema.KindMember:
		items, ok := val.([]string)
		if !ok {
			return kindMismatch(attr, spec, val)
		}
		container := fastForward(elem, segs)
		for _, item := range items {
			container.CreateElement("member").SetText(item)
		}
	case schema.KindEntry:
		items, ok := val.([]string)
		if !ok {
			return kindMismatch(attr, spec, val)
		}
		container := fastForward(elem, segs)
		for _, item := range items {
			container.CreateElement("entry").CreateAttr("name", item)
		}
	}
	return nil
}

func kindMismatch(attr string, spec *schema.Spec, val any) error {
	return fmt.Errorf("attribute %q: value type %T does not match kind %s", attr, val, spec.Kind)
}

// fastForward walks elem along segs, creating missing intermediate
// elements and reusing existing ones, and returns the final element.
func fastForward(elem *etree.Element, segs []string) *etree.Element {
	for _, s := range segs {
		next := elem.SelectElement(s)
		if next == nil {
			next = elem.CreateElement(s)
		}
		elem = next
	}
	return elem
}

// resolveSegments substitutes "{attr}" placeholders with current sibling
// attribute values. It reports false when any referenced attribute is
// still unset.
func resolveSegments(spec *schema.Spec, n *Node) ([]string, bool) {
	raw := spec.Segments()
	segs := make([]string, 0, len(raw))
	for _, s := range raw {
		if len(s) > 2 && s[0] == '{' && s[len(s)-1] == '}' {
			v, ok := n.values[s[1:len(s)-1]].(string)
			if !ok || v == "" {
				return nil, false
			}
			s = v
		}
		segs = append(segs, s)
	}
	return segs, true
}

// FromElement is the structural inverse of ToElement: it decodes elem into
// e's attributes. Attributes with no matching path keep their
// type-appropriate default (unset scalar, empty list) rather than failing.
// Parsing the element produced by ToElement restores an equal node.
func FromElement(e Entity, elem *etree.Element, v version.Number) error {
	n := e.Base()
	meta := e.Meta()
	if meta.Suffix == SuffixEntry {
		n.name = elem.SelectAttrValue("name", "")
	}
	n.values = make(map[string]any)
	if meta.Profile == nil {
		return nil
	}

	parentType := n.parentTypeName()
	// discriminators first: dependent descriptor resolution and placeholder
	// substitution read the values parsed in the first pass
	for _, pass := range []bool{true, false} {
		params := n.discriminatorParams()
		for _, attr := range meta.Profile.Attrs() {
			if meta.Profile.IsDiscriminator(attr) != pass {
				continue
			}
			spec := schema.Resolve(meta.Profile.Variants(attr), v, parentType, params)
			if spec == nil {
				continue
			}
			segs, ok := resolveSegments(spec, n)
			if !ok {
				continue
			}
			readAttr(elem, n, attr, spec, segs)
		}
	}
	return nil
}

func readAttr(elem *etree.Element, n *Node, attr string, spec *schema.Spec, segs []string) {
	leaf := findPath(elem, segs)
	switch spec.Kind {
	case schema.KindScalar:
		if leaf != nil {
			n.SetScalar(attr, leaf.Text())
		}
	case schema.KindBool:
		if leaf != nil {
			n.SetFlag(attr, strings.TrimSpace(leaf.Text()) == "yes")
		}
	case schema.KindExist:
		if leaf != nil {
			n.SetFlag(attr, true)
		}
	case schema.KindMember:
		if leaf == nil {
			return
		}
		items := make([]string, 0, len(leaf.ChildElements()))
		for _, m := range leaf.SelectElements("member") {
			items = append(items, m.Text())
		}
		n.SetList(attr, items)
	case schema.KindEntry:
		if leaf == nil {
			return
		}
		items := make([]string, 0, len(leaf.ChildElements()))
		for _, en := range leaf.SelectElements("entry") {
			items = append(items, en.SelectAttrValue("name", ""))
		}
		n.SetList(attr, items)
	}
}

func findPath(elem *etree.Element, segs []string) *etree.Element {
	for _, s := range segs {
		if elem = elem.SelectElement(s); elem == nil {
			return nil
		}
	}
	return elem
}

// PopulateChildren re-creates declared children from a refreshed subtree,
// recursing into every child added. Existing children of matching types
// are replaced wholesale.
func PopulateChildren(e Entity, elem *etree.Element, v version.Number) error {
	n := e.Base()
	for _, def := range e.Meta().Children {
		segs := strings.Split(def.Template, "/")
		container := findPath(elem, segs)
		if container == nil {
			continue
		}
		proto := def.New()
		if proto.Meta().Suffix == SuffixEntry {
			for _, entry := range container.SelectElements("entry") {
				c := def.New()
				if err := FromElement(c, entry, v); err != nil {
					return err
				}
				n.Add(c)
				if err := PopulateChildren(c, entry, v); err != nil {
					return err
				}
			}
			continue
		}
		if err := FromElement(proto, container, v); err != nil {
			return err
		}
		n.Add(proto)
		if err := PopulateChildren(proto, container, v); err != nil {
			return err
		}
	}
	return nil
}
