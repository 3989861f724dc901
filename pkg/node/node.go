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

// Package node implements the configuration entity tree: typed nodes with
// parent/child ownership, absolute xpath computation, and the descriptor
// driven XML (de)serialization engine.
package node

import (
	"fmt"

	"github.com/panfw/panfw/pkg/schema"
)

// RootKind selects the top-level schema branch a subtree attaches under
// once it is anchored to a device.
type RootKind int

const (
	RootDevice RootKind = iota
	RootVsys
	RootMgmtConfig
	RootPanoramaShared
)

// SuffixKind controls how the final path segment of an entity is rendered.
type SuffixKind int

const (
	SuffixNone SuffixKind = iota
	SuffixEntry
	SuffixMember
)

// ChildDef declares one allowed child type: its path template (for locating
// returned subtrees) and a factory for refresh-time re-population.
type ChildDef struct {
	Template string
	New      func() Entity
}

// Meta is the static description of a concrete entity type. One instance
// per type, shared by all nodes of that type, never mutated.
type Meta struct {
	// Name is the type name used in parent-type descriptor matching.
	Name string
	// Template is the fixed relative path segment under the parent.
	Template string
	Suffix   SuffixKind
	Root     RootKind
	Profile  *schema.Profile
	Children []ChildDef
}

// Entity is implemented by every concrete node type (via an embedded Node).
type Entity interface {
	Meta() *Meta
	Base() *Node
}

// Node is the embedded base of every entity. The parent pointer and the
// parent's children slice are kept consistent at all times; both sides are
// only ever mutated together.
type Node struct {
	name     string
	meta     *Meta
	self     Entity
	parent   Entity
	children []Entity

	// attribute values keyed by logical attribute name; presence in the
	// map means "set". Value types are string, []string or bool per the
	// descriptor's kind.
	values map[string]any
}

// Init wires the embedded base to its concrete wrapper. Every constructor
// must call it before the node enters a tree.
func (n *Node) Init(meta *Meta, self Entity, name string) {
	n.meta = meta
	n.self = self
	n.name = name
	n.values = make(map[string]any)
}

func (n *Node) Meta() *Meta { return n.meta }
func (n *Node) Base() *Node { return n }

// Name returns the entry/member identity, empty for unnamed singletons.
func (n *Node) Name() string { return n.name }

// Rename changes the entry identity. The device-side object is not touched;
// callers rename and then Apply.
func (n *Node) Rename(name string) { n.name = name }

// Parent returns the owning entity, nil for detached or root nodes.
func (n *Node) Parent() Entity { return n.parent }

// Children returns the ordered child list. The returned slice is the
// node's own; callers must not mutate it directly.
func (n *Node) Children() []Entity { return n.children }

// Add inserts child into the tree, detaching it from any previous parent
// first so the parent/children invariant holds on both trees.
func (n *Node) Add(child Entity) Entity {
	cb := child.Base()
	if cb.parent != nil {
		// ignore the error: the child is present in its old parent by the
		// very invariant this method maintains
		_ = cb.parent.Base().Remove(child)
	}
	cb.parent = n.self
	n.children = append(n.children, child)
	return child
}

// Remove detaches child by object identity. It errors when the exact
// object is not a child of n.
func (n *Node) Remove(child Entity) error {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.Base().parent = nil
			return nil
		}
	}
	return fmt.Errorf("%s %q is not a child of %s %q",
		child.Meta().Name, child.Base().Name(), n.meta.Name, n.name)
}

// RemoveByName detaches the child of the given type name and entry name.
// Unlike Remove it is silent when no such child exists.
func (n *Node) RemoveByName(typeName, name string) {
	for i, c := range n.children {
		if c.Meta().Name == typeName && c.Base().Name() == name {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.Base().parent = nil
			return
		}
	}
}

// Find returns the child of the given type and entry name, or nil.
func (n *Node) Find(typeName, name string) Entity {
	for _, c := range n.children {
		if c.Meta().Name == typeName && c.Base().Name() == name {
			return c
		}
	}
	return nil
}

// RemoveAll drops every child, clearing both sides of the relation.
func (n *Node) RemoveAll() {
	for _, c := range n.children {
		c.Base().parent = nil
	}
	n.children = nil
}

// SetScalar sets a scalar or bool-rendered-as-string attribute.
func (n *Node) SetScalar(attr, val string) { n.values[attr] = val }

// Scalar returns the attribute value and whether it is set.
func (n *Node) Scalar(attr string) (string, bool) {
	v, ok := n.values[attr].(string)
	return v, ok
}

// SetList sets a member-list or entry-list attribute.
func (n *Node) SetList(attr string, vals []string) { n.values[attr] = vals }

// List returns the list attribute; an unset list reads as empty.
func (n *Node) List(attr string) []string {
	v, _ := n.values[attr].([]string)
	return v
}

// SetFlag sets a bool or existence attribute.
func (n *Node) SetFlag(attr string, val bool) { n.values[attr] = val }

// Flag returns the bool attribute and whether it is set.
func (n *Node) Flag(attr string) (bool, bool) {
	v, ok := n.values[attr].(bool)
	return v, ok
}

// Unset clears an attribute entirely.
func (n *Node) Unset(attr string) { delete(n.values, attr) }

// discriminatorParams snapshots the current values of discriminator
// attributes, the inputs to conditioned descriptor resolution.
func (n *Node) discriminatorParams() map[string]string {
	params := make(map[string]string)
	if n.meta == nil || n.meta.Profile == nil {
		return params
	}
	for _, attr := range n.meta.Profile.Attrs() {
		if !n.meta.Profile.IsDiscriminator(attr) {
			continue
		}
		if v, ok := n.values[attr].(string); ok {
			params[attr] = v
		}
	}
	return params
}

// parentTypeName is the type name used for descriptor parent matching.
func (n *Node) parentTypeName() string {
	if n.parent == nil {
		return ""
	}
	return n.parent.Meta().Name
}
