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

	"github.com/panfw/panfw/pkg/version"
)

// Anchor is the device root of a tree. It supplies the absolute xpath
// prefix for each schema branch, the negotiated version driving descriptor
// resolution, the transport verbs, and the pending-change ledger.
type Anchor interface {
	Entity
	AnchorPath(root RootKind) string
	Version() version.Number
	Transport() Transport
	MarkPending(scope string)
	// DefaultScope is the change-ledger scope for subtrees that carry no
	// vsys or device-group ancestor of their own.
	DefaultScope() string
}

// chainToAnchor returns the entities from the topmost non-anchor ancestor
// down to e, plus the anchor itself. A detached tree yields a nil anchor.
func chainToAnchor(e Entity) (Anchor, []Entity) {
	var chain []Entity
	cur := e
	for {
		chain = append([]Entity{cur}, chain...)
		p := cur.Base().Parent()
		if p == nil {
			return nil, chain
		}
		if a, ok := p.(Anchor); ok {
			return a, chain
		}
		cur = p
	}
}

// segment renders one entity's own path contribution, with or without the
// final entry/member suffix.
func segment(e Entity, withSuffix bool) string {
	b := strings.Builder{}
	if t := e.Meta().Template; t != "" {
		b.WriteString("/" + t)
	}
	if !withSuffix {
		return b.String()
	}
	switch e.Meta().Suffix {
	case SuffixEntry:
		b.WriteString(fmt.Sprintf("/entry[@name='%s']", e.Base().Name()))
	case SuffixMember:
		b.WriteString(fmt.Sprintf("/member[text()='%s']", e.Base().Name()))
	}
	return b.String()
}

// Path returns the absolute xpath of e on its anchored device. It is pure:
// repeated calls without tree or attribute mutation return the same string.
func Path(e Entity) (string, error) {
	return path(e, true)
}

// PathWithoutSuffix is Path minus the final entry/member segment, the form
// used by "set" style writes that append rather than replace.
func PathWithoutSuffix(e Entity) (string, error) {
	return path(e, false)
}

func path(e Entity, withSuffix bool) (string, error) {
	anchor, chain := chainToAnchor(e)
	if anchor == nil {
		return "", fmt.Errorf("%s %q is not attached to a device",
			e.Meta().Name, e.Base().Name())
	}
	b := strings.Builder{}
	b.WriteString(anchor.AnchorPath(chain[0].Meta().Root))
	for i, c := range chain {
		b.WriteString(segment(c, withSuffix || i < len(chain)-1))
	}
	return b.String(), nil
}

// Scope returns the Config-Change Ledger scope governing e: the nearest
// vsys or device-group ancestor's name, falling back to the device default.
func Scope(e Entity) string {
	anchor, chain := chainToAnchor(e)
	for _, c := range chain {
		switch c.Meta().Name {
		case "vsys", "device-group":
			if n := c.Base().Name(); n != "" {
				return n
			}
		}
	}
	if anchor != nil {
		return anchor.DefaultScope()
	}
	return ""
}

// anchorOf returns the device root of e's tree, or an error for detached
// trees; verbs need both the transport and the negotiated version.
func anchorOf(e Entity) (Anchor, error) {
	anchor, _ := chainToAnchor(e)
	if anchor == nil {
		return nil, fmt.Errorf("%s %q is not attached to a device",
			e.Meta().Name, e.Base().Name())
	}
	return anchor, nil
}
