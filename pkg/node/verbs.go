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
	"context"

	"github.com/beevik/etree"

	"github.com/panfw/panfw/pkg/api"
)

// Transport issues the device verbs against computed xpaths. Implemented
// by the device layer. The retryOnPeer flag is threaded explicitly through
// every call so that a verb already running inside a failover never
// recurses into a second one.
type Transport interface {
	Set(ctx context.Context, xpath, element string, retryOnPeer bool) error
	Edit(ctx context.Context, xpath, element string, retryOnPeer bool) error
	DeletePath(ctx context.Context, xpath string, retryOnPeer bool) error
	Get(ctx context.Context, xpath string, retryOnPeer bool) (*etree.Element, error)
	Show(ctx context.Context, xpath string, retryOnPeer bool) (*etree.Element, error)
	Move(ctx context.Context, xpath, where, dst string, retryOnPeer bool) error
}

// ElementString renders an element as the element= payload of a request.
func ElementString(elem *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(elem)
	return doc.WriteToString()
}

// Create pushes the node with a "set" write: path without the final
// entry/member suffix, element carrying the full subtree. Set appends
// rather than replaces, so sibling configuration is left alone.
func (n *Node) Create(ctx context.Context) error {
	anchor, err := anchorOf(n.self)
	if err != nil {
		return err
	}
	xpath, err := PathWithoutSuffix(n.self)
	if err != nil {
		return err
	}
	elem, err := ToElement(n.self, anchor.Version())
	if err != nil {
		return err
	}
	payload, err := ElementString(elem)
	if err != nil {
		return err
	}
	anchor.MarkPending(Scope(n.self))
	return anchor.Transport().Set(ctx, xpath, payload, true)
}

// Apply replaces the device-side object wholesale with an "edit" write at
// the full path. Attributes absent locally are removed remotely.
func (n *Node) Apply(ctx context.Context) error {
	anchor, err := anchorOf(n.self)
	if err != nil {
		return err
	}
	xpath, err := Path(n.self)
	if err != nil {
		return err
	}
	elem, err := ToElement(n.self, anchor.Version())
	if err != nil {
		return err
	}
	payload, err := ElementString(elem)
	if err != nil {
		return err
	}
	anchor.MarkPending(Scope(n.self))
	return anchor.Transport().Edit(ctx, xpath, payload, true)
}

// Delete removes the device-side object at the node's path. The local
// node stays in its tree; detach it with Remove if desired.
func (n *Node) Delete(ctx context.Context) error {
	anchor, err := anchorOf(n.self)
	if err != nil {
		return err
	}
	xpath, err := Path(n.self)
	if err != nil {
		return err
	}
	anchor.MarkPending(Scope(n.self))
	return anchor.Transport().DeletePath(ctx, xpath, true)
}

// RefreshOptions control Refresh behavior.
type RefreshOptions struct {
	// IgnoreMissing makes an absent device-side object a (false, nil)
	// result instead of an object-missing error.
	IgnoreMissing bool
	// Children additionally re-populates declared child types from the
	// returned subtree, replacing the current children.
	Children bool
}

// Refresh reloads the node's attributes (and optionally children) from the
// candidate configuration. The returned bool reports whether the object
// exists device-side.
func (n *Node) Refresh(ctx context.Context, opts RefreshOptions) (bool, error) {
	anchor, err := anchorOf(n.self)
	if err != nil {
		return false, err
	}
	xpath, err := Path(n.self)
	if err != nil {
		return false, err
	}
	result, err := anchor.Transport().Get(ctx, xpath, true)
	if err != nil {
		if opts.IgnoreMissing && api.IsObjectMissing(err) {
			return false, nil
		}
		return false, err
	}
	target := result.SelectElement(elementTag(n.meta))
	if target == nil {
		if opts.IgnoreMissing {
			return false, nil
		}
		return false, api.Classify(anchor.Base().Name(), "No such node", 7)
	}
	if err := FromElement(n.self, target, anchor.Version()); err != nil {
		return false, err
	}
	if opts.Children {
		n.RemoveAll()
		if err := PopulateChildren(n.self, target, anchor.Version()); err != nil {
			return false, err
		}
	}
	return true, nil
}

// MoveTo reorders the node inside its containing list (rule ordering).
// where is top, bottom, before or after; dst names the reference entry for
// the relative forms.
func (n *Node) MoveTo(ctx context.Context, where, dst string) error {
	anchor, err := anchorOf(n.self)
	if err != nil {
		return err
	}
	xpath, err := Path(n.self)
	if err != nil {
		return err
	}
	anchor.MarkPending(Scope(n.self))
	return anchor.Transport().Move(ctx, xpath, where, dst, true)
}
