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

var tagMeta = &node.Meta{
	Name:     "tag",
	Template: "tag",
	Suffix:   node.SuffixEntry,
	Root:     node.RootVsys,
	Profile: schema.NewProfile(
		schema.Spec{Attr: "color", Path: "color", Kind: schema.KindScalar},
		schema.Spec{Attr: "comments", Path: "comments", Kind: schema.KindScalar},
	),
}

// Tag is an administrative tag attachable to objects and rules.
type Tag struct {
	node.Node
}

func NewTag(name string) *Tag {
	t := &Tag{}
	t.Init(tagMeta, t, name)
	return t
}

func (t *Tag) SetColor(c string) { t.SetScalar("color", c) }
func (t *Tag) Color() string     { v, _ := t.Scalar("color"); return v }

func (t *Tag) SetComments(c string) { t.SetScalar("comments", c) }
func (t *Tag) Comments() string     { v, _ := t.Scalar("comments"); return v }
