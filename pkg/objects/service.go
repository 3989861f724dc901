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

var serviceMeta = &node.Meta{
	Name:     "service",
	Template: "service",
	Suffix:   node.SuffixEntry,
	Root:     node.RootVsys,
	Profile: schema.NewProfile(
		// protocol gates the per-protocol port block below
		schema.Spec{Attr: "protocol", Path: "protocol", Kind: schema.KindScalar},
		schema.Spec{Attr: "port", Path: "{protocol}/port", Kind: schema.KindScalar},
		schema.Spec{Attr: "source-port", Path: "{protocol}/source-port", Kind: schema.KindScalar},
		// session timeout override is a tcp-only knob since 9.0
		schema.Spec{Attr: "timeout", Path: "tcp/override/timeout", Kind: schema.KindScalar,
			Floor: v90, ParentParam: "protocol", ParentValue: "tcp"},
		schema.Spec{Attr: "description", Path: "description", Kind: schema.KindScalar},
		schema.Spec{Attr: "tag", Path: "tag", Kind: schema.KindMember},
	),
}

// Service is a named L4 service (protocol plus port spec).
type Service struct {
	node.Node
}

func NewService(name string) *Service {
	s := &Service{}
	s.Init(serviceMeta, s, name)
	return s
}

// SetProtocol sets the transport protocol ("tcp" or "udp"). The protocol
// is the discriminator for the port attributes' paths; until it is set the
// port attributes are not serialized.
func (s *Service) SetProtocol(p string) { s.SetScalar("protocol", p) }
func (s *Service) Protocol() string     { v, _ := s.Scalar("protocol"); return v }

func (s *Service) SetPort(p string) { s.SetScalar("port", p) }
func (s *Service) Port() string     { v, _ := s.Scalar("port"); return v }

func (s *Service) SetSourcePort(p string) { s.SetScalar("source-port", p) }
func (s *Service) SourcePort() string     { v, _ := s.Scalar("source-port"); return v }

func (s *Service) SetTimeout(t string) { s.SetScalar("timeout", t) }
func (s *Service) Timeout() string     { v, _ := s.Scalar("timeout"); return v }

func (s *Service) SetDescription(v string) { s.SetScalar("description", v) }
func (s *Service) Description() string     { v, _ := s.Scalar("description"); return v }

func (s *Service) SetTags(tags []string) { s.SetList("tag", tags) }
func (s *Service) Tags() []string        { return s.List("tag") }
