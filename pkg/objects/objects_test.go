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
	"strings"
	"testing"

	"github.com/kylelemons/godebug/diff"

	"github.com/panfw/panfw/pkg/node"
	"github.com/panfw/panfw/pkg/version"
)

var (
	v81  = version.MustParse("8.1.0")
	v101 = version.MustParse("10.1.0")
)

func render(t *testing.T, e node.Entity, v version.Number) string {
	t.Helper()
	elem, err := node.ToElement(e, v)
	if err != nil {
		t.Fatalf("ToElement: %v", err)
	}
	s, err := node.ElementString(elem)
	if err != nil {
		t.Fatalf("ElementString: %v", err)
	}
	return s
}

// roundTrip serializes e, parses the element back into fresh, serializes
// again and requires both renderings to be byte identical.
func roundTrip(t *testing.T, e, fresh node.Entity, v version.Number) string {
	t.Helper()
	first := render(t, e, v)
	elem, err := node.ToElement(e, v)
	if err != nil {
		t.Fatalf("ToElement: %v", err)
	}
	if err := node.FromElement(fresh, elem, v); err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	second := render(t, fresh, v)
	if first != second {
		t.Fatalf("round trip not stable at %s:\n%s", v, diff.Diff(first, second))
	}
	return first
}

func Test_Address_roundTrip(t *testing.T) {
	for _, v := range []version.Number{v81, v101} {
		t.Run(v.String(), func(t *testing.T) {
			a := NewAddress("websrv")
			a.SetIPNetmask("10.1.1.5")
			a.SetDescription("frontend web server")
			a.SetTags([]string{"prod", "dmz"})

			got := roundTrip(t, a, NewAddress(""), v)
			want := `<entry name="websrv"><ip-netmask>10.1.1.5</ip-netmask>` +
				`<description>frontend web server</description>` +
				`<tag><member>prod</member><member>dmz</member></tag></entry>`
			if got != want {
				t.Errorf("serialized address mismatch:\n%s", diff.Diff(want, got))
			}
		})
	}
}

func Test_Address_exclusiveValue(t *testing.T) {
	a := NewAddress("h1")
	a.SetIPNetmask("10.0.0.1/32")
	a.SetIPRange("10.0.0.1-10.0.0.9")
	a.SetFQDN("h1.example.com")

	if a.IPNetmask() != "" || a.IPRange() != "" {
		t.Error("setting fqdn left a competing representation set")
	}
	got := render(t, a, v101)
	want := `<entry name="h1"><fqdn>h1.example.com</fqdn></entry>`
	if got != want {
		t.Errorf("serialized address mismatch:\n%s", diff.Diff(want, got))
	}
}

func Test_AddressGroup_versionSplit(t *testing.T) {
	tests := []struct {
		name string
		v    version.Number
		want string
	}{
		{
			name: "flat members before 9.0",
			v:    v81,
			want: `<entry name="web"><member>websrv</member><member>websrv2</member></entry>`,
		},
		{
			name: "static container since 9.0",
			v:    v101,
			want: `<entry name="web"><static><member>websrv</member><member>websrv2</member></static></entry>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewAddressGroup("web")
			g.SetStatic([]string{"websrv", "websrv2"})

			got := roundTrip(t, g, NewAddressGroup(""), tt.v)
			if got != tt.want {
				t.Errorf("serialized group mismatch:\n%s", diff.Diff(tt.want, got))
			}
		})
	}
}

func Test_Service_protocolDiscriminator(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Service)
		v     version.Number
		want  string
	}{
		{
			name: "tcp with timeout override",
			setup: func(s *Service) {
				s.SetProtocol("tcp")
				s.SetPort("8080")
				s.SetTimeout("300")
			},
			v: v101,
			want: `<entry name="web-ui"><protocol>tcp</protocol>` +
				`<tcp><port>8080</port><override><timeout>300</timeout></override></tcp></entry>`,
		},
		{
			name: "udp port lands under udp",
			setup: func(s *Service) {
				s.SetProtocol("udp")
				s.SetPort("514")
			},
			v:    v101,
			want: `<entry name="web-ui"><protocol>udp</protocol><udp><port>514</port></udp></entry>`,
		},
		{
			name: "timeout suppressed for udp",
			setup: func(s *Service) {
				s.SetProtocol("udp")
				s.SetPort("514")
				s.SetTimeout("300")
			},
			v:    v101,
			want: `<entry name="web-ui"><protocol>udp</protocol><udp><port>514</port></udp></entry>`,
		},
		{
			name: "unset protocol suppresses ports",
			setup: func(s *Service) {
				s.SetPort("8080")
				s.SetDescription("incomplete")
			},
			v:    v101,
			want: `<entry name="web-ui"><description>incomplete</description></entry>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService("web-ui")
			tt.setup(s)
			got := render(t, s, tt.v)
			if got != tt.want {
				t.Errorf("serialized service mismatch:\n%s", diff.Diff(tt.want, got))
			}
		})
	}
}

func Test_Service_roundTrip(t *testing.T) {
	s := NewService("web-ui")
	s.SetProtocol("tcp")
	s.SetPort("8080,8443")
	s.SetSourcePort("1024-65535")
	s.SetDescription("management ui")
	s.SetTags([]string{"mgmt"})

	roundTrip(t, s, NewService(""), v101)
}

func Test_SecurityRule_uuidFloor(t *testing.T) {
	r := NewSecurityRule("allow-web")
	r.SetFrom([]string{"untrust"})
	r.SetTo([]string{"dmz"})
	r.SetSource([]string{"any"})
	r.SetDestination([]string{"websrv"})
	r.SetApplication([]string{"web-browsing"})
	r.SetService([]string{"application-default"})
	r.SetAction("allow")
	r.SetLogEnd(true)
	r.SetScalar("uuid", "12345678-0000-0000-0000-c0ffee000001")

	got := roundTrip(t, r, NewSecurityRule(""), v101)
	if want := "<uuid>12345678-0000-0000-0000-c0ffee000001</uuid>"; !strings.Contains(got, want) {
		t.Errorf("uuid missing from serialized rule:\n%s", got)
	}

	fresh := NewSecurityRule("")
	elem, err := node.ToElement(r, v101)
	if err != nil {
		t.Fatalf("ToElement: %v", err)
	}
	if err := node.FromElement(fresh, elem, v101); err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if fresh.Action() != "allow" || !fresh.LogEnd() || fresh.Disabled() {
		t.Errorf("parsed rule = action %q log-end %v disabled %v",
			fresh.Action(), fresh.LogEnd(), fresh.Disabled())
	}
}

func Test_EthernetInterface_modeGating(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*EthernetInterface)
		want  string
	}{
		{
			name: "layer3",
			setup: func(e *EthernetInterface) {
				e.SetMode("layer3")
				e.SetIPs([]string{"198.51.100.1/24"})
				e.SetMTU("9100")
				e.SetLLDP(true)
			},
			// the layer2-only lldp knob must not leak into a layer3 interface
			want: `<entry name="ethernet1/1"><mode>layer3</mode>` +
				`<layer3><ip><entry name="198.51.100.1/24"/></ip><mtu>9100</mtu></layer3></entry>`,
		},
		{
			name: "layer2",
			setup: func(e *EthernetInterface) {
				e.SetMode("layer2")
				e.SetLLDP(true)
				e.SetMTU("9100")
			},
			want: `<entry name="ethernet1/1"><mode>layer2</mode>` +
				`<layer2><lldp><enable>yes</enable></lldp></layer2></entry>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEthernetInterface("ethernet1/1")
			tt.setup(e)
			got := roundTrip(t, e, NewEthernetInterface(""), v101)
			if got != tt.want {
				t.Errorf("serialized interface mismatch:\n%s", diff.Diff(tt.want, got))
			}
		})
	}
}

func Test_Vsys_children(t *testing.T) {
	vs := NewVsys("vsys2")
	vs.SetDisplayName("dmz partition")

	a := NewAddress("websrv")
	a.SetIPNetmask("10.1.1.5")
	vs.Add(a)

	s := NewService("web-ui")
	s.SetProtocol("tcp")
	s.SetPort("8080")
	vs.Add(s)

	elem, err := node.ToElement(vs, v101)
	if err != nil {
		t.Fatalf("ToElement: %v", err)
	}

	fresh := NewVsys("")
	if err := node.FromElement(fresh, elem, v101); err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if err := node.PopulateChildren(fresh, elem, v101); err != nil {
		t.Fatalf("PopulateChildren: %v", err)
	}

	if fresh.DisplayName() != "dmz partition" {
		t.Errorf("display name = %q", fresh.DisplayName())
	}
	addr, ok := fresh.Find("address", "websrv").(*Address)
	if !ok {
		t.Fatal("address child not repopulated")
	}
	if addr.IPNetmask() != "10.1.1.5" {
		t.Errorf("repopulated address netmask = %q", addr.IPNetmask())
	}
	svc, ok := fresh.Find("service", "web-ui").(*Service)
	if !ok {
		t.Fatal("service child not repopulated")
	}
	if svc.Port() != "8080" {
		t.Errorf("repopulated service port = %q", svc.Port())
	}
}

func Test_DeviceGroup_devices(t *testing.T) {
	g := NewDeviceGroup("branch-offices")
	g.SetDevices([]string{"0011223344", "0011223355"})
	g.SetDescription("branch fleet")

	got := roundTrip(t, g, NewDeviceGroup(""), v101)
	want := `<entry name="branch-offices"><description>branch fleet</description>` +
		`<devices><entry name="0011223344"/><entry name="0011223355"/></devices></entry>`
	if got != want {
		t.Errorf("serialized device group mismatch:\n%s", diff.Diff(want, got))
	}
}

