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
	"testing"

	"github.com/panfw/panfw/pkg/schema"
	"github.com/panfw/panfw/pkg/version"
)

// test fixtures: a minimal device anchor plus a vsys-like container and a
// leaf entry type, enough to exercise tree, path and scope behavior.

var testAnchorMeta = &Meta{Name: "test-device"}

type testAnchor struct {
	Node
	ver    version.Number
	tr     Transport
	marked []string
}

func newTestAnchor(name string, ver version.Number) *testAnchor {
	a := &testAnchor{ver: ver}
	a.Init(testAnchorMeta, a, name)
	return a
}

func (a *testAnchor) AnchorPath(root RootKind) string {
	const devicePrefix = "/config/devices/entry[@name='localhost.localdomain']"
	switch root {
	case RootVsys:
		return devicePrefix + "/vsys/entry[@name='vsys1']"
	case RootMgmtConfig:
		return "/config/mgt-config"
	case RootPanoramaShared:
		return "/config/shared"
	}
	return devicePrefix
}

func (a *testAnchor) Version() version.Number  { return a.ver }
func (a *testAnchor) Transport() Transport     { return a.tr }
func (a *testAnchor) MarkPending(scope string) { a.marked = append(a.marked, scope) }
func (a *testAnchor) DefaultScope() string     { return "vsys1" }

var testVsysMeta = &Meta{
	Name:     "vsys",
	Template: "vsys",
	Suffix:   SuffixEntry,
	Root:     RootDevice,
}

type testVsys struct{ Node }

func newTestVsys(name string) *testVsys {
	v := &testVsys{}
	v.Init(testVsysMeta, v, name)
	return v
}

var testEntryMeta = &Meta{
	Name:     "widget",
	Template: "widget",
	Suffix:   SuffixEntry,
	Root:     RootVsys,
	Profile: schema.NewProfile(
		schema.Spec{Attr: "value", Path: "value", Kind: schema.KindScalar},
	),
}

type testEntry struct{ Node }

func newTestEntry(name string) *testEntry {
	e := &testEntry{}
	e.Init(testEntryMeta, e, name)
	return e
}

func Test_Add_reparents(t *testing.T) {
	p1 := newTestVsys("vsys1")
	p2 := newTestVsys("vsys2")
	c := newTestEntry("w1")

	p1.Add(c)
	if c.Parent() != p1.Base().self {
		t.Fatalf("parent after first Add = %v, want p1", c.Parent())
	}
	p2.Add(c)
	if got := len(p1.Children()); got != 0 {
		t.Errorf("old parent still has %d children after reparent", got)
	}
	if got := len(p2.Children()); got != 1 {
		t.Errorf("new parent has %d children, want 1", got)
	}
	if c.Parent().Meta().Name != "vsys" || c.Parent().Base().Name() != "vsys2" {
		t.Errorf("child parent = %s %q, want vsys vsys2",
			c.Parent().Meta().Name, c.Parent().Base().Name())
	}
}

func Test_Remove(t *testing.T) {
	p := newTestVsys("vsys1")
	c := newTestEntry("w1")
	stranger := newTestEntry("w2")
	p.Add(c)

	if err := p.Remove(stranger); err == nil {
		t.Error("Remove of a non-child returned nil error")
	}
	if err := p.Remove(c); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if c.Parent() != nil {
		t.Error("removed child still points at a parent")
	}
	if len(p.Children()) != 0 {
		t.Error("parent still holds removed child")
	}
	// RemoveByName is silent on absence
	p.RemoveByName("widget", "no-such")
}

func Test_Find(t *testing.T) {
	p := newTestVsys("vsys1")
	p.Add(newTestEntry("w1"))
	p.Add(newTestEntry("w2"))

	if got := p.Find("widget", "w2"); got == nil || got.Base().Name() != "w2" {
		t.Errorf("Find(widget, w2) = %v", got)
	}
	if got := p.Find("widget", "w3"); got != nil {
		t.Errorf("Find of absent child = %v, want nil", got)
	}
	if got := p.Find("vsys", "w1"); got != nil {
		t.Errorf("Find with wrong type = %v, want nil", got)
	}
}

func Test_RemoveAll(t *testing.T) {
	p := newTestVsys("vsys1")
	c1 := newTestEntry("w1")
	c2 := newTestEntry("w2")
	p.Add(c1)
	p.Add(c2)

	p.RemoveAll()
	if len(p.Children()) != 0 {
		t.Error("children left after RemoveAll")
	}
	if c1.Parent() != nil || c2.Parent() != nil {
		t.Error("detached children still point at the parent")
	}
}

func Test_Path(t *testing.T) {
	a := newTestAnchor("fw1", version.MustParse("10.0.0"))
	w := newTestEntry("websrv")
	a.Add(w)

	want := "/config/devices/entry[@name='localhost.localdomain']" +
		"/vsys/entry[@name='vsys1']/widget/entry[@name='websrv']"
	for i := 0; i < 3; i++ {
		got, err := Path(w)
		if err != nil {
			t.Fatalf("Path: %v", err)
		}
		if got != want {
			t.Fatalf("Path (call %d) = %q, want %q", i, got, want)
		}
	}

	got, err := PathWithoutSuffix(w)
	if err != nil {
		t.Fatalf("PathWithoutSuffix: %v", err)
	}
	wantShort := "/config/devices/entry[@name='localhost.localdomain']" +
		"/vsys/entry[@name='vsys1']/widget"
	if got != wantShort {
		t.Errorf("PathWithoutSuffix = %q, want %q", got, wantShort)
	}
}

func Test_Path_nested(t *testing.T) {
	a := newTestAnchor("fw1", version.MustParse("10.0.0"))
	vs := newTestVsys("vsys3")
	w := newTestEntry("websrv")
	a.Add(vs)
	vs.Add(w)

	// the chain's topmost non-anchor node selects the schema branch: the
	// explicit vsys roots under the device, not under the default vsys
	got, err := Path(w)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	want := "/config/devices/entry[@name='localhost.localdomain']" +
		"/vsys/entry[@name='vsys3']/widget/entry[@name='websrv']"
	if got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func Test_Path_detached(t *testing.T) {
	w := newTestEntry("orphan")
	if _, err := Path(w); err == nil {
		t.Error("Path of a detached node returned nil error")
	}
	if _, err := anchorOf(w); err == nil {
		t.Error("anchorOf a detached node returned nil error")
	}
}

func Test_Scope(t *testing.T) {
	a := newTestAnchor("fw1", version.MustParse("10.0.0"))
	direct := newTestEntry("w1")
	a.Add(direct)

	vs := newTestVsys("vsys3")
	nested := newTestEntry("w2")
	a.Add(vs)
	vs.Add(nested)

	if got := Scope(direct); got != "vsys1" {
		t.Errorf("Scope of direct child = %q, want device default vsys1", got)
	}
	if got := Scope(nested); got != "vsys3" {
		t.Errorf("Scope under explicit vsys = %q, want vsys3", got)
	}
}
