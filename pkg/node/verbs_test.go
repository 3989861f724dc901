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
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"

	"github.com/panfw/panfw/pkg/api"
	"github.com/panfw/panfw/pkg/version"
)

type transportCall struct {
	Verb    string
	XPath   string
	Element string
	Where   string
	Dst     string
}

// recordingTransport captures verbs and answers Get/Show from a canned
// document.
type recordingTransport struct {
	calls  []transportCall
	result *etree.Element
	err    error
}

func (r *recordingTransport) Set(_ context.Context, xpath, element string, _ bool) error {
	r.calls = append(r.calls, transportCall{Verb: "set", XPath: xpath, Element: element})
	return r.err
}

func (r *recordingTransport) Edit(_ context.Context, xpath, element string, _ bool) error {
	r.calls = append(r.calls, transportCall{Verb: "edit", XPath: xpath, Element: element})
	return r.err
}

func (r *recordingTransport) DeletePath(_ context.Context, xpath string, _ bool) error {
	r.calls = append(r.calls, transportCall{Verb: "delete", XPath: xpath})
	return r.err
}

func (r *recordingTransport) Get(_ context.Context, xpath string, _ bool) (*etree.Element, error) {
	r.calls = append(r.calls, transportCall{Verb: "get", XPath: xpath})
	return r.result, r.err
}

func (r *recordingTransport) Show(_ context.Context, xpath string, _ bool) (*etree.Element, error) {
	r.calls = append(r.calls, transportCall{Verb: "show", XPath: xpath})
	return r.result, r.err
}

func (r *recordingTransport) Move(_ context.Context, xpath, where, dst string, _ bool) error {
	r.calls = append(r.calls, transportCall{Verb: "move", XPath: xpath, Where: where, Dst: dst})
	return r.err
}

func anchoredEntry(tr Transport) (*testAnchor, *testEntry) {
	a := newTestAnchor("fw1", version.MustParse("10.0.0"))
	a.tr = tr
	w := newTestEntry("websrv")
	w.SetScalar("value", "10.1.1.5")
	a.Add(w)
	return a, w
}

func Test_Create(t *testing.T) {
	tr := &recordingTransport{}
	a, w := anchoredEntry(tr)

	if err := w.Create(context.TODO()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := []transportCall{{
		Verb: "set",
		XPath: "/config/devices/entry[@name='localhost.localdomain']" +
			"/vsys/entry[@name='vsys1']/widget",
		Element: `<entry name="websrv"><value>10.1.1.5</value></entry>`,
	}}
	if d := cmp.Diff(want, tr.calls); d != "" {
		t.Errorf("transport calls mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"vsys1"}, a.marked); d != "" {
		t.Errorf("ledger marks mismatch (-want +got):\n%s", d)
	}
}

func Test_Apply(t *testing.T) {
	tr := &recordingTransport{}
	_, w := anchoredEntry(tr)

	if err := w.Apply(context.TODO()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []transportCall{{
		Verb: "edit",
		XPath: "/config/devices/entry[@name='localhost.localdomain']" +
			"/vsys/entry[@name='vsys1']/widget/entry[@name='websrv']",
		Element: `<entry name="websrv"><value>10.1.1.5</value></entry>`,
	}}
	if d := cmp.Diff(want, tr.calls); d != "" {
		t.Errorf("transport calls mismatch (-want +got):\n%s", d)
	}
}

func Test_Delete(t *testing.T) {
	tr := &recordingTransport{}
	_, w := anchoredEntry(tr)

	if err := w.Delete(context.TODO()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(tr.calls) != 1 || tr.calls[0].Verb != "delete" {
		t.Fatalf("calls = %+v, want one delete", tr.calls)
	}
	wantPath := "/config/devices/entry[@name='localhost.localdomain']" +
		"/vsys/entry[@name='vsys1']/widget/entry[@name='websrv']"
	if tr.calls[0].XPath != wantPath {
		t.Errorf("delete xpath = %q, want %q", tr.calls[0].XPath, wantPath)
	}
}

func Test_Refresh(t *testing.T) {
	result := etree.NewElement("result")
	entry := result.CreateElement("entry")
	entry.CreateAttr("name", "websrv")
	entry.CreateElement("value").SetText("10.9.9.9")

	tr := &recordingTransport{result: result}
	_, w := anchoredEntry(tr)

	found, err := w.Refresh(context.TODO(), RefreshOptions{})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if !found {
		t.Fatal("Refresh reported the object missing")
	}
	if got, _ := w.Scalar("value"); got != "10.9.9.9" {
		t.Errorf("value after refresh = %q, want 10.9.9.9", got)
	}
}

func Test_Refresh_missing(t *testing.T) {
	tests := []struct {
		name    string
		opts    RefreshOptions
		wantErr bool
	}{
		{name: "strict", opts: RefreshOptions{}, wantErr: true},
		{name: "ignore missing", opts: RefreshOptions{IgnoreMissing: true}, wantErr: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// empty result: the device answers success with no subtree
			tr := &recordingTransport{result: etree.NewElement("result")}
			_, w := anchoredEntry(tr)

			found, err := w.Refresh(context.TODO(), tt.opts)
			if found {
				t.Error("missing object reported found")
			}
			if tt.wantErr {
				if !api.IsObjectMissing(err) {
					t.Errorf("err = %v, want object-missing", err)
				}
				return
			}
			if err != nil {
				t.Errorf("err = %v, want nil", err)
			}
		})
	}
}

func Test_MoveTo(t *testing.T) {
	tr := &recordingTransport{}
	_, w := anchoredEntry(tr)

	if err := w.MoveTo(context.TODO(), "before", "other"); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if len(tr.calls) != 1 {
		t.Fatalf("calls = %+v, want one move", tr.calls)
	}
	c := tr.calls[0]
	if c.Verb != "move" || c.Where != "before" || c.Dst != "other" {
		t.Errorf("move call = %+v", c)
	}
}
