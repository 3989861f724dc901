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

// Package testhelper provides a scripted fake device for transport and
// job tests: an httptest server answering the /api/ endpoint with queued
// XML envelopes while recording every request.
package testhelper

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/panfw/panfw/pkg/config"
)

// FakeDevice is one scripted device endpoint.
type FakeDevice struct {
	Server *httptest.Server
	// Requests records the decoded form of every request, in order.
	Requests []url.Values

	queue []string
	// Default answers when the queue is empty. Nil falls back to a plain
	// success envelope.
	Default func(v url.Values) string
}

// New starts a fake device. Callers own the shutdown via Close.
func New() *FakeDevice {
	fd := &FakeDevice{}
	r := mux.NewRouter()
	r.HandleFunc("/api/", fd.handle).Methods(http.MethodPost)
	fd.Server = httptest.NewServer(r)
	return fd
}

func (fd *FakeDevice) handle(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	fd.Requests = append(fd.Requests, r.PostForm)

	body := `<response status="success"><result/></response>`
	if len(fd.queue) > 0 {
		body, fd.queue = fd.queue[0], fd.queue[1:]
	} else if fd.Default != nil {
		body = fd.Default(r.PostForm)
	}
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(body))
}

// Enqueue scripts the next response bodies, FIFO.
func (fd *FakeDevice) Enqueue(bodies ...string) {
	fd.queue = append(fd.queue, bodies...)
}

// Close shuts the server down. After Close every request fails with a
// connection error, which HA tests use to simulate a dead member.
func (fd *FakeDevice) Close() { fd.Server.Close() }

// Config returns a DeviceConfig pointing at the fake, with a pre-issued
// key so no keygen roundtrip happens.
func (fd *FakeDevice) Config(name string) *config.DeviceConfig {
	u, _ := url.Parse(fd.Server.URL)
	port, _ := strconv.Atoi(u.Port())
	return &config.DeviceConfig{
		Name:     name,
		Hostname: u.Hostname(),
		Mode:     "firewall",
		Scheme:   "http",
		Port:     port,
		APIKey:   "test-key",
		Vsys:     "vsys1",
		Timeout:  5 * time.Second,
	}
}
