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

// Package job polls long-running device-side operations (commit, software
// install, reboot) to completion.
package job

import (
	"strings"

	"github.com/beevik/etree"
)

// Job states as the device reports them.
const (
	StatusPending = "PEND"
	StatusActive  = "ACT"
	StatusFin     = "FIN"
)

// Result is the decoded state of one job, terminal or not.
type Result struct {
	ID       string
	Status   string
	Progress string
	// Success is only meaningful once Terminal() is true.
	Success bool
	// Messages carries the device's detail lines verbatim.
	Messages []string
	// Devices holds per-firewall sub-results of a fleet-wide commit,
	// keyed by serial number.
	Devices map[string]*DeviceResult
}

// DeviceResult is one firewall's share of a fleet-wide commit.
type DeviceResult struct {
	Serial   string
	Name     string
	Status   string
	Success  bool
	Messages []string
}

// Terminal reports whether the job is finished at the aggregate level.
// A fleet job with FIN status but pending per-device sub-results is not
// terminal yet.
func (r *Result) Terminal() bool {
	if r.Status != StatusFin {
		return false
	}
	for _, d := range r.Devices {
		if d.Status == StatusPending || d.Status == "" {
			return false
		}
	}
	return true
}

// Parse decodes a <job> element from a job status response.
func Parse(jobElem *etree.Element) *Result {
	r := &Result{
		ID:       childText(jobElem, "id"),
		Status:   childText(jobElem, "status"),
		Progress: childText(jobElem, "progress"),
	}
	r.Success = strings.EqualFold(childText(jobElem, "result"), "OK")
	for _, line := range jobElem.FindElements("./details/line") {
		if t := strings.TrimSpace(line.Text()); t != "" {
			r.Messages = append(r.Messages, t)
		}
	}
	for _, w := range jobElem.FindElements("./warnings/line") {
		if t := strings.TrimSpace(w.Text()); t != "" {
			r.Messages = append(r.Messages, t)
		}
	}
	for _, entry := range jobElem.FindElements("./devices/entry") {
		d := &DeviceResult{
			Serial: childText(entry, "serial-no"),
			Name:   childText(entry, "devicename"),
			Status: childText(entry, "status"),
		}
		d.Success = strings.EqualFold(childText(entry, "result"), "OK")
		for _, line := range entry.FindElements("./details/msg/errors/line") {
			if t := strings.TrimSpace(line.Text()); t != "" {
				d.Messages = append(d.Messages, t)
			}
		}
		if r.Devices == nil {
			r.Devices = make(map[string]*DeviceResult)
		}
		r.Devices[d.Serial] = d
	}
	return r
}

func childText(e *etree.Element, tag string) string {
	if c := e.SelectElement(tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}
