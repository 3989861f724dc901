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

package device

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/panfw/panfw/pkg/job"
)

// CommitParams shape one commit request.
type CommitParams struct {
	// Sync waits for the resulting job to finish; otherwise the Result
	// only carries the job id.
	Sync bool
	// Force commits even when validation warns.
	Force bool
	// Admins restricts the commit to changes made by the named
	// administrators (a partial commit).
	Admins      []string
	Description string

	// PollInterval overrides the tracker default; Timeout 0 waits forever.
	PollInterval time.Duration
	Timeout      time.Duration
}

func (p CommitParams) cmd() string {
	b := strings.Builder{}
	b.WriteString("<commit>")
	if p.Description != "" {
		b.WriteString("<description>" + xmlEscape(p.Description) + "</description>")
	}
	if p.Force {
		b.WriteString("<force></force>")
	}
	if len(p.Admins) > 0 {
		b.WriteString("<partial><admin>")
		for _, a := range p.Admins {
			b.WriteString("<member>" + xmlEscape(a) + "</member>")
		}
		b.WriteString("</admin></partial>")
	}
	b.WriteString("</commit>")
	return b.String()
}

// Commit pushes the candidate configuration. With Sync it polls the job
// to completion and clears the pending-change ledger on success; a
// device-reported commit failure is returned as a Result with Success
// false, not as an error.
func (f *Firewall) Commit(ctx context.Context, p CommitParams) (*job.Result, error) {
	v := url.Values{
		"type": []string{"commit"},
		"cmd":  []string{p.cmd()},
	}
	if len(p.Admins) > 0 {
		v.Set("action", "partial")
	}
	r, err := f.request(ctx, v, true)
	if err != nil {
		return nil, err
	}

	result := r.Result()
	if result == nil || result.SelectElement("job") == nil {
		// nothing to commit: the device answers with a message instead
		// of a job
		f.clearPending()
		return &job.Result{Status: job.StatusFin, Success: true, Messages: []string{r.Message()}}, nil
	}
	id := strings.TrimSpace(result.SelectElement("job").Text())
	if !p.Sync {
		return &job.Result{ID: id, Status: job.StatusPending}, nil
	}

	res, err := f.waitForJob(ctx, id, p.PollInterval, p.Timeout)
	if err != nil {
		return nil, err
	}
	if res.Success {
		f.clearPending()
	}
	return res, nil
}

func (f *Firewall) waitForJob(ctx context.Context, id string, interval, timeout time.Duration) (*job.Result, error) {
	tr := job.NewTracker(interval, f.cfg.Name, f.logger)
	if interval <= 0 {
		// sub-second default keeps short jobs snappy without hammering
		// the management plane
		tr.Interval = 500 * time.Millisecond
	}
	return tr.Wait(ctx, id, timeout, f.JobStatus)
}

// CommitAll pushes a device-group's shared policy from a manager to every
// member firewall. The aggregate result is terminal only once every
// member reports a non-pending sub-result.
func (p *Panorama) CommitAll(ctx context.Context, deviceGroup string, params CommitParams) (*job.Result, error) {
	b := strings.Builder{}
	b.WriteString("<commit-all><shared-policy><device-group><entry name=\"")
	b.WriteString(deviceGroup)
	b.WriteString("\"></entry></device-group></shared-policy></commit-all>")

	v := url.Values{
		"type":   []string{"commit"},
		"action": []string{"all"},
		"cmd":    []string{b.String()},
	}
	r, err := p.request(ctx, v, true)
	if err != nil {
		return nil, err
	}
	result := r.Result()
	if result == nil || result.SelectElement("job") == nil {
		p.clearPendingScope(deviceGroup)
		return &job.Result{Status: job.StatusFin, Success: true, Messages: []string{r.Message()}}, nil
	}
	id := strings.TrimSpace(result.SelectElement("job").Text())
	if !params.Sync {
		return &job.Result{ID: id, Status: job.StatusPending}, nil
	}
	res, err := p.waitForJob(ctx, id, params.PollInterval, params.Timeout)
	if err != nil {
		return nil, err
	}
	if res.Success {
		p.clearPendingScope(deviceGroup)
	}
	return res, nil
}

// RequestRestart asks the device to reboot and returns immediately; the
// device drops the management session, so there is no job to poll until
// it is back.
func (f *Firewall) RequestRestart(ctx context.Context) error {
	_, err := f.Op(ctx, "request restart system", "", false)
	return err
}

// InstallSoftware installs a downloaded software version and polls the
// install job to completion.
func (f *Firewall) InstallSoftware(ctx context.Context, ver string, interval, timeout time.Duration) (*job.Result, error) {
	cmd := "<request><system><software><install><version>" +
		xmlEscape(ver) + "</version></install></software></system></request>"
	result, err := f.Op(ctx, cmd, "", false)
	if err != nil {
		return nil, err
	}
	jobElem := result.FindElement("./job")
	if jobElem == nil {
		return nil, &installNoJobError{ver: ver}
	}
	return f.waitForJob(ctx, strings.TrimSpace(jobElem.Text()), interval, timeout)
}

type installNoJobError struct{ ver string }

func (e *installNoJobError) Error() string {
	return "install " + e.ver + ": device returned no job id"
}
