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

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/etree"
	log "github.com/sirupsen/logrus"

	"github.com/panfw/panfw/pkg/api"
)

// QueryFunc fetches the current <job> element for a job id. The device
// layer provides it; the tracker stays transport-agnostic.
type QueryFunc func(ctx context.Context, id string) (*etree.Element, error)

// Tracker polls a job until it is terminal or the timeout elapses.
type Tracker struct {
	// Interval between status queries. Zero polls back to back, which
	// tests rely on.
	Interval time.Duration
	// Device names the polled device in timeout errors.
	Device string
	Log    *log.Entry
}

// NewTracker returns a tracker with an injected, pre-scoped logger.
func NewTracker(interval time.Duration, device string, logger *log.Entry) *Tracker {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Tracker{Interval: interval, Device: device, Log: logger}
}

// Wait queries the job immediately and then every Interval until it is
// terminal, the timeout elapses, or ctx is cancelled. A zero timeout waits
// forever.
//
// A device-reported job failure is not an error: it comes back as a Result
// with Success false and the device's messages. A timeout is a typed,
// non-retryable error — the remote job may well still complete.
func (t *Tracker) Wait(ctx context.Context, id string, timeout time.Duration, query QueryFunc) (*Result, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		jobElem, err := query(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("job %s status query: %w", id, err)
		}
		r := Parse(jobElem)
		t.Log.WithFields(log.Fields{"job": id, "status": r.Status, "progress": r.Progress}).
			Debug("job status")
		if r.Terminal() {
			return r, nil
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return nil, &api.Error{
				Kind:   api.KindJobTimeout,
				Device: t.Device,
				Msg:    fmt.Sprintf("job %s still %s after %s", id, r.Status, timeout),
			}
		}

		timer := time.NewTimer(t.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
