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
	"fmt"
)

// The device-side configuration lock is a remote resource shared between
// administrators, not a local mutex: acquiring it is an API call subject
// to the same classification rules as any other verb, and a lock-held
// error is surfaced, never silently retried.

// AddConfigLock takes the configuration lock for the device's scope.
func (f *Firewall) AddConfigLock(ctx context.Context, comment string) error {
	cmd := "<request><config-lock><add>"
	if comment != "" {
		cmd += "<comment>" + xmlEscape(comment) + "</comment>"
	}
	cmd += "</add></config-lock></request>"
	if _, err := f.Op(ctx, cmd, f.cfg.Vsys, true); err != nil {
		return fmt.Errorf("add config lock: %w", err)
	}
	f.locked[f.DefaultScope()] = struct{}{}
	return nil
}

// RemoveConfigLock releases the configuration lock.
func (f *Firewall) RemoveConfigLock(ctx context.Context) error {
	cmd := "<request><config-lock><remove></remove></config-lock></request>"
	if _, err := f.Op(ctx, cmd, f.cfg.Vsys, true); err != nil {
		return fmt.Errorf("remove config lock: %w", err)
	}
	delete(f.locked, f.DefaultScope())
	return nil
}

// AddCommitLock blocks other administrators from committing.
func (f *Firewall) AddCommitLock(ctx context.Context, comment string) error {
	cmd := "<request><commit-lock><add>"
	if comment != "" {
		cmd += "<comment>" + xmlEscape(comment) + "</comment>"
	}
	cmd += "</add></commit-lock></request>"
	if _, err := f.Op(ctx, cmd, f.cfg.Vsys, true); err != nil {
		return fmt.Errorf("add commit lock: %w", err)
	}
	return nil
}

// RemoveCommitLock releases the commit lock.
func (f *Firewall) RemoveCommitLock(ctx context.Context) error {
	cmd := "<request><commit-lock><remove></remove></commit-lock></request>"
	if _, err := f.Op(ctx, cmd, f.cfg.Vsys, true); err != nil {
		return fmt.Errorf("remove commit lock: %w", err)
	}
	return nil
}
