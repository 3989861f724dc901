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

package api

import (
	"errors"
	"net"
	"net/url"
	"strings"
)

// Kind classifies a device-reported or transport-level failure. The
// classification decides retry behavior: only connection-class kinds ever
// trigger the one-shot HA peer retry.
type Kind int

const (
	// KindGeneric wraps device error text that matched no known pattern.
	KindGeneric Kind = iota
	KindInvalidCredentials
	KindConnectionTimeout
	KindURLError
	KindSessionTimedOut
	KindObjectMissing
	KindLockHeld
	KindCommitInProgress
	KindInstallInProgress
	KindHASyncFailed
	KindHASyncInProgress
	KindJobTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid-credentials"
	case KindConnectionTimeout:
		return "connection-timeout"
	case KindURLError:
		return "url-error"
	case KindSessionTimedOut:
		return "session-timed-out"
	case KindObjectMissing:
		return "object-missing"
	case KindLockHeld:
		return "lock-held"
	case KindCommitInProgress:
		return "commit-in-progress"
	case KindInstallInProgress:
		return "install-in-progress"
	case KindHASyncFailed:
		return "ha-sync-failed"
	case KindHASyncInProgress:
		return "ha-sync-in-progress"
	case KindJobTimeout:
		return "job-timeout"
	}
	return "device-error"
}

// Error is a typed device or transport failure. Msg always carries the
// device-reported text verbatim so operators can correlate with the
// device-side logs.
type Error struct {
	Kind   Kind
	Device string
	Msg    string
	Code   int
	Cause  error
}

func (e *Error) Error() string {
	b := strings.Builder{}
	b.WriteString(e.Kind.String())
	if e.Device != "" {
		b.WriteString(" [" + e.Device + "]")
	}
	if e.Msg != "" {
		b.WriteString(": " + e.Msg)
	}
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Connection reports whether the failure is connection-class, i.e. eligible
// for the one-shot retry on the HA peer.
func (e *Error) Connection() bool {
	return e.Kind == KindConnectionTimeout || e.Kind == KindURLError
}

// KindOf extracts the Kind from err, or KindGeneric when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}

// IsObjectMissing reports whether err is the "no such node" condition,
// which callers may legitimately treat as an empty result.
func IsObjectMissing(err error) bool { return KindOf(err) == KindObjectMissing }

// IsConnection reports whether err is connection-class (timeout,
// unreachable, TLS failure), at either the typed or raw net level.
func IsConnection(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Connection()
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return true
	}
	var uerr *url.Error
	return errors.As(err, &uerr)
}

// WrapTransport converts a raw HTTP client error into the typed taxonomy.
func WrapTransport(device string, err error) *Error {
	kind := KindURLError
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		kind = KindConnectionTimeout
	}
	return &Error{Kind: kind, Device: device, Cause: err}
}

// Classify maps device-reported error text (plus the envelope code) to a
// Kind. Unmatched text is wrapped as KindGeneric rather than dropped.
func Classify(device, msg string, code int) *Error {
	e := &Error{Kind: KindGeneric, Device: device, Msg: msg, Code: code}
	lower := strings.ToLower(msg)
	switch {
	case code == 403 || strings.Contains(lower, "invalid credential"):
		e.Kind = KindInvalidCredentials
	case strings.Contains(lower, "session timed out") ||
		strings.Contains(lower, "timeout waiting for authentication"):
		e.Kind = KindSessionTimedOut
	case code == 7 || strings.Contains(lower, "no such node") ||
		strings.Contains(lower, "object not present"):
		e.Kind = KindObjectMissing
	case strings.Contains(lower, "commit lock") ||
		strings.Contains(lower, "config lock") ||
		strings.Contains(lower, "currently locked"):
		e.Kind = KindLockHeld
	case strings.Contains(lower, "other commit/validate is in progress") ||
		strings.Contains(lower, "commit is in progress"):
		e.Kind = KindCommitInProgress
	case strings.Contains(lower, "software install is in progress") ||
		strings.Contains(lower, "install is in progress"):
		e.Kind = KindInstallInProgress
	case strings.Contains(lower, "ha synchronization is in progress") ||
		strings.Contains(lower, "ha sync is in progress"):
		e.Kind = KindHASyncInProgress
	case strings.Contains(lower, "failed to synchronize") ||
		strings.Contains(lower, "ha sync failed"):
		e.Kind = KindHASyncFailed
	}
	return e
}
