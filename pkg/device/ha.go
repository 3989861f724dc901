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

// SetHAPeers binds two firewalls into an active/passive pair. active
// becomes the routed member; the flags stay symmetric from then on:
// never both active, never both passive.
func SetHAPeers(active, passive *Firewall) {
	active.peer = passive
	passive.peer = active
	active.active = true
	active.failed = false
	passive.active = false
	passive.failed = false
}

// HAPeer returns the other half of the pair, nil for standalone devices.
func (f *Firewall) HAPeer() *Firewall { return f.peer }

// IsActive reports whether this member currently receives verbs.
func (f *Firewall) IsActive() bool { return f.active }

// Failed reports whether this member was marked failed by a failover.
func (f *Firewall) Failed() bool { return f.failed }

// failOver marks the currently routed member failed and promotes the peer
// when the peer is healthy. The flip is permanent: subsequent verbs route
// to the promoted peer until the pair is re-bound. It reports whether a
// retry target exists.
func (f *Firewall) failOver() bool {
	target := f.routed()
	target.failed = true
	target.active = false
	if target.peer != nil && !target.peer.failed {
		target.peer.active = true
		return true
	}
	return false
}

// ResetHA clears the failed flag after the operator restored the member,
// leaving the current active selection untouched.
func (f *Firewall) ResetHA() { f.failed = false }
