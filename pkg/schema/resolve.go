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

package schema

import "github.com/panfw/panfw/pkg/version"

// Resolve selects the single applicable descriptor variant for one
// attribute. It is a pure function: same inputs, same output.
//
//   - variants not valid under parentType are discarded first,
//   - conditioned variants only stay when their discriminator condition
//     matches params; when none matches, unconditioned variants remain,
//   - among the survivors the greatest Floor not exceeding v wins; while v
//     is still unknown (not connected yet) the highest Floor wins
//     optimistically; if every Floor exceeds a known v the lowest-floor
//     variant serves as the base default.
//
// Resolve returns nil when no variant applies under parentType at all.
func Resolve(variants []*Spec, v version.Number, parentType string, params map[string]string) *Spec {
	byParent := make([]*Spec, 0, len(variants))
	for _, s := range variants {
		if s.appliesToParent(parentType) {
			byParent = append(byParent, s)
		}
	}
	if len(byParent) == 0 {
		return nil
	}

	matched := make([]*Spec, 0, len(byParent))
	unconditioned := make([]*Spec, 0, len(byParent))
	for _, s := range byParent {
		if !s.Conditioned() {
			unconditioned = append(unconditioned, s)
			continue
		}
		if params != nil && params[s.ParentParam] == s.ParentValue {
			matched = append(matched, s)
		}
	}
	candidates := matched
	if len(candidates) == 0 {
		candidates = unconditioned
	}
	if len(candidates) == 0 {
		return nil
	}

	return pickByVersion(candidates, v)
}

func pickByVersion(candidates []*Spec, v version.Number) *Spec {
	if v.Unknown() {
		best := candidates[0]
		for _, s := range candidates[1:] {
			if s.Floor.Cmp(best.Floor) > 0 {
				best = s
			}
		}
		return best
	}

	var best *Spec
	for _, s := range candidates {
		if v.Gte(s.Floor) {
			if best == nil || s.Floor.Cmp(best.Floor) > 0 {
				best = s
			}
		}
	}
	if best != nil {
		return best
	}
	// every floor is above the negotiated version: keep the oldest variant
	// as the base default rather than failing the whole serialization.
	best = candidates[0]
	for _, s := range candidates[1:] {
		if s.Floor.Cmp(best.Floor) < 0 {
			best = s
		}
	}
	return best
}
