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

package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Number is a PAN-OS software version. The zero value means "unknown",
// i.e. the device has not been queried yet.
type Number struct {
	Major, Minor, Patch int
	// Hotfix suffix ("h1" in 10.1.6-h1). Ignored for ordering.
	Hotfix string
}

// Parse parses a version string such as "10.1.6" or "10.1.6-h3".
func Parse(s string) (Number, error) {
	var n Number
	if s == "" {
		return n, fmt.Errorf("empty version string")
	}
	core := s
	if idx := strings.Index(s, "-"); idx != -1 {
		core = s[:idx]
		n.Hotfix = s[idx+1:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return n, fmt.Errorf("version %q: expected major.minor.patch", s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return n, fmt.Errorf("version %q: %w", s, err)
		}
		vals[i] = v
	}
	n.Major, n.Minor, n.Patch = vals[0], vals[1], vals[2]
	return n, nil
}

// MustParse is Parse for static descriptor tables; it panics on bad input.
func MustParse(s string) Number {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Unknown reports whether n is the zero "not negotiated yet" version.
func (n Number) Unknown() bool {
	return n.Major == 0 && n.Minor == 0 && n.Patch == 0
}

// Cmp returns -1, 0 or 1 comparing n against o. The hotfix suffix does
// not participate in ordering.
func (n Number) Cmp(o Number) int {
	a := [3]int{n.Major, n.Minor, n.Patch}
	b := [3]int{o.Major, o.Minor, o.Patch}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Gte reports n >= o.
func (n Number) Gte(o Number) bool { return n.Cmp(o) >= 0 }

func (n Number) String() string {
	s := fmt.Sprintf("%d.%d.%d", n.Major, n.Minor, n.Patch)
	if n.Hotfix != "" {
		s += "-" + n.Hotfix
	}
	return s
}
