/*
Copyright The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package values

import "sort"

// normalize sorts and merges overlapping/adjacent ranges into the minimal
// disjoint representation.
func normalize(rs []Range) []Range {
	if len(rs) == 0 {
		return nil
	}
	cp := append([]Range{}, rs...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Lo < cp[j].Lo })
	out := []Range{cp[0]}
	for _, r := range cp[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// rangesContain reports whether every unit in b is covered by some range
// in a (a is a superset of b).
func rangesContain(a, b []Range) bool {
	for _, want := range b {
		covered := false
		for _, have := range a {
			if have.Lo <= want.Lo && want.Hi <= have.Hi {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

// subtractRanges removes every unit in b from a, splitting parent
// intervals as needed.
func subtractRanges(a, b []Range) []Range {
	result := normalize(a)
	for _, rem := range b {
		var next []Range
		for _, r := range result {
			next = append(next, splitOut(r, rem)...)
		}
		result = next
	}
	return normalize(result)
}

// splitOut removes rem from r, returning the 0, 1, or 2 remaining pieces.
func splitOut(r, rem Range) []Range {
	if rem.Hi < r.Lo || rem.Lo > r.Hi {
		return []Range{r}
	}
	var out []Range
	if rem.Lo > r.Lo {
		out = append(out, Range{Lo: r.Lo, Hi: rem.Lo - 1})
	}
	if rem.Hi < r.Hi {
		out = append(out, Range{Lo: rem.Hi + 1, Hi: r.Hi})
	}
	return out
}

// LowestAvailablePort returns the smallest port number contained in v
// (which must be a RANGES value), and true if v is non-empty. Used by the
// dynamic-port stage to pick the lowest available port.
func (v Value) LowestAvailablePort() (int64, bool) {
	v.mustBe(Ranges)
	if len(v.ranges) == 0 {
		return 0, false
	}
	return v.ranges[0].Lo, true
}

// ContainsPort reports whether v (which must be a RANGES value) covers
// the given port number.
func (v Value) ContainsPort(port int64) bool {
	v.mustBe(Ranges)
	return rangesContain(v.ranges, []Range{{Lo: port, Hi: port}})
}
