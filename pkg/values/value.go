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

// Package values implements the typed arithmetic and comparison rules for
// the four Mesos resource value kinds: SCALAR, RANGES, SET and TEXT.
package values

import (
	"fmt"

	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Kind identifies which of the four Mesos value representations a Value
// holds. Arithmetic and comparison across mismatched kinds is a
// programmer error and panics rather than returning an error, since it
// can never legitimately occur for well-formed resources.
type Kind int

const (
	Scalar Kind = iota
	Ranges
	Set
	Text
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "SCALAR"
	case Ranges:
		return "RANGES"
	case Set:
		return "SET"
	case Text:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// Range is an inclusive, closed integer interval [Lo, Hi].
type Range struct {
	Lo, Hi int64
}

func (r Range) size() int64 { return r.Hi - r.Lo + 1 }

// Value is a kind-tagged union over the four Mesos resource value
// representations. Zero-value Values are not meaningful; use the
// constructors below.
type Value struct {
	kind   Kind
	scalar resource.Quantity
	ranges []Range // kept sorted and disjoint
	set    sets.Set[string]
	text   string
}

// NewScalar builds a SCALAR value from a double, the wire representation
// Mesos uses. Internally the value is held as a resource.Quantity so that
// repeated RESERVE/consume cycles never accumulate floating point error.
func NewScalar(v float64) Value {
	return Value{kind: Scalar, scalar: *resource.NewMilliQuantity(int64(v*1000), resource.DecimalSI)}
}

// NewRanges builds a RANGES value, normalizing the input into sorted,
// merged, disjoint intervals.
func NewRanges(rs ...Range) Value {
	return Value{kind: Ranges, ranges: normalize(rs)}
}

// NewSet builds a SET value.
func NewSet(items ...string) Value {
	return Value{kind: Set, set: sets.New(items...)}
}

// NewText builds a TEXT value.
func NewText(s string) Value {
	return Value{kind: Text, text: s}
}

// Kind reports the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Scalar returns the SCALAR value as a float64. Panics if v is not SCALAR.
func (v Value) Scalar() float64 {
	v.mustBe(Scalar)
	return float64(v.scalar.MilliValue()) / 1000.0
}

// Ranges returns a copy of the RANGES intervals. Panics if v is not RANGES.
func (v Value) Ranges() []Range {
	v.mustBe(Ranges)
	out := make([]Range, len(v.ranges))
	copy(out, v.ranges)
	return out
}

// Set returns the SET members. Panics if v is not SET.
func (v Value) Set() sets.Set[string] {
	v.mustBe(Set)
	return v.set.Clone()
}

// Text returns the TEXT value. Panics if v is not TEXT.
func (v Value) Text() string {
	v.mustBe(Text)
	return v.text
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("values: expected kind %s, got %s", k, v.kind))
	}
}

func sameKind(a, b Value) {
	if a.kind != b.kind {
		panic(fmt.Sprintf("values: kind mismatch %s vs %s", a.kind, b.kind))
	}
}

// Add returns a+b. Both must be the same kind.
func (a Value) Add(b Value) Value {
	sameKind(a, b)
	switch a.kind {
	case Scalar:
		q := a.scalar.DeepCopy()
		q.Add(b.scalar)
		return Value{kind: Scalar, scalar: q}
	case Ranges:
		return Value{kind: Ranges, ranges: normalize(append(append([]Range{}, a.ranges...), b.ranges...))}
	case Set:
		return Value{kind: Set, set: a.set.Union(b.set)}
	case Text:
		return Value{kind: Text, text: a.text + b.text}
	}
	panic("values: unreachable")
}

// Sub returns a-b. For RANGES, sub-intervals are removed from the matching
// parent intervals rather than requiring an exact interval match. Both
// must be the same kind.
func (a Value) Sub(b Value) Value {
	sameKind(a, b)
	switch a.kind {
	case Scalar:
		q := a.scalar.DeepCopy()
		q.Sub(b.scalar)
		return Value{kind: Scalar, scalar: q}
	case Ranges:
		return Value{kind: Ranges, ranges: subtractRanges(a.ranges, b.ranges)}
	case Set:
		return Value{kind: Set, set: a.set.Difference(b.set)}
	case Text:
		panic("values: TEXT does not support subtraction")
	}
	panic("values: unreachable")
}

// Compare reports whether a >= b (the "available >= desired" test
// `consume` uses). SCALAR comparison is a total order; RANGES/SET
// comparison is subset-based: a >= b iff every unit of b is covered by a.
func (a Value) Compare(b Value) bool {
	sameKind(a, b)
	switch a.kind {
	case Scalar:
		return a.scalar.Cmp(b.scalar) >= 0
	case Ranges:
		return rangesContain(a.ranges, b.ranges)
	case Set:
		return b.set.Difference(a.set).Len() == 0
	case Text:
		return a.text == b.text
	}
	panic("values: unreachable")
}

// IsZero reports whether the value represents the empty/zero quantity.
func (a Value) IsZero() bool {
	switch a.kind {
	case Scalar:
		return a.scalar.IsZero()
	case Ranges:
		return len(a.ranges) == 0
	case Set:
		return a.set.Len() == 0
	case Text:
		return a.text == ""
	}
	return true
}

func (a Value) String() string {
	switch a.kind {
	case Scalar:
		return fmt.Sprintf("%v", a.Scalar())
	case Ranges:
		parts := make([]string, len(a.ranges))
		for i, r := range a.ranges {
			if r.Lo == r.Hi {
				parts[i] = fmt.Sprintf("%d", r.Lo)
			} else {
				parts[i] = fmt.Sprintf("%d-%d", r.Lo, r.Hi)
			}
		}
		return fmt.Sprintf("%v", parts)
	case Set:
		return fmt.Sprintf("%v", sets.List(a.set))
	case Text:
		return a.text
	}
	return "<invalid>"
}
