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

// Package uuidgen provides an injectable UUID source: inject a UUID
// source for testability. Every resource_id and persistence_id minted by
// the stage pipeline goes through a Source so tests can swap in a
// deterministic one.
package uuidgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Source mints opaque identifier strings. Implementations must be safe
// for concurrent use only if the caller shares one Source across
// concurrent evaluations; a single offer-evaluation call is
// single-threaded and never needs that guarantee itself.
type Source interface {
	New() string
}

// Random is the production Source, backed by github.com/google/uuid.
type Random struct{}

// New returns a fresh random UUID string.
func (Random) New() string { return uuid.NewString() }

// Sequential is a deterministic Source for tests: it returns
// "<prefix>-0", "<prefix>-1", ... in call order, so that two evaluation
// runs over identical inputs produce byte-identical output.
type Sequential struct {
	Prefix string
	next   atomic.Int64
}

// New returns the next deterministic id in sequence.
func (s *Sequential) New() string {
	n := s.next.Add(1) - 1
	prefix := s.Prefix
	if prefix == "" {
		prefix = "seq"
	}
	return fmt.Sprintf("%s-%d", prefix, n)
}
