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

package mesosres

import "fmt"

// MesosResource is a derived, read-only view: a set of semantic
// predicates computed from a Resource's reservation state rather than
// stored directly on it.
type MesosResource struct {
	Resource
}

// NewMesosResource wraps a Resource for predicate evaluation.
func NewMesosResource(r Resource) MesosResource {
	return MesosResource{Resource: r}
}

// IsAtomic reports whether r is a MOUNT-backed disk, the canonical
// indivisible resource.
func (m MesosResource) IsAtomic() bool {
	return m.Disk != nil && m.Disk.SourceType == DiskSourceMount
}

// IsUnreserved reports whether r carries no reservation stack (and no
// deprecated single reservation) and its own role is the default role
func (m MesosResource) IsUnreserved() bool {
	return len(m.ReservationStack) == 0 && m.DeprecatedReservation == nil && (m.Resource.Role == "" || m.Resource.Role == DefaultRole)
}

// HasResourceID reports whether the effective reservation entry (the
// stack's last entry, or the deprecated single reservation when the
// stack is empty) carries a non-empty resource_id label. Earlier stack
// entries are not consulted.
func (m MesosResource) HasResourceID() bool {
	return m.ResourceID() != ""
}

// ResourceID returns the resource_id label from the effective reservation
// entry (stack top, falling back to the deprecated field), or "" if none.
func (m MesosResource) ResourceID() string {
	if entry := m.effectiveEntry(); entry != nil {
		if v, ok := entry.Labels.Get(ResourceIDLabel); ok {
			return v
		}
	}
	return ""
}

// EffectiveRole returns the resource's effective role: the last element of
// the reservation stack if present, else the deprecated reservation's
// role, else the resource's own role, else the default role. The current
// role of a resource is the last element of its reservation stack.
func (m MesosResource) EffectiveRole() string {
	if entry := m.effectiveEntry(); entry != nil {
		return entry.Role
	}
	if m.Resource.Role != "" {
		return m.Resource.Role
	}
	return DefaultRole
}

// Principal returns the principal from the effective reservation entry:
// stack top preferred, deprecated single-reservation field as fallback.
// The core prefers the stack when both are present.
func (m MesosResource) Principal() string {
	if entry := m.effectiveEntry(); entry != nil {
		return entry.Principal
	}
	return ""
}

// effectiveEntry returns the stack's last entry, falling back to the
// deprecated single-reservation field when the stack is empty. This
// ordering is protocol-level and must be preserved bit-for-bit
func (m MesosResource) effectiveEntry() *ReservationEntry {
	if n := len(m.ReservationStack); n > 0 {
		return &m.ReservationStack[n-1]
	}
	return m.DeprecatedReservation
}

func resourceIDOf(r Resource) string {
	return MesosResource{Resource: r}.ResourceID()
}

func (m MesosResource) String() string {
	return fmt.Sprintf("MesosResource{%s atomic=%t unreserved=%t resourceID=%q}",
		m.Resource, m.IsAtomic(), m.IsUnreserved(), m.ResourceID())
}
