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

// Package mesosres models a single Mesos resource the way the master's
// protocol describes it (name, role, reservation stack, optional disk
// info) and the predicates the rest of the core needs to reason about it
// (atomic?, reserved?, role, principal, resource-id).
package mesosres

import (
	"fmt"

	"github.com/mesosphere/offer-evaluator/pkg/values"
)

// DefaultRole is the role an unreserved resource is considered to belong
// to when no reservation stack or resource-level role narrows it further.
const DefaultRole = "*"

// ResourceIDLabel is the reservation label carrying the resource id.
const ResourceIDLabel = "resource_id"

// DiskSourceType distinguishes the three disk-backing mechanisms Mesos
// supports.
type DiskSourceType int

const (
	DiskSourcePath DiskSourceType = iota
	DiskSourceMount
	DiskSourceRoot
)

// Labels is an ordered list of key/value pairs attached to a reservation
// entry. Duplicate keys are legal on the wire; Get returns the first
// match, matching protobuf repeated-field label semantics.
type Labels []Label

// Label is a single reservation label.
type Label struct {
	Key, Value string
}

// Get returns the value of the first label with the given key.
func (l Labels) Get(key string) (string, bool) {
	for _, lbl := range l {
		if lbl.Key == key {
			return lbl.Value, true
		}
	}
	return "", false
}

// With returns a copy of l with an additional label appended.
func (l Labels) With(key, value string) Labels {
	out := make(Labels, len(l), len(l)+1)
	copy(out, l)
	return append(out, Label{Key: key, Value: value})
}

// ReservationEntry is one element of a resource's reservation stack: the
// role it was reserved into, the principal that reserved it, and the
// labels attached at that reservation
type ReservationEntry struct {
	Role      string
	Principal string
	Labels    Labels
}

// Disk describes the disk-specific fields of a disk resource
type Disk struct {
	SourceType    DiskSourceType
	PersistenceID string // empty if the volume is not (yet) persistent
	Principal     string // persistence principal
	ContainerPath string // volume.containerPath, once assigned
}

// Resource is the immutable wire record: a named, role-scoped, typed
// value, with an optional reservation stack and optional disk info.
//
// The deprecated single-reservation field is modeled explicitly
// alongside the stack rather than folded away, because the core must
// prefer the stack when both are present and fall back to the single
// field otherwise, a protocol-level rule that must be preserved
// bit-for-bit.
type Resource struct {
	Name  string
	Role  string // the resource's own role, used when there is no stack
	Value values.Value

	ReservationStack []ReservationEntry

	// DeprecatedReservation is the legacy single-reservation field. Only
	// consulted when ReservationStack is empty.
	DeprecatedReservation *ReservationEntry

	Disk *Disk // non-nil only for "disk" resources
}

// WithReservation returns a copy of r with a new reservation entry
// appended to the stack: a RESERVE always appends, never replaces.
func (r Resource) WithReservation(entry ReservationEntry) Resource {
	cp := r
	cp.ReservationStack = append(append([]ReservationEntry{}, r.ReservationStack...), entry)
	return cp
}

// WithValue returns a copy of r carrying a different value, keeping every
// other field (role, reservation stack, disk info) unchanged. Used by
// `consume` to hand back a resource of exactly the desired quantity.
func (r Resource) WithValue(v values.Value) Resource {
	cp := r
	cp.Value = v
	return cp
}

// WithDisk returns a copy of r with disk info attached/replaced.
func (r Resource) WithDisk(d *Disk) Resource {
	cp := r
	cp.Disk = d
	return cp
}

// Released returns a copy of r with its reservation cleared and role
// reset to the default, as `ResourcePool.releaseAtomic` requires:
// disk-specific persistence/volume info is cleared too, since releasing
// a MOUNT clears persistence and volume along with the reservation
// stack.
func (r Resource) Released() Resource {
	cp := r
	cp.ReservationStack = nil
	cp.DeprecatedReservation = nil
	cp.Role = DefaultRole
	if cp.Disk != nil {
		d := *cp.Disk
		d.PersistenceID = ""
		d.ContainerPath = ""
		cp.Disk = &d
	}
	return cp
}

func (r Resource) String() string {
	mr := MesosResource{Resource: r}
	return fmt.Sprintf("Resource{name=%s role=%s value=%s resourceID=%s}", r.Name, mr.EffectiveRole(), r.Value, mr.ResourceID())
}
