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

// Package resourcepool implements the mutable, per-offer view: a
// ResourcePool partitions one offer's resources into three sub-pools and
// exposes a single consume operation stages use to reserve or bind
// resources out of it.
package resourcepool

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/samber/lo"

	"github.com/mesosphere/offer-evaluator/pkg/mesosres"
	"github.com/mesosphere/offer-evaluator/pkg/values"
)

// ResourcePool is a mutable view of a single offer's resources,
// partitioned by an invariant: a resource appears in exactly one
// sub-pool.
type ResourcePool struct {
	// unreservedAtomicPool holds atomic (MOUNT-disk) resources with no
	// resource id yet, keyed by resource name, in offer order (a
	// first-fit tie-break).
	unreservedAtomicPool map[string][]mesosres.Resource

	// dynamicallyReservedPool holds every resource that already carries a
	// resource_id label, atomic or not, keyed by that id.
	dynamicallyReservedPool map[string]mesosres.Resource

	// reservableMergedPool holds unreserved divisible resources, merged
	// per (role, name). An unreserved resource appears under the
	// DefaultRole.
	reservableMergedPool map[string]map[string]values.Value

	log logr.Logger
}

// Option configures a ResourcePool at construction.
type Option func(*ResourcePool)

// WithLogger attaches a logger consume() uses to record why a request
// could not be satisfied.
func WithLogger(log logr.Logger) Option {
	return func(p *ResourcePool) { p.log = log }
}

// New constructs a ResourcePool from one offer's resources.
func New(offerResources []mesosres.Resource, opts ...Option) *ResourcePool {
	p := &ResourcePool{log: logr.Discard()}
	for _, o := range opts {
		o(p)
	}
	p.partition(offerResources)
	return p
}

// Update performs a full reinitialization: equivalent to constructing a
// new pool from a new offer.
func (p *ResourcePool) Update(offerResources []mesosres.Resource) {
	p.partition(offerResources)
}

func (p *ResourcePool) partition(offerResources []mesosres.Resource) {
	p.unreservedAtomicPool = map[string][]mesosres.Resource{}
	p.dynamicallyReservedPool = map[string]mesosres.Resource{}
	p.reservableMergedPool = map[string]map[string]values.Value{}

	for _, r := range offerResources {
		mr := mesosres.NewMesosResource(r)
		switch {
		case mr.HasResourceID():
			// Atomic reservable resources live in dynamicallyReservedPool
			// if they carry a resource-id, else in unreservedAtomicPool.
			// This covers both atomic and divisible reserved resources.
			p.dynamicallyReservedPool[mr.ResourceID()] = r
		case mr.IsAtomic():
			p.unreservedAtomicPool[r.Name] = append(p.unreservedAtomicPool[r.Name], r)
		default:
			role := mr.EffectiveRole()
			if p.reservableMergedPool[role] == nil {
				p.reservableMergedPool[role] = map[string]values.Value{}
			}
			if existing, ok := p.reservableMergedPool[role][r.Name]; ok {
				p.reservableMergedPool[role][r.Name] = existing.Add(r.Value)
			} else {
				p.reservableMergedPool[role][r.Name] = r.Value
			}
		}
	}
}

// ReleaseAtomic puts a released atomic resource back into
// unreservedAtomicPool with its reservation cleared and role set to
// default
func (p *ResourcePool) ReleaseAtomic(r mesosres.Resource) {
	released := r.Released()
	p.unreservedAtomicPool[released.Name] = append(p.unreservedAtomicPool[released.Name], released)
}

// totalUnreservedAtomic returns the items currently held in
// unreservedAtomicPool[name], in pool order.
func (p *ResourcePool) totalUnreservedAtomic(name string) []mesosres.Resource {
	return p.unreservedAtomicPool[name]
}

func (p *ResourcePool) String() string {
	return fmt.Sprintf("ResourcePool{atomic=%d reserved=%d roles=%d}",
		lo.SumBy(lo.Values(p.unreservedAtomicPool), func(rs []mesosres.Resource) int { return len(rs) }),
		len(p.dynamicallyReservedPool),
		len(p.reservableMergedPool))
}
