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

package resourcepool

import (
	"github.com/mesosphere/offer-evaluator/pkg/mesosres"
	"github.com/mesosphere/offer-evaluator/pkg/values"
)

// Mode selects which of the three consumption rules applies to a
// ConsumeRequest.
type Mode int

const (
	// ExpectsResource looks the request up by resource_id in
	// dynamicallyReservedPool (existing-pod rebind).
	ExpectsResource Mode = iota
	// AtomicReserve scans unreservedAtomicPool[name] for a first-fit
	// item (new persistent MOUNT volume).
	AtomicReserve
	// DivisibleReserve subtracts from reservableMergedPool[role][name]
	// (new scalar/ranges/set reservation).
	DivisibleReserve
)

// ConsumeRequest describes what a stage wants out of the pool.
type ConsumeRequest struct {
	Mode       Mode
	Name       string
	Desired    values.Value
	Role       string // required for AtomicReserve/DivisibleReserve
	ResourceID string // required for ExpectsResource
}

// Consume dispatches on req.Mode. It never panics or returns an error;
// an unsatisfiable request returns (zero, false) and logs the cause.
func (p *ResourcePool) Consume(req ConsumeRequest) (mesosres.Resource, bool) {
	switch req.Mode {
	case ExpectsResource:
		return p.consumeExpects(req)
	case AtomicReserve:
		return p.consumeAtomicReserve(req)
	case DivisibleReserve:
		return p.consumeDivisibleReserve(req)
	default:
		p.log.Info("consume: unknown mode", "name", req.Name)
		return mesosres.Resource{}, false
	}
}

func (p *ResourcePool) consumeExpects(req ConsumeRequest) (mesosres.Resource, bool) {
	r, ok := p.dynamicallyReservedPool[req.ResourceID]
	if !ok {
		p.log.Info("consume: unknown reserved id", "resourceID", req.ResourceID, "name", req.Name)
		return mesosres.Resource{}, false
	}
	mr := mesosres.NewMesosResource(r)
	if mr.IsAtomic() {
		if !r.Value.Compare(req.Desired) {
			p.log.Info("consume: insufficient atomic reserved quantity", "resourceID", req.ResourceID, "available", r.Value, "desired", req.Desired)
			return mesosres.Resource{}, false
		}
		delete(p.dynamicallyReservedPool, req.ResourceID)
		return r, true
	}
	if !r.Value.Compare(req.Desired) {
		p.log.Info("consume: insufficient reserved quantity", "resourceID", req.ResourceID, "available", r.Value, "desired", req.Desired)
		return mesosres.Resource{}, false
	}
	if exactlyEqual := req.Desired.Compare(r.Value); exactlyEqual {
		// available == desired: consume the whole entry.
		delete(p.dynamicallyReservedPool, req.ResourceID)
		return r, true
	}
	// available > desired: write back the remainder, hand back a fresh
	// resource of exactly desired.
	remainder := r.Value.Sub(req.Desired)
	p.dynamicallyReservedPool[req.ResourceID] = r.WithValue(remainder)
	return r.WithValue(req.Desired), true
}

func (p *ResourcePool) consumeAtomicReserve(req ConsumeRequest) (mesosres.Resource, bool) {
	pool := p.unreservedAtomicPool[req.Name]
	idx := -1
	for i, r := range pool {
		if r.Value.Compare(req.Desired) {
			idx = i
			break
		}
	}
	if idx == -1 {
		// Preserve a deliberately kept quirk: even when no item is large
		// enough, the pool entry is rewritten
		// with the filtered list rather than left untouched. Since
		// nothing matched, the filtered list is identical to the
		// original, so this is an observable no-op kept for parity with
		// the original behavior rather than silently "fixed".
		p.unreservedAtomicPool[req.Name] = append([]mesosres.Resource{}, pool...)
		p.log.Info("consume: no atomic resource large enough", "name", req.Name, "desired", req.Desired)
		return mesosres.Resource{}, false
	}
	chosen := pool[idx]
	remaining := append(append([]mesosres.Resource{}, pool[:idx]...), pool[idx+1:]...)
	p.unreservedAtomicPool[req.Name] = remaining
	return chosen, true
}

// Peek reports the currently available quantity for (role, name) in
// reservableMergedPool without consuming anything. Used by stages that
// need to inspect availability before deciding what to request, e.g.
// picking the lowest available dynamic port.
func (p *ResourcePool) Peek(role, name string) (values.Value, bool) {
	roleIdx, ok := p.reservableMergedPool[role]
	if !ok {
		return values.Value{}, false
	}
	v, ok := roleIdx[name]
	return v, ok
}

func (p *ResourcePool) consumeDivisibleReserve(req ConsumeRequest) (mesosres.Resource, bool) {
	roleIdx, ok := p.reservableMergedPool[req.Role]
	if !ok {
		p.log.Info("consume: unknown role", "role", req.Role, "name", req.Name)
		return mesosres.Resource{}, false
	}
	available, ok := roleIdx[req.Name]
	if !ok {
		p.log.Info("consume: unknown resource name", "role", req.Role, "name", req.Name)
		return mesosres.Resource{}, false
	}
	if !available.Compare(req.Desired) {
		p.log.Info("consume: insufficient quantity", "role", req.Role, "name", req.Name, "available", available, "desired", req.Desired)
		return mesosres.Resource{}, false
	}
	roleIdx[req.Name] = available.Sub(req.Desired)
	return mesosres.Resource{
		Name:  req.Name,
		Role:  mesosres.DefaultRole,
		Value: req.Desired,
	}, true
}
