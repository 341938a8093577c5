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

// Package mapper implements the existing-pod path: matching a TaskSpec's
// persisted resources against its current ResourceSet, and flagging what
// no longer has a home as orphaned.
package mapper

import (
	"github.com/samber/lo"

	"github.com/mesosphere/offer-evaluator/pkg/mesosres"
	"github.com/mesosphere/offer-evaluator/pkg/podspec"
	"github.com/mesosphere/offer-evaluator/pkg/recommendation"
	"github.com/mesosphere/offer-evaluator/pkg/taskinfo"
)

// Match pairs a desired-state resource requirement with the persisted
// resource it was matched to, carrying forward the identity the
// evaluation stage must rebind to: an evaluation stage seeded with the
// existing resource_id.
type Match struct {
	// SpecName is the ResourceSpec/VolumeSpec/PortSpec/NamedVIPSpec name
	// this persisted resource was matched to.
	SpecName  string
	Persisted mesosres.Resource
}

// ResourceID returns the resource_id label carried by the matched
// persisted resource.
func (m Match) ResourceID() string {
	return mesosres.NewMesosResource(m.Persisted).ResourceID()
}

// PersistenceID returns the persistence_id carried by the matched
// persisted resource's disk info, or "" if it is not a persistent volume.
func (m Match) PersistenceID() string {
	if m.Persisted.Disk == nil {
		return ""
	}
	return m.Persisted.Disk.PersistenceID
}

// Orphan is a persisted resource with no corresponding spec in the task's
// current ResourceSet
type Orphan struct {
	Persisted mesosres.Resource
}

// Recommendations returns the orphan's unreserve recommendations in a
// fixed order: DESTROY first when the resource is a persistent volume,
// then UNRESERVE.
func (o Orphan) Recommendations(offerID string) []recommendation.Recommendation {
	var recs []recommendation.Recommendation
	if o.Persisted.Disk != nil && o.Persisted.Disk.PersistenceID != "" {
		recs = append(recs, recommendation.NewDestroy(offerID, o.Persisted))
	}
	recs = append(recs, recommendation.NewUnreserve(offerID, o.Persisted))
	return recs
}

// Result is the partition of one task's persisted resources: resources
// matched to a current requirement, and orphans left behind by a
// requirement that no longer requests them.
type Result struct {
	Matched []Match
	Orphans []Orphan
}

// Map matches task's persisted resources against its current
// ResourceSet: exact name for scalars, (name, port number) or
// name-alone-if-dynamic for ports, containerPath identity for volumes.
func Map(task podspec.TaskSpec, persisted taskinfo.TaskInfo) Result {
	claimed := make(map[int]bool, len(persisted.Resources))
	var matches []Match

	claim := func(specName string, idx int) {
		claimed[idx] = true
		matches = append(matches, Match{SpecName: specName, Persisted: persisted.Resources[idx]})
	}

	findByName := func(name string) (int, bool) {
		for i, r := range persisted.Resources {
			if claimed[i] {
				continue
			}
			if r.Name == name {
				return i, true
			}
		}
		return 0, false
	}

	findByContainerPath := func(path string) (int, bool) {
		for i, r := range persisted.Resources {
			if claimed[i] {
				continue
			}
			if r.Disk != nil && r.Disk.ContainerPath == path {
				return i, true
			}
		}
		return 0, false
	}

	findByPort := func(name string, port int64) (int, bool) {
		for i, r := range persisted.Resources {
			if claimed[i] {
				continue
			}
			if r.Name == name && r.Value.ContainsPort(port) {
				return i, true
			}
		}
		return 0, false
	}

	for _, res := range task.ResourceSet.Resources {
		if idx, ok := findByName(res.Name); ok {
			claim(res.Name, idx)
		}
	}
	for _, vol := range task.ResourceSet.Volumes {
		if idx, ok := findByContainerPath(vol.ContainerPath); ok {
			claim(vol.Name, idx)
		}
	}
	for _, port := range task.ResourceSet.Ports {
		if !port.IsDynamic() {
			if idx, ok := findByPort("ports", port.Port); ok {
				claim(port.Name, idx)
			}
			continue
		}
		if idx, ok := findByName("ports"); ok {
			claim(port.Name, idx)
		}
	}
	for _, vip := range task.ResourceSet.VIPs {
		if !vip.IsDynamic() {
			if idx, ok := findByPort("ports", vip.Port); ok {
				claim(vip.Name, idx)
			}
			continue
		}
		if idx, ok := findByName("ports"); ok {
			claim(vip.Name, idx)
		}
	}

	orphans := lo.FilterMap(persisted.Resources, func(r mesosres.Resource, i int) (Orphan, bool) {
		if claimed[i] {
			return Orphan{}, false
		}
		return Orphan{Persisted: r}, true
	})

	return Result{Matched: matches, Orphans: orphans}
}
