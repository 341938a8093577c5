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

// Package taskinfo models the persisted, protocol-level task record the
// external state store holds. The core reads it to recover reservation
// identity across restarts; it never writes it back itself (the state
// store is an external collaborator).
package taskinfo

import "github.com/mesosphere/offer-evaluator/pkg/mesosres"

// TaskInfo is the protocol-level record persisted by the state store for
// one task, keyed externally by task name.
type TaskInfo struct {
	Name       string
	ExecutorID string // empty if not yet known
	Resources  []mesosres.Resource

	Command     []string
	Environment map[string]string
}

// ResourceIDs returns the set of resource_id labels carried by this
// task's resources, the value the identity-preservation invariant
// compares against a fresh evaluation's LAUNCH.
func (t TaskInfo) ResourceIDs() map[string]bool {
	ids := make(map[string]bool, len(t.Resources))
	for _, r := range t.Resources {
		if id := mesosres.NewMesosResource(r).ResourceID(); id != "" {
			ids[id] = true
		}
	}
	return ids
}

// HasAnyResourceID reports whether any persisted resource on this task
// carries a non-empty resource id. A pod is classified "existing" when
// at least one of its persisted tasks satisfies this.
func (t TaskInfo) HasAnyResourceID() bool {
	for _, r := range t.Resources {
		if mesosres.NewMesosResource(r).HasResourceID() {
			return true
		}
	}
	return false
}

// ResourceByContainerPath returns the first volume-backed resource whose
// disk.ContainerPath matches path, used to identify a persisted volume by
// its container path: containerPath is the identity.
func (t TaskInfo) ResourceByContainerPath(path string) (mesosres.Resource, bool) {
	for _, r := range t.Resources {
		if r.Disk != nil && r.Disk.ContainerPath == path {
			return r, true
		}
	}
	return mesosres.Resource{}, false
}

// ResourceByName returns the first persisted resource with the given
// name, used for simple scalar matches by exact name.
func (t TaskInfo) ResourceByName(name string) (mesosres.Resource, bool) {
	for _, r := range t.Resources {
		if r.Name == name {
			return r, true
		}
	}
	return mesosres.Resource{}, false
}
