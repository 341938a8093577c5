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

// Package podspec holds the desired-state description of a pod instance:
// what tasks it has, what resources each task needs, and what recovery
// semantics apply to the current evaluation
package podspec

import (
	"fmt"

	"github.com/mesosphere/offer-evaluator/pkg/values"
)

// VolumeType distinguishes the three volume kinds a VolumeSpec can
// request
type VolumeType int

const (
	VolumeRoot VolumeType = iota
	VolumeMount
	VolumePath
)

// ResourceSpec is the desired-state description of a scalar/range/set
// resource: CPU, memory, disk (non-volume), or any other
// scalar/ranges/set resource a task's ResourceSet wants.
type ResourceSpec struct {
	Name      string
	Value     values.Value
	Role      string
	Principal string
}

// VolumeSpec is the desired-state description of a volume
type VolumeSpec struct {
	ResourceSpec
	Type          VolumeType
	ContainerPath string
}

// PortSpec is the desired-state description of a port. Port 0 means
// "assign dynamically".
type PortSpec struct {
	Name      string
	Port      int64
	Role      string
	Principal string
}

// IsDynamic reports whether this port should be dynamically assigned.
func (p PortSpec) IsDynamic() bool { return p.Port == 0 }

// NamedVIPSpec is a PortSpec with an additional named-VIP binding.
type NamedVIPSpec struct {
	PortSpec
	VIPName string
	VIPPort int64
}

// ResourceSet is a named, shareable bundle of resource/volume/port specs a
// task (or several co-located tasks) requires
type ResourceSet struct {
	Name      string
	Resources []ResourceSpec
	Volumes   []VolumeSpec
	Ports     []PortSpec
	VIPs      []NamedVIPSpec
}

// TaskSpec is one task in a PodInstance, bound to a (possibly shared)
// ResourceSet
type TaskSpec struct {
	Name        string
	ResourceSet ResourceSet
	Command     []string
	Environment map[string]string
}

// PlacementRule is a predicate over (offer, allTasksInService); its
// authoring is external to this core, which only ever evaluates one.
type PlacementRule interface {
	// Evaluate returns whether offer is acceptable given every task
	// currently running for the service, and a human-readable reason
	// when it is not.
	Evaluate(offer any, allTasksInService []TaskSpec) (bool, string)
}

// PodInstance is an ordered list of co-located tasks, plus an optional
// placement rule
type PodInstance struct {
	Name          string
	Tasks         []TaskSpec
	PlacementRule PlacementRule // nil if none configured
}

// RecoveryType distinguishes why a pod is being (re-)evaluated
type RecoveryType int

const (
	RecoveryNone RecoveryType = iota
	RecoveryTransient
	RecoveryPermanent
)

func (r RecoveryType) String() string {
	switch r {
	case RecoveryNone:
		return "NONE"
	case RecoveryTransient:
		return "TRANSIENT"
	case RecoveryPermanent:
		return "PERMANENT"
	default:
		return "UNKNOWN"
	}
}

// PodInstanceRequirement is the orchestrator's top-level input: the pod
// description, which of its tasks to actually launch this cycle, and the
// recovery context.
type PodInstanceRequirement struct {
	PodInstance   PodInstance
	TasksToLaunch map[string]bool // subset of PodInstance.Tasks names
	RecoveryType  RecoveryType
}

// Validate reports the InvalidRequirement conditions: no tasks,
// duplicate task names, or a task with no resource set.
func (r PodInstanceRequirement) Validate() error {
	if len(r.PodInstance.Tasks) == 0 {
		return fmt.Errorf("pod instance %q has no tasks", r.PodInstance.Name)
	}
	seen := make(map[string]bool, len(r.PodInstance.Tasks))
	for _, t := range r.PodInstance.Tasks {
		if seen[t.Name] {
			return fmt.Errorf("pod instance %q has duplicate task name %q", r.PodInstance.Name, t.Name)
		}
		seen[t.Name] = true
		if t.ResourceSet.Name == "" && len(t.ResourceSet.Resources) == 0 && len(t.ResourceSet.Volumes) == 0 && len(t.ResourceSet.Ports) == 0 && len(t.ResourceSet.VIPs) == 0 {
			return fmt.Errorf("task %q in pod instance %q has no resource set", t.Name, r.PodInstance.Name)
		}
	}
	return nil
}
