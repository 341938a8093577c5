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

// Package podinfobuilder accumulates the in-progress task and executor
// protocol messages as evaluation stages contribute reservations,
// volumes, ports, and environment
package podinfobuilder

import (
	"github.com/mesosphere/offer-evaluator/pkg/mesosres"
	"github.com/mesosphere/offer-evaluator/pkg/podspec"
)

// PodInfoBuilder holds everything the LaunchEvaluationStage needs to
// finalize a TaskInfo, plus the side channels (port numbers) other stages
// need to compute task environment variables
type PodInfoBuilder struct {
	PodInstance    podspec.PodInstance
	ServiceName    string
	TargetConfigID string

	// ExistingExecutorID is set for an existing pod whose executor id is
	// already known from a persisted TaskInfo; empty means a fresh
	// executor id must be generated.
	ExistingExecutorID string

	taskResources     map[string][]mesosres.Resource
	taskEnvironment   map[string]map[string]string
	executorResources []mesosres.Resource
	dynamicPorts      map[string]int64 // spec name -> assigned port
}

// New constructs an empty PodInfoBuilder for one pod instance evaluation.
func New(pi podspec.PodInstance, serviceName, targetConfigID, existingExecutorID string) *PodInfoBuilder {
	return &PodInfoBuilder{
		PodInstance:        pi,
		ServiceName:        serviceName,
		TargetConfigID:     targetConfigID,
		ExistingExecutorID: existingExecutorID,
		taskResources:      map[string][]mesosres.Resource{},
		taskEnvironment:    map[string]map[string]string{},
		dynamicPorts:       map[string]int64{},
	}
}

// SetProtos appends a resource to the named task's resource list, or
// (when taskName is empty) to the executor's resource list.
func (b *PodInfoBuilder) SetProtos(taskName string, r mesosres.Resource) {
	if taskName == "" {
		b.executorResources = append(b.executorResources, r)
		return
	}
	b.taskResources[taskName] = append(b.taskResources[taskName], r)
}

// AddExecutorVolumeToAllTasks adds an executor-level volume resource's
// entry to every task's accumulated resource list so sibling tasks share
// it.
func (b *PodInfoBuilder) AddExecutorVolumeToAllTasks(r mesosres.Resource) {
	for _, t := range b.PodInstance.Tasks {
		b.taskResources[t.Name] = append(b.taskResources[t.Name], r)
	}
}

// FindExecutorResourceByResourceID locates an already-built executor
// resource by its resource_id label, used by the volume reuse path when a
// task requires the executor-level volume by resource id
func (b *PodInfoBuilder) FindExecutorResourceByResourceID(id string) (mesosres.Resource, bool) {
	for _, r := range b.executorResources {
		if mesosres.NewMesosResource(r).ResourceID() == id {
			return r, true
		}
	}
	return mesosres.Resource{}, false
}

// SetTaskEnv records an environment variable for a task, e.g. the
// PORT_<NAME> variable the port stages compute
func (b *PodInfoBuilder) SetTaskEnv(taskName, key, value string) {
	if b.taskEnvironment[taskName] == nil {
		b.taskEnvironment[taskName] = map[string]string{}
	}
	b.taskEnvironment[taskName][key] = value
}

// RecordDynamicPort records the concrete port number assigned to a
// PortSpec/NamedVIPSpec, static or dynamic: the port-number side channel
// needed to compute task environment variables.
func (b *PodInfoBuilder) RecordDynamicPort(specName string, port int64) {
	b.dynamicPorts[specName] = port
}

// DynamicPort returns the port number previously recorded for specName.
func (b *PodInfoBuilder) DynamicPort(specName string) (int64, bool) {
	p, ok := b.dynamicPorts[specName]
	return p, ok
}

// TaskResources returns the accumulated resources for one task.
func (b *PodInfoBuilder) TaskResources(taskName string) []mesosres.Resource {
	return b.taskResources[taskName]
}

// TaskEnvironment returns the accumulated environment for one task.
func (b *PodInfoBuilder) TaskEnvironment(taskName string) map[string]string {
	return b.taskEnvironment[taskName]
}

// TaskSpec returns the named task's spec from the pod instance, for
// LaunchEvaluationStage to read its Command and base Environment.
func (b *PodInfoBuilder) TaskSpec(taskName string) (podspec.TaskSpec, bool) {
	for _, t := range b.PodInstance.Tasks {
		if t.Name == taskName {
			return t, true
		}
	}
	return podspec.TaskSpec{}, false
}

// ExecutorResources returns the accumulated executor-level resources.
func (b *PodInfoBuilder) ExecutorResources() []mesosres.Resource {
	return b.executorResources
}
