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

package stages

import (
	"fmt"

	"github.com/mesosphere/offer-evaluator/pkg/podinfobuilder"
	"github.com/mesosphere/offer-evaluator/pkg/recommendation"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
)

// LaunchEvaluationStage finalizes one task's accumulated resources into a
// LAUNCH recommendation. A task in the pod instance that is
// not in the current TasksToLaunch set still has its resources reserved
// by earlier stages (so sibling tasks that depend on them succeed) but
// produces no LAUNCH recommendation itself.
type LaunchEvaluationStage struct {
	TaskName   string
	ExecutorID string
	OfferID    string

	// ShouldLaunch is false for tasks present in the pod instance but not
	// requested this cycle.
	ShouldLaunch bool
}

func (s *LaunchEvaluationStage) Name() string {
	return fmt.Sprintf("LaunchEvaluationStage(%s)", s.TaskName)
}

func (s *LaunchEvaluationStage) Evaluate(pool *resourcepool.ResourcePool, builder *podinfobuilder.PodInfoBuilder) Outcome {
	if !s.ShouldLaunch {
		return Outcome{StageName: s.Name(), Passing: true, Reason: "not requested for launch this cycle"}
	}
	env := map[string]string{}
	var command []string
	if spec, ok := builder.TaskSpec(s.TaskName); ok {
		for k, v := range spec.Environment {
			env[k] = v
		}
		command = spec.Command
	}
	for k, v := range builder.TaskEnvironment(s.TaskName) {
		env[k] = v
	}
	op := recommendation.LaunchOperation{
		TaskName:    s.TaskName,
		ExecutorID:  s.ExecutorID,
		Resources:   builder.TaskResources(s.TaskName),
		Command:     command,
		Environment: env,
	}
	return Outcome{
		StageName:       s.Name(),
		Passing:         true,
		Recommendations: []recommendation.Recommendation{recommendation.NewLaunch(s.OfferID, op)},
	}
}
