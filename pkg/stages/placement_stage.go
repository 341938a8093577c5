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
	"github.com/mesosphere/offer-evaluator/pkg/podinfobuilder"
	"github.com/mesosphere/offer-evaluator/pkg/podspec"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
)

// PlacementRuleStage evaluates the pod instance's PlacementRule, if any,
// against the offer and every task currently running for the service.
// A pod instance with no placement rule always passes.
type PlacementRuleStage struct {
	Rule              podspec.PlacementRule
	Offer             any
	AllTasksInService []podspec.TaskSpec
}

func (s *PlacementRuleStage) Name() string { return "PlacementRuleStage" }

func (s *PlacementRuleStage) Evaluate(pool *resourcepool.ResourcePool, builder *podinfobuilder.PodInfoBuilder) Outcome {
	if s.Rule == nil {
		return Outcome{StageName: s.Name(), Passing: true}
	}
	ok, reason := s.Rule.Evaluate(s.Offer, s.AllTasksInService)
	return Outcome{StageName: s.Name(), Passing: ok, Reason: reason}
}
