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

	"github.com/mesosphere/offer-evaluator/pkg/mesosres"
	"github.com/mesosphere/offer-evaluator/pkg/podinfobuilder"
	"github.com/mesosphere/offer-evaluator/pkg/podspec"
	"github.com/mesosphere/offer-evaluator/pkg/recommendation"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
	"github.com/mesosphere/offer-evaluator/pkg/uuidgen"
)

// ResourceEvaluationStage handles a plain scalar resource: CPU, memory,
// or non-volume disk
type ResourceEvaluationStage struct {
	TaskName string
	Spec     podspec.ResourceSpec
	OfferID  string
	UUID     uuidgen.Source

	// ExistingResourceID is non-empty when this stage is rebinding a
	// persisted reservation (existing-pod path, seeded by
	// pkg/mapper.Map).
	ExistingResourceID string
}

func (s *ResourceEvaluationStage) Name() string {
	return fmt.Sprintf("ResourceEvaluationStage(%s/%s)", s.TaskName, s.Spec.Name)
}

// Evaluate implements EvaluationStage.
func (s *ResourceEvaluationStage) Evaluate(pool *resourcepool.ResourcePool, builder *podinfobuilder.PodInfoBuilder) Outcome {
	role := resolveRole(s.Spec.Role)

	if s.ExistingResourceID != "" {
		got, ok := pool.Consume(resourcepool.ConsumeRequest{
			Mode: resourcepool.ExpectsResource, Name: s.Spec.Name, Desired: s.Spec.Value, ResourceID: s.ExistingResourceID,
		})
		if !ok {
			return Outcome{StageName: s.Name(), Passing: false, Reason: "expected reserved resource not present in offer"}
		}
		builder.SetProtos(s.TaskName, got)
		return Outcome{StageName: s.Name(), Passing: true}
	}

	got, ok := pool.Consume(resourcepool.ConsumeRequest{
		Mode: resourcepool.DivisibleReserve, Name: s.Spec.Name, Role: role, Desired: s.Spec.Value,
	})
	if !ok {
		return Outcome{StageName: s.Name(), Passing: false, Reason: fmt.Sprintf("offered quantity of %q insufficient", s.Spec.Name)}
	}
	id := s.UUID.New()
	got = got.WithReservation(mesosres.ReservationEntry{
		Role: role, Principal: s.Spec.Principal,
		Labels: mesosres.Labels{}.With(mesosres.ResourceIDLabel, id),
	})
	builder.SetProtos(s.TaskName, got)
	return Outcome{
		StageName:       s.Name(),
		Passing:         true,
		Recommendations: []recommendation.Recommendation{recommendation.NewReserve(s.OfferID, got)},
	}
}
