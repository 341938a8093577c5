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
	"github.com/mesosphere/offer-evaluator/pkg/recommendation"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
)

// UnreserveEvaluationStage retires a resource a pod no longer requires:
// it confirms the resource is present in the offer currently being
// evaluated, then emits DESTROY-then-UNRESERVE for a persistent volume
// or a plain UNRESERVE otherwise.
type UnreserveEvaluationStage struct {
	Orphan  mesosres.Resource
	OfferID string
}

func (s *UnreserveEvaluationStage) Name() string {
	return fmt.Sprintf("UnreserveEvaluationStage(%s)", s.Orphan.Name)
}

func (s *UnreserveEvaluationStage) Evaluate(pool *resourcepool.ResourcePool, builder *podinfobuilder.PodInfoBuilder) Outcome {
	resourceID := mesosres.NewMesosResource(s.Orphan).ResourceID()
	got, ok := pool.Consume(resourcepool.ConsumeRequest{
		Mode: resourcepool.ExpectsResource, Name: s.Orphan.Name, Desired: s.Orphan.Value, ResourceID: resourceID,
	})
	if !ok {
		return Outcome{StageName: s.Name(), Passing: false, Reason: "orphaned resource not present in offer currently being evaluated"}
	}

	var recs []recommendation.Recommendation
	if got.Disk != nil && got.Disk.PersistenceID != "" {
		recs = append(recs, recommendation.NewDestroy(s.OfferID, got))
	}
	recs = append(recs, recommendation.NewUnreserve(s.OfferID, got))

	if mesosres.NewMesosResource(got).IsAtomic() {
		pool.ReleaseAtomic(got)
	}

	return Outcome{StageName: s.Name(), Passing: true, Recommendations: recs}
}
