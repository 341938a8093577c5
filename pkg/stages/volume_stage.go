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

// VolumeEvaluationStage handles one VolumeSpec: ROOT and PATH volumes
// reserve divisible disk out of the role's merged pool, MOUNT volumes
// reserve a whole atomic disk. TaskName empty means the volume is
// executor-level and shared by every task in the pod, via
// AddExecutorVolumeToAllTasks.
type VolumeEvaluationStage struct {
	TaskName string
	Spec     podspec.VolumeSpec
	OfferID  string
	UUID     uuidgen.Source

	// ExistingResourceID is set for an existing pod whose volume is
	// already persisted and must be rebound rather than freshly reserved.
	ExistingResourceID string
}

func (s *VolumeEvaluationStage) Name() string {
	return fmt.Sprintf("VolumeEvaluationStage(%s/%s)", s.TaskName, s.Spec.Name)
}

func (s *VolumeEvaluationStage) Evaluate(pool *resourcepool.ResourcePool, builder *podinfobuilder.PodInfoBuilder) Outcome {
	role := resolveRole(s.Spec.Role)

	if s.ExistingResourceID != "" {
		if got, ok := builder.FindExecutorResourceByResourceID(s.ExistingResourceID); ok && s.TaskName == "" {
			// Already materialized by an earlier sibling volume stage for
			// this same executor-level resource; just attach it.
			builder.AddExecutorVolumeToAllTasks(got)
			return Outcome{StageName: s.Name(), Passing: true}
		}
		got, ok := pool.Consume(resourcepool.ConsumeRequest{
			Mode: resourcepool.ExpectsResource, Name: s.Spec.Name, Desired: s.Spec.Value, ResourceID: s.ExistingResourceID,
		})
		if !ok {
			return Outcome{StageName: s.Name(), Passing: false, Reason: "expected persisted volume not present in offer"}
		}
		s.attach(builder, got)
		return Outcome{StageName: s.Name(), Passing: true}
	}

	var got mesosres.Resource
	var ok bool
	if s.Spec.Type == podspec.VolumeMount {
		got, ok = pool.Consume(resourcepool.ConsumeRequest{Mode: resourcepool.AtomicReserve, Name: s.Spec.Name, Desired: s.Spec.Value})
	} else {
		got, ok = pool.Consume(resourcepool.ConsumeRequest{Mode: resourcepool.DivisibleReserve, Name: s.Spec.Name, Role: role, Desired: s.Spec.Value})
	}
	if !ok {
		return Outcome{StageName: s.Name(), Passing: false, Reason: fmt.Sprintf("no volume resource %q available", s.Spec.Name)}
	}

	resourceID := s.UUID.New()
	got = got.WithReservation(mesosres.ReservationEntry{
		Role: role, Principal: s.Spec.Principal,
		Labels: mesosres.Labels{}.With(mesosres.ResourceIDLabel, resourceID),
	})

	recs := []recommendation.Recommendation{recommendation.NewReserve(s.OfferID, got)}

	// PATH volumes are a minimal pass-through: divisible consume, no
	// persistence id and no CREATE. Only ROOT and MOUNT get persistence.
	if s.Spec.Type == podspec.VolumePath {
		got = got.WithDisk(mesosres.NewPersistentDisk(mesosres.DiskSourcePath, "", s.Spec.Principal, s.Spec.ContainerPath))
		s.attach(builder, got)
		return Outcome{StageName: s.Name(), Passing: true, Recommendations: recs}
	}

	sourceType := mesosres.DiskSourceRoot
	if s.Spec.Type == podspec.VolumeMount {
		sourceType = mesosres.DiskSourceMount
	}
	persistenceID := s.UUID.New()
	got = got.WithDisk(mesosres.NewPersistentDisk(sourceType, persistenceID, s.Spec.Principal, s.Spec.ContainerPath))
	recs = append(recs, recommendation.NewCreate(s.OfferID, got))

	s.attach(builder, got)
	return Outcome{StageName: s.Name(), Passing: true, Recommendations: recs}
}

func (s *VolumeEvaluationStage) attach(builder *podinfobuilder.PodInfoBuilder, r mesosres.Resource) {
	if s.TaskName == "" {
		builder.SetProtos("", r)
		builder.AddExecutorVolumeToAllTasks(r)
		return
	}
	builder.SetProtos(s.TaskName, r)
}
