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

package stages_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mesosphere/offer-evaluator/pkg/mesosres"
	"github.com/mesosphere/offer-evaluator/pkg/podspec"
	"github.com/mesosphere/offer-evaluator/pkg/recommendation"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
	"github.com/mesosphere/offer-evaluator/pkg/stages"
	"github.com/mesosphere/offer-evaluator/pkg/uuidgen"
	"github.com/mesosphere/offer-evaluator/pkg/values"
)

var _ = Describe("VolumeEvaluationStage", func() {
	It("reserves and creates a fresh ROOT volume", func() {
		pool := resourcepool.New([]mesosres.Resource{{Name: "disk", Value: values.NewScalar(10)}})
		builder := newBuilder()
		stage := &stages.VolumeEvaluationStage{
			TaskName: "t1",
			Spec:     podspec.VolumeSpec{ResourceSpec: podspec.ResourceSpec{Name: "disk", Value: values.NewScalar(5)}, Type: podspec.VolumeRoot, ContainerPath: "/data"},
			OfferID:  "offer-1", UUID: &uuidgen.Sequential{Prefix: "id"},
		}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		Expect(out.Recommendations).To(HaveLen(2))
		Expect(out.Recommendations[0].Kind).To(Equal(recommendation.Reserve))
		Expect(out.Recommendations[1].Kind).To(Equal(recommendation.Create))
		Expect(out.Recommendations[1].Operation.Create.Disk.PersistenceID).NotTo(BeEmpty())
		Expect(builder.TaskResources("t1")).To(HaveLen(1))
	})

	It("fails to atomically reserve a MOUNT volume too small", func() {
		pool := resourcepool.New([]mesosres.Resource{{Name: "disk", Value: values.NewScalar(50), Disk: &mesosres.Disk{SourceType: mesosres.DiskSourceMount}}})
		builder := newBuilder()
		stage := &stages.VolumeEvaluationStage{
			TaskName: "",
			Spec:     podspec.VolumeSpec{ResourceSpec: podspec.ResourceSpec{Name: "disk", Value: values.NewScalar(100)}, Type: podspec.VolumeMount},
			OfferID:  "offer-1", UUID: &uuidgen.Sequential{Prefix: "id"},
		}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeFalse())
	})

	It("shares an executor-level MOUNT volume across every task", func() {
		pool := resourcepool.New([]mesosres.Resource{{Name: "disk", Value: values.NewScalar(100), Disk: &mesosres.Disk{SourceType: mesosres.DiskSourceMount}}})
		builder := newBuilder()
		stage := &stages.VolumeEvaluationStage{
			TaskName: "",
			Spec:     podspec.VolumeSpec{ResourceSpec: podspec.ResourceSpec{Name: "disk", Value: values.NewScalar(100)}, Type: podspec.VolumeMount, ContainerPath: "/data"},
			OfferID:  "offer-1", UUID: &uuidgen.Sequential{Prefix: "id"},
		}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		Expect(builder.ExecutorResources()).To(HaveLen(1))
		Expect(builder.TaskResources("t1")).To(HaveLen(1))
	})

	It("rebinds an existing persisted volume without reserving or creating", func() {
		vol := mesosres.Resource{
			Name: "disk", Value: values.NewScalar(5),
			Disk:             mesosres.NewPersistentDisk(mesosres.DiskSourceRoot, "p1", "principal", "/data"),
			ReservationStack: []mesosres.ReservationEntry{{Role: mesosres.DefaultRole, Labels: mesosres.Labels{{Key: mesosres.ResourceIDLabel, Value: "r1"}}}},
		}
		pool := resourcepool.New([]mesosres.Resource{vol})
		builder := newBuilder()
		stage := &stages.VolumeEvaluationStage{
			TaskName: "t1",
			Spec:     podspec.VolumeSpec{ResourceSpec: podspec.ResourceSpec{Name: "disk", Value: values.NewScalar(5)}, Type: podspec.VolumeRoot, ContainerPath: "/data"},
			OfferID:  "offer-1", ExistingResourceID: "r1",
		}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		Expect(out.Recommendations).To(BeEmpty())
		Expect(builder.TaskResources("t1")[0].Disk.PersistenceID).To(Equal("p1"))
	})
})
