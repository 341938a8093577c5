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
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mesosphere/offer-evaluator/pkg/mesosres"
	"github.com/mesosphere/offer-evaluator/pkg/podinfobuilder"
	"github.com/mesosphere/offer-evaluator/pkg/podspec"
	"github.com/mesosphere/offer-evaluator/pkg/recommendation"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
	"github.com/mesosphere/offer-evaluator/pkg/stages"
	"github.com/mesosphere/offer-evaluator/pkg/uuidgen"
	"github.com/mesosphere/offer-evaluator/pkg/values"
)

func TestStages(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "stages Suite")
}

func newBuilder() *podinfobuilder.PodInfoBuilder {
	return podinfobuilder.New(podspec.PodInstance{Name: "pod-1", Tasks: []podspec.TaskSpec{{Name: "t1"}}}, "svc", "cfg-1", "")
}

var _ = Describe("ResourceEvaluationStage", func() {
	It("reserves a fresh scalar and records a RESERVE recommendation", func() {
		pool := resourcepool.New([]mesosres.Resource{{Name: "cpus", Value: values.NewScalar(2)}})
		builder := newBuilder()
		stage := &stages.ResourceEvaluationStage{
			TaskName: "t1", Spec: podspec.ResourceSpec{Name: "cpus", Value: values.NewScalar(0.5)}, OfferID: "offer-1", UUID: &uuidgen.Sequential{Prefix: "id"},
		}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		Expect(out.Recommendations).To(HaveLen(1))
		Expect(out.Recommendations[0].Kind).To(Equal(recommendation.Reserve))
		Expect(builder.TaskResources("t1")).To(HaveLen(1))
	})

	It("rebinds an existing resource id without reserving", func() {
		reserved := mesosres.Resource{
			Name: "cpus", Value: values.NewScalar(0.5),
			ReservationStack: []mesosres.ReservationEntry{{Role: mesosres.DefaultRole, Labels: mesosres.Labels{{Key: mesosres.ResourceIDLabel, Value: "r1"}}}},
		}
		pool := resourcepool.New([]mesosres.Resource{reserved})
		builder := newBuilder()
		stage := &stages.ResourceEvaluationStage{
			TaskName: "t1", Spec: podspec.ResourceSpec{Name: "cpus", Value: values.NewScalar(0.5)}, OfferID: "offer-1", ExistingResourceID: "r1",
		}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		Expect(out.Recommendations).To(BeEmpty())
	})

	It("fails when the offered quantity is insufficient", func() {
		pool := resourcepool.New([]mesosres.Resource{{Name: "cpus", Value: values.NewScalar(0.1)}})
		builder := newBuilder()
		stage := &stages.ResourceEvaluationStage{
			TaskName: "t1", Spec: podspec.ResourceSpec{Name: "cpus", Value: values.NewScalar(0.5)}, OfferID: "offer-1", UUID: &uuidgen.Sequential{Prefix: "id"},
		}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeFalse())
		Expect(out.Reason).NotTo(BeEmpty())
	})
})
