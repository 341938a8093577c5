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
	"github.com/mesosphere/offer-evaluator/pkg/recommendation"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
	"github.com/mesosphere/offer-evaluator/pkg/stages"
	"github.com/mesosphere/offer-evaluator/pkg/values"
)

var _ = Describe("UnreserveEvaluationStage", func() {
	It("emits DESTROY then UNRESERVE for an orphaned persistent volume", func() {
		orphan := mesosres.Resource{
			Name: "disk", Value: values.NewScalar(5),
			Disk:             mesosres.NewPersistentDisk(mesosres.DiskSourceRoot, "p1", "principal", "/data"),
			ReservationStack: []mesosres.ReservationEntry{{Role: mesosres.DefaultRole, Labels: mesosres.Labels{{Key: mesosres.ResourceIDLabel, Value: "r1"}}}},
		}
		pool := resourcepool.New([]mesosres.Resource{orphan})
		builder := newBuilder()
		stage := &stages.UnreserveEvaluationStage{Orphan: orphan, OfferID: "offer-1"}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		Expect(out.Recommendations).To(HaveLen(2))
		Expect(out.Recommendations[0].Kind).To(Equal(recommendation.Destroy))
		Expect(out.Recommendations[1].Kind).To(Equal(recommendation.Unreserve))
	})

	It("emits only UNRESERVE for a non-persistent orphan", func() {
		orphan := mesosres.Resource{
			Name: "cpus", Value: values.NewScalar(0.5),
			ReservationStack: []mesosres.ReservationEntry{{Role: mesosres.DefaultRole, Labels: mesosres.Labels{{Key: mesosres.ResourceIDLabel, Value: "r2"}}}},
		}
		pool := resourcepool.New([]mesosres.Resource{orphan})
		builder := newBuilder()
		stage := &stages.UnreserveEvaluationStage{Orphan: orphan, OfferID: "offer-1"}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		Expect(out.Recommendations).To(HaveLen(1))
		Expect(out.Recommendations[0].Kind).To(Equal(recommendation.Unreserve))
	})

	It("fails when the orphan is no longer present in the offer", func() {
		orphan := mesosres.Resource{
			Name: "cpus", Value: values.NewScalar(0.5),
			ReservationStack: []mesosres.ReservationEntry{{Role: mesosres.DefaultRole, Labels: mesosres.Labels{{Key: mesosres.ResourceIDLabel, Value: "r2"}}}},
		}
		pool := resourcepool.New(nil)
		builder := newBuilder()
		stage := &stages.UnreserveEvaluationStage{Orphan: orphan, OfferID: "offer-1"}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeFalse())
	})
})
