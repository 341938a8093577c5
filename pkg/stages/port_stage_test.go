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

var _ = Describe("PortEvaluationStage", func() {
	It("picks the lowest dynamic port available", func() {
		pool := resourcepool.New([]mesosres.Resource{{Name: "ports", Value: values.NewRanges(values.Range{Lo: 31000, Hi: 31002})}})
		builder := newBuilder()
		stage := &stages.PortEvaluationStage{TaskName: "t1", Spec: podspec.PortSpec{Name: "http", Port: 0}, OfferID: "offer-1", UUID: &uuidgen.Sequential{Prefix: "id"}}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		Expect(out.Recommendations).To(HaveLen(1))
		Expect(out.Recommendations[0].Kind).To(Equal(recommendation.Reserve))
		port, ok := builder.DynamicPort("http")
		Expect(ok).To(BeTrue())
		Expect(port).To(Equal(int64(31000)))
		Expect(builder.TaskEnvironment("t1")["PORT_HTTP"]).To(Equal("31000"))
	})

	It("reserves a static port exactly", func() {
		pool := resourcepool.New([]mesosres.Resource{{Name: "ports", Value: values.NewRanges(values.Range{Lo: 8000, Hi: 9000})}})
		builder := newBuilder()
		stage := &stages.PortEvaluationStage{TaskName: "t1", Spec: podspec.PortSpec{Name: "admin", Port: 8080}, OfferID: "offer-1", UUID: &uuidgen.Sequential{Prefix: "id"}}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		port, _ := builder.DynamicPort("admin")
		Expect(port).To(Equal(int64(8080)))
	})

	It("fails when no ports are offered for the role", func() {
		pool := resourcepool.New(nil)
		builder := newBuilder()
		stage := &stages.PortEvaluationStage{TaskName: "t1", Spec: podspec.PortSpec{Name: "http", Port: 0}, OfferID: "offer-1", UUID: &uuidgen.Sequential{Prefix: "id"}}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeFalse())
	})

	It("rebinds a previously assigned dynamic port", func() {
		reserved := mesosres.Resource{
			Name: "ports", Value: values.NewRanges(values.Range{Lo: 31005, Hi: 31005}),
			ReservationStack: []mesosres.ReservationEntry{{Role: mesosres.DefaultRole, Labels: mesosres.Labels{{Key: mesosres.ResourceIDLabel, Value: "r1"}}}},
		}
		pool := resourcepool.New([]mesosres.Resource{reserved})
		builder := newBuilder()
		stage := &stages.PortEvaluationStage{
			TaskName: "t1", Spec: podspec.PortSpec{Name: "http", Port: 0}, OfferID: "offer-1",
			ExistingResourceID: "r1", ExistingValue: values.NewRanges(values.Range{Lo: 31005, Hi: 31005}),
		}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		Expect(out.Recommendations).To(BeEmpty())
		port, _ := builder.DynamicPort("http")
		Expect(port).To(Equal(int64(31005)))
	})
})
