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

	"github.com/mesosphere/offer-evaluator/pkg/recommendation"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
	"github.com/mesosphere/offer-evaluator/pkg/stages"
)

var _ = Describe("LaunchEvaluationStage", func() {
	It("emits LAUNCH when requested this cycle", func() {
		pool := resourcepool.New(nil)
		builder := newBuilder()
		stage := &stages.LaunchEvaluationStage{TaskName: "t1", ExecutorID: "exec-1", OfferID: "offer-1", ShouldLaunch: true}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		Expect(out.Recommendations).To(HaveLen(1))
		Expect(out.Recommendations[0].Kind).To(Equal(recommendation.Launch))
		Expect(out.Recommendations[0].Operation.Launch.ExecutorID).To(Equal("exec-1"))
	})

	It("emits nothing when not requested for launch", func() {
		pool := resourcepool.New(nil)
		builder := newBuilder()
		stage := &stages.LaunchEvaluationStage{TaskName: "t1", ExecutorID: "exec-1", OfferID: "offer-1", ShouldLaunch: false}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		Expect(out.Recommendations).To(BeEmpty())
	})
})
