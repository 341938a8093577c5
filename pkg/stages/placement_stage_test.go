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

	"github.com/mesosphere/offer-evaluator/pkg/podspec"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
	"github.com/mesosphere/offer-evaluator/pkg/stages"
)

type fakeRule struct {
	ok     bool
	reason string
}

func (r fakeRule) Evaluate(offer any, allTasksInService []podspec.TaskSpec) (bool, string) {
	return r.ok, r.reason
}

var _ = Describe("PlacementRuleStage", func() {
	It("passes trivially when no rule is configured", func() {
		pool := resourcepool.New(nil)
		builder := newBuilder()
		stage := &stages.PlacementRuleStage{Rule: nil}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
	})

	It("defers to the rule's verdict and reason", func() {
		pool := resourcepool.New(nil)
		builder := newBuilder()
		stage := &stages.PlacementRuleStage{Rule: fakeRule{ok: false, reason: "agent already runs this service"}}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeFalse())
		Expect(out.Reason).To(Equal("agent already runs this service"))
	})
})
