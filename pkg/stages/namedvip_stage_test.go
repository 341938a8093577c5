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
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
	"github.com/mesosphere/offer-evaluator/pkg/stages"
	"github.com/mesosphere/offer-evaluator/pkg/uuidgen"
	"github.com/mesosphere/offer-evaluator/pkg/values"
)

var _ = Describe("NamedVIPEvaluationStage", func() {
	It("reserves a dynamic port and attaches vip_key/vip_value labels", func() {
		pool := resourcepool.New([]mesosres.Resource{{Name: "ports", Value: values.NewRanges(values.Range{Lo: 31000, Hi: 31002})}})
		builder := newBuilder()
		stage := &stages.NamedVIPEvaluationStage{
			TaskName: "t1",
			Spec:     podspec.NamedVIPSpec{PortSpec: podspec.PortSpec{Name: "api", Port: 0}, VIPName: "api-vip", VIPPort: 80},
			OfferID:  "offer-1", UUID: &uuidgen.Sequential{Prefix: "id"},
		}

		out := stage.Evaluate(pool, builder)
		Expect(out.Passing).To(BeTrue())
		Expect(out.Recommendations).To(HaveLen(1))
		reserved := out.Recommendations[0].Operation.Reserve
		entry := reserved.ReservationStack[len(reserved.ReservationStack)-1]
		key, ok := entry.Labels.Get("vip_key")
		Expect(ok).To(BeTrue())
		Expect(key).To(Equal("api-vip"))
		value, _ := entry.Labels.Get("vip_value")
		Expect(value).To(Equal("80"))
	})
})
