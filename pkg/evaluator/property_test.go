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

package evaluator_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pallinder/go-randomdata"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mesosphere/offer-evaluator/pkg/config"
	"github.com/mesosphere/offer-evaluator/pkg/evaluator"
	"github.com/mesosphere/offer-evaluator/pkg/mesosres"
	"github.com/mesosphere/offer-evaluator/pkg/podspec"
	"github.com/mesosphere/offer-evaluator/pkg/taskinfo"
	"github.com/mesosphere/offer-evaluator/pkg/uuidgen"
	"github.com/mesosphere/offer-evaluator/pkg/values"
)

var _ = Describe("identity preservation and determinism", func() {
	It("preserves every persisted resource id across many randomly-named pods", func() {
		for i := 0; i < 20; i++ {
			podName := strings.ToLower(randomdata.SillyName())
			resourceID := fmt.Sprintf("r-%d", randomdata.Number(1, 1_000_000))

			task := podspec.TaskSpec{
				Name:        "main",
				ResourceSet: podspec.ResourceSet{Resources: []podspec.ResourceSpec{{Name: "cpus", Value: values.NewScalar(0.5)}}},
			}
			req := podspec.PodInstanceRequirement{
				PodInstance:   podspec.PodInstance{Name: podName, Tasks: []podspec.TaskSpec{task}},
				TasksToLaunch: map[string]bool{"main": true},
			}
			persistedCPU := mesosres.Resource{
				Name: "cpus", Value: values.NewScalar(0.5),
				ReservationStack: []mesosres.ReservationEntry{{Role: mesosres.DefaultRole, Labels: mesosres.Labels{{Key: mesosres.ResourceIDLabel, Value: resourceID}}}},
			}
			persisted := taskinfo.TaskInfo{Name: "main", ExecutorID: "exec-" + resourceID, Resources: []mesosres.Resource{persistedCPU}}
			offer := mesosres.Offer{ID: "offer-" + resourceID, Resources: []mesosres.Resource{persistedCPU}}

			ev := evaluator.NewOfferEvaluator(fakeStore{tasks: []taskinfo.TaskInfo{persisted}}, config.Config{ServiceName: "svc"})
			recs, err := ev.Evaluate(context.Background(), req, []mesosres.Offer{offer})
			Expect(err).NotTo(HaveOccurred())
			Expect(recs).To(HaveLen(1))
			launched := recs[0].Operation.Launch.Resources
			Expect(launched).To(HaveLen(1))
			Expect(mesosres.NewMesosResource(launched[0]).ResourceID()).To(Equal(resourceID))
		}
	})

	It("mints identical resource ids across repeated runs given a sequential UUID source", func() {
		buildReq := func(podName string) podspec.PodInstanceRequirement {
			return podspec.PodInstanceRequirement{
				PodInstance: podspec.PodInstance{Name: podName, Tasks: []podspec.TaskSpec{{
					Name:        "main",
					ResourceSet: podspec.ResourceSet{Resources: []podspec.ResourceSpec{{Name: "cpus", Value: values.NewScalar(0.5)}}},
				}}},
				TasksToLaunch: map[string]bool{"main": true},
			}
		}
		offer := mesosres.Offer{ID: "offer-1", Resources: []mesosres.Resource{{Name: "cpus", Value: values.NewScalar(2)}}}
		podName := strings.ToLower(randomdata.SillyName())

		ev1 := evaluator.NewOfferEvaluator(fakeStore{}, config.Config{ServiceName: "svc"}, evaluator.WithUUIDSource(&uuidgen.Sequential{Prefix: "id"}))
		recs1, err := ev1.Evaluate(context.Background(), buildReq(podName), []mesosres.Offer{offer})
		Expect(err).NotTo(HaveOccurred())

		ev2 := evaluator.NewOfferEvaluator(fakeStore{}, config.Config{ServiceName: "svc"}, evaluator.WithUUIDSource(&uuidgen.Sequential{Prefix: "id"}))
		recs2, err := ev2.Evaluate(context.Background(), buildReq(podName), []mesosres.Offer{offer})
		Expect(err).NotTo(HaveOccurred())

		id1 := mesosres.NewMesosResource(*recs1[0].Operation.Reserve).ResourceID()
		id2 := mesosres.NewMesosResource(*recs2[0].Operation.Reserve).ResourceID()
		Expect(id1).To(Equal(id2))
	})
})
