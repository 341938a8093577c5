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
	"github.com/mesosphere/offer-evaluator/pkg/values"
)

// NamedVIPEvaluationStage reserves a port the same way PortEvaluationStage
// does, additionally attaching the vip_key/vip_value labels that bind the
// reservation to a named VIP
type NamedVIPEvaluationStage struct {
	TaskName string
	Spec     podspec.NamedVIPSpec
	OfferID  string
	UUID     uuidgen.Source

	ExistingResourceID string
	ExistingValue      values.Value
}

func (s *NamedVIPEvaluationStage) Name() string {
	return fmt.Sprintf("NamedVIPEvaluationStage(%s/%s)", s.TaskName, s.Spec.Name)
}

func (s *NamedVIPEvaluationStage) Evaluate(pool *resourcepool.ResourcePool, builder *podinfobuilder.PodInfoBuilder) Outcome {
	got, port, rec, reason := consumePort(pool, portRequest{
		specName:           s.Spec.Name,
		role:               resolveRole(s.Spec.Role),
		principal:          s.Spec.Principal,
		dynamic:            s.Spec.IsDynamic(),
		staticPort:         s.Spec.Port,
		offerID:            s.OfferID,
		uuid:               s.UUID,
		existingResourceID: s.ExistingResourceID,
		existingValue:      s.ExistingValue,
		extraLabels: mesosres.Labels{
			{Key: "vip_key", Value: s.Spec.VIPName},
			{Key: "vip_value", Value: formatPort(s.Spec.VIPPort)},
		},
	})
	if reason != "" {
		return Outcome{StageName: s.Name(), Passing: false, Reason: reason}
	}
	builder.RecordDynamicPort(s.Spec.Name, port)
	builder.SetTaskEnv(s.TaskName, portEnvName(s.Spec.Name), formatPort(port))
	builder.SetProtos(s.TaskName, got)
	out := Outcome{StageName: s.Name(), Passing: true}
	if rec != nil {
		out.Recommendations = []recommendation.Recommendation{*rec}
	}
	return out
}
