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

	"github.com/mesosphere/offer-evaluator/pkg/podinfobuilder"
	"github.com/mesosphere/offer-evaluator/pkg/podspec"
	"github.com/mesosphere/offer-evaluator/pkg/recommendation"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
	"github.com/mesosphere/offer-evaluator/pkg/uuidgen"
	"github.com/mesosphere/offer-evaluator/pkg/values"
)

// PortEvaluationStage handles one PortSpec: a static port (Port > 0) is
// reserved directly; a dynamic port (Port == 0) is assigned the lowest
// available port out of the role's "ports" RANGES pool
type PortEvaluationStage struct {
	TaskName string
	Spec     podspec.PortSpec
	OfferID  string
	UUID     uuidgen.Source

	// ExistingResourceID/ExistingValue are set when rebinding a
	// previously-assigned dynamic port for an existing pod.
	ExistingResourceID string
	ExistingValue      values.Value
}

func (s *PortEvaluationStage) Name() string {
	return fmt.Sprintf("PortEvaluationStage(%s/%s)", s.TaskName, s.Spec.Name)
}

func (s *PortEvaluationStage) Evaluate(pool *resourcepool.ResourcePool, builder *podinfobuilder.PodInfoBuilder) Outcome {
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
