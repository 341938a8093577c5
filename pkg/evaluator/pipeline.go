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

package evaluator

import (
	"github.com/samber/lo"

	"github.com/mesosphere/offer-evaluator/pkg/mapper"
	"github.com/mesosphere/offer-evaluator/pkg/mesosres"
	"github.com/mesosphere/offer-evaluator/pkg/podspec"
	"github.com/mesosphere/offer-evaluator/pkg/stages"
	"github.com/mesosphere/offer-evaluator/pkg/uuidgen"
	"github.com/mesosphere/offer-evaluator/pkg/values"
)

// buildPipeline assembles the stage list for one offer, per the
// classification computed once for the whole evaluation call. Stage
// order follows the fixed output ordering ("UNRESERVEs first on an
// existing-pod path, then RESERVE, then CREATE, then LAUNCH"): the
// placement rule first, then every orphan's unreserve stage across all
// tasks, then each task's own resource/port/volume/launch stages in
// declaration order.
func buildPipeline(req podspec.PodInstanceRequirement, cls classification, offer mesosres.Offer, uuidSource uuidgen.Source) stages.Pipeline {
	var pipeline stages.Pipeline
	offerID := offer.ID

	pipeline = append(pipeline, &stages.PlacementRuleStage{
		Rule:              req.PodInstance.PlacementRule,
		Offer:             offer,
		AllTasksInService: req.PodInstance.Tasks,
	})

	if cls.Existing {
		for _, task := range req.PodInstance.Tasks {
			for _, orphan := range cls.MapResults[task.Name].Orphans {
				pipeline = append(pipeline, &stages.UnreserveEvaluationStage{Orphan: orphan.Persisted, OfferID: offerID})
			}
		}
	}

	for _, task := range req.PodInstance.Tasks {
		var matchByName map[string]mapper.Match
		if cls.Existing {
			matchByName = lo.SliceToMap(cls.MapResults[task.Name].Matched, func(m mapper.Match) (string, mapper.Match) { return m.SpecName, m })
		}

		pipeline = append(pipeline, taskStages(task, matchByName, offerID, uuidSource)...)

		pipeline = append(pipeline, &stages.LaunchEvaluationStage{
			TaskName:     task.Name,
			ExecutorID:   resolveExecutorID(cls, uuidSource),
			OfferID:      offerID,
			ShouldLaunch: req.TasksToLaunch[task.Name],
		})
	}

	return pipeline
}

// resolveExecutorID returns the persisted executor id when one is known,
// else mints a fresh one: still attempt the LAUNCH rather than waiting
// for a status update.
func resolveExecutorID(cls classification, uuidSource uuidgen.Source) string {
	if cls.ExistingExecutorID != "" {
		return cls.ExistingExecutorID
	}
	return uuidSource.New()
}

// taskStages builds one task's resource-evaluation stages: static ports,
// then dynamic ports, then everything else (scalar resources), then
// volumes.
func taskStages(task podspec.TaskSpec, matchByName map[string]mapper.Match, offerID string, uuidSource uuidgen.Source) stages.Pipeline {
	var out stages.Pipeline

	staticPorts, dynamicPorts := lo.FilterReject(task.ResourceSet.Ports, func(p podspec.PortSpec, _ int) bool { return !p.IsDynamic() })
	staticVIPs, dynamicVIPs := lo.FilterReject(task.ResourceSet.VIPs, func(v podspec.NamedVIPSpec, _ int) bool { return !v.IsDynamic() })

	for _, p := range staticPorts {
		out = append(out, portStage(task.Name, p, matchByName, offerID, uuidSource))
	}
	for _, v := range staticVIPs {
		out = append(out, vipStage(task.Name, v, matchByName, offerID, uuidSource))
	}
	for _, p := range dynamicPorts {
		out = append(out, portStage(task.Name, p, matchByName, offerID, uuidSource))
	}
	for _, v := range dynamicVIPs {
		out = append(out, vipStage(task.Name, v, matchByName, offerID, uuidSource))
	}

	for _, r := range task.ResourceSet.Resources {
		s := &stages.ResourceEvaluationStage{TaskName: task.Name, Spec: r, OfferID: offerID, UUID: uuidSource}
		if m, ok := matchByName[r.Name]; ok {
			s.ExistingResourceID = m.ResourceID()
		}
		out = append(out, s)
	}

	for _, v := range task.ResourceSet.Volumes {
		taskName := task.Name
		if v.Type == podspec.VolumeMount {
			// Executor-level reuse path: MOUNT volumes are canonically
			// shared at the executor level
			taskName = ""
		}
		s := &stages.VolumeEvaluationStage{TaskName: taskName, Spec: v, OfferID: offerID, UUID: uuidSource}
		if m, ok := matchByName[v.Name]; ok {
			s.ExistingResourceID = m.ResourceID()
		}
		out = append(out, s)
	}

	return out
}

func portStage(taskName string, spec podspec.PortSpec, matchByName map[string]mapper.Match, offerID string, uuidSource uuidgen.Source) *stages.PortEvaluationStage {
	s := &stages.PortEvaluationStage{TaskName: taskName, Spec: spec, OfferID: offerID, UUID: uuidSource}
	if m, ok := matchByName[spec.Name]; ok {
		s.ExistingResourceID = m.ResourceID()
		s.ExistingValue = portValue(m)
	}
	return s
}

func vipStage(taskName string, spec podspec.NamedVIPSpec, matchByName map[string]mapper.Match, offerID string, uuidSource uuidgen.Source) *stages.NamedVIPEvaluationStage {
	s := &stages.NamedVIPEvaluationStage{TaskName: taskName, Spec: spec, OfferID: offerID, UUID: uuidSource}
	if m, ok := matchByName[spec.Name]; ok {
		s.ExistingResourceID = m.ResourceID()
		s.ExistingValue = portValue(m)
	}
	return s
}

// portValue reconstructs the RANGES value a matched persisted port
// reservation carries, so PortEvaluationStage/NamedVIPEvaluationStage can
// rebind it via ExpectsResource.
func portValue(m mapper.Match) values.Value {
	return m.Persisted.Value
}
