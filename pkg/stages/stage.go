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

// Package stages implements the per-resource-kind evaluation units.
// Rather than a deep inheritance hierarchy, every stage implements one
// capability, EvaluationStage, and the kinds that share behavior
// ("reserve if new, bind if existing") call into free helper functions
// that take the pool directly instead of overriding shared base-class
// methods.
package stages

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/mesosphere/offer-evaluator/pkg/podinfobuilder"
	"github.com/mesosphere/offer-evaluator/pkg/recommendation"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
)

// Outcome is the result of evaluating one stage: whether it
// passed, a human-readable reason, any child outcomes it aggregated (a
// ResourceEvaluationStage has none; an orchestrator-level summary has one
// child per stage), and the recommendations it contributed.
type Outcome struct {
	StageName       string
	Passing         bool
	Reason          string
	Children        []Outcome
	Recommendations []recommendation.Recommendation
}

// Err folds a failing Outcome tree into a single error, aggregating every
// failing child with go.uber.org/multierr so a rejected offer can report
// every reason at once: short-circuiting is off.
func (o Outcome) Err() error {
	if o.Passing {
		return nil
	}
	var err error
	if o.Reason != "" {
		err = fmt.Errorf("%s: %s", o.StageName, o.Reason)
	}
	for _, c := range o.Children {
		if childErr := c.Err(); childErr != nil {
			err = multierr.Append(err, childErr)
		}
	}
	if err == nil {
		err = fmt.Errorf("%s: failed", o.StageName)
	}
	return err
}

// Format renders the outcome tree as a one-line-per-stage structured
// dump, folded into a per-offer log record: every stage contributes a
// one-line reason.
func (o Outcome) Format() string {
	var b strings.Builder
	o.format(&b, 0)
	return b.String()
}

func (o Outcome) format(b *strings.Builder, depth int) {
	status := "PASS"
	if !o.Passing {
		status = "FAIL"
	}
	fmt.Fprintf(b, "%s[%s] %s", strings.Repeat("  ", depth), status, o.StageName)
	if o.Reason != "" {
		fmt.Fprintf(b, ": %s", o.Reason)
	}
	b.WriteByte('\n')
	for _, c := range o.Children {
		c.format(b, depth+1)
	}
}

// EvaluationStage is the single capability every stage kind implements:
// mutate the resource pool and/or the pod-info builder, return a
// pass/fail outcome and zero or more recommendations.
type EvaluationStage interface {
	Name() string
	Evaluate(pool *resourcepool.ResourcePool, builder *podinfobuilder.PodInfoBuilder) Outcome
}

// Pipeline is an ordered list of stages run against one offer. Every
// stage runs regardless of earlier failures: short-circuiting is off,
// and any failing stage causes the offer to be rejected as a whole.
type Pipeline []EvaluationStage

// Run executes every stage in order, collecting outcomes and
// recommendations. It returns the aggregate outcome and, only when every
// stage passed, the concatenated recommendations in stage order:
// recommendations appear in the same order as their producing stages.
func (p Pipeline) Run(pool *resourcepool.ResourcePool, builder *podinfobuilder.PodInfoBuilder) (Outcome, []recommendation.Recommendation) {
	agg := Outcome{StageName: "pipeline", Passing: true}
	var recs []recommendation.Recommendation
	for _, stage := range p {
		out := stage.Evaluate(pool, builder)
		agg.Children = append(agg.Children, out)
		if !out.Passing {
			agg.Passing = false
			continue
		}
		recs = append(recs, out.Recommendations...)
	}
	if !agg.Passing {
		return agg, nil
	}
	return agg, recs
}
