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

// Package metrics exposes the counters and histograms this core tracks:
// offers evaluated, stage pass/fail counts, and evaluation duration.
// Serving the scrape endpoint is the external collaborator's job; this
// package only registers and updates the series.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	Namespace = "offer_evaluator"
	Subsystem = "evaluation"
)

var (
	// OffersEvaluatedTotal counts every offer the orchestrator ran a
	// pipeline against, labeled by outcome ("accepted"/"rejected"). When
	// an existing pod's persisted task is missing, every offer of that
	// call is counted as "rejected" without a pipeline being run.
	OffersEvaluatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "offers_evaluated_total",
			Help:      "Number of offers the orchestrator ran an evaluation pipeline against, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	// StageOutcomesTotal counts each stage's pass/fail outcome, labeled by
	// stage name and outcome.
	StageOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "stage_outcomes_total",
			Help:      "Number of evaluation stage outcomes, labeled by stage name and pass/fail.",
		},
		[]string{"stage", "outcome"},
	)

	// EvaluationDurationSeconds observes the wall-clock time one
	// PodInstanceRequirement evaluation call took across every offer
	// tried.
	EvaluationDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "duration_seconds",
			Help:      "Time spent evaluating one pod instance requirement against its offer list.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Register adds every series in this package to reg. Callers own the
// registry (and the scrape endpoint built on top of it); this keeps the
// package itself free of any global-registry side effect on import.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{OffersEvaluatedTotal, StageOutcomesTotal, EvaluationDurationSeconds} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
