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

// Package evaluator implements the orchestrator (OfferEvaluator): classify
// the pod, build the stage pipeline, run it against each offer in order
// until one succeeds, and collect the resulting recommendations.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/patrickmn/go-cache"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/klog/v2"
	ctrllog "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/mesosphere/offer-evaluator/pkg/config"
	"github.com/mesosphere/offer-evaluator/pkg/evalerrors"
	"github.com/mesosphere/offer-evaluator/pkg/mesosres"
	"github.com/mesosphere/offer-evaluator/pkg/metrics"
	"github.com/mesosphere/offer-evaluator/pkg/podinfobuilder"
	"github.com/mesosphere/offer-evaluator/pkg/podspec"
	"github.com/mesosphere/offer-evaluator/pkg/recommendation"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
	"github.com/mesosphere/offer-evaluator/pkg/statestore"
)

// evaluatorDeps groups the collaborators classify needs, kept separate
// from OfferEvaluator itself so classify can be unit tested without a
// full evaluator.
type evaluatorDeps struct {
	store statestore.StateStore
}

// OfferEvaluator is the top-level orchestrator. One instance is reused
// across many evaluation calls; each call owns its own
// ResourcePool/PodInfoBuilder instances
type OfferEvaluator struct {
	deps          evaluatorDeps
	cfg           config.Config
	opts          Options
	pipelineCache *cache.Cache
}

// NewOfferEvaluator constructs an OfferEvaluator. store is the external
// state-store collaborator; cfg holds the initialization-time options
// the caller configures once up front.
func NewOfferEvaluator(store statestore.StateStore, cfg config.Config, opts ...Option) *OfferEvaluator {
	return &OfferEvaluator{
		deps:          evaluatorDeps{store: store},
		cfg:           cfg,
		opts:          resolveOptions(opts...),
		pipelineCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Evaluate runs the full pipeline for req against offers, in order,
// returning the first offer's recommendations once a full pass
// succeeds. An empty, nil-error result means no offer satisfied the
// requirement this cycle; the caller declines all offers.
func (e *OfferEvaluator) Evaluate(ctx context.Context, req podspec.PodInstanceRequirement, offers []mesosres.Offer) ([]recommendation.Recommendation, error) {
	start := e.opts.Clock.Now()
	defer func() {
		metrics.EvaluationDurationSeconds.Observe(e.opts.Clock.Since(start).Seconds())
	}()

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", evalerrors.ErrInvalidRequirement, err)
	}

	// cycleID labels this evaluation cycle end to end in logs, the same
	// role types.UID plays for AltScheduler.uuid.
	cycleID := types.UID(e.opts.UUIDSource.New())
	ctx = ctrllog.IntoContext(ctx, e.opts.Log)
	logger := ctrllog.FromContext(ctx).WithValues("cycleID", cycleID, "pod", klog.KRef("", req.PodInstance.Name))

	cls, err := e.classifyCached(ctx, req)
	if err != nil {
		if errors.Is(err, evalerrors.ErrPersistedTaskMissing) {
			logger.Info("persisted task missing, declining all offers this cycle", "reason", err.Error())
			metrics.OffersEvaluatedTotal.WithLabelValues("rejected").Add(float64(len(offers)))
			return nil, nil
		}
		return nil, err
	}

	lastLog := e.opts.Clock.Now()
	for i, offer := range offers {
		if e.opts.Clock.Since(lastLog) > e.opts.LogThrottle {
			logger.Info("evaluating offers", "offersEvaluated", i, "offersTotal", len(offers))
			lastLog = e.opts.Clock.Now()
		}

		pool := resourcepool.New(offer.Resources, resourcepool.WithLogger(logger))
		builder := podinfobuilder.New(req.PodInstance, e.cfg.ServiceName, e.cfg.TargetConfigID, cls.ExistingExecutorID)

		pipeline := buildPipeline(req, cls, offer, e.opts.UUIDSource)
		outcome, recs := pipeline.Run(pool, builder)

		for _, child := range outcome.Children {
			status := "passed"
			if !child.Passing {
				status = "failed"
			}
			metrics.StageOutcomesTotal.WithLabelValues(child.StageName, status).Inc()
		}

		if outcome.Passing {
			metrics.OffersEvaluatedTotal.WithLabelValues("accepted").Inc()
			return recs, nil
		}
		logger.V(1).Info("offer rejected", "offer", klog.KRef("", offer.ID), "reasons", outcome.Format())
		metrics.OffersEvaluatedTotal.WithLabelValues("rejected").Inc()
	}

	return nil, nil
}

// classifyCached wraps classify with a per-call cache: the pod's
// classification is computed once per distinct PodInstanceRequirement
// and reused across every offer tried in the same call, the same
// cache-to-avoid-recompute role cachedPodData plays in alt_scheduler.go.
func (e *OfferEvaluator) classifyCached(ctx context.Context, req podspec.PodInstanceRequirement) (classification, error) {
	key, err := hashstructure.Hash(req, hashstructure.FormatV2, nil)
	if err != nil {
		return classify(ctx, req, e.deps)
	}
	cacheKey := fmt.Sprintf("%d", key)
	if cached, ok := e.pipelineCache.Get(cacheKey); ok {
		return cached.(classification), nil
	}
	cls, err := classify(ctx, req, e.deps)
	if err != nil {
		return classification{}, err
	}
	e.pipelineCache.SetDefault(cacheKey, cls)
	return cls, nil
}
