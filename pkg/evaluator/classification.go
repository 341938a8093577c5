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
	"context"
	"fmt"

	"github.com/mesosphere/offer-evaluator/pkg/evalerrors"
	"github.com/mesosphere/offer-evaluator/pkg/mapper"
	"github.com/mesosphere/offer-evaluator/pkg/podspec"
	"github.com/mesosphere/offer-evaluator/pkg/recovery"
	"github.com/mesosphere/offer-evaluator/pkg/taskinfo"
)

// classification is the pod-level decision the state machine makes
// once, up front, and reuses for every offer tried in the same
// evaluation call (the role patrickmn/go-cache's pipelineCache plays,
// mirroring alt_scheduler.go's cachedPodData).
type classification struct {
	// PermanentlyFailed pods are treated as new: their previous
	// reservations are left alone by the core.
	PermanentlyFailed bool

	// Existing is true when at least one persisted task carries a
	// resource id
	Existing bool

	// PersistedByTask holds, for an existing pod, each task's persisted
	// TaskInfo keyed by task name.
	PersistedByTask map[string]taskinfo.TaskInfo

	// MapResults holds, for an existing pod, each task's mapper.Result
	// (matched resources + orphans), keyed by task name.
	MapResults map[string]mapper.Result

	// ExistingExecutorID is the executor id carried by any persisted
	// task, or "" if none is known yet: a running task whose executor
	// id is not yet known is treated as "no known executor", and a
	// fresh one is generated; the core still attempts the LAUNCH rather
	// than waiting for a status update.
	ExistingExecutorID string
}

// classify runs the pod-classification state machine once for req:
// permanent failure, then new-vs-existing, then (for existing pods) the
// per-task resource mapping.
func classify(ctx context.Context, req podspec.PodInstanceRequirement, deps evaluatorDeps) (classification, error) {
	failed, err := recovery.Classify(ctx, req, deps.store)
	if err != nil {
		return classification{}, fmt.Errorf("classify %q: %w", req.PodInstance.Name, err)
	}
	if failed {
		return classification{PermanentlyFailed: true}, nil
	}

	persisted, err := deps.store.FetchTasks(ctx, req.PodInstance.Name)
	if err != nil {
		return classification{}, fmt.Errorf("fetch persisted tasks for %q: %w", req.PodInstance.Name, evalerrors.ErrStateStoreFailure)
	}

	persistedByTask := make(map[string]taskinfo.TaskInfo, len(persisted))
	for _, t := range persisted {
		persistedByTask[t.Name] = t
	}

	existing := false
	executorID := ""
	for _, t := range persisted {
		if t.HasAnyResourceID() {
			existing = true
		}
		if t.ExecutorID != "" && executorID == "" {
			executorID = t.ExecutorID
		}
	}
	if !existing {
		return classification{Existing: false}, nil
	}

	mapResults := make(map[string]mapper.Result, len(req.PodInstance.Tasks))
	for _, task := range req.PodInstance.Tasks {
		pt, ok := persistedByTask[task.Name]
		if !ok {
			return classification{}, fmt.Errorf("task %q: %w", task.Name, evalerrors.ErrPersistedTaskMissing)
		}
		mapResults[task.Name] = mapper.Map(task, pt)
	}

	return classification{
		Existing:           true,
		PersistedByTask:    persistedByTask,
		MapResults:         mapResults,
		ExistingExecutorID: executorID,
	}, nil
}
