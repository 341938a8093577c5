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

// Package recovery classifies a pod instance as permanently failed, via
// either the requirement's own RecoveryType or a state-store label
// query.
package recovery

import (
	"context"
	"fmt"

	"github.com/mesosphere/offer-evaluator/pkg/evalerrors"
	"github.com/mesosphere/offer-evaluator/pkg/podspec"
	"github.com/mesosphere/offer-evaluator/pkg/statestore"
)

// Classify reports whether req should be treated as permanently failed.
// A pod is permanently failed when its RecoveryType is explicitly
// PERMANENT, or when the state store's failure-label query says so.
//
// A permanently-failed pod is treated as new: its previous reservations
// are left alone by the core, cleanup is an external recovery path's job
func Classify(ctx context.Context, req podspec.PodInstanceRequirement, store statestore.StateStore) (bool, error) {
	if req.RecoveryType == podspec.RecoveryPermanent {
		return true, nil
	}
	failed, err := store.IsPermanentlyFailed(ctx, req.PodInstance.Name)
	if err != nil {
		return false, fmt.Errorf("recovery: query failure label for %q: %w", req.PodInstance.Name, evalerrors.ErrStateStoreFailure)
	}
	return failed, nil
}
