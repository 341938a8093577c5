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

// Package evalerrors defines the error-kind taxonomy as sentinel errors
// usable with errors.Is/errors.As. The orchestrator never surfaces
// OfferInsufficient to its caller (it is recovered locally by moving to
// the next offer); every other kind is fatal and propagates.
package evalerrors

import "errors"

// Sentinel errors for the error kinds this taxonomy enumerates. Wrap
// with fmt.Errorf("...: %w", ErrX) to attach context (offer index, stage
// name, reason) while remaining matchable with errors.Is.
var (
	// ErrInvalidRequirement means the pod requirement is internally
	// inconsistent (no tasks, duplicate names, missing resource set).
	// Fatal to the call.
	ErrInvalidRequirement = errors.New("invalid pod instance requirement")

	// ErrStateStoreFailure means the state store could not be read.
	// Fatal to the call.
	ErrStateStoreFailure = errors.New("state store failure")

	// ErrOfferInsufficient means at least one stage failed for the
	// offer currently being evaluated. Recovered locally: the
	// orchestrator continues to the next offer.
	ErrOfferInsufficient = errors.New("offer insufficient")

	// ErrPersistedTaskMissing means an existing pod's TaskInfo lookup
	// returned nothing. Treated like ErrOfferInsufficient; the recovery
	// path (external) is responsible for reclassifying the pod.
	ErrPersistedTaskMissing = errors.New("persisted task missing")

	// ErrValueKindMismatch means Value arithmetic was attempted across
	// different kinds. Programmer error; fails hard. In practice this
	// surfaces as a panic (see pkg/values) rather than this error, since
	// it can never occur for well-formed resources; the sentinel exists
	// so callers that do choose to recover the panic can classify it.
	ErrValueKindMismatch = errors.New("value kind mismatch")
)
