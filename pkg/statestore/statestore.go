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

// Package statestore declares the external state-store collaborator: the
// persistent key-value abstraction holding task records and status. The
// core only ever reads a snapshot at the start of an evaluation call and
// does not re-read mid-evaluation; this package defines the interface
// the core is built against, not an implementation.
package statestore

import (
	"context"

	"github.com/mesosphere/offer-evaluator/pkg/taskinfo"
)

// TaskStatus is the minimal status record FetchStatus returns. The core
// itself takes a pod's executor id from the persisted TaskInfo records
// and does not call FetchStatus.
type TaskStatus struct {
	TaskName   string
	ExecutorID string
	Running    bool
}

// StateStore is the read/write key-value abstraction named as an
// external collaborator: `fetchTasks`, `fetchStatus`, and a failure-label
// query.
type StateStore interface {
	// FetchTasks returns every persisted TaskInfo for the named pod
	// instance.
	FetchTasks(ctx context.Context, podInstanceName string) ([]taskinfo.TaskInfo, error)

	// FetchStatus returns the last known status of a task, or (zero,
	// false) if none has ever been recorded.
	FetchStatus(ctx context.Context, taskName string) (TaskStatus, bool, error)

	// IsPermanentlyFailed reports whether the pod instance is labeled
	// failed in the state store.
	IsPermanentlyFailed(ctx context.Context, podInstanceName string) (bool, error)
}
