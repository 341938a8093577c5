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

// Package recommendation holds the immutable decision values the core
// emits. The core never applies these itself; the driver (an external
// collaborator) turns them into calls against the master.
package recommendation

import (
	"fmt"

	"github.com/mesosphere/offer-evaluator/pkg/mesosres"
)

// Kind identifies the operation a Recommendation represents.
type Kind int

const (
	Reserve Kind = iota
	Unreserve
	Create
	Destroy
	Launch
)

func (k Kind) String() string {
	switch k {
	case Reserve:
		return "RESERVE"
	case Unreserve:
		return "UNRESERVE"
	case Create:
		return "CREATE"
	case Destroy:
		return "DESTROY"
	case Launch:
		return "LAUNCH"
	default:
		return "UNKNOWN"
	}
}

// Operation is the operation-specific payload a Recommendation carries.
// Exactly one field is populated, matching Kind.
type Operation struct {
	Reserve   *mesosres.Resource
	Unreserve *mesosres.Resource
	Create    *mesosres.Resource // the persistent-volume resource being created
	Destroy   *mesosres.Resource // the persistent-volume resource being destroyed
	Launch    *LaunchOperation
}

// LaunchOperation is the payload of a LAUNCH recommendation: the
// finalized task (or task group) ready to hand to the master.
type LaunchOperation struct {
	TaskName    string
	ExecutorID  string
	Resources   []mesosres.Resource
	Command     []string
	Environment map[string]string
}

// Recommendation is a single decision value the orchestrator returns.
// It always refers to the single offer currently being evaluated: no
// cross-offer operations.
type Recommendation struct {
	Kind      Kind
	OfferID   string
	Operation Operation
}

// NewReserve builds a RESERVE recommendation.
func NewReserve(offerID string, r mesosres.Resource) Recommendation {
	return Recommendation{Kind: Reserve, OfferID: offerID, Operation: Operation{Reserve: &r}}
}

// NewUnreserve builds an UNRESERVE recommendation.
func NewUnreserve(offerID string, r mesosres.Resource) Recommendation {
	return Recommendation{Kind: Unreserve, OfferID: offerID, Operation: Operation{Unreserve: &r}}
}

// NewCreate builds a CREATE recommendation for a newly persisted volume.
func NewCreate(offerID string, r mesosres.Resource) Recommendation {
	return Recommendation{Kind: Create, OfferID: offerID, Operation: Operation{Create: &r}}
}

// NewDestroy builds a DESTROY recommendation for an orphaned persistent
// volume.
func NewDestroy(offerID string, r mesosres.Resource) Recommendation {
	return Recommendation{Kind: Destroy, OfferID: offerID, Operation: Operation{Destroy: &r}}
}

// NewLaunch builds a LAUNCH recommendation.
func NewLaunch(offerID string, op LaunchOperation) Recommendation {
	return Recommendation{Kind: Launch, OfferID: offerID, Operation: Operation{Launch: &op}}
}

func (r Recommendation) String() string {
	return fmt.Sprintf("Recommendation{kind=%s offer=%s}", r.Kind, r.OfferID)
}
