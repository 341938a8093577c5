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
	"strconv"
	"strings"

	"github.com/mesosphere/offer-evaluator/pkg/mesosres"
	"github.com/mesosphere/offer-evaluator/pkg/recommendation"
	"github.com/mesosphere/offer-evaluator/pkg/resourcepool"
	"github.com/mesosphere/offer-evaluator/pkg/uuidgen"
	"github.com/mesosphere/offer-evaluator/pkg/values"
)

// resolveRole defaults an empty spec role to the Mesos default role.
func resolveRole(role string) string {
	if role == "" {
		return mesosres.DefaultRole
	}
	return role
}

// portEnvName computes the PORT_<NAME> environment variable name a port
// allocation is recorded under.
func portEnvName(specName string) string {
	return "PORT_" + strings.ToUpper(specName)
}

func formatPort(port int64) string {
	return strconv.FormatInt(port, 10)
}

// portRequest describes one port to reserve, shared by
// PortEvaluationStage and NamedVIPEvaluationStage so both go through the
// same pick-lowest-or-rebind logic
type portRequest struct {
	specName           string
	role, principal    string
	dynamic            bool
	staticPort         int64
	offerID            string
	uuid               uuidgen.Source
	existingResourceID string
	existingValue      values.Value
	extraLabels        mesosres.Labels
}

// consumePort reserves a port per portRequest: static ports reserve the
// exact requested port, dynamic ports pick the lowest one available, and
// an existing resource id rebinds the previously-assigned port instead of
// reserving a new one. It returns the finalized resource, the port number
// assigned, any RESERVE recommendation to emit, and a failure reason
// (empty on success).
func consumePort(pool *resourcepool.ResourcePool, req portRequest) (mesosres.Resource, int64, *recommendation.Recommendation, string) {
	if req.existingResourceID != "" {
		got, ok := pool.Consume(resourcepool.ConsumeRequest{
			Mode: resourcepool.ExpectsResource, Name: "ports", Desired: req.existingValue, ResourceID: req.existingResourceID,
		})
		if !ok {
			return mesosres.Resource{}, 0, nil, "expected reserved port not present in offer"
		}
		port, _ := got.Value.LowestAvailablePort()
		return got, port, nil, ""
	}

	desired := values.NewRanges(values.Range{Lo: req.staticPort, Hi: req.staticPort})
	if req.dynamic {
		available, ok := pool.Peek(req.role, "ports")
		if !ok || available.IsZero() {
			return mesosres.Resource{}, 0, nil, "no ports offered for role " + req.role
		}
		port, ok := available.LowestAvailablePort()
		if !ok {
			return mesosres.Resource{}, 0, nil, "no ports available to assign dynamically"
		}
		desired = values.NewRanges(values.Range{Lo: port, Hi: port})
	}

	got, ok := pool.Consume(resourcepool.ConsumeRequest{
		Mode: resourcepool.DivisibleReserve, Name: "ports", Role: req.role, Desired: desired,
	})
	if !ok {
		return mesosres.Resource{}, 0, nil, fmt.Sprintf("port %s unavailable", desired)
	}
	labels := mesosres.Labels{}.With(mesosres.ResourceIDLabel, req.uuid.New())
	if req.dynamic {
		labels = labels.With("dynamic_port", req.specName)
	}
	for _, l := range req.extraLabels {
		labels = labels.With(l.Key, l.Value)
	}
	got = got.WithReservation(mesosres.ReservationEntry{Role: req.role, Principal: req.principal, Labels: labels})
	port, _ := got.Value.LowestAvailablePort()
	rec := recommendation.NewReserve(req.offerID, got)
	return got, port, &rec, ""
}
