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
	"time"

	"github.com/awslabs/operatorpkg/option"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"github.com/mesosphere/offer-evaluator/pkg/uuidgen"
)

// Options holds the constructor-time knobs option.Resolve assembles for
// NewOfferEvaluator, mirroring AltScheduler's opts ...Options parameter.
type Options struct {
	Clock       clock.Clock
	UUIDSource  uuidgen.Source
	Log         logr.Logger
	LogThrottle time.Duration
}

// Option configures an Options value via option.Resolve.
type Option = option.Function[Options]

// WithClock injects the clock the orchestrator's offer-loop progress log
// throttle uses, the same inject-for-testability treatment applied to
// wall-clock time.
func WithClock(c clock.Clock) Option {
	return func(o *Options) { o.Clock = c }
}

// WithUUIDSource injects the UUID source every RESERVE/CREATE label is
// minted from
func WithUUIDSource(s uuidgen.Source) Option {
	return func(o *Options) { o.UUIDSource = s }
}

// WithLogger injects the logger the orchestrator and every ResourcePool
// it constructs record decisions through.
func WithLogger(log logr.Logger) Option {
	return func(o *Options) { o.Log = log }
}

// WithLogThrottle sets the minimum interval between offer-loop progress
// log lines (mirrors alt_scheduler.go's one-minute lastLogTime throttle).
func WithLogThrottle(d time.Duration) Option {
	return func(o *Options) { o.LogThrottle = d }
}

func resolveOptions(opts ...Option) Options {
	resolved := option.Resolve(opts...)
	if resolved.Clock == nil {
		resolved.Clock = clock.RealClock{}
	}
	if resolved.UUIDSource == nil {
		resolved.UUIDSource = uuidgen.Random{}
	}
	if resolved.LogThrottle == 0 {
		resolved.LogThrottle = time.Minute
	}
	if resolved.Log.GetSink() == nil {
		resolved.Log = zapr.NewLogger(zap.Must(zap.NewProduction()))
	}
	return *resolved
}
