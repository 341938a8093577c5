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

// Package config holds the options recognized at initialization. The
// core never reads these from the environment itself; parsing env/YAML
// into a Config is the external collaborator's job
package config

import "github.com/imdario/mergo"

// SchedulerFlags mirrors the `schedulerFlags` record.
type SchedulerFlags struct {
	APIPort       int
	ExecutorURI   string
	LibMesosURI   string
	SleepDuration string
	FrameworkName string
}

// Config is the full set of options recognized at initialization.
type Config struct {
	ServiceName    string
	TargetConfigID string // UUID
	SchedulerFlags SchedulerFlags
}

// defaults mirrors the values this module's default-config layer applies
// onto caller-supplied overrides before construction.
func defaults() Config {
	return Config{
		SchedulerFlags: SchedulerFlags{
			APIPort:       16390,
			SleepDuration: "5s",
			FrameworkName: "offer-evaluator",
		},
	}
}

// WithDefaults layers c onto the package defaults using
// github.com/imdario/mergo, leaving any field c explicitly sets
// untouched.
func WithDefaults(c Config) (Config, error) {
	out := defaults()
	if err := mergo.Merge(&out, c, mergo.WithOverride); err != nil {
		return Config{}, err
	}
	return out, nil
}
