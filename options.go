// Copyright 2026 The Waymark Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Router during construction. Options are validated by
// New; invalid configuration fails at boot, not at request time.
type Option func(*Router)

// WithBaseURL sets the base used by AbsoluteURL, e.g. "https://example.com".
func WithBaseURL(baseURL string) Option {
	return func(r *Router) {
		r.baseURL = baseURL
	}
}

// WithLogger sets the structured logger. Without it the router logs nowhere.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithPipelineFactory wires the external middleware pipeline used by Dispatch.
func WithPipelineFactory(factory PipelineFactory) Option {
	return func(r *Router) {
		r.dispatcher = NewDispatcher(factory)
	}
}

// WithMetrics registers the router's Prometheus collectors on reg and
// records resolution metrics for every Resolve call.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Router) {
		r.metricsRegistry = reg
	}
}
