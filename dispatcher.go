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
	"errors"

	"waymark.dev/router/route"
)

// ErrNoPipeline indicates a dispatch attempt without a configured pipeline factory.
var ErrNoPipeline = errors.New("no pipeline factory configured")

// Response is whatever the external pipeline produces for a request.
type Response any

// Pipeline is the execution contract of the external middleware runner.
// The router selects and orders middleware; the pipeline runs the ordered
// chain ending in the handler.
type Pipeline interface {
	Send(req RequestContext) Pipeline
	Through(middlewares []string) Pipeline
	Then(handler route.Handler) (Response, error)
}

// PipelineFactory builds one pipeline per dispatch.
type PipelineFactory interface {
	NewPipeline() Pipeline
}

// Dispatcher hands a resolved RouteContext to the external pipeline:
// build, send the request, run the ordered middleware chain, end in the
// handler. Error contexts dispatch the same way, so error pages pass
// through the same machinery as normal routes.
type Dispatcher struct {
	factory PipelineFactory
}

// NewDispatcher creates a dispatcher over the given pipeline factory.
func NewDispatcher(factory PipelineFactory) *Dispatcher {
	return &Dispatcher{factory: factory}
}

// Dispatch runs the resolved route through the pipeline.
func (d *Dispatcher) Dispatch(rc *RouteContext, req RequestContext) (Response, error) {
	if d == nil || d.factory == nil {
		return nil, ErrNoPipeline
	}

	return d.factory.NewPipeline().
		Send(req).
		Through(rc.Middlewares()).
		Then(rc.Handler())
}
