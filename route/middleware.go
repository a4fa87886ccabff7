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

package route

// Middleware names a pipeline middleware together with its execution
// priority. The router only selects and orders middleware; execution happens
// in the external pipeline.
//
// Lower priorities run earlier. Entries registered without an explicit
// priority default to 0 and tie-break by registration order.
type Middleware struct {
	Name     string
	Priority int
}

// Use declares a middleware with the default priority 0.
func Use(name string) Middleware {
	return Middleware{Name: name}
}

// UseWithPriority declares a middleware with an explicit priority.
// Lower values run earlier in the chain.
func UseWithPriority(name string, priority int) Middleware {
	return Middleware{Name: name, Priority: priority}
}

// Names returns the plain name list of the given middleware declarations,
// in declaration order.
func Names(middlewares []Middleware) []string {
	names := make([]string, 0, len(middlewares))
	for _, m := range middlewares {
		names = append(names, m.Name)
	}

	return names
}
