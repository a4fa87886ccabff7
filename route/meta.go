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

import "maps"

// Meta is the handler record attached to one (tree node, HTTP verb) pair:
// the handler reference, the route-level middleware declarations, and the
// route-level attribute bag.
//
// A Meta is created at registration time and may still be enriched through
// the registration handle (attributes, middleware) before the tree starts
// serving; it is never mutated after that.
type Meta struct {
	handler     Handler
	middlewares []Middleware
	attributes  map[string]any
}

// NewMeta creates a Meta for the given handler. A nil handler is a
// configuration error: every registered route must be servable.
func NewMeta(handler Handler, middlewares []Middleware, attributes map[string]any) (*Meta, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}

	m := &Meta{
		handler:     handler,
		middlewares: append([]Middleware(nil), middlewares...),
		attributes:  make(map[string]any, len(attributes)),
	}
	maps.Copy(m.attributes, attributes)

	return m, nil
}

// Handler returns the handler reference.
func (m *Meta) Handler() Handler {
	return m.handler
}

// Middlewares returns the route-level middleware declarations in
// registration order. The returned slice must not be modified.
func (m *Meta) Middlewares() []Middleware {
	return m.middlewares
}

// Attributes returns the route-level attribute bag. The returned map must
// not be modified; use MergeAttributes instead.
func (m *Meta) Attributes() map[string]any {
	return m.attributes
}

// MergeAttributes copies the given entries into the attribute bag,
// overwriting existing keys.
func (m *Meta) MergeAttributes(attributes map[string]any) {
	maps.Copy(m.attributes, attributes)
}

// AppendMiddlewares adds middleware declarations after the existing ones.
func (m *Meta) AppendMiddlewares(middlewares ...Middleware) {
	m.middlewares = append(m.middlewares, middlewares...)
}
