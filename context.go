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
	"maps"
	"net/http"
	"sort"

	"waymark.dev/router/route"
)

// middlewareSet is the normalized form of a middleware list: a name →
// priority map that remembers insertion order so equal priorities keep a
// stable execution order.
type middlewareSet struct {
	order    []string
	priority map[string]int
}

// newMiddlewareSet normalizes middleware declarations into map form.
// A name declared twice keeps its first position but takes the last priority.
func newMiddlewareSet(middlewares []route.Middleware) *middlewareSet {
	s := &middlewareSet{priority: make(map[string]int, len(middlewares))}
	for _, m := range middlewares {
		if _, seen := s.priority[m.Name]; !seen {
			s.order = append(s.order, m.Name)
		}
		s.priority[m.Name] = m.Priority
	}

	return s
}

func (s *middlewareSet) clone() *middlewareSet {
	c := &middlewareSet{
		order:    append([]string(nil), s.order...),
		priority: make(map[string]int, len(s.priority)),
	}
	maps.Copy(c.priority, s.priority)

	return c
}

// merge folds incoming into the set: same-named entries take the incoming
// priority, incoming-only entries append after the existing ones.
func (s *middlewareSet) merge(incoming *middlewareSet) {
	for _, name := range incoming.order {
		if _, seen := s.priority[name]; !seen {
			s.order = append(s.order, name)
		}
		s.priority[name] = incoming.priority[name]
	}
}

// ordered returns the names sorted by ascending priority. The sort is
// stable, so equal priorities preserve insertion order. This is the
// execution-order contract consumed by the pipeline.
func (s *middlewareSet) ordered() []string {
	names := append([]string(nil), s.order...)
	sort.SliceStable(names, func(i, j int) bool {
		return s.priority[names[i]] < s.priority[names[j]]
	})

	return names
}

// RouteContext is the result of resolving a request to a route, or to an
// error page. It is immutable: every With… operation returns an independent
// clone and never touches the receiver.
type RouteContext struct {
	path        string
	verb        string
	statusCode  int
	node        *node
	meta        *route.Meta
	params      map[string]string
	handler     route.Handler
	middlewares *middlewareSet
	attributes  map[string]any
	routeName   string
}

// newRouteContext builds a successful match result. The middleware set and
// attribute bag start from the route-level metadata; group-level entries are
// merged in later by Resolve.
func newRouteContext(path, verb string, n *node, meta *route.Meta, params map[string]string) *RouteContext {
	attrs := make(map[string]any, len(meta.Attributes()))
	maps.Copy(attrs, meta.Attributes())

	return &RouteContext{
		path:        path,
		verb:        verb,
		statusCode:  http.StatusOK,
		node:        n,
		meta:        meta,
		params:      params,
		handler:     meta.Handler(),
		middlewares: newMiddlewareSet(meta.Middlewares()),
		attributes:  attrs,
	}
}

// newErrorContext builds a failed match result. Error contexts carry no
// node, metadata, parameters, or middleware.
func newErrorContext(path, verb string, status int, handler route.Handler) *RouteContext {
	return &RouteContext{
		path:        path,
		verb:        verb,
		statusCode:  status,
		params:      map[string]string{},
		handler:     handler,
		middlewares: &middlewareSet{priority: map[string]int{}},
		attributes:  map[string]any{},
	}
}

func (c *RouteContext) clone() *RouteContext {
	clone := *c
	clone.params = maps.Clone(c.params)
	clone.middlewares = c.middlewares.clone()
	clone.attributes = maps.Clone(c.attributes)

	return &clone
}

// Path returns the request path that was matched.
func (c *RouteContext) Path() string { return c.path }

// Verb returns the normalized request verb.
func (c *RouteContext) Verb() string { return c.verb }

// StatusCode returns the HTTP status of the resolution.
func (c *RouteContext) StatusCode() int { return c.statusCode }

// IsError reports whether this context represents a failed resolution.
func (c *RouteContext) IsError() bool { return c.statusCode >= 400 }

// Pattern returns the registered route pattern, or "" for error contexts.
func (c *RouteContext) Pattern() string {
	if c.node == nil {
		return ""
	}

	return c.node.Pattern()
}

// GroupID returns the id of the group the matched route was registered
// under, or "" when the route is ungrouped or the context is an error.
func (c *RouteContext) GroupID() string {
	if c.node == nil {
		return ""
	}

	return c.node.groupID
}

// Meta returns the matched per-verb metadata, or nil for error contexts.
func (c *RouteContext) Meta() *route.Meta { return c.meta }

// Handler returns the handler reference to execute.
func (c *RouteContext) Handler() route.Handler { return c.handler }

// Params returns the path parameters extracted during the tree walk.
// The returned map must not be modified.
func (c *RouteContext) Params() map[string]string { return c.params }

// Param returns one extracted path parameter, or "" when absent.
func (c *RouteContext) Param(name string) string { return c.params[name] }

// RouteName returns the name attached to the matched route, or "".
func (c *RouteContext) RouteName() string { return c.routeName }

// WithRouteName returns a clone carrying the given route name.
func (c *RouteContext) WithRouteName(name string) *RouteContext {
	clone := c.clone()
	clone.routeName = name

	return clone
}

// WithMergedMiddlewares returns a clone whose middleware set is the merge of
// the existing set with the incoming declarations: same-named entries take
// the incoming priority, incoming-only entries append after the existing
// ones. Existing-only entries are untouched.
func (c *RouteContext) WithMergedMiddlewares(incoming []route.Middleware) *RouteContext {
	clone := c.clone()
	clone.middlewares.merge(newMiddlewareSet(incoming))

	return clone
}

// WithMergedAttributes returns a clone whose attribute bag is the merge of
// the incoming entries with the existing ones. The direction is the inverse
// of the middleware merge: on key collisions the existing entry wins.
func (c *RouteContext) WithMergedAttributes(incoming map[string]any) *RouteContext {
	clone := c.clone()
	merged := make(map[string]any, len(incoming)+len(clone.attributes))
	maps.Copy(merged, incoming)
	maps.Copy(merged, clone.attributes)
	clone.attributes = merged

	return clone
}

// Middlewares returns the middleware names in execution order: ascending
// priority, ties in insertion order.
func (c *RouteContext) Middlewares() []string {
	return c.middlewares.ordered()
}

// Attributes returns the merged attribute bag. The returned map must not be
// modified.
func (c *RouteContext) Attributes() map[string]any { return c.attributes }

// Attribute returns one attribute value and whether it is present.
func (c *RouteContext) Attribute(key string) (any, bool) {
	v, ok := c.attributes[key]

	return v, ok
}
