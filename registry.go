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
	"fmt"
	"strings"

	"waymark.dev/router/route"
)

// HTTP verbs accepted at registration time. VerbAny is the wildcard verb
// used as a fallback when the requested verb has no metadata of its own.
const VerbAny = "ANY"

var allowedVerbs = map[string]struct{}{
	"GET": {}, "POST": {}, "PUT": {}, "DELETE": {},
	"PATCH": {}, "OPTIONS": {}, "HEAD": {}, VerbAny: {},
}

// normalizeVerb upper-cases verb and rejects anything outside the accepted set.
func normalizeVerb(verb string) (string, error) {
	v := strings.ToUpper(verb)
	if _, ok := allowedVerbs[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidVerb, verb)
	}

	return v, nil
}

// edge is a static child keyed by its literal segment. Children are scanned
// linearly during traversal; route sets are small enough that a linear scan
// beats map hashing.
type edge struct {
	label string
	node  *node
}

// node is one segment position in the route tree. A node holds its static
// children, at most one parameter-typed child, the id of the group it was
// registered under, and per-verb metadata on terminal nodes.
type node struct {
	edges        []edge                 // Static children, matched before the parameter child
	paramChild   *node                  // The single parameter-typed child, if any
	paramSegment string                 // Literal placeholder registered for paramChild (e.g. "{id?}")
	param        *route.Param           // Set when this node itself is a parameter child
	metaByVerb   map[string]*route.Meta // Per-verb metadata; non-nil only on terminal nodes
	groupID      string                 // Group the terminal registration belongs to, or ""
	pattern      string                 // Full registered pattern, set on terminal nodes
}

// findChild returns the static child for the given segment, or nil.
func (n *node) findChild(segment string) *node {
	for i := range n.edges {
		if n.edges[i].label == segment {
			return n.edges[i].node
		}
	}

	return nil
}

// findOrCreateChild returns the static child for the given segment, creating it if needed.
func (n *node) findOrCreateChild(segment string) *node {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := &node{}
	n.edges = append(n.edges, edge{label: segment, node: child})

	return child
}

// setMeta attaches per-verb metadata to a terminal node.
func (n *node) setMeta(verb string, meta *route.Meta) {
	if n.metaByVerb == nil {
		n.metaByVerb = make(map[string]*route.Meta, 1)
	}
	n.metaByVerb[verb] = meta
}

// Pattern returns the full route pattern registered at this node, or ""
// for intermediate nodes.
func (n *node) Pattern() string {
	return n.pattern
}

// Registry owns the route tree. Routes are inserted segment by segment
// during the configuration phase; matching is a read-only walk.
//
// The registry offers no internal locking: construction and serving are
// strictly sequential phases. The Router wraps both sides in a
// reader-writer lock so dynamic registration stays safe.
type Registry struct {
	root       *node
	errorPages map[int]route.Handler
}

// NewRegistry creates an empty route registry.
func NewRegistry() *Registry {
	return &Registry{
		root:       &node{},
		errorPages: make(map[int]route.Handler),
	}
}

// splitPath trims surrounding slashes and splits path into segments.
// The root path yields no segments.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}

// Add inserts a route pattern for the given verb, walking and creating
// nodes segment by segment. The terminal node records the group id and the
// per-verb metadata.
//
// Registration fails when the verb is not recognized, when a second,
// differently named parameter is registered at a position that already has
// one, or when a greedy parameter is not the final segment.
func (reg *Registry) Add(path, verb string, meta *route.Meta, groupID string) error {
	v, err := normalizeVerb(verb)
	if err != nil {
		return err
	}

	segments := splitPath(path)
	current := reg.root

	for i, segment := range segments {
		p, ok := route.ParseParam(segment)
		if !ok {
			current = current.findOrCreateChild(segment)
			continue
		}

		if p.Greedy && i != len(segments)-1 {
			return fmt.Errorf("%w: greedy %s must terminate the pattern %q", ErrParameterConflict, p, path)
		}
		if current.paramChild != nil {
			if current.paramSegment != segment {
				return fmt.Errorf("%w: %s conflicts with %s in %q",
					ErrParameterConflict, segment, current.paramSegment, path)
			}
			current = current.paramChild
			continue
		}

		child := &node{param: &p}
		current.paramChild = child
		current.paramSegment = segment
		current = child
	}

	current.groupID = groupID
	current.pattern = "/" + strings.Join(segments, "/")
	current.setMeta(v, meta)

	return nil
}

// findNode walks the tree for the given request path. At each step an exact
// static child wins; otherwise the parameter child, if any, binds the raw
// segment string (greedy parameters bind the joined remainder). After the
// input is consumed the walk descends through trailing optional parameter
// children, binding nothing.
func (reg *Registry) findNode(path string) (*node, map[string]string, bool) {
	segments := splitPath(path)
	current := reg.root
	params := make(map[string]string)

	for i, segment := range segments {
		if next := current.findChild(segment); next != nil {
			current = next
			continue
		}

		child := current.paramChild
		if child == nil {
			return nil, nil, false
		}
		if child.param.Greedy {
			params[child.param.Name] = strings.Join(segments[i:], "/")
			current = child

			break
		}
		params[child.param.Name] = segment
		current = child
	}

	// Trailing optional parameters with no supplied value.
	for current.paramChild != nil && current.paramChild.param.Optional {
		current = current.paramChild
	}

	return current, params, true
}

// MatchPath resolves a (path, verb) pair to a RouteContext.
//
// It fails with ErrNotFound when no tree path matches or the matched node
// carries no metadata at all, and with ErrMethodNotAllowed when the node
// exists but neither the requested verb nor the ANY fallback is registered.
func (reg *Registry) MatchPath(path, verb string) (*RouteContext, error) {
	n, params, ok := reg.findNode(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if len(n.metaByVerb) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	v := strings.ToUpper(verb)
	meta := n.metaByVerb[v]
	if meta == nil {
		meta = n.metaByVerb[VerbAny]
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, verb, path)
	}

	return newRouteContext(path, v, n, meta, params), nil
}

// SetErrorPage registers a handler for a failure status code. The error-page
// table lives beside the tree: error contexts carry no node or metadata.
func (reg *Registry) SetErrorPage(status int, handler route.Handler) {
	reg.errorPages[status] = handler
}

// ErrorPage returns the handler registered for a status code, if any.
func (reg *Registry) ErrorPage(status int) (route.Handler, bool) {
	h, ok := reg.errorPages[status]

	return h, ok
}

// walk visits every terminal node in the tree, in registration order of
// edges, and calls fn with each (verb, node) pair.
func (reg *Registry) walk(fn func(verb string, n *node)) {
	var visit func(n *node)
	visit = func(n *node) {
		for verb := range n.metaByVerb {
			fn(verb, n)
		}
		for i := range n.edges {
			visit(n.edges[i].node)
		}
		if n.paramChild != nil {
			visit(n.paramChild)
		}
	}
	visit(reg.root)
}
