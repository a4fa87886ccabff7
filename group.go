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
	"strings"

	"github.com/google/uuid"

	"waymark.dev/router/route"
)

// GroupOptions configures one group frame: a shared path prefix plus the
// middleware declarations and attributes applied to every route registered
// inside the group.
type GroupOptions struct {
	Prefix      string
	Middlewares []route.Middleware
	Attributes  map[string]any
}

// groupFrame is one active group scope. Frames store the accumulated
// middleware and attribute lists of their whole ancestry, so a matched
// leaf's single group id resolves the full nested inheritance.
type groupFrame struct {
	id          string
	prefix      string
	middlewares []route.Middleware
	attributes  map[string]any
}

// GroupStack tracks the group scopes active during bulk route registration.
//
// Frames form a stack: the effective path prefix for registration is the
// concatenation of every active frame's prefix. Each frame also persists in
// a flat side table keyed by its id, so middleware and attribute lookups by
// id keep working after the frame is popped.
type GroupStack struct {
	stack []*groupFrame
	byID  map[string]*groupFrame
}

// NewGroupStack creates an empty group stack.
func NewGroupStack() *GroupStack {
	return &GroupStack{byID: make(map[string]*groupFrame)}
}

// Push opens a new group scope and returns its generated id.
//
// The new frame's stored middleware and attribute lists are seeded with the
// parent frame's accumulated lists, so inheritance is transitive across
// nested groups: a route three groups deep inherits all three scopes
// through its single group id.
func (g *GroupStack) Push(opts GroupOptions) string {
	frame := &groupFrame{
		id:         uuid.NewString(),
		prefix:     opts.Prefix,
		attributes: make(map[string]any),
	}

	if parent := g.top(); parent != nil {
		frame.middlewares = append(frame.middlewares, parent.middlewares...)
		maps.Copy(frame.attributes, parent.attributes)
	}
	frame.middlewares = append(frame.middlewares, opts.Middlewares...)
	maps.Copy(frame.attributes, opts.Attributes)

	g.stack = append(g.stack, frame)
	g.byID[frame.id] = frame

	return frame.id
}

// Pop closes the innermost group scope. The side-table entry remains so the
// popped frame stays queryable by id.
func (g *GroupStack) Pop() {
	if len(g.stack) == 0 {
		return
	}
	g.stack = g.stack[:len(g.stack)-1]
}

// ActiveID returns the id of the innermost active frame, or "" outside of
// any group.
func (g *GroupStack) ActiveID() string {
	if frame := g.top(); frame != nil {
		return frame.id
	}

	return ""
}

// GroupedPath prepends the prefixes of every active frame, outermost first,
// to the given path, normalizing slashes along the way.
func (g *GroupStack) GroupedPath(path string) string {
	parts := make([]string, 0, len(g.stack)+1)
	for _, frame := range g.stack {
		if p := strings.Trim(frame.prefix, "/"); p != "" {
			parts = append(parts, p)
		}
	}
	if p := strings.Trim(path, "/"); p != "" {
		parts = append(parts, p)
	}

	return "/" + strings.Join(parts, "/")
}

// Middlewares returns the middleware declarations stored for the frame with
// the given id. The list already carries the frame's whole ancestry; the
// stack is not re-walked at match time.
func (g *GroupStack) Middlewares(id string) []route.Middleware {
	if frame, ok := g.byID[id]; ok {
		return frame.middlewares
	}

	return nil
}

// Attributes returns the attribute bag stored for the frame with the given id.
func (g *GroupStack) Attributes(id string) map[string]any {
	if frame, ok := g.byID[id]; ok {
		return frame.attributes
	}

	return nil
}

func (g *GroupStack) top() *groupFrame {
	if len(g.stack) == 0 {
		return nil
	}

	return g.stack[len(g.stack)-1]
}
