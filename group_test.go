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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waymark.dev/router/route"
)

// TestGroupedPathComposition: every active frame's prefix composes, in
// push order, with slash normalization.
func TestGroupedPathComposition(t *testing.T) {
	t.Parallel()
	g := NewGroupStack()

	g.Push(GroupOptions{Prefix: "/api"})
	g.Push(GroupOptions{Prefix: "v1/"})

	assert.Equal(t, "/api/v1/users", g.GroupedPath("/users"))
	assert.Equal(t, "/api/v1", g.GroupedPath(""))
	assert.Equal(t, "/api/v1", g.GroupedPath("/"))

	g.Pop()
	assert.Equal(t, "/api/users", g.GroupedPath("users"))

	g.Pop()
	assert.Equal(t, "/users", g.GroupedPath("/users"))
	assert.Equal(t, "/", g.GroupedPath("/"))
}

// TestGroupIDsAreUnique: every push mints a fresh id.
func TestGroupIDsAreUnique(t *testing.T) {
	t.Parallel()
	g := NewGroupStack()

	a := g.Push(GroupOptions{})
	g.Pop()
	b := g.Push(GroupOptions{})

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, b, g.ActiveID())
}

// TestFramePersistsAfterPop: middleware and attribute lookups by id keep
// working after the frame leaves the stack.
func TestFramePersistsAfterPop(t *testing.T) {
	t.Parallel()
	g := NewGroupStack()

	id := g.Push(GroupOptions{
		Middlewares: []route.Middleware{route.Use("auth")},
		Attributes:  map[string]any{"scope": "admin"},
	})
	g.Pop()

	assert.Equal(t, []route.Middleware{route.Use("auth")}, g.Middlewares(id))
	assert.Equal(t, map[string]any{"scope": "admin"}, g.Attributes(id))
	assert.Empty(t, g.ActiveID())
}

// TestTransitiveInheritance: a frame pushed inside another frame carries
// the parent's accumulated middleware and attributes, so a leaf's single
// group id yields the whole ancestry.
func TestTransitiveInheritance(t *testing.T) {
	t.Parallel()
	g := NewGroupStack()

	g.Push(GroupOptions{
		Prefix:      "/api",
		Middlewares: []route.Middleware{route.Use("auth")},
		Attributes:  map[string]any{"tier": "outer", "audit": true},
	})
	inner := g.Push(GroupOptions{
		Prefix:      "/v1",
		Middlewares: []route.Middleware{route.UseWithPriority("throttle", 10)},
		Attributes:  map[string]any{"tier": "inner"},
	})

	require.Equal(t, inner, g.ActiveID())
	assert.Equal(t,
		[]route.Middleware{route.Use("auth"), route.UseWithPriority("throttle", 10)},
		g.Middlewares(inner))
	// The inner frame's own attributes override the inherited ones.
	assert.Equal(t, map[string]any{"tier": "inner", "audit": true}, g.Attributes(inner))
}

// TestUnknownGroupID: lookups with a never-pushed id return nothing.
func TestUnknownGroupID(t *testing.T) {
	t.Parallel()
	g := NewGroupStack()

	assert.Nil(t, g.Middlewares("nope"))
	assert.Nil(t, g.Attributes("nope"))
}
