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

// metaFor builds throwaway metadata whose handler identifies the route in
// assertions.
func metaFor(t *testing.T, tag string) *route.Meta {
	t.Helper()
	m, err := route.NewMeta(route.Controller{Name: tag}, nil, nil)
	require.NoError(t, err)

	return m
}

// TestStaticBeforeParameter: a literal segment always wins over a
// same-position parameter.
func TestStaticBeforeParameter(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	require.NoError(t, reg.Add("/users/{id}", "GET", metaFor(t, "param"), ""))
	require.NoError(t, reg.Add("/users/active", "GET", metaFor(t, "static"), ""))

	rc, err := reg.MatchPath("/users/active", "GET")
	require.NoError(t, err)
	assert.Equal(t, route.Controller{Name: "static"}, rc.Handler())
	assert.Empty(t, rc.Params())

	rc, err = reg.MatchPath("/users/42", "GET")
	require.NoError(t, err)
	assert.Equal(t, route.Controller{Name: "param"}, rc.Handler())
	assert.Equal(t, "42", rc.Param("id"))
}

// TestSingleParameterPerPosition: registering a second, differently named
// parameter under the same parent fails at registration time.
func TestSingleParameterPerPosition(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	require.NoError(t, reg.Add("/items/{id}", "GET", metaFor(t, "a"), ""))
	err := reg.Add("/items/{slug}", "POST", metaFor(t, "b"), "")
	assert.ErrorIs(t, err, ErrParameterConflict)

	// The same placeholder reuses the node and is fine.
	assert.NoError(t, reg.Add("/items/{id}", "POST", metaFor(t, "c"), ""))
}

// TestTrailingOptionalParameter: /posts/{id?} matches both with and without
// the trailing segment.
func TestTrailingOptionalParameter(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	require.NoError(t, reg.Add("/posts/{id?}", "GET", metaFor(t, "posts"), ""))

	rc, err := reg.MatchPath("/posts", "GET")
	require.NoError(t, err)
	assert.Empty(t, rc.Params())

	rc, err = reg.MatchPath("/posts/5", "GET")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "5"}, rc.Params())
}

// TestChainedOptionalParameters: the walk descends through several pending
// optional parameters when the input runs out.
func TestChainedOptionalParameters(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	require.NoError(t, reg.Add("/archive/{year?}/{month?}", "GET", metaFor(t, "archive"), ""))

	rc, err := reg.MatchPath("/archive", "GET")
	require.NoError(t, err)
	assert.Empty(t, rc.Params())

	rc, err = reg.MatchPath("/archive/2026", "GET")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"year": "2026"}, rc.Params())

	rc, err = reg.MatchPath("/archive/2026/08", "GET")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"year": "2026", "month": "08"}, rc.Params())
}

// TestGreedyParameter: {name*} binds the joined remainder of the path and
// also matches nothing at all.
func TestGreedyParameter(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	require.NoError(t, reg.Add("/static/{filepath*}", "GET", metaFor(t, "static"), ""))

	rc, err := reg.MatchPath("/static/css/app.css", "GET")
	require.NoError(t, err)
	assert.Equal(t, "css/app.css", rc.Param("filepath"))

	rc, err = reg.MatchPath("/static", "GET")
	require.NoError(t, err)
	assert.Empty(t, rc.Params())
}

// TestGreedyMustTerminate: a greedy parameter followed by more segments is
// a registration error.
func TestGreedyMustTerminate(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	err := reg.Add("/files/{rest*}/meta", "GET", metaFor(t, "x"), "")
	assert.ErrorIs(t, err, ErrParameterConflict)
}

// TestVerbFallbackToAny: an ANY registration serves any request verb.
func TestVerbFallbackToAny(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	require.NoError(t, reg.Add("/ping", "ANY", metaFor(t, "ping"), ""))

	for _, verb := range []string{"GET", "POST", "DELETE"} {
		rc, err := reg.MatchPath("/ping", verb)
		require.NoError(t, err, "verb %s", verb)
		assert.Equal(t, route.Controller{Name: "ping"}, rc.Handler())
	}
}

// TestMethodNotAllowed: a path registered for other verbs yields 405
// semantics, not 404.
func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	require.NoError(t, reg.Add("/x", "GET", metaFor(t, "x"), ""))

	_, err := reg.MatchPath("/x", "POST")
	assert.ErrorIs(t, err, ErrMethodNotAllowed)

	_, err = reg.MatchPath("/y", "POST")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestIntermediateNodeIsNotFound: a node that only exists as a branch point
// carries no metadata and must not match.
func TestIntermediateNodeIsNotFound(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	require.NoError(t, reg.Add("/api/users", "GET", metaFor(t, "users"), ""))

	_, err := reg.MatchPath("/api", "GET")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestRootPath: the empty pattern registers and matches the root.
func TestRootPath(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	require.NoError(t, reg.Add("/", "GET", metaFor(t, "root"), ""))

	rc, err := reg.MatchPath("/", "GET")
	require.NoError(t, err)
	assert.Equal(t, "/", rc.Pattern())
	assert.Equal(t, route.Controller{Name: "root"}, rc.Handler())
}

// TestInvalidVerb: unrecognized verbs fail at registration.
func TestInvalidVerb(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	err := reg.Add("/x", "FETCH", metaFor(t, "x"), "")
	assert.ErrorIs(t, err, ErrInvalidVerb)
}

// TestVerbNormalization: verbs are case-insensitive on both sides.
func TestVerbNormalization(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	require.NoError(t, reg.Add("/x", "get", metaFor(t, "x"), ""))

	rc, err := reg.MatchPath("/x", "get")
	require.NoError(t, err)
	assert.Equal(t, "GET", rc.Verb())
}

// TestParameterBindsRawString: extracted values stay uncoerced strings.
func TestParameterBindsRawString(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	require.NoError(t, reg.Add("/users/{id}", "GET", metaFor(t, "u"), ""))

	rc, err := reg.MatchPath("/users/007", "GET")
	require.NoError(t, err)
	assert.Equal(t, "007", rc.Param("id"))
}

// TestErrorPageTable: the status-keyed table lives beside the tree.
func TestErrorPageTable(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	reg.SetErrorPage(404, route.Controller{Name: "errors"})

	h, ok := reg.ErrorPage(404)
	require.True(t, ok)
	assert.Equal(t, route.Controller{Name: "errors"}, h)

	_, ok = reg.ErrorPage(500)
	assert.False(t, ok)
}
