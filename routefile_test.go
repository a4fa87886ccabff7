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
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waymark.dev/router/route"
)

type usersController struct{}

func (usersController) Handle() {}
func (usersController) Show()   {}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestGroupByFile(t *testing.T) {
	t.Parallel()
	r := MustNew()
	r.RegisterController("users", &usersController{})

	path := writeFile(t, t.TempDir(), "api.yaml", `
prefix: /api
middlewares:
  - auth
  - name: throttle
    priority: 10
attributes:
  scope: admin
routes:
  - method: GET
    path: /users/{id}
    controller: users
    action: Show
    name: users.show
    middlewares:
      - trace
    attributes:
      audit: true
  - path: /users
    controller: users
`)
	require.NoError(t, r.GroupByFile(path))

	rc, err := r.Resolve(context.Background(), fakeRequest{path: "/api/users/7", verb: "GET"})
	require.NoError(t, err)
	assert.Equal(t, "users.show", rc.RouteName())
	assert.Equal(t, "7", rc.Param("id"))
	assert.Equal(t, route.ControllerMethod{Name: "users", Action: "Show"}, rc.Handler())
	assert.Equal(t, []string{"auth", "trace", "throttle"}, rc.Middlewares())
	assert.Equal(t, map[string]any{"scope": "admin", "audit": true}, rc.Attributes())

	// The method defaults to GET and the action-less form resolves to the
	// controller's Handle method.
	rc, err = r.Resolve(context.Background(), fakeRequest{path: "/api/users", verb: "GET"})
	require.NoError(t, err)
	assert.Equal(t, route.Controller{Name: "users"}, rc.Handler())
}

func TestGroupByFileUnknownController(t *testing.T) {
	t.Parallel()
	r := MustNew()

	path := writeFile(t, t.TempDir(), "bad.yaml", `
routes:
  - path: /x
    controller: nobody
`)
	assert.ErrorIs(t, r.GroupByFile(path), ErrInvalidHandler)
}

func TestGroupByFileMissingFields(t *testing.T) {
	t.Parallel()
	r := MustNew()

	path := writeFile(t, t.TempDir(), "bad.yaml", `
routes:
  - path: /x
`)
	assert.ErrorIs(t, r.GroupByFile(path), ErrRouteFileInvalid)
}

func TestGroupByFileMalformedYAML(t *testing.T) {
	t.Parallel()
	r := MustNew()

	path := writeFile(t, t.TempDir(), "bad.yaml", "routes: [\n")
	assert.ErrorIs(t, r.GroupByFile(path), ErrRouteFileInvalid)
}

func TestGroupByFileMissing(t *testing.T) {
	t.Parallel()
	r := MustNew()

	assert.ErrorIs(t, r.GroupByFile("/nonexistent/routes.yaml"), ErrRouteFileInvalid)
}

func TestGroupByDir(t *testing.T) {
	t.Parallel()
	r := MustNew()
	r.RegisterController("users", &usersController{})

	dir := t.TempDir()
	writeFile(t, dir, "10-api.yaml", `
prefix: /api
routes:
  - path: /users
    controller: users
    name: api.users
`)
	writeFile(t, dir, "20-admin.yml", `
prefix: /admin
routes:
  - path: /users
    controller: users
    name: admin.users
`)
	writeFile(t, dir, "notes.txt", "ignored")

	require.NoError(t, r.GroupByDir(dir))

	assert.Equal(t, []RouteInfo{
		{Verb: "GET", Pattern: "/admin/users", Name: "admin.users"},
		{Verb: "GET", Pattern: "/api/users", Name: "api.users"},
	}, r.Routes())
}

func TestGroupByDirMissing(t *testing.T) {
	t.Parallel()
	r := MustNew()

	assert.ErrorIs(t, r.GroupByDir("/nonexistent"), ErrRouteFileInvalid)
}

func TestErrorPagesFromFile(t *testing.T) {
	t.Parallel()
	r := MustNew()
	r.RegisterController("errors", &errorPagesController{})

	path := writeFile(t, t.TempDir(), "errors.yaml", `
404: errors
405:
  controller: errors
  action: MethodNotAllowed
`)
	require.NoError(t, r.ErrorPagesFromFile(path))

	rc := r.ResolveErrorPage(ErrNotFound, fakeRequest{path: "/missing", verb: "GET"})
	assert.Equal(t, http.StatusNotFound, rc.StatusCode())
	assert.Equal(t, route.Controller{Name: "errors"}, rc.Handler())

	rc = r.ResolveErrorPage(ErrMethodNotAllowed, fakeRequest{path: "/x", verb: "POST"})
	assert.Equal(t, route.ControllerMethod{Name: "errors", Action: "MethodNotAllowed"}, rc.Handler())
}

type errorPagesController struct{}

func (errorPagesController) Handle()           {}
func (errorPagesController) MethodNotAllowed() {}
