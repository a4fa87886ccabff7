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

import "errors"

// Registration-time errors abort application startup and are never caught
// internally. Resolution-time errors (ErrNotFound, ErrMethodNotAllowed) are
// expected to be caught one layer up and translated into an error
// RouteContext via ResolveErrorPage.
var (
	// ErrInvalidHandler indicates a malformed handler reference at registration time.
	ErrInvalidHandler = errors.New("invalid route handler")

	// ErrInvalidVerb indicates an unrecognized HTTP verb at registration time.
	ErrInvalidVerb = errors.New("invalid HTTP verb")

	// ErrParameterConflict indicates that a second, differently named parameter
	// was registered at a tree position that already has one.
	ErrParameterConflict = errors.New("conflicting parameter at same position")

	// ErrNotFound indicates that no registered route matches the request path.
	ErrNotFound = errors.New("no route matches path")

	// ErrMethodNotAllowed indicates that the path matches a route but not for
	// the requested verb, and no ANY fallback is registered.
	ErrMethodNotAllowed = errors.New("method not allowed for path")

	// ErrDuplicateRoute indicates that a (verb, pattern) pair was named twice.
	ErrDuplicateRoute = errors.New("route already named")

	// ErrDuplicateName indicates that a route name was registered twice.
	ErrDuplicateName = errors.New("route name already registered")

	// ErrRouteNotFound indicates that no route is registered under the given
	// name for reverse URL generation.
	ErrRouteNotFound = errors.New("named route not found")

	// ErrMissingParameter indicates that a required placeholder had no value
	// during reverse URL generation.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrRouteFileInvalid indicates that a route-definition file could not be
	// decoded or references unknown handlers.
	ErrRouteFileInvalid = errors.New("invalid route definition file")
)
