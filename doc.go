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

// Package router resolves (verb, path) pairs against a segment-trie route
// registry and generates URLs back from route names.
//
// # Key Features
//
//   - Segment-trie matching with {name}, {name?}, and {name*} parameters;
//     static segments always win over same-position parameters
//   - Nested route groups composing path prefixes, middleware, and
//     attributes, with transitive inheritance
//   - Per-verb metadata with an ANY wildcard fallback
//   - Ordered, deduplicated middleware selection with priorities; execution
//     belongs to an external pipeline
//   - Named routes with reverse URL generation, including optional and
//     greedy placeholders
//   - Status-code-keyed error pages resolved through the same RouteContext
//     machinery as normal routes
//
// # Phases
//
// The router is built for a strict construction-then-serve life cycle:
// routes are registered during bootstrap, matching happens during serving.
// Both sides are guarded by a reader-writer lock, so late registration is
// safe but should stay rare; matching itself is a read-only tree walk,
// O(path segments), with no I/O.
//
// # Quick Start
//
//	r := router.MustNew(router.WithBaseURL("https://example.com"))
//	reg, err := r.GET("/users/{id}", route.Func{Fn: showUser}, route.Use("auth"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := reg.Named("users.show"); err != nil {
//	    log.Fatal(err)
//	}
//
//	rc, err := r.Resolve(ctx, router.WrapHTTPRequest(req))
//	if err != nil {
//	    rc = r.ResolveErrorPage(err, router.WrapHTTPRequest(req))
//	}
//	resp, err := r.Dispatch(rc, router.WrapHTTPRequest(req))
package router
