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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"waymark.dev/router/route"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Router glues the routing core together: the registry trie, the group
// stack, the named-route URL builder, and the dispatcher over the external
// middleware pipeline.
//
// Routes are registered during application bootstrap and matched during
// serving. A reader-writer lock guards the boundary, so late registration
// (e.g. hot reload) cannot interleave unsafely with matching.
//
// Example:
//
//	r := router.MustNew()
//	reg, err := r.GET("/users/{id}", route.Func{Fn: showUser})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := reg.Named("users.show"); err != nil {
//	    log.Fatal(err)
//	}
//	rc, err := r.Resolve(ctx, router.WrapHTTPRequest(req))
type Router struct {
	mu          sync.RWMutex
	registry    *Registry
	groups      *GroupStack
	urls        *URLBuilder
	controllers map[string]any
	dispatcher  *Dispatcher
	logger      *slog.Logger
	metrics     *Metrics

	// Configuration captured by options, consumed in New.
	baseURL         string
	metricsRegistry prometheus.Registerer
}

// New creates a Router. Configuration errors (a malformed base URL,
// collector registration failures) surface here and must abort startup.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		registry:    NewRegistry(),
		groups:      NewGroupStack(),
		controllers: make(map[string]any),
		logger:      noopLogger,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.baseURL != "" {
		if _, err := url.ParseRequestURI(r.baseURL); err != nil {
			return nil, fmt.Errorf("router configuration: invalid base URL %q: %w", r.baseURL, err)
		}
	}
	r.urls = NewURLBuilder(r.baseURL)

	if r.metricsRegistry != nil {
		m, err := NewMetrics(r.metricsRegistry)
		if err != nil {
			return nil, fmt.Errorf("router configuration: registering collectors: %w", err)
		}
		r.metrics = m
	}

	return r, nil
}

// MustNew creates a Router and panics on invalid configuration. Use it when
// configuration errors should fail the application immediately at startup.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("router.MustNew: %v", err))
	}

	return r
}

// RegisterController registers a controller instance under a name, making
// it addressable from route.Controller and route.ControllerMethod handlers
// and from route-definition files.
func (r *Router) RegisterController(name string, controller any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controllers[name] = controller
}

func (r *Router) controllerLookup() route.ControllerLookup {
	return func(name string) (any, bool) {
		c, ok := r.controllers[name]

		return c, ok
	}
}

// Registration is the handle returned by every route registration. It
// carries name, attribute, and middleware tagging for exactly the route it
// was returned for; there is no implicit "last registered" state.
type Registration struct {
	router  *Router
	verb    string
	pattern string
	meta    *route.Meta
}

// Named registers the route's pattern under a unique name for reverse URL
// generation. Duplicate names and duplicate (verb, pattern) pairs fail here,
// at registration time.
func (h *Registration) Named(name string) error {
	h.router.mu.Lock()
	defer h.router.mu.Unlock()

	return h.router.urls.Add(name, h.pattern, h.verb)
}

// WithAttributes merges attributes into the route's metadata.
func (h *Registration) WithAttributes(attributes map[string]any) *Registration {
	h.router.mu.Lock()
	defer h.router.mu.Unlock()
	h.meta.MergeAttributes(attributes)

	return h
}

// WithMiddlewares appends middleware declarations to the route's metadata.
func (h *Registration) WithMiddlewares(middlewares ...route.Middleware) *Registration {
	h.router.mu.Lock()
	defer h.router.mu.Unlock()
	h.meta.AppendMiddlewares(middlewares...)

	return h
}

// Pattern returns the full, group-prefixed pattern the route was registered under.
func (h *Registration) Pattern() string { return h.pattern }

// Handle registers a route for the given verb. The path is prefixed with
// every active group's prefix, the handler is validated immediately, and
// the route is attached to the innermost active group.
func (r *Router) Handle(verb, path string, handler route.Handler, middlewares ...route.Middleware) (*Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := route.ValidateHandler(handler, r.controllerLookup()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHandler, err)
	}

	meta, err := route.NewMeta(handler, middlewares, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHandler, err)
	}

	fullPath := r.groups.GroupedPath(path)
	if err := r.registry.Add(fullPath, verb, meta, r.groups.ActiveID()); err != nil {
		return nil, err
	}

	r.logger.Debug("route registered", "verb", verb, "pattern", fullPath)

	return &Registration{router: r, verb: verb, pattern: fullPath, meta: meta}, nil
}

// GET registers a route for GET requests.
func (r *Router) GET(path string, handler route.Handler, middlewares ...route.Middleware) (*Registration, error) {
	return r.Handle(http.MethodGet, path, handler, middlewares...)
}

// POST registers a route for POST requests.
func (r *Router) POST(path string, handler route.Handler, middlewares ...route.Middleware) (*Registration, error) {
	return r.Handle(http.MethodPost, path, handler, middlewares...)
}

// PUT registers a route for PUT requests.
func (r *Router) PUT(path string, handler route.Handler, middlewares ...route.Middleware) (*Registration, error) {
	return r.Handle(http.MethodPut, path, handler, middlewares...)
}

// DELETE registers a route for DELETE requests.
func (r *Router) DELETE(path string, handler route.Handler, middlewares ...route.Middleware) (*Registration, error) {
	return r.Handle(http.MethodDelete, path, handler, middlewares...)
}

// PATCH registers a route for PATCH requests.
func (r *Router) PATCH(path string, handler route.Handler, middlewares ...route.Middleware) (*Registration, error) {
	return r.Handle(http.MethodPatch, path, handler, middlewares...)
}

// OPTIONS registers a route for OPTIONS requests.
func (r *Router) OPTIONS(path string, handler route.Handler, middlewares ...route.Middleware) (*Registration, error) {
	return r.Handle(http.MethodOptions, path, handler, middlewares...)
}

// HEAD registers a route for HEAD requests.
func (r *Router) HEAD(path string, handler route.Handler, middlewares ...route.Middleware) (*Registration, error) {
	return r.Handle(http.MethodHead, path, handler, middlewares...)
}

// Any registers a route for the wildcard ANY verb, matched when the
// requested verb has no metadata of its own.
func (r *Router) Any(path string, handler route.Handler, middlewares ...route.Middleware) (*Registration, error) {
	return r.Handle(VerbAny, path, handler, middlewares...)
}

// GroupFunc opens a group scope, runs fn with the scope active, and closes
// the scope again. Nested calls compose prefixes additively; middleware and
// attributes inherit transitively into nested groups.
func (r *Router) GroupFunc(opts GroupOptions, fn func(r *Router) error) error {
	r.mu.Lock()
	r.groups.Push(opts)
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.groups.Pop()
		r.mu.Unlock()
	}()

	return fn(r)
}

// SetErrorPage registers a handler for a failure status code. Error pages
// dispatch through the same pipeline as normal routes.
func (r *Router) SetErrorPage(status int, handler route.Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := route.ValidateHandler(handler, r.controllerLookup()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHandler, err)
	}
	r.registry.SetErrorPage(status, handler)

	return nil
}

// Resolve matches the request against the route tree and assembles the full
// RouteContext: the matched handler and parameters, the route name from the
// URL builder, and the group middleware and attributes merged in with
// route-level entries winning on collision.
//
// Matching failures propagate as ErrNotFound or ErrMethodNotAllowed; the
// caller is expected to hand them to ResolveErrorPage.
func (r *Router) Resolve(ctx context.Context, req RequestContext) (*RouteContext, error) {
	start := time.Now()

	r.mu.RLock()
	rc, err := r.registry.MatchPath(req.RelativePath(), req.Method())
	if err != nil {
		r.mu.RUnlock()
		r.metrics.observeResolve(resolveOutcome(err), time.Since(start))
		r.logger.Debug("resolve failed", "path", req.RelativePath(), "verb", req.Method(), "error", err)

		return nil, err
	}

	name := r.urls.NameFor(rc.Pattern(), rc.Verb())
	groupID := rc.GroupID()
	groupMiddlewares := r.groups.Middlewares(groupID)
	groupAttributes := r.groups.Attributes(groupID)
	r.mu.RUnlock()

	if name != "" {
		rc = rc.WithRouteName(name)
	}
	if groupID != "" {
		if len(groupMiddlewares) > 0 {
			// Group entries form the base of the merge; the route's own
			// declarations are the incoming side and win on collision.
			base := rc.clone()
			base.middlewares = newMiddlewareSet(groupMiddlewares)
			rc = base.WithMergedMiddlewares(rc.meta.Middlewares())
		}
		if len(groupAttributes) > 0 {
			rc = rc.WithMergedAttributes(groupAttributes)
		}
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("http.route", rc.Pattern()),
			attribute.String("route.name", rc.RouteName()),
		)
	}
	r.metrics.observeResolve(outcomeMatched, time.Since(start))
	r.logger.Debug("resolved", "pattern", rc.Pattern(), "name", rc.RouteName(), "verb", rc.Verb())

	return rc, nil
}

// resolveOutcome maps a matching failure to its metrics label.
func resolveOutcome(err error) string {
	if errors.Is(err, ErrMethodNotAllowed) {
		return outcomeMethodNotAllowed
	}

	return outcomeNotFound
}

// ResolveErrorPage translates a matching failure into an error RouteContext
// using the status-code-keyed error-page table. The returned context has no
// node, metadata, parameters, or middleware; its handler is the registered
// error page, or nil when none is configured for the status.
func (r *Router) ResolveErrorPage(resolveErr error, req RequestContext) *RouteContext {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(resolveErr, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(resolveErr, ErrMethodNotAllowed):
		status = http.StatusMethodNotAllowed
	}

	r.mu.RLock()
	handler, _ := r.registry.ErrorPage(status)
	r.mu.RUnlock()

	return newErrorContext(req.RelativePath(), req.Method(), status, handler)
}

// Dispatch hands a resolved context to the external pipeline.
func (r *Router) Dispatch(rc *RouteContext, req RequestContext) (Response, error) {
	return r.dispatcher.Dispatch(rc, req)
}

// RelativeURL builds the URL for a named route. See URLBuilder.RelativeURL.
func (r *Router) RelativeURL(name string, named map[string]string, positional ...string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.urls.RelativeURL(name, named, positional...)
}

// AbsoluteURL builds the URL for a named route on the configured base URL.
func (r *Router) AbsoluteURL(name string, named map[string]string, positional ...string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.urls.AbsoluteURL(name, named, positional...)
}

// RouteInfo describes one registered route for introspection.
type RouteInfo struct {
	Verb    string
	Pattern string
	Name    string
}

// Routes lists every registered route, sorted by pattern and then verb.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var infos []RouteInfo
	r.registry.walk(func(verb string, n *node) {
		infos = append(infos, RouteInfo{
			Verb:    verb,
			Pattern: n.Pattern(),
			Name:    r.urls.NameFor(n.Pattern(), verb),
		})
	})
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Pattern != infos[j].Pattern {
			return infos[i].Pattern < infos[j].Pattern
		}

		return infos[i].Verb < infos[j].Verb
	})

	return infos
}
