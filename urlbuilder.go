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
	"net/url"
	"strings"

	"waymark.dev/router/route"
)

// URLBuilder is the named-route registry and the reverse templating engine:
// it maps route names to patterns and substitutes {name}, {name?} and
// {name*} placeholders to rebuild URLs.
//
// Conflicts are rejected at registration time, not at lookup time: a name
// may be registered once globally, and a (verb, pattern) pair may carry at
// most one name.
type URLBuilder struct {
	baseURL       string
	nameToPattern map[string]string
	patternNames  map[string]map[string]string // verb → pattern → name
}

// NewURLBuilder creates a URLBuilder. baseURL is only used by AbsoluteURL
// and may be empty.
func NewURLBuilder(baseURL string) *URLBuilder {
	return &URLBuilder{
		baseURL:       baseURL,
		nameToPattern: make(map[string]string),
		patternNames:  make(map[string]map[string]string),
	}
}

// Add registers a pattern under a unique name for the given verb.
func (b *URLBuilder) Add(name, pattern, verb string) error {
	v, err := normalizeVerb(verb)
	if err != nil {
		return err
	}
	if existing, ok := b.nameToPattern[name]; ok {
		return fmt.Errorf("%w: %q already names %s", ErrDuplicateName, name, existing)
	}
	if existing, ok := b.patternNames[v][pattern]; ok {
		return fmt.Errorf("%w: %s %s is already named %q", ErrDuplicateRoute, v, pattern, existing)
	}

	b.nameToPattern[name] = pattern
	if b.patternNames[v] == nil {
		b.patternNames[v] = make(map[string]string)
	}
	b.patternNames[v][pattern] = name

	return nil
}

// NameFor returns the name registered for a (pattern, verb) pair, falling
// back to the ANY verb, or "" when the route is unnamed.
func (b *URLBuilder) NameFor(pattern, verb string) string {
	if name, ok := b.patternNames[strings.ToUpper(verb)][pattern]; ok {
		return name
	}

	return b.patternNames[VerbAny][pattern]
}

// RelativeURL builds the URL for a named route.
//
// Placeholders resolve from the named parameter map first; failing that,
// each placeholder consumes the next unused positional argument. Optional
// and greedy placeholders fall back to the empty string; a required
// placeholder with no value fails with ErrMissingParameter. The result is
// slash-normalized and defaults to "/".
func (b *URLBuilder) RelativeURL(name string, named map[string]string, positional ...string) (string, error) {
	pattern, ok := b.nameToPattern[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	parts := make([]string, 0, 8)
	next := 0

	for _, segment := range splitPath(pattern) {
		p, isParam := route.ParseParam(segment)
		if !isParam {
			parts = append(parts, segment)
			continue
		}

		value, found := named[p.Name]
		if !found && next < len(positional) {
			value = positional[next]
			next++
			found = true
		}
		switch {
		case found && p.Greedy:
			// Greedy values may span segments; keep their slashes.
			if trimmed := strings.Trim(value, "/"); trimmed != "" {
				parts = append(parts, trimmed)
			}
		case found:
			parts = append(parts, url.PathEscape(value))
		case p.Optional:
			// Omitted optional segment collapses away.
		default:
			return "", fmt.Errorf("%w: %s in %q", ErrMissingParameter, p, pattern)
		}
	}

	return "/" + strings.Join(parts, "/"), nil
}

// AbsoluteURL builds the URL for a named route and prepends the configured
// base URL, with exactly one separator between base and path.
func (b *URLBuilder) AbsoluteURL(name string, named map[string]string, positional ...string) (string, error) {
	rel, err := b.RelativeURL(name, named, positional...)
	if err != nil {
		return "", err
	}

	base := strings.TrimRight(b.baseURL, "/")
	if base == "" && rel == "" {
		return "/", nil
	}

	return base + rel, nil
}
