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

import "net/http"

// RequestContext is the router's view of an inbound request. The router
// needs nothing beyond the relative path and the verb; everything else
// belongs to the surrounding kernel.
type RequestContext interface {
	RelativePath() string
	Method() string
}

// httpRequest adapts a *http.Request to RequestContext.
type httpRequest struct {
	req *http.Request
}

// WrapHTTPRequest adapts a standard library request so the router drops
// into net/http servers.
func WrapHTTPRequest(req *http.Request) RequestContext {
	return httpRequest{req: req}
}

func (r httpRequest) RelativePath() string { return r.req.URL.Path }
func (r httpRequest) Method() string       { return r.req.Method }
