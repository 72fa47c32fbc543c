// Copyright 2026 The Strada Authors
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

package strada

import (
	"context"
	"fmt"
)

// Key identifies a value in the Context's extension bag. Packages declare
// their own keys as typed constants to avoid collisions:
//
//	const ContextKeyUser strada.Key = "auth.user"
type Key string

// Context is the mutable per-request state threaded through the middleware
// pipeline. It is created fresh for each dispatched request, shared (not
// copied) between every middleware and the handler, and discarded once the
// response is produced.
//
// Context is not safe for concurrent use: it belongs to exactly one
// in-flight request. Values set via Set are visible to everything invoked
// afterwards in the same chain; by convention middleware only add values,
// never remove them.
type Context struct {
	// Request is the incoming request. Middleware may replace it; the
	// replacement is immediately visible downstream.
	Request *Request

	// Params holds the decoded path parameters of the matched route.
	Params map[string]string

	// Query holds the validated query parameters. It is empty until the
	// terminal step validates the route's query schema, at which point the
	// re-seeded values are visible to middleware post-next code as well.
	Query map[string]any

	// Body holds the validated request body, populated like Query.
	Body map[string]any

	// Env is the opaque environment handle supplied by the host adapter.
	Env any

	ctx    context.Context
	route  *CompiledRoute
	values map[Key]any
}

// newContext seeds a fresh per-request context.
func newContext(ctx context.Context, req *Request, params map[string]string, env any, route *CompiledRoute) *Context {
	return &Context{
		Request: req,
		Params:  params,
		Query:   map[string]any{},
		Body:    map[string]any{},
		Env:     env,
		ctx:     ctx,
		route:   route,
	}
}

// Context returns the execution/cancellation handle for this request. The
// engine propagates it but never interprets it; timeout-style middleware
// derive from it and short-circuit on expiry.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// WithContext replaces the execution handle, typically with a derived
// context carrying a deadline or tracing baggage.
func (c *Context) WithContext(ctx context.Context) {
	c.ctx = ctx
}

// Param returns the decoded value of a path parameter, or "" when the
// parameter does not exist on the matched route.
func (c *Context) Param(name string) string {
	return c.Params[name]
}

// RoutePattern returns the full path template of the matched route, e.g.
// "/api/users/:id". Use it instead of the raw path for anything keyed per
// route (metrics, rate limits) to keep cardinality bounded.
func (c *Context) RoutePattern() string {
	if c.route == nil {
		return ""
	}
	return c.route.Pattern()
}

// Set stores a value in the extension bag. Once set, every downstream
// middleware and the handler can read it.
func (c *Context) Set(key Key, value any) {
	if c.values == nil {
		c.values = make(map[Key]any, 4)
	}
	c.values[key] = value
}

// Get returns a value from the extension bag.
func (c *Context) Get(key Key) (any, bool) {
	value, ok := c.values[key]
	return value, ok
}

// MustGet returns a value from the extension bag and panics when absent.
// Use it for values an upstream middleware is contractually required to
// have set.
func (c *Context) MustGet(key Key) any {
	value, ok := c.values[key]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrMissingContextValue, key))
	}
	return value
}

// GetString returns a string value from the extension bag, or "" when the
// key is absent or holds a non-string.
func (c *Context) GetString(key Key) string {
	if value, ok := c.values[key]; ok {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}
