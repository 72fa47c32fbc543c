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
	"net/http"

	"github.com/strada-dev/strada/schema"
)

// RouterNode is a node in the declarative route tree. It groups child
// routes and nested routers under a common base path and an ordered list of
// middleware. The tree is built top-down from literal code and compiled
// once by New; declaration order of children is preserved all the way into
// the compiled route list, which is what first-match-wins relies on.
//
// Example:
//
//	api := strada.Group("/api", requestid.New())
//	users := api.Group("/users")
//	users.GET("/:id", getUser)
//	users.POST("", createUser).Body(schema.Fields{"name": schema.String()})
//
//	app := strada.MustNew(api)
type RouterNode struct {
	basePath   string
	middleware []Middleware
	children   []treeChild
}

// treeChild is the tagged union of the two node kinds: exactly one of
// router and route is non-nil.
type treeChild struct {
	router *RouterNode
	route  *RouteDef
}

// RouteDef describes one route: method, path template, optional query/body
// schema declarations and a handler. RouteDefs are created through the
// RouterNode method helpers and configured by chaining before compilation.
type RouteDef struct {
	method  string
	path    string
	handler Handler
	query   schema.Fields
	body    schema.Fields
	name    string
}

// Group creates a root router node with the given base path and middleware.
func Group(basePath string, middleware ...Middleware) *RouterNode {
	return &RouterNode{
		basePath:   basePath,
		middleware: middleware,
	}
}

// Use appends middleware to the node. Middleware attached to a node wraps
// every route reachable under it, ancestors first.
func (n *RouterNode) Use(middleware ...Middleware) *RouterNode {
	n.middleware = append(n.middleware, middleware...)
	return n
}

// Group creates a nested router node under this one and returns the child.
// The child's base path is relative to the parent's.
func (n *RouterNode) Group(basePath string, middleware ...Middleware) *RouterNode {
	child := Group(basePath, middleware...)
	n.children = append(n.children, treeChild{router: child})
	return child
}

// Mount attaches a pre-built subtree as a child of this node and returns
// the receiver.
func (n *RouterNode) Mount(sub *RouterNode) *RouterNode {
	n.children = append(n.children, treeChild{router: sub})
	return n
}

// Handle registers a route with an explicit method and returns its RouteDef
// for chained configuration.
func (n *RouterNode) Handle(method, path string, handler Handler) *RouteDef {
	route := &RouteDef{
		method:  method,
		path:    path,
		handler: handler,
	}
	n.children = append(n.children, treeChild{route: route})
	return route
}

// GET registers a GET route under this node.
func (n *RouterNode) GET(path string, handler Handler) *RouteDef {
	return n.Handle(http.MethodGet, path, handler)
}

// POST registers a POST route under this node.
func (n *RouterNode) POST(path string, handler Handler) *RouteDef {
	return n.Handle(http.MethodPost, path, handler)
}

// PUT registers a PUT route under this node.
func (n *RouterNode) PUT(path string, handler Handler) *RouteDef {
	return n.Handle(http.MethodPut, path, handler)
}

// PATCH registers a PATCH route under this node.
func (n *RouterNode) PATCH(path string, handler Handler) *RouteDef {
	return n.Handle(http.MethodPatch, path, handler)
}

// DELETE registers a DELETE route under this node.
func (n *RouterNode) DELETE(path string, handler Handler) *RouteDef {
	return n.Handle(http.MethodDelete, path, handler)
}

// OPTIONS registers an explicit OPTIONS route under this node.
func (n *RouterNode) OPTIONS(path string, handler Handler) *RouteDef {
	return n.Handle(http.MethodOptions, path, handler)
}

// HEAD registers an explicit HEAD route under this node. An explicit HEAD
// route takes precedence over the automatic HEAD-matches-GET fallback when
// it appears earlier in declaration order.
func (n *RouterNode) HEAD(path string, handler Handler) *RouteDef {
	return n.Handle(http.MethodHead, path, handler)
}

// Query declares the query-parameter schema for the route. The schema is
// compiled once, when the tree is compiled.
func (r *RouteDef) Query(fields schema.Fields) *RouteDef {
	r.query = fields
	return r
}

// Body declares the request-body schema for the route. It applies to
// mutating methods only (POST, PUT, PATCH, DELETE).
func (r *RouteDef) Body(fields schema.Fields) *RouteDef {
	r.body = fields
	return r
}

// Named assigns a name to the route for registry lookup via App.Route.
func (r *RouteDef) Named(name string) *RouteDef {
	r.name = name
	return r
}
