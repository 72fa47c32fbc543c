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
	"fmt"
	"regexp"
	"slices"

	"github.com/strada-dev/strada/schema"
)

// CompiledRoute is the flattened, match-ready form of a RouteDef: the full
// path template, its anchored pattern, the ordered parameter names, the
// middleware chain inherited from every ancestor node (ancestors first),
// and the route's pre-compiled query/body validators.
//
// Compiled routes are built once when the tree is compiled and are
// read-only afterwards, so they are shared across concurrent requests
// without locking.
type CompiledRoute struct {
	method     string
	pattern    string
	re         *regexp.Regexp
	paramNames []string
	middleware []Middleware
	handler    Handler
	name       string

	querySchema *schema.Schema
	bodySchema  *schema.Schema
}

// Method returns the route's HTTP method.
func (r *CompiledRoute) Method() string { return r.method }

// Pattern returns the full path template, e.g. "/api/users/:id".
func (r *CompiledRoute) Pattern() string { return r.pattern }

// ParamNames returns the parameter names in pattern order.
func (r *CompiledRoute) ParamNames() []string {
	return slices.Clone(r.paramNames)
}

// Name returns the route's registry name, or "".
func (r *CompiledRoute) Name() string { return r.name }

// id returns the route identifier used in error bodies, e.g. "GET /users/:id".
func (r *CompiledRoute) id() string {
	return r.method + " " + r.pattern
}

// compileTree flattens the route tree into the ordered compiled route list.
//
// The traversal is depth-first with the accumulated base path and
// middleware chain passed by value at each recursive call, so no state
// leaks between siblings. Pre-order declaration order is preserved in the
// output; matching relies on first-match-wins over exactly this order.
// Identical method+pattern pairs are deliberately not rejected — the
// earlier one simply always wins.
func compileTree(root *RouterNode) ([]*CompiledRoute, error) {
	if root == nil {
		return nil, ErrNilRouter
	}
	var routes []*CompiledRoute
	if err := compileNode(root, "", nil, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func compileNode(n *RouterNode, basePath string, chain []Middleware, out *[]*CompiledRoute) error {
	base := joinPath(basePath, n.basePath)

	// Ancestor middleware always precedes this node's own.
	merged := make([]Middleware, 0, len(chain)+len(n.middleware))
	merged = append(merged, chain...)
	merged = append(merged, n.middleware...)

	for _, child := range n.children {
		if child.router != nil {
			if err := compileNode(child.router, base, merged, out); err != nil {
				return err
			}
			continue
		}
		compiled, err := compileRoute(child.route, base, merged)
		if err != nil {
			return err
		}
		*out = append(*out, compiled)
	}
	return nil
}

func compileRoute(rd *RouteDef, basePath string, chain []Middleware) (*CompiledRoute, error) {
	full := joinPath(basePath, rd.path)
	if full == "" {
		return nil, fmt.Errorf("%s route: %w", rd.method, ErrEmptyRoutePath)
	}

	re, paramNames, err := compilePattern(full)
	if err != nil {
		return nil, fmt.Errorf("%s route: %w", rd.method, err)
	}

	return &CompiledRoute{
		method:      rd.method,
		pattern:     full,
		re:          re,
		paramNames:  paramNames,
		middleware:  slices.Clone(chain),
		handler:     rd.handler,
		name:        rd.name,
		querySchema: schema.Compile(rd.query),
		bodySchema:  schema.Compile(rd.body),
	}, nil
}
