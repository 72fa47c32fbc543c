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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strada-dev/strada/schema"
)

func noopHandler(*Context) (any, error) { return nil, nil }

// TestCompileTreeOrder tests that compilation preserves pre-order
// declaration order across nested groups.
func TestCompileTreeOrder(t *testing.T) {
	t.Parallel()

	root := Group("/api")
	root.GET("/health", noopHandler)
	users := root.Group("/users")
	users.GET("", noopHandler)
	users.GET("/:id", noopHandler)
	root.GET("/version", noopHandler)

	routes, err := compileTree(root)
	require.NoError(t, err)
	require.Len(t, routes, 4)

	patterns := make([]string, len(routes))
	for i, r := range routes {
		patterns[i] = r.pattern
	}
	assert.Equal(t, []string{"/api/health", "/api/users", "/api/users/:id", "/api/version"}, patterns)
}

// TestCompileTreeMiddlewareOrder tests that ancestor middleware precedes the
// route's own group middleware in the compiled chain.
func TestCompileTreeMiddlewareOrder(t *testing.T) {
	t.Parallel()

	tag := func(name string, log *[]string) Middleware {
		return func(c *Context, next Next) (*Response, error) {
			*log = append(*log, name)
			return next()
		}
	}

	var log []string
	root := Group("/api", tag("root", &log))
	sub := root.Group("/users", tag("sub", &log))
	sub.Use(tag("late", &log))
	sub.GET("/:id", noopHandler)

	routes, err := compileTree(root)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	require.Len(t, routes[0].middleware, 3)

	c := newContext(nil, NewRequest(http.MethodGet, "/api/users/1"), nil, nil, routes[0])
	_, err = runChain(c, routes[0].middleware, func() (*Response, error) { return nil, nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "sub", "late"}, log)
}

// TestCompileTreeSiblingIsolation tests that middleware attached to one
// subtree never leaks into a sibling's chain.
func TestCompileTreeSiblingIsolation(t *testing.T) {
	t.Parallel()

	mw := func(c *Context, next Next) (*Response, error) { return next() }

	root := Group("")
	a := root.Group("/a", mw)
	a.GET("/x", noopHandler)
	b := root.Group("/b")
	b.GET("/y", noopHandler)

	routes, err := compileTree(root)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Len(t, routes[0].middleware, 1)
	assert.Empty(t, routes[1].middleware)
}

// TestCompileTreeMount tests attaching a pre-built subtree.
func TestCompileTreeMount(t *testing.T) {
	t.Parallel()

	admin := Group("/admin")
	admin.GET("/stats", noopHandler)

	root := Group("/api")
	root.Mount(admin)

	routes, err := compileTree(root)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "/api/admin/stats", routes[0].pattern)
}

// TestCompileTreeErrors tests the compile-time failure modes.
func TestCompileTreeErrors(t *testing.T) {
	t.Parallel()

	_, err := compileTree(nil)
	require.ErrorIs(t, err, ErrNilRouter)

	bad := Group("/api")
	bad.GET("/users/:", noopHandler)
	_, err = compileTree(bad)
	require.ErrorIs(t, err, ErrEmptyParameterName)

	empty := Group("")
	empty.GET("", noopHandler)
	_, err = compileTree(empty)
	require.ErrorIs(t, err, ErrEmptyRoutePath)
}

// TestCompileRouteSchemas tests that declared query/body schemas are
// compiled onto the route and undeclared ones stay nil.
func TestCompileRouteSchemas(t *testing.T) {
	t.Parallel()

	root := Group("/api")
	root.GET("/plain", noopHandler)
	root.POST("/users", noopHandler).
		Query(schema.Fields{"verbose": schema.Boolean().Optional()}).
		Body(schema.Fields{"name": schema.String()})

	routes, err := compileTree(root)
	require.NoError(t, err)
	require.Len(t, routes, 2)

	assert.Nil(t, routes[0].querySchema)
	assert.Nil(t, routes[0].bodySchema)
	assert.NotNil(t, routes[1].querySchema)
	assert.NotNil(t, routes[1].bodySchema)
}

// TestCompiledRouteAccessors tests the exported read-only accessors.
func TestCompiledRouteAccessors(t *testing.T) {
	t.Parallel()

	root := Group("/api")
	root.GET("/users/:id", noopHandler).Named("user.get")

	routes, err := compileTree(root)
	require.NoError(t, err)
	require.Len(t, routes, 1)

	r := routes[0]
	assert.Equal(t, http.MethodGet, r.Method())
	assert.Equal(t, "/api/users/:id", r.Pattern())
	assert.Equal(t, []string{"id"}, r.ParamNames())
	assert.Equal(t, "user.get", r.Name())
	assert.Equal(t, "GET /api/users/:id", r.id())

	// ParamNames returns a copy, not the backing slice.
	names := r.ParamNames()
	names[0] = "mutated"
	assert.Equal(t, []string{"id"}, r.ParamNames())
}
