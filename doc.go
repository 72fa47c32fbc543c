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

// Package strada is a request-routing and dispatch engine for HTTP-style
// services. A declaratively nested tree of route definitions compiles once
// into an immutable, ordered list of pattern-matching routes; each incoming
// request is matched first-wins against that list and executed through an
// onion-style middleware pipeline whose innermost step validates query and
// body input before invoking the handler.
//
// Building and serving:
//
//	root := strada.Group("/api")
//	users := root.Group("/users")
//	users.GET("/:id", func(c *strada.Context) (any, error) {
//	    return map[string]string{"id": c.Param("id")}, nil
//	})
//	users.POST("", createUser).Body(schema.Fields{"name": schema.String()})
//
//	app := strada.MustNew(root)
//	http.ListenAndServe(":8080", app)
//
// The engine owns no connections: Dispatch takes an already-parsed Request
// plus opaque environment and cancellation handles and produces a Response.
// App.ServeHTTP is the bundled net/http adapter over that entry point;
// other host integrations only need to satisfy the same shape.
//
// Middleware are ordered, short-circuiting interceptors sharing one
// mutable per-request Context. The subpackages under middleware/ provide
// pluggable implementations (access logging, request IDs, panic recovery,
// timeouts, CORS, basic auth, rate limiting); none of them are special to
// the engine — they satisfy the same Middleware contract as user code.
package strada
