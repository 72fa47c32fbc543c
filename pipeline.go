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

// Handler is the innermost unit of work for a route. It returns either a
// *Response, which is used verbatim, or any other value, which is wrapped
// into a JSON-encoded 200 response. A returned error propagates up the
// middleware chain unchanged.
type Handler func(c *Context) (any, error)

// Next resumes the middleware chain. Each middleware receives its own Next
// and must call it at most once; not calling it short-circuits the rest of
// the chain, including the handler.
type Next func() (*Response, error)

// Middleware wraps the rest of the chain. It may mutate the shared Context
// before calling next, and may inspect or replace the response after next
// returns. Returning without calling next short-circuits; returning an
// error unwinds the chain synchronously.
//
//	func timing(c *strada.Context, next strada.Next) (*strada.Response, error) {
//	    start := time.Now()
//	    resp, err := next()
//	    if resp != nil {
//	        resp.SetHeader("X-Elapsed", time.Since(start).String())
//	    }
//	    return resp, err
//	}
type Middleware func(c *Context, next Next) (*Response, error)

// runChain executes the middleware list in order around the terminal step.
//
// The chain is a single continuation over a shared cursor: each call to
// next takes the middleware at the cursor, advances it, and invokes that
// middleware with the same continuation. When the cursor exhausts the list,
// the terminal step runs. This gives exact nested-scope semantics:
// middleware i's post-next code runs only after everything downstream of it
// has fully completed, and a middleware that returns without calling next
// still unwinds through the pending post-next code of everything upstream.
func runChain(c *Context, middleware []Middleware, terminal func() (*Response, error)) (*Response, error) {
	var next Next
	cursor := 0
	next = func() (*Response, error) {
		if cursor >= len(middleware) {
			return terminal()
		}
		m := middleware[cursor]
		cursor++
		return m(c, next)
	}
	return next()
}
