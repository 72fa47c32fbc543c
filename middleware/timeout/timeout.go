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

// Package timeout bounds how long the downstream chain may run. It derives
// a deadline context from the request's execution handle and races next
// against it; on expiry it short-circuits with a timeout response while the
// abandoned downstream work sees its context canceled.
package timeout

import (
	"context"
	"net/http"
	"time"

	"github.com/strada-dev/strada"
)

// result carries the downstream outcome across the race.
type result struct {
	resp *strada.Response
	err  error
}

// New returns a middleware that adds a timeout to requests. Handlers
// should respect context cancellation; when the deadline passes, the
// response of the abandoned downstream call is discarded.
//
// Basic usage (30s default):
//
//	root := strada.Group("", timeout.New())
//
// With custom duration:
//
//	timeout.New(timeout.WithDuration(5 * time.Second))
func New(opts ...Option) strada.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *strada.Context, next strada.Next) (*strada.Response, error) {
		ctx, cancel := context.WithTimeout(c.Context(), cfg.duration)
		defer cancel()
		c.WithContext(ctx)

		done := make(chan result, 1)
		go func() {
			defer func() {
				if recovered := recover(); recovered != nil {
					// Re-panic on the caller side would lose the stack;
					// surface it as a response-less error instead.
					done <- result{nil, &panicError{value: recovered}}
				}
			}()
			resp, err := next()
			done <- result{resp, err}
		}()

		select {
		case r := <-done:
			return r.resp, r.err
		case <-ctx.Done():
			if cfg.logger != nil {
				cfg.logger.Warn("request timed out",
					"method", c.Request.Method,
					"path", c.Request.Path,
					"route", c.RoutePattern(),
					"timeout", cfg.duration.String(),
				)
			}
			return cfg.handler(c, cfg.duration), nil
		}
	}
}

// defaultHandler is the default timeout response.
func defaultHandler(c *strada.Context, d time.Duration) *strada.Response {
	return strada.JSON(http.StatusRequestTimeout, map[string]any{
		"error":   "Request timeout",
		"code":    "TIMEOUT",
		"timeout": d.String(),
		"path":    c.Request.Path,
	})
}

// panicError wraps a panic value recovered from the abandoned goroutine.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return "panic in timed-out chain"
}
