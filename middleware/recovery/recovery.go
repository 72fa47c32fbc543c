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

// Package recovery converts downstream failures into error responses.
// It catches panics raised anywhere below it in the chain and, by default,
// also converts error returns from next into 500 responses, so failures
// stop at this middleware instead of reaching the host adapter. Register
// it first (outermost) to cover the whole chain.
package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/strada-dev/strada"
)

// New returns a middleware that recovers from panics and, unless
// WithPassthroughErrors is set, converts downstream errors into responses.
//
// Basic usage:
//
//	root := strada.Group("", recovery.New())
//
// With custom configuration:
//
//	recovery.New(
//	    recovery.WithLogger(logger),
//	    recovery.WithHandler(func(c *strada.Context, err any) *strada.Response {
//	        return strada.JSON(http.StatusInternalServerError, map[string]string{
//	            "error": "something broke",
//	        })
//	    }),
//	)
func New(opts ...Option) strada.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *strada.Context, next strada.Next) (resp *strada.Response, err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				var stack []byte
				if cfg.stackTrace {
					stack = debug.Stack()
					if len(stack) > cfg.stackSize {
						stack = stack[:cfg.stackSize]
					}
				}
				if cfg.logger != nil {
					cfg.logger.Error("panic recovered",
						"method", c.Request.Method,
						"path", c.Request.Path,
						"route", c.RoutePattern(),
						"panic", recovered,
						"stack", string(stack),
					)
				}
				resp = cfg.handler(c, recovered)
				err = nil
			}
		}()

		resp, err = next()
		if err != nil && !cfg.passthroughErrors {
			if cfg.logger != nil {
				cfg.logger.Error("error recovered",
					"method", c.Request.Method,
					"path", c.Request.Path,
					"route", c.RoutePattern(),
					"error", err,
				)
			}
			return cfg.handler(c, err), nil
		}
		return resp, err
	}
}

// defaultHandler sends a generic 500 response.
func defaultHandler(_ *strada.Context, _ any) *strada.Response {
	return strada.JSON(http.StatusInternalServerError, map[string]string{
		"error": "Internal Server Error",
		"code":  "INTERNAL_ERROR",
	})
}
