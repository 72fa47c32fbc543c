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

// Package accesslog provides structured access logging middleware.
// One canonical log line is emitted per request after the downstream chain
// completes, so the logged status reflects the final response — including
// short-circuits and recovered errors further down the chain.
package accesslog

import (
	"time"

	"github.com/strada-dev/strada"
)

// New creates an access log middleware. Without WithLogger the middleware
// is a transparent no-op.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	root := strada.Group("/api", accesslog.New(
//	    accesslog.WithLogger(logger),
//	    accesslog.WithExcludePaths("/api/health"),
//	))
func New(opts ...Option) strada.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *strada.Context, next strada.Next) (*strada.Response, error) {
		if cfg.logger == nil || cfg.excludePaths[c.Request.Path] {
			return next()
		}

		start := time.Now()
		resp, err := next()
		duration := time.Since(start)

		status := 0
		size := 0
		if resp != nil {
			status = resp.Status
			size = len(resp.Body)
		}

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.Path,
			"route", c.RoutePattern(),
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"bytes_sent", size,
		}
		if c.Request.RemoteAddr != "" {
			fields = append(fields, "remote_addr", c.Request.RemoteAddr)
		}

		switch {
		case err != nil:
			fields = append(fields, "error", err.Error())
			cfg.logger.Error("request", fields...)
		case status >= 500:
			cfg.logger.Error("request", fields...)
		case status >= 400:
			cfg.logger.Warn("request", fields...)
		default:
			cfg.logger.Info("request", fields...)
		}

		return resp, err
	}
}
