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

// Package cors handles Cross-Origin Resource Sharing. Preflight OPTIONS
// requests short-circuit at this middleware with a 204 before any handler
// runs — the engine's OPTIONS-matches-every-route rule is what delivers
// them here. Actual responses are decorated with CORS headers on the way
// out.
package cors

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/strada-dev/strada"
)

// New returns a CORS middleware. The default configuration is restrictive:
// no origins are allowed until configured.
//
// Basic usage:
//
//	root := strada.Group("/api", cors.New(
//	    cors.WithAllowedOrigins("https://example.com"),
//	))
//
// Public API:
//
//	cors.New(cors.WithAllowAllOrigins(true))
func New(opts ...Option) strada.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	allowedMethodsHeader := strings.Join(cfg.allowedMethods, ", ")
	allowedHeadersHeader := strings.Join(cfg.allowedHeaders, ", ")
	exposedHeadersHeader := strings.Join(cfg.exposedHeaders, ", ")
	maxAgeHeader := strconv.Itoa(cfg.maxAge)

	return func(c *strada.Context, next strada.Next) (*strada.Response, error) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			return next()
		}

		allowed, allowValue := cfg.originAllowed(origin)
		if !allowed {
			return next()
		}

		if c.Request.Method == http.MethodOptions && c.Request.Header.Get("Access-Control-Request-Method") != "" {
			// Preflight: answer here, never reach the handler.
			resp := strada.NoContent(http.StatusNoContent)
			resp.SetHeader("Access-Control-Allow-Origin", allowValue)
			resp.SetHeader("Access-Control-Allow-Methods", allowedMethodsHeader)
			resp.SetHeader("Access-Control-Allow-Headers", allowedHeadersHeader)
			resp.SetHeader("Access-Control-Max-Age", maxAgeHeader)
			if cfg.allowCredentials {
				resp.SetHeader("Access-Control-Allow-Credentials", "true")
			}
			if allowValue != "*" {
				resp.Header.Add("Vary", "Origin")
			}
			return resp, nil
		}

		resp, err := next()
		if resp != nil {
			resp.SetHeader("Access-Control-Allow-Origin", allowValue)
			if exposedHeadersHeader != "" {
				resp.SetHeader("Access-Control-Expose-Headers", exposedHeadersHeader)
			}
			if cfg.allowCredentials {
				resp.SetHeader("Access-Control-Allow-Credentials", "true")
			}
			if allowValue != "*" {
				resp.Header.Add("Vary", "Origin")
			}
		}
		return resp, err
	}
}

// originAllowed reports whether the origin may make cross-origin requests
// and which Access-Control-Allow-Origin value to answer with.
func (cfg *config) originAllowed(origin string) (bool, string) {
	if cfg.allowAllOrigins {
		if cfg.allowCredentials {
			// Wildcard is invalid with credentials; echo the origin.
			return true, origin
		}
		return true, "*"
	}
	if cfg.allowOriginFunc != nil {
		if cfg.allowOriginFunc(origin) {
			return true, origin
		}
		return false, ""
	}
	if slices.Contains(cfg.allowedOrigins, origin) {
		return true, origin
	}
	return false, ""
}
