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

// Package requestid provides request ID middleware for log correlation.
// The ID is taken from the incoming request header when the client sent
// one (and that is allowed), generated otherwise, stored in the context
// bag under ContextKey, and echoed on the response header.
package requestid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"os"
	"time"

	"github.com/strada-dev/strada"

	mathrand "math/rand"
)

// ContextKey is the context bag key under which the request ID is stored.
const ContextKey strada.Key = "requestid.id"

// FromContext returns the request ID set by this middleware, or "".
func FromContext(c *strada.Context) string {
	return c.GetString(ContextKey)
}

// generateRandomID generates a random hex string for request IDs.
func generateRandomID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand failure is rare; fall back to timestamp + random +
		// pid so IDs stay collision resistant.
		binary.BigEndian.PutUint64(bytes[0:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint32(bytes[8:12], uint32(mathrand.Uint64()))
		binary.BigEndian.PutUint32(bytes[12:16], uint32(os.Getpid()))
	}
	return hex.EncodeToString(bytes)
}

// New returns a middleware that attaches a unique request ID to each
// request.
//
// Basic usage:
//
//	root := strada.Group("", requestid.New())
//
// Custom header name:
//
//	requestid.New(requestid.WithHeader("X-Correlation-ID"))
func New(opts ...Option) strada.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *strada.Context, next strada.Next) (*strada.Response, error) {
		id := ""
		if cfg.allowClientID {
			id = c.Request.Header.Get(cfg.headerName)
		}
		if id == "" {
			id = cfg.generator()
		}
		c.Set(ContextKey, id)

		resp, err := next()
		if resp != nil {
			resp.SetHeader(cfg.headerName, id)
		}
		return resp, err
	}
}
