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

// Package basicauth provides HTTP Basic Authentication middleware.
// Requests failing the credential check short-circuit with a 401 before
// any downstream middleware or the handler runs; the authenticated
// username is stored in the context bag under ContextKeyUser.
package basicauth

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/strada-dev/strada"
)

// ContextKeyUser is the context bag key holding the authenticated username.
const ContextKeyUser strada.Key = "basicauth.user"

// User returns the authenticated username, or "" when the request did not
// pass through this middleware.
func User(c *strada.Context) string {
	return c.GetString(ContextKeyUser)
}

// New returns a Basic Authentication middleware.
//
// Static credential set:
//
//	basicauth.New(basicauth.WithUsers(map[string]string{
//	    "admin": "s3cret",
//	}))
//
// Custom validator:
//
//	basicauth.New(basicauth.WithValidator(func(user, pass string) bool {
//	    return store.CheckCredentials(user, pass)
//	}))
func New(opts ...Option) strada.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *strada.Context, next strada.Next) (*strada.Response, error) {
		user, pass, ok := parseBasicAuth(c.Request.Header.Get("Authorization"))
		if !ok || !cfg.validator(user, pass) {
			resp := strada.JSON(http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			resp.SetHeader("WWW-Authenticate", `Basic realm="`+cfg.realm+`"`)
			return resp, nil
		}

		c.Set(ContextKeyUser, user)
		return next()
	}
}

// parseBasicAuth decodes an Authorization header of the form
// "Basic base64(user:pass)".
func parseBasicAuth(header string) (user, pass string, ok bool) {
	const prefix = "Basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	user, pass, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", false
	}
	return user, pass, true
}

// constantTimeEquals compares two strings without leaking length-prefix
// timing.
func constantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
