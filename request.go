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
	"net/url"
)

// Request is the engine's view of a single already-parsed HTTP request.
// The engine never owns a connection; a host adapter (see App.ServeHTTP for
// the bundled net/http one) builds a Request per incoming call and hands it
// to Dispatch.
//
// Middleware may replace a Context's Request wholesale; downstream
// middleware and the handler observe the replacement immediately.
type Request struct {
	Method     string      // HTTP method, upper case (GET, POST, ...)
	Path       string      // URL path as received, e.g. "/api/users/42"
	Query      url.Values  // Parsed query string
	Header     http.Header // Request headers
	Body       []byte      // Raw request body (nil when absent)
	RemoteAddr string      // Remote address, when the adapter knows it
}

// NewRequest creates a Request with initialized header and query maps.
// It is primarily useful in tests and custom host adapters.
func NewRequest(method, path string) *Request {
	return &Request{
		Method: method,
		Path:   path,
		Query:  url.Values{},
		Header: http.Header{},
	}
}
