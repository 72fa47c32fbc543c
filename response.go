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
	"encoding/json"
	"net/http"
)

// ContentTypeJSON is the content type used for JSON-encoded responses.
const ContentTypeJSON = "application/json; charset=utf-8"

// ContentTypeText is the content type used for plain-text responses.
const ContentTypeText = "text/plain; charset=utf-8"

// Response is the engine's response object. A middleware or handler builds
// one (usually via JSON, Text or NoContent) and the host adapter writes it
// to the wire.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// NewResponse creates an empty response with the given status and an
// initialized header map.
func NewResponse(status int) *Response {
	return &Response{
		Status: status,
		Header: http.Header{},
	}
}

// JSON creates a response with a JSON-encoded body and JSON content type.
// Values that cannot be marshaled produce a 500 response with a generic
// error body rather than a panic.
func JSON(status int, v any) *Response {
	body, err := json.Marshal(v)
	if err != nil {
		resp := NewResponse(http.StatusInternalServerError)
		resp.Header.Set("Content-Type", ContentTypeJSON)
		resp.Body = []byte(`{"error":"Internal Server Error"}`)
		return resp
	}

	resp := NewResponse(status)
	resp.Header.Set("Content-Type", ContentTypeJSON)
	resp.Body = body
	return resp
}

// Text creates a plain-text response.
func Text(status int, body string) *Response {
	resp := NewResponse(status)
	resp.Header.Set("Content-Type", ContentTypeText)
	resp.Body = []byte(body)
	return resp
}

// NoContent creates a response with the given status and no body.
func NoContent(status int) *Response {
	return NewResponse(status)
}

// SetHeader sets a response header and returns the response for chaining.
func (r *Response) SetHeader(key, value string) *Response {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set(key, value)
	return r
}

// withoutBody returns a copy of the response with the body removed but the
// status and headers preserved. Used for HEAD requests.
func (r *Response) withoutBody() *Response {
	stripped := &Response{
		Status: r.Status,
		Header: r.Header,
		Body:   nil,
	}
	return stripped
}

// notFoundResponse is the canonical routing-miss response.
func notFoundResponse() *Response {
	return JSON(http.StatusNotFound, map[string]string{"error": "Not Found"})
}
