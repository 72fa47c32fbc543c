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
	"io"
	"net/http"
	"strconv"
)

// maxAdapterBodyBytes caps how much request body the bundled adapter reads.
const maxAdapterBodyBytes = 10 << 20 // 10 MiB

// ServeHTTP is the bundled net/http host adapter. It translates an
// *http.Request into the engine's Request, dispatches it with the request's
// context as the execution handle and the App's configured environment
// handle, and writes the Response back.
//
// An unrecovered pipeline error becomes a plain 500; install
// middleware/recovery to shape error responses instead.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(io.LimitReader(r.Body, maxAdapterBodyBytes))
		if err != nil {
			a.logger.Error("read request body", "method", r.Method, "path", r.URL.Path, "error", err)
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
	}

	req := &Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		Query:      r.URL.Query(),
		Header:     r.Header,
		Body:       body,
		RemoteAddr: r.RemoteAddr,
	}

	resp, err := a.Dispatch(r.Context(), req, a.env)
	if err != nil {
		a.logger.Error("dispatch failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeResponse(w, req.Method, resp)
}

// writeResponse copies the engine response onto the wire.
func writeResponse(w http.ResponseWriter, method string, resp *Response) {
	header := w.Header()
	for key, values := range resp.Header {
		for _, value := range values {
			header.Add(key, value)
		}
	}
	if method != http.MethodHead && len(resp.Body) > 0 {
		header.Set("Content-Length", strconv.Itoa(len(resp.Body)))
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}
