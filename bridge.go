/*
 *    Copyright 2025 The Pika Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package pika

import (
	"io"
	"net/http"
)

// Well-known request value keys attached by the HTTP bridge.
const (
	// ValueHeader carries the transport request headers as an http.Header.
	ValueHeader = "pika.header"

	// ValueRemoteAddr carries the transport peer address as a string.
	ValueRemoteAddr = "pika.remote_addr"
)

// HeaderValue returns a transport request header attached under ValueHeader,
// or "" when the request did not come through the bridge.
func HeaderValue(r *Request, name string) string {
	h, _ := r.Value(ValueHeader).(http.Header)
	if h == nil {
		return ""
	}
	return h.Get(name)
}

// Adapter bridges net/http to the engine. It builds the engine's immutable
// Request view from the incoming http.Request, dispatches it, and writes the
// resulting Response out. The attached Fault is diagnostic only and is never
// serialized.
type Adapter struct {
	Mux *Mux
}

// NewAdapter wraps a Mux as an http.Handler.
func NewAdapter(m *Mux) *Adapter {
	return &Adapter{Mux: m}
}

// ServeHTTP implements http.Handler.
func (a *Adapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := NewRequest(r.Method, r.URL.Path).
		WithValue(ValueHeader, r.Header).
		WithValue(ValueRemoteAddr, r.RemoteAddr)

	resp := a.Mux.Dispatch(req)
	for k, v := range resp.Header {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.Status)
	if resp.HasBody {
		_, _ = io.WriteString(w, resp.Body)
	}
}
