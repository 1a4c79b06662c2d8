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

import "net/http"

// Response is the single uniform outcome of a dispatch. HasBody distinguishes
// an intentionally empty body from no body at all; Fault carries the original
// fault for diagnostics and is never serialized by the HTTP bridge.
type Response struct {
	Status  int
	Body    string
	HasBody bool
	Header  map[string]string
	Fault   error
}

// Text wraps a handler's text result as a 200 response with that body.
func Text(body string) *Response {
	return &Response{Status: http.StatusOK, Body: body, HasBody: true}
}

// Status wraps a bare status code as a body-less response.
func Status(code int) *Response {
	return &Response{Status: code}
}

// Respond builds a response with an explicit status code and body.
func Respond(code int, body string) *Response {
	return &Response{Status: code, Body: body, HasBody: true}
}

// SetHeader sets a response header value, allocating the header map on first
// use.
func (r *Response) SetHeader(k, v string) {
	if r.Header == nil {
		r.Header = make(map[string]string)
	}
	r.Header[k] = v
}
