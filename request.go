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

// Request is the immutable view of an incoming request consumed by the
// dispatch engine: a method, a path, and arbitrary attached values supplied
// by the transport collaborator or by middleware.
type Request struct {
	method string
	path   string
	values map[string]any
}

// NewRequest builds a Request for the given method and path.
func NewRequest(method, path string) *Request {
	return &Request{method: method, path: path}
}

// Method returns the request method as supplied by the transport.
func (r *Request) Method() string { return r.method }

// Path returns the raw request path.
func (r *Request) Path() string { return r.path }

// Value returns the attached value for key, or nil.
func (r *Request) Value(key string) any { return r.values[key] }

// WithValue returns a copy of the request with key set to v. The receiver is
// never mutated.
func (r *Request) WithValue(key string, v any) *Request {
	values := make(map[string]any, len(r.values)+1)
	for k, val := range r.values {
		values[k] = val
	}
	values[key] = v
	return &Request{method: r.method, path: r.path, values: values}
}
