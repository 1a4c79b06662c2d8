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

// Context binds a handler to one dispatch: the request being walked and the
// registration scope the handler's nested routes go into. Scopes are created
// fresh for every matched handler and never shared between dispatches, so a
// handler may register routes and re-dispatch without corrupting any
// in-flight traversal.
type Context struct {
	mux   *Mux
	req   *Request
	scope *node
}

// Request returns the immutable request view for this dispatch.
func (c *Context) Request() *Request { return c.req }

// Path registers h for the literal segment in the current scope, replacing
// any previous handler for that segment.
func (c *Context) Path(segment string, h Handler) {
	c.scope.path(segment, h)
}

// Param appends a predicate route in the current scope. Earlier registrations
// take priority over later ones.
func (c *Context) Param(p Predicate, h ParamHandler) {
	c.scope.param(p, h)
}

// Method registers h for the given method in the current scope, replacing any
// previous handler for that method.
func (c *Context) Method(method string, h Handler) {
	c.scope.method(method, h)
}

// Format registers a format handler in the current scope and returns the
// Context for chaining. Format handlers are accepted but not yet consulted
// during traversal.
func (c *Context) Format(name string, h Handler) *Context {
	c.scope.format(name, h)
	return c
}

// Dispatch runs a fresh dispatch against the same engine. The nested dispatch
// gets its own cursor, so the caller's traversal is unaffected when it
// returns.
func (c *Context) Dispatch(req *Request) *Response {
	return c.mux.Dispatch(req)
}
