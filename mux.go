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
	"log/slog"
	"strings"
	"sync"
)

// Handler is invoked for a matched path segment or a resolved method. A nil
// Response continues traversal into the handler's scope; a non-nil Response
// terminates the dispatch immediately. A non-nil error is a fault and is
// translated at the dispatch boundary.
type Handler func(*Context) (*Response, error)

// ParamHandler is the predicate-matched variant of Handler. It additionally
// receives the path segment that satisfied the predicate.
type ParamHandler func(*Context, string) (*Response, error)

// Predicate reports whether a path segment is acceptable for a parameter
// route. Predicates must be pure: no state, no side effects.
type Predicate func(string) bool

// Middleware composes a handler with cross-cutting concerns. Engine-level
// middleware registered with Use wraps the whole traversal, so it observes
// 404/405/501 outcomes as well as handler responses.
type Middleware func(Handler) Handler

// Mux is the dispatch engine: a root scope of literal, predicate, method and
// format handlers, walked segment-by-segment by Dispatch. Routes below the
// root are built lazily, one request at a time, by handlers registering on
// their Context scope.
//
// Root registration is guarded by a mutex but is expected to complete before
// serving begins; per-request scopes are never shared between dispatches, so
// concurrent dispatches against one Mux are safe.
type Mux struct {
	mu   sync.RWMutex
	root *node
	mw   []Middleware

	// Logger receives unexpected-fault and panic diagnostics. nil uses
	// slog.Default().
	Logger *slog.Logger
}

// node is one level of the routing tree. Literal children are always
// consulted before predicate entries, which are always consulted before
// method/format resolution at the terminal segment.
type node struct {
	paths   map[string]Handler
	params  []paramEntry
	methods map[string]Handler
	formats map[string]Handler
}

// paramEntry pairs a predicate with its handler. Slice order is registration
// order, and registration order is priority order.
type paramEntry struct {
	accept Predicate
	h      ParamHandler
}

// New creates a new Mux with an empty root scope.
func New() *Mux {
	return &Mux{root: &node{}}
}

// Use adds engine-level middleware, applied around the traversal in
// registration order.
func (m *Mux) Use(mw ...Middleware) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mw = append(m.mw, mw...)
}

// Path registers h for the literal segment at the root scope, replacing any
// previous handler for that segment.
func (m *Mux) Path(segment string, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.root.path(segment, h)
}

// Param appends a predicate route at the root scope. Earlier registrations
// take priority over later ones.
func (m *Mux) Param(p Predicate, h ParamHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.root.param(p, h)
}

// Method registers h for the given method at the root scope, replacing any
// previous handler for that method.
func (m *Mux) Method(method string, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.root.method(method, h)
}

// Format registers a format handler at the root scope and returns the Mux for
// chaining. Format handlers are accepted but not yet consulted during
// traversal; see the package documentation.
func (m *Mux) Format(name string, h Handler) *Mux {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.root.format(name, h)
	return m
}

func (n *node) path(segment string, h Handler) {
	if h == nil {
		panic("pika: nil handler")
	}
	if n.paths == nil {
		n.paths = make(map[string]Handler)
	}
	n.paths[segment] = h
}

func (n *node) param(p Predicate, h ParamHandler) {
	if p == nil {
		panic("pika: nil predicate")
	}
	if h == nil {
		panic("pika: nil handler")
	}
	n.params = append(n.params, paramEntry{accept: p, h: h})
}

func (n *node) method(method string, h Handler) {
	if h == nil {
		panic("pika: nil handler")
	}
	if n.methods == nil {
		n.methods = make(map[string]Handler)
	}
	n.methods[strings.ToUpper(method)] = h
}

func (n *node) format(name string, h Handler) {
	if h == nil {
		panic("pika: nil handler")
	}
	if n.formats == nil {
		n.formats = make(map[string]Handler)
	}
	n.formats[name] = h
}

// matchParam scans the node's predicate entries in registration order and
// returns the handler of the first predicate accepting seg.
func (n *node) matchParam(seg string) (ParamHandler, bool) {
	for _, e := range n.params {
		if e.accept(seg) {
			return e.h, true
		}
	}
	return nil, false
}

// splitPath breaks a request path into its non-empty segments, collapsing
// consecutive separators.
func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return []string{}
	}
	raw := strings.Split(p, "/")
	parts := raw[:0]
	for _, s := range raw {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

func (m *Mux) log() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}
