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
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sort"
	"strings"
)

// Dispatch walks the routing tree against req and returns exactly one
// Response. It is total: handler faults and panics are translated to
// responses at this boundary, and nothing escapes it.
func (m *Mux) Dispatch(req *Request) (resp *Response) {
	m.mu.RLock()
	mw := m.mw
	root := m.root
	m.mu.RUnlock()

	defer func() {
		if r := recover(); r != nil {
			m.log().Error("panic recovered",
				slog.Any("err", r),
				slog.String("path", req.Path()),
				slog.String("stack", string(debug.Stack())),
			)
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("pika: panic: %v", r)
			}
			resp = &Response{Status: http.StatusInternalServerError, Fault: err}
		}
	}()

	h := chain(mw, m.walk)
	out, err := h(&Context{mux: m, req: req, scope: root})
	if err != nil {
		return m.faultResponse(req, err)
	}
	if out == nil {
		// A middleware swallowed the traversal result.
		return &Response{Status: http.StatusNotImplemented, Fault: ErrNotImplemented}
	}
	return out
}

// walk consumes the request path segment by segment. The cursor (current node
// plus remaining segments) is local to this call, so nested dispatches from
// inside handlers cannot disturb it.
func (m *Mux) walk(c *Context) (*Response, error) {
	req := c.req
	cur := c.scope
	segments := splitPath(req.Path())

	for i, seg := range segments {
		last := i == len(segments)-1

		// Literal children win over predicates.
		if h, ok := cur.paths[seg]; ok {
			scope := &node{}
			resp, err := h(&Context{mux: m, req: req, scope: scope})
			if resp != nil || err != nil {
				return resp, err
			}
			cur = scope
			continue
		}

		if h, ok := cur.matchParam(seg); ok {
			scope := &node{}
			resp, err := h(&Context{mux: m, req: req, scope: scope}, seg)
			if resp != nil || err != nil {
				return resp, err
			}
			cur = scope
			continue
		}

		if !last {
			return notFound(), nil
		}

		// Terminal segment with no match: a dotted segment is treated as
		// name.extension and falls through to method resolution. Dispatching
		// on the extension via format handlers is not implemented.
		if _, _, dotted := strings.Cut(seg, "."); !dotted {
			return notFound(), nil
		}
	}

	h, ok := cur.methods[strings.ToUpper(req.Method())]
	if !ok {
		return methodNotAllowed(cur), nil
	}
	resp, err := h(&Context{mux: m, req: req, scope: cur})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return &Response{Status: http.StatusNotImplemented, Fault: ErrNotImplemented}, nil
	}
	return resp, nil
}

// faultResponse is the single fault translation point: a deliberate HTTPError
// becomes exactly its declared status, anything else becomes a logged 500.
// The original fault stays attached for diagnostics.
func (m *Mux) faultResponse(req *Request, err error) *Response {
	var he *HTTPError
	if errors.As(err, &he) {
		resp := &Response{Status: he.Status, Fault: err}
		if he.Message != "" {
			resp.Body = he.Message
			resp.HasBody = true
		}
		return resp
	}
	m.log().Error("unexpected dispatch fault",
		slog.Any("err", err),
		slog.String("method", req.Method()),
		slog.String("path", req.Path()),
	)
	return &Response{Status: http.StatusInternalServerError, Fault: err}
}

func notFound() *Response {
	return &Response{Status: http.StatusNotFound, Fault: ErrNotFound}
}

func methodNotAllowed(n *node) *Response {
	allowed := make([]string, 0, len(n.methods))
	for method := range n.methods {
		allowed = append(allowed, method)
	}
	sort.Strings(allowed)
	resp := &Response{Status: http.StatusMethodNotAllowed, Fault: ErrMethodNotAllowed}
	resp.SetHeader("Allow", strings.Join(allowed, ", "))
	return resp
}
