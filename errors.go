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
)

// Sentinel faults attached to engine-produced responses so callers can
// distinguish routing outcomes without inspecting status codes.
var (
	// ErrNotFound is attached to 404 responses: no literal or predicate match
	// for a non-terminal segment, or a terminal segment with no extension.
	ErrNotFound = errors.New("pika: not found")

	// ErrMethodNotAllowed is attached to 405 responses.
	ErrMethodNotAllowed = errors.New("pika: method not allowed")

	// ErrNotImplemented is attached to 501 responses, produced when a method
	// handler ran but yielded neither a response nor a fault. That is a
	// handler-authoring bug, not a client error.
	ErrNotImplemented = errors.New("pika: handler produced no response")
)

// HTTPError is a deliberate, handler-raised fault carrying an HTTP status and
// optional message. Returning one from a handler short-circuits dispatch with
// exactly that status; any other error is translated to a 500.
type HTTPError struct {
	Status  int
	Message string
}

// NewHTTPError builds an HTTPError with the given status and message.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pika: http %d", e.Status)
	}
	return fmt.Sprintf("pika: http %d: %s", e.Status, e.Message)
}
