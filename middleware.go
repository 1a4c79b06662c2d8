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
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

const valueRequestID = "pika.request_id"

var idCounter uint64

func randomID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102150405.000000000"), atomic.AddUint64(&idCounter, 1))
	}
	return hex.EncodeToString(b)
}

// chain composes middlewares around a final handler
func chain(mw []Middleware, h Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// WithRequestID returns a copy of the request carrying a correlation id.
func WithRequestID(r *Request, id string) *Request {
	return r.WithValue(valueRequestID, id)
}

// RequestID extracts the request correlation ID if one was attached.
func RequestID(r *Request) (string, bool) {
	id, ok := r.Value(valueRequestID).(string)
	return id, ok
}

// LoggerConfig configures the Logger middleware.
type LoggerConfig struct {
	// Logger is the slog.Logger used for output. nil uses slog.Default().
	Logger *slog.Logger
}

// Logger provides structured dispatch logging with request id. The id comes
// from the transport's X-Request-Id header when present and is attached to
// the request for downstream handlers.
func Logger(cfg LoggerConfig) Middleware {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next Handler) Handler {
		return func(c *Context) (*Response, error) {
			id := HeaderValue(c.Request(), "X-Request-Id")
			if id == "" {
				id = randomID()
			}
			c.req = WithRequestID(c.req, id)
			start := time.Now()
			resp, err := next(c)
			dur := time.Since(start)
			logger.Info("dispatch",
				slog.String("id", id),
				slog.String("method", c.req.Method()),
				slog.String("path", c.req.Path()),
				slog.Int("status", outcomeStatus(resp, err)),
				slog.String("duration", dur.String()),
			)
			return resp, err
		}
	}
}

// outcomeStatus reports the status a dispatch outcome will resolve to once it
// crosses the fault translation boundary.
func outcomeStatus(resp *Response, err error) int {
	if err != nil {
		var he *HTTPError
		if errors.As(err, &he) {
			return he.Status
		}
		return http.StatusInternalServerError
	}
	if resp == nil {
		return http.StatusNotImplemented
	}
	return resp.Status
}
