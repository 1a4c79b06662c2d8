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

package pika_test

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	p "github.com/pikaweb/pika"
)

var _ = Describe("RateLimit", func() {
	newMux := func(cfg p.RateLimitConfig) *p.Mux {
		m := p.New()
		m.Use(p.RateLimit(cfg))
		m.Path("ping", func(c *p.Context) (*p.Response, error) {
			return p.Text("pong"), nil
		})
		return m
	}

	request := func(addr string) *p.Request {
		return p.NewRequest(http.MethodGet, "/ping").WithValue(p.ValueRemoteAddr, addr)
	}

	It("allows bursts up to the configured size then responds 429", func() {
		m := newMux(p.RateLimitConfig{Rate: 0.001, Burst: 2})

		Expect(m.Dispatch(request("10.0.0.1:1234")).Status).To(Equal(http.StatusOK))
		Expect(m.Dispatch(request("10.0.0.1:1234")).Status).To(Equal(http.StatusOK))

		resp := m.Dispatch(request("10.0.0.1:1234"))
		Expect(resp.Status).To(Equal(http.StatusTooManyRequests))
		Expect(resp.Header).To(HaveKey("Retry-After"))
		var he *p.HTTPError
		Expect(resp.Fault).To(BeAssignableToTypeOf(he))
	})

	It("tracks clients independently", func() {
		m := newMux(p.RateLimitConfig{Rate: 0.001, Burst: 1})

		Expect(m.Dispatch(request("10.0.0.1:1")).Status).To(Equal(http.StatusOK))
		Expect(m.Dispatch(request("10.0.0.1:2")).Status).To(Equal(http.StatusTooManyRequests))
		Expect(m.Dispatch(request("10.0.0.2:1")).Status).To(Equal(http.StatusOK))
	})

	It("prefers the first X-Forwarded-For address as the client key", func() {
		m := newMux(p.RateLimitConfig{Rate: 0.001, Burst: 1})
		hdr := http.Header{}
		hdr.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		forwarded := p.NewRequest(http.MethodGet, "/ping").
			WithValue(p.ValueHeader, hdr).
			WithValue(p.ValueRemoteAddr, "10.0.0.1:1")

		Expect(m.Dispatch(forwarded).Status).To(Equal(http.StatusOK))
		Expect(m.Dispatch(forwarded).Status).To(Equal(http.StatusTooManyRequests))
		// Same peer, different forwarded client: separate bucket.
		Expect(m.Dispatch(request("10.0.0.1:1")).Status).To(Equal(http.StatusOK))
	})
})
