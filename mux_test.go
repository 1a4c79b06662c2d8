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

var _ = Describe("Registration", func() {
	ok := func(*p.Context) (*p.Response, error) { return p.Text("ok"), nil }

	It("panics on nil handlers", func() {
		m := p.New()
		Expect(func() { m.Path("bad", nil) }).To(PanicWith("pika: nil handler"))
		Expect(func() { m.Method(http.MethodGet, nil) }).To(PanicWith("pika: nil handler"))
		Expect(func() { m.Param(p.Int(), nil) }).To(PanicWith("pika: nil handler"))
		Expect(func() { m.Format("json", nil) }).To(PanicWith("pika: nil handler"))
	})

	It("panics on a nil predicate", func() {
		m := p.New()
		Expect(func() {
			m.Param(nil, func(*p.Context, string) (*p.Response, error) { return nil, nil })
		}).To(PanicWith("pika: nil predicate"))
	})

	It("chains format registration", func() {
		m := p.New()
		Expect(m.Format("json", ok).Format("xml", ok)).To(BeIdenticalTo(m))
	})

	It("chains format registration on a dispatch scope", func() {
		m := p.New()
		m.Path("report", func(c *p.Context) (*p.Response, error) {
			Expect(c.Format("json", ok).Format("csv", ok)).To(BeIdenticalTo(c))
			c.Method(http.MethodGet, ok)
			return nil, nil
		})

		resp := m.Dispatch(p.NewRequest(http.MethodGet, "/report"))
		Expect(resp.Status).To(Equal(http.StatusOK))
	})

	It("resolves methods case-insensitively", func() {
		m := p.New()
		m.Method("get", ok)

		resp := m.Dispatch(p.NewRequest("GET", "/"))
		Expect(resp.Status).To(Equal(http.StatusOK))

		resp = m.Dispatch(p.NewRequest("get", "/"))
		Expect(resp.Status).To(Equal(http.StatusOK))
	})

	It("replaces method handlers registered twice", func() {
		m := p.New()
		m.Method(http.MethodGet, func(*p.Context) (*p.Response, error) { return p.Text("old"), nil })
		m.Method(http.MethodGet, func(*p.Context) (*p.Response, error) { return p.Text("new"), nil })

		resp := m.Dispatch(p.NewRequest(http.MethodGet, "/"))
		Expect(resp.Body).To(Equal("new"))
	})

	It("keeps request values immutable across copies", func() {
		req := p.NewRequest(http.MethodGet, "/x")
		req2 := req.WithValue("k", "v")
		Expect(req.Value("k")).To(BeNil())
		Expect(req2.Value("k")).To(Equal("v"))
		Expect(req2.Method()).To(Equal(http.MethodGet))
		Expect(req2.Path()).To(Equal("/x"))
	})
})
