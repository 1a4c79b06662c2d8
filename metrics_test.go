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
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	p "github.com/pikaweb/pika"
)

// counterValue digs a labeled counter sample out of gathered families.
func counterValue(reg *prometheus.Registry, name string, labels map[string]string) float64 {
	families, err := reg.Gather()
	Expect(err).NotTo(HaveOccurred())
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	metric:
		for _, m := range fam.GetMetric() {
			got := map[string]string{}
			for _, l := range m.GetLabel() {
				got[l.GetName()] = l.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue metric
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

var _ = Describe("Metrics", func() {
	It("counts dispatches by method and status", func() {
		reg := prometheus.NewRegistry()
		m := p.New()
		m.Use(p.Metrics(p.WithRegistry(reg)))
		m.Path("ping", func(c *p.Context) (*p.Response, error) {
			return p.Text("pong"), nil
		})

		m.Dispatch(p.NewRequest(http.MethodGet, "/ping"))
		m.Dispatch(p.NewRequest(http.MethodGet, "/ping"))
		m.Dispatch(p.NewRequest(http.MethodGet, "/missing/deep"))

		Expect(counterValue(reg, "pika_dispatches_total",
			map[string]string{"method": "GET", "status": "200"})).To(Equal(2.0))
		Expect(counterValue(reg, "pika_dispatches_total",
			map[string]string{"method": "GET", "status": "404"})).To(Equal(1.0))
	})

	It("counts faults by kind", func() {
		reg := prometheus.NewRegistry()
		m := p.New()
		m.Use(p.Metrics(p.WithRegistry(reg)))
		m.Path("forbidden", func(c *p.Context) (*p.Response, error) {
			return nil, p.NewHTTPError(http.StatusForbidden, "nope")
		})
		m.Path("broken", func(c *p.Context) (*p.Response, error) {
			return nil, errors.New("boom")
		})

		m.Dispatch(p.NewRequest(http.MethodGet, "/forbidden"))
		m.Dispatch(p.NewRequest(http.MethodGet, "/broken"))

		Expect(counterValue(reg, "pika_dispatch_faults_total",
			map[string]string{"kind": "http"})).To(Equal(1.0))
		Expect(counterValue(reg, "pika_dispatch_faults_total",
			map[string]string{"kind": "unexpected"})).To(Equal(1.0))
		Expect(counterValue(reg, "pika_dispatches_total",
			map[string]string{"method": "GET", "status": "403"})).To(Equal(1.0))
	})

	It("honors namespace overrides", func() {
		reg := prometheus.NewRegistry()
		m := p.New()
		m.Use(p.Metrics(p.WithRegistry(reg), p.WithNamespace("svc")))
		m.Method(http.MethodGet, func(*p.Context) (*p.Response, error) {
			return p.Status(http.StatusNoContent), nil
		})

		m.Dispatch(p.NewRequest(http.MethodGet, "/"))
		Expect(counterValue(reg, "svc_dispatches_total",
			map[string]string{"method": "GET", "status": "204"})).To(Equal(1.0))
	})
})
