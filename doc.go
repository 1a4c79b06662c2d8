// Package pika provides a minimal, lazily‑routed request dispatch engine.
//
// Unlike a conventional router, the routing tree below the root is not
// declared upfront: a path handler is invoked once per matched segment and
// registers its own sub‑routes on a fresh scope, so each request rebuilds
// exactly the subtree it walks. Segments resolve by literal match first, then
// by predicate (integer, float, boolean, slug, email) in registration order.
//
// It focuses on:
//   - A total Dispatch: every request yields exactly one Response, never a panic
//   - Explicit fault translation (HTTPError short‑circuits, anything else is a 500)
//   - Middleware‑driven cross‑cutting concerns (logging, auth, limits, metrics)
//
// Getting started:
//
//	m := pika.New()
//	m.Path("users", func(c *pika.Context) (*pika.Response, error) {
//		c.Method(http.MethodGet, func(*pika.Context) (*pika.Response, error) {
//			return pika.Text("all users"), nil
//		})
//		c.Param(pika.Int(), func(c *pika.Context, id string) (*pika.Response, error) {
//			return pika.Text("user " + id), nil
//		})
//		return nil, nil
//	})
//
//	srv := pika.NewServer(pika.ServerConfig{Addr: ":8080"}, pika.NewAdapter(m), nil)
//	_ = srv.Start()
//
// The package is transport‑agnostic; the HTTP bridge in Adapter is one
// collaborator, not a requirement.
package pika
