// Package api hosts the HTTP server, middleware, and REST handlers of the
// bookmeta service. Notable routes:
//   - GET /healthz and /readyz for Kubernetes probes.
//   - GET /metrics for Prometheus scraping.
//   - GET /book?title=... for book metadata lookup.
package api
