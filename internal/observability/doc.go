// Package observability groups the relay's logging, metrics and tracing.
//
// Subpackages:
//   - logging: slog JSON loggers with request-id propagation and secret masking
//   - metrics: Prometheus collectors for HTTP, delivery, events and storage
//   - tracing: OpenTelemetry tracer access and HTTP middleware
package observability
