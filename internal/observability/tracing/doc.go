// Package tracing provides OpenTelemetry helpers for the relay.
//
// The HTTP Middleware starts a server span per request and echoes the trace
// id in X-Trace-Id. The delivery engine starts its own "delivery.Deliver"
// span beneath it. cmd/relay installs the SDK tracer provider.
package tracing
