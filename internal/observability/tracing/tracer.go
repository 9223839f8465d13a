package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans created by the relay.
const InstrumentationName = "discord-logger"

// Tracer returns the relay tracer from the current global provider.
// It is resolved on every call so a provider installed after package init,
// including the one set up in tests, is picked up.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
