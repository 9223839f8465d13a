package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"discord-logger/internal/actor"
	"discord-logger/internal/domain/entity"
	"discord-logger/internal/observability/metrics"
	"discord-logger/internal/observability/tracing"
	"discord-logger/internal/usecase/format"
)

// Status is the coarse result of one Dispatch call.
type Status string

const (
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Result describes what happened to one event.
type Result struct {
	Status Status `json:"status"`
	// Reason is set for skipped and failed events.
	Reason string `json:"reason,omitempty"`
	// Outcome is set when a delivery was attempted.
	Outcome *entity.Outcome `json:"-"`
}

// ConfigLoader returns the current delivery settings.
type ConfigLoader interface {
	Load(ctx context.Context) (entity.DeliveryConfig, error)
}

// Deliverer sends one message.
type Deliverer interface {
	Deliver(ctx context.Context, msg entity.Message, cfg entity.DeliveryConfig) entity.Outcome
}

// Dispatcher handles each event independently of every other event.
type Dispatcher struct {
	registry *Registry
	lookups  Lookups
	settings ConfigLoader
	engine   Deliverer
	enabled  map[entity.EventType]bool
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithEnabled restricts dispatch to types. An empty list enables all.
func WithEnabled(types ...entity.EventType) DispatcherOption {
	return func(d *Dispatcher) {
		if len(types) == 0 {
			d.enabled = nil
			return
		}
		d.enabled = make(map[entity.EventType]bool, len(types))
		for _, t := range types {
			d.enabled[t] = true
		}
	}
}

// NewDispatcher wires the pipeline.
func NewDispatcher(reg *Registry, lookups Lookups, settings ConfigLoader, engine Deliverer, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{registry: reg, lookups: lookups, settings: settings, engine: engine}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Enabled reports whether t would be dispatched.
func (d *Dispatcher) Enabled(t entity.EventType) bool {
	if _, ok := d.registry.Lookup(t); !ok {
		return false
	}
	return d.enabled == nil || d.enabled[t]
}

// Dispatch extracts, formats and delivers raw. The only error it returns is
// entity.ErrUnknownEventType; every other problem is reported in Result.
// Unresolved entities and disabled types produce no delivery and no
// activity log entry.
func (d *Dispatcher) Dispatch(ctx context.Context, raw entity.RawEvent) (res Result, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "events.Dispatch")
	span.SetAttributes(attribute.String("event.type", string(raw.Type)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.String("event.status", string(res.Status)))
			metrics.RecordEventDispatched(string(raw.Type), string(res.Status))
		}
		span.End()
	}()

	adapter, ok := d.registry.Lookup(raw.Type)
	if !ok {
		metrics.RecordEventDispatched("unknown", "rejected")
		return Result{}, fmt.Errorf("dispatch %q: %w", raw.Type, entity.ErrUnknownEventType)
	}
	logger := slog.With(slog.String("event_type", string(raw.Type)), slog.Int64("object_id", raw.ObjectID))

	if d.enabled != nil && !d.enabled[raw.Type] {
		logger.DebugContext(ctx, "event type disabled")
		return Result{Status: StatusSkipped, Reason: "disabled"}, nil
	}

	payload, err := adapter.Extract(ctx, d.lookups, raw)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			logger.DebugContext(ctx, "event skipped", slog.String("reason", err.Error()))
			return Result{Status: StatusSkipped, Reason: err.Error()}, nil
		}
		logger.WarnContext(ctx, "event lookup failed", slog.Any("error", err))
		return Result{Status: StatusFailed, Reason: "lookup failed"}, nil
	}

	msg, err := format.Format(raw.Type, payload)
	if err != nil {
		logger.ErrorContext(ctx, "event format failed", slog.Any("error", err))
		return Result{Status: StatusFailed, Reason: "format failed"}, nil
	}

	cfg, err := d.settings.Load(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "load delivery config failed", slog.Any("error", err))
		return Result{Status: StatusFailed, Reason: "settings unavailable"}, nil
	}

	if raw.ActorID != nil {
		ctx = actor.WithID(ctx, *raw.ActorID)
	}
	out := d.engine.Deliver(ctx, msg, cfg)
	res = Result{Status: StatusDelivered, Outcome: &out}
	if !out.Success() {
		res.Status = StatusFailed
		res.Reason = string(out.Kind)
	}
	return res, nil
}
