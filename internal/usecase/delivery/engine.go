// Package delivery sends formatted messages to the configured Discord webhook
// and records exactly one activity log entry per attempt.
package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"discord-logger/internal/actor"
	"discord-logger/internal/domain/entity"
	"discord-logger/internal/infra/discord"
	"discord-logger/internal/observability/metrics"
	"discord-logger/internal/observability/tracing"
	"discord-logger/internal/resilience/retry"
)

// Outcome messages written to the activity log.
const (
	msgNotConfigured  = "Webhook URL is not configured"
	msgInvalidURL     = "Invalid Discord webhook URL format"
	msgSendFailed     = "Failed to send webhook: "
	msgSent           = "Webhook sent successfully"
	msgSentOnRetry    = "Webhook sent successfully on retry"
	msgHTTPFailed     = "Webhook failed with response code "
	msgExceptionSends = "Exception while sending webhook: "
)

// LogAppender receives the single entry produced by each Deliver call.
// Implementations must not block the caller on storage failures.
type LogAppender interface {
	Append(ctx context.Context, entry *entity.LogEntry)
}

// Engine is stateless between calls; the delivery config is passed in on
// every call.
type Engine struct {
	client *discord.Client
	log    LogAppender
	site   entity.Site
	policy retry.Config
	now    func() time.Time
	tracer trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithHTTPClient replaces the default 30s TLS-verifying client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) { e.client = discord.NewClient(c) }
}

// WithRetryDelay changes the wait before the transport retry.
func WithRetryDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.policy.InitialDelay = d
		e.policy.MaxDelay = d
	}
}

// WithClock replaces time.Now for envelope and log timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithTracer replaces the global relay tracer.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// NewEngine builds an Engine that stamps site into every embed footer.
func NewEngine(log LogAppender, site entity.Site, opts ...Option) *Engine {
	e := &Engine{
		client: discord.NewClient(nil),
		log:    log,
		site:   site,
		policy: retry.WebhookConfig(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tracer == nil {
		e.tracer = tracing.Tracer()
	}
	return e
}

// MaxDuration is the longest one Deliver call can spend on the network:
// every attempt running into the request timeout plus the waits between
// them. Callers that put a deadline on Deliver must allow at least this much
// or a timed-out first attempt is never retried.
func (e *Engine) MaxDuration() time.Duration {
	return maxDuration(e.client.Timeout(), e.policy)
}

// DefaultMaxDuration is MaxDuration for an engine built without options.
func DefaultMaxDuration() time.Duration {
	return maxDuration(discord.DefaultTimeout, retry.WebhookConfig())
}

func maxDuration(requestTimeout time.Duration, p retry.Config) time.Duration {
	attempts := max(p.MaxAttempts, 1)
	return time.Duration(attempts)*requestTimeout + time.Duration(attempts-1)*p.MaxDelay
}

// Deliver validates cfg, sends msg and returns the final outcome. It never
// panics and never returns an error; every failure is an Outcome kind.
func (e *Engine) Deliver(ctx context.Context, msg entity.Message, cfg entity.DeliveryConfig) (out entity.Outcome) {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "delivery.Deliver")

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic during webhook delivery", slog.Any("panic", r))
			out = entity.Outcome{
				Kind:    entity.OutcomeException,
				Message: msgExceptionSends + entity.MaskWebhookURL(fmt.Sprint(r)),
				Detail:  entity.MaskWebhookURL(cfg.WebhookURL),
				// Attempts is unknown after a panic
			}
		}
		e.finish(ctx, span, out, time.Since(start))
	}()

	return e.send(ctx, msg, cfg)
}

func (e *Engine) send(ctx context.Context, msg entity.Message, cfg entity.DeliveryConfig) entity.Outcome {
	if !cfg.Configured() {
		return entity.Outcome{Kind: entity.OutcomeNotConfigured, Message: msgNotConfigured}
	}
	masked := entity.MaskWebhookURL(cfg.WebhookURL)
	if !entity.IsValidEndpoint(cfg.WebhookURL) {
		return entity.Outcome{Kind: entity.OutcomeInvalidURL, Message: msgInvalidURL, Detail: masked}
	}

	body, err := discord.Marshal(discord.BuildPayload(msg, cfg, e.site, e.now()))
	if err != nil {
		return entity.Outcome{Kind: entity.OutcomeException, Message: msgExceptionSends + err.Error(), Detail: masked}
	}

	var (
		attempts int
		firstErr error
		resp     discord.Response
	)
	policy := e.policy
	policy.Retryable = func(err error) bool {
		// 呼び出し元のキャンセルはリトライしない
		return ctx.Err() == nil && retry.IsTransient(err)
	}
	err = retry.WithBackoff(ctx, policy, func() error {
		attempts++
		if attempts > 1 {
			metrics.RecordDeliveryRetry()
		}
		r, err := e.client.Post(ctx, cfg.WebhookURL, body)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		reason := firstErr
		if reason == nil {
			reason = err
		}
		return entity.Outcome{
			Kind:     entity.OutcomeTransportError,
			Message:  msgSendFailed + entity.MaskWebhookURL(reason.Error()),
			Detail:   masked,
			Attempts: attempts,
		}
	}

	if !resp.Success() {
		detail := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if resp.Message != "" {
			detail += " (" + resp.Message + ")"
		}
		return entity.Outcome{
			Kind:       entity.OutcomeHTTPError,
			Message:    fmt.Sprintf("%s%d", msgHTTPFailed, resp.StatusCode),
			Detail:     detail + ": " + masked,
			StatusCode: resp.StatusCode,
			Attempts:   attempts,
		}
	}

	message := msgSent
	if attempts > 1 {
		message = msgSentOnRetry
	}
	return entity.Outcome{
		Kind:       entity.OutcomeSuccess,
		Message:    message,
		Detail:     msg.Title,
		StatusCode: resp.StatusCode,
		Attempts:   attempts,
	}
}

// finish writes the single log entry and the telemetry for one call.
func (e *Engine) finish(ctx context.Context, span trace.Span, out entity.Outcome, elapsed time.Duration) {
	defer span.End()

	entry := &entity.LogEntry{
		Type:      out.Kind.LogType(),
		Kind:      out.Kind,
		Message:   out.Message,
		Details:   out.Detail,
		Timestamp: e.now(),
		ActorID:   actor.FromContext(ctx),
	}
	e.log.Append(ctx, entry)

	metrics.RecordDelivery(string(out.Kind), elapsed)

	span.SetAttributes(
		attribute.String("delivery.kind", string(out.Kind)),
		attribute.Int("delivery.attempts", out.Attempts),
	)
	if out.StatusCode != 0 {
		span.SetAttributes(attribute.Int("http.status_code", out.StatusCode))
	}

	if out.Success() {
		span.SetStatus(codes.Ok, "")
		slog.InfoContext(ctx, "webhook delivered",
			slog.String("title", out.Detail),
			slog.Int("attempts", out.Attempts),
			slog.Duration("elapsed", elapsed))
		return
	}

	span.SetStatus(codes.Error, out.Message)
	slog.WarnContext(ctx, "webhook delivery failed",
		slog.String("kind", string(out.Kind)),
		slog.String("message", out.Message),
		slog.String("detail", out.Detail),
		slog.Int("attempts", out.Attempts),
		slog.Duration("elapsed", elapsed))
}
