package delivery

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"discord-logger/internal/actor"
	"discord-logger/internal/domain/entity"
	"discord-logger/internal/infra/discord"
	"discord-logger/internal/observability/metrics"
)

/* ──── ヘルパ ──── */

const testWebhook = "https://discord.com/api/webhooks/123456/tok-EN_secret"

type recordingLog struct {
	mu      sync.Mutex
	entries []*entity.LogEntry
}

func (r *recordingLog) Append(_ context.Context, e *entity.LogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

func (r *recordingLog) only(t *testing.T) *entity.LogEntry {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.Len(t, r.entries, 1)
	return r.entries[0]
}

// scriptedTransport answers each request with the next step.
type scriptedTransport struct {
	mu     sync.Mutex
	steps  []func(*http.Request) (*http.Response, error)
	calls  int
	bodies [][]byte
}

func (s *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	i := s.calls
	s.calls++
	body, _ := io.ReadAll(req.Body)
	s.bodies = append(s.bodies, body)
	s.mu.Unlock()

	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	if i >= len(s.steps) {
		return status(http.StatusNoContent, "")(req)
	}
	return s.steps[i](req)
}

func status(code int, body string) func(*http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: code,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	}
}

func refused(*http.Request) (*http.Response, error) {
	return nil, &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
}

func newTestEngine(t *testing.T, steps ...func(*http.Request) (*http.Response, error)) (*Engine, *scriptedTransport, *recordingLog) {
	t.Helper()
	tr := &scriptedTransport{steps: steps}
	log := &recordingLog{}
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	e := NewEngine(log, entity.Site{Name: "My Blog", URL: "https://blog.example"},
		WithHTTPClient(&http.Client{Transport: tr}),
		WithRetryDelay(time.Millisecond),
		WithClock(func() time.Time { return fixed }),
	)
	return e, tr, log
}

func testMessage() entity.Message {
	return entity.NewMessage("🔐 User Login", "A user has logged in", entity.ColorBlue,
		entity.Field{Name: "Username", Value: "alice", Inline: true})
}

func testConfig() entity.DeliveryConfig {
	return entity.DeliveryConfig{WebhookURL: testWebhook}
}

/* ──── テスト ──── */

func TestDeliver_NotConfigured(t *testing.T) {
	e, tr, log := newTestEngine(t)

	out := e.Deliver(context.Background(), testMessage(), entity.DeliveryConfig{})

	assert.Equal(t, entity.OutcomeNotConfigured, out.Kind)
	assert.Equal(t, 0, out.Attempts)
	assert.Equal(t, 0, tr.calls)

	entry := log.only(t)
	assert.Equal(t, entity.LogTypeError, entry.Type)
	assert.Equal(t, "Webhook URL is not configured", entry.Message)
	assert.Empty(t, entry.Details)
}

func TestDeliver_InvalidURL(t *testing.T) {
	e, tr, log := newTestEngine(t)

	out := e.Deliver(context.Background(), testMessage(),
		entity.DeliveryConfig{WebhookURL: "https://example.com/api/webhooks/1/x"})

	assert.Equal(t, entity.OutcomeInvalidURL, out.Kind)
	assert.Equal(t, 0, tr.calls)
	assert.Equal(t, "Invalid Discord webhook URL format", log.only(t).Message)
}

func TestDeliver_Success(t *testing.T) {
	e, tr, log := newTestEngine(t, status(http.StatusNoContent, ""))

	out := e.Deliver(context.Background(), testMessage(), testConfig())

	require.True(t, out.Success())
	assert.Equal(t, 1, out.Attempts)
	assert.Equal(t, 1, tr.calls)

	entry := log.only(t)
	assert.Equal(t, entity.LogTypeSuccess, entry.Type)
	assert.Equal(t, "Webhook sent successfully", entry.Message)
	assert.Equal(t, "🔐 User Login", entry.Details)

	var payload discord.WebhookPayload
	require.NoError(t, json.Unmarshal(tr.bodies[0], &payload))
	assert.Equal(t, entity.DefaultBotName, payload.Username)
	require.Len(t, payload.Embeds, 1)
	assert.Equal(t, "My Blog | https://blog.example", payload.Embeds[0].Footer.Text)
	assert.Equal(t, "2024-05-01T12:00:00Z", payload.Embeds[0].Timestamp)
}

func TestDeliver_Status200IsSuccess(t *testing.T) {
	e, _, _ := newTestEngine(t, status(http.StatusOK, `{}`))

	out := e.Deliver(context.Background(), testMessage(), testConfig())
	assert.True(t, out.Success())
	assert.Equal(t, http.StatusOK, out.StatusCode)
}

func TestDeliver_TransportRetrySucceeds(t *testing.T) {
	e, tr, log := newTestEngine(t, refused, status(http.StatusNoContent, ""))

	out := e.Deliver(context.Background(), testMessage(), testConfig())

	require.True(t, out.Success())
	assert.Equal(t, 2, out.Attempts)
	assert.Equal(t, 2, tr.calls)
	assert.Equal(t, "Webhook sent successfully on retry", log.only(t).Message)
}

func TestDeliver_TransportRetryFails(t *testing.T) {
	e, tr, log := newTestEngine(t, refused, refused)

	out := e.Deliver(context.Background(), testMessage(), testConfig())

	assert.Equal(t, entity.OutcomeTransportError, out.Kind)
	assert.Equal(t, 2, tr.calls)

	entry := log.only(t)
	assert.True(t, strings.HasPrefix(entry.Message, "Failed to send webhook: "), entry.Message)
	assert.Contains(t, entry.Message, "connection refused")
	assert.NotContains(t, entry.Message, "tok-EN_secret")
	assert.Equal(t, "https://discord.com/api/webhooks/123456/****", entry.Details)
}

// hang blocks until the request is given up on.
func hang(req *http.Request) (*http.Response, error) {
	<-req.Context().Done()
	return nil, req.Context().Err()
}

func TestMaxDuration(t *testing.T) {
	assert.Equal(t, 62*time.Second, DefaultMaxDuration())
	assert.Equal(t, DefaultMaxDuration(), NewEngine(&recordingLog{}, entity.Site{}).MaxDuration())

	e := NewEngine(&recordingLog{}, entity.Site{},
		WithHTTPClient(&http.Client{Timeout: 100 * time.Millisecond}),
		WithRetryDelay(20*time.Millisecond))
	assert.Equal(t, 220*time.Millisecond, e.MaxDuration())
}

func TestDeliver_TimeoutRetriedUnderDeadline(t *testing.T) {
	tr := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){hang, hang}}
	log := &recordingLog{}
	e := NewEngine(log, entity.Site{},
		WithHTTPClient(&http.Client{Transport: tr, Timeout: 100 * time.Millisecond}),
		WithRetryDelay(20*time.Millisecond))

	// 受付側と同じく MaxDuration 分の期限を付ける
	ctx, cancel := context.WithTimeout(context.WithoutCancel(context.Background()), e.MaxDuration()+100*time.Millisecond)
	defer cancel()

	out := e.Deliver(ctx, testMessage(), testConfig())

	assert.Equal(t, entity.OutcomeTransportError, out.Kind)
	assert.Equal(t, 2, out.Attempts)
	tr.mu.Lock()
	assert.Equal(t, 2, tr.calls)
	tr.mu.Unlock()
	assert.Contains(t, log.only(t).Message, "Client.Timeout exceeded")
}

func TestDeliver_HTTPErrorIsNotRetried(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusTooManyRequests, http.StatusInternalServerError} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			e, tr, log := newTestEngine(t, status(code, `{"message":"Unknown Webhook","code":10015}`))

			out := e.Deliver(context.Background(), testMessage(), testConfig())

			assert.Equal(t, entity.OutcomeHTTPError, out.Kind)
			assert.Equal(t, code, out.StatusCode)
			assert.Equal(t, 1, tr.calls)

			entry := log.only(t)
			assert.Contains(t, entry.Message, "Webhook failed with response code")
			assert.Contains(t, entry.Details, "HTTP "+strconv.Itoa(code))
			assert.Contains(t, entry.Details, "Unknown Webhook")
			assert.NotContains(t, entry.Details, "tok-EN_secret")
		})
	}
}

func TestDeliver_PanicBecomesException(t *testing.T) {
	e, _, log := newTestEngine(t, func(*http.Request) (*http.Response, error) {
		panic("boom")
	})

	var out entity.Outcome
	require.NotPanics(t, func() {
		out = e.Deliver(context.Background(), testMessage(), testConfig())
	})

	assert.Equal(t, entity.OutcomeException, out.Kind)
	entry := log.only(t)
	assert.Equal(t, "Exception while sending webhook: boom", entry.Message)
	assert.Equal(t, entity.LogTypeError, entry.Type)
}

func TestDeliver_CanceledContextIsNotRetried(t *testing.T) {
	e, tr, log := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := e.Deliver(ctx, testMessage(), testConfig())

	assert.Equal(t, entity.OutcomeTransportError, out.Kind)
	assert.LessOrEqual(t, tr.calls, 1)
	assert.Len(t, log.entries, 1)
}

func TestDeliver_RecordsActor(t *testing.T) {
	e, _, log := newTestEngine(t)

	e.Deliver(actor.WithID(context.Background(), 42), testMessage(), testConfig())

	entry := log.only(t)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, int64(42), *entry.ActorID)
}

func TestDeliver_Telemetry(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tr := &scriptedTransport{steps: []func(*http.Request) (*http.Response, error){status(http.StatusNotFound, "")}}
	e := NewEngine(&recordingLog{}, entity.Site{},
		WithHTTPClient(&http.Client{Transport: tr}),
		WithTracer(tp.Tracer("test")),
	)

	before := testutil.ToFloat64(metrics.DeliveryTotal.WithLabelValues(string(entity.OutcomeHTTPError)))
	e.Deliver(context.Background(), testMessage(), testConfig())
	after := testutil.ToFloat64(metrics.DeliveryTotal.WithLabelValues(string(entity.OutcomeHTTPError)))
	assert.Equal(t, before+1, after)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "delivery.Deliver", spans[0].Name)
	var kind string
	for _, a := range spans[0].Attributes {
		if a.Key == "delivery.kind" {
			kind = a.Value.AsString()
		}
	}
	assert.Equal(t, string(entity.OutcomeHTTPError), kind)
}
