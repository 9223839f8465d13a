// Package ingest receives platform hook events from the bridge and hands
// them to the dispatcher.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/handler/http/respond"
	"discord-logger/internal/observability/logging"
	"discord-logger/internal/usecase/delivery"
	"discord-logger/internal/usecase/events"
)

// lookupBudget covers the platform lookups of one event, retries included.
const lookupBudget = 30 * time.Second

// DispatchTimeout bounds one accepted event: its lookups plus a delivery
// that may take up to deliveryMax (see delivery.Engine.MaxDuration).
func DispatchTimeout(deliveryMax time.Duration) time.Duration {
	return lookupBudget + deliveryMax
}

// Dispatcher is satisfied by *events.Dispatcher.
type Dispatcher interface {
	Dispatch(ctx context.Context, raw entity.RawEvent) (events.Result, error)
}

// Handler serves POST /events.
type Handler struct {
	Dispatcher Dispatcher
	Secret     []byte
	Now        func() time.Time
	// Timeout bounds each dispatch; zero means DispatchTimeout of the
	// default delivery engine. The bridge hanging up does not cancel an
	// event that was already accepted.
	Timeout time.Duration
}

func (h *Handler) timeout() time.Duration {
	if h.Timeout > 0 {
		return h.Timeout
	}
	return DispatchTimeout(delivery.DefaultMaxDuration())
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.JSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return
		}
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := Verify(h.Secret, h.now(), r.Header.Get(TimestampHeader), r.Header.Get(SignatureHeader), body); err != nil {
		logger.Warn("event rejected", slog.String("reason", err.Error()))
		respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	}

	raw, err := decode(body)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if raw.OccurredAt.IsZero() {
		raw.OccurredAt = h.now()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.timeout())
	defer cancel()

	res, err := h.Dispatcher.Dispatch(ctx, raw)
	switch {
	case errors.Is(err, entity.ErrUnknownEventType):
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "unknown event type"})
		return
	case err != nil:
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusAccepted, res)
}

func decode(body []byte) (entity.RawEvent, error) {
	var raw entity.RawEvent
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return entity.RawEvent{}, errors.New("invalid request body")
	}
	if raw.Type == "" {
		return entity.RawEvent{}, errors.New("type is required")
	}
	return raw, nil
}
