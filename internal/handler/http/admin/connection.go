package admin

import (
	"net/http"
	"strconv"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/handler/http/respond"
	"discord-logger/internal/observability/logging"

	"golang.org/x/time/rate"
)

const (
	testTitle       = "✅ Test Message"
	testDescription = "Discord Logger connection test successful!"

	msgTestSent          = "Test message sent successfully!"
	msgTestNotConfigured = "No webhook URL configured"
	msgTestInvalidURL    = "Invalid Discord webhook URL format"
)

// TestMessage is the fixed sample embed sent by the connection test.
func TestMessage() entity.Message {
	return entity.NewMessage(testTitle, testDescription, entity.ColorGreen)
}

// TestConnectionHandler sends TestMessage through the delivery engine with
// the saved settings, so the attempt is also recorded in the activity log.
type TestConnectionHandler struct {
	Engine   Deliverer
	Settings SettingsService
	Limiter  *rate.Limiter
}

func (h TestConnectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Limiter != nil && !h.Limiter.Allow() {
		w.Header().Set("Retry-After", "2")
		respond.JSON(w, http.StatusTooManyRequests, Result{Message: "rate limit exceeded"})
		return
	}

	cfg, err := h.Settings.Load(ctx)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := h.Engine.Deliver(ctx, TestMessage(), cfg)
	logging.FromContext(ctx).Info("connection test finished",
		"kind", string(out.Kind), "status_code", out.StatusCode)

	respond.JSON(w, http.StatusOK, Result{
		Success: out.Success(),
		Message: TestResultMessage(out),
		Detail:  out.Detail,
	})
}

// TestResultMessage is the administrator-facing text for a connection test.
func TestResultMessage(out entity.Outcome) string {
	switch out.Kind {
	case entity.OutcomeSuccess:
		return msgTestSent
	case entity.OutcomeNotConfigured:
		return msgTestNotConfigured
	case entity.OutcomeInvalidURL:
		return msgTestInvalidURL
	case entity.OutcomeHTTPError:
		return "HTTP Error: " + strconv.Itoa(out.StatusCode)
	default:
		return out.Message
	}
}
