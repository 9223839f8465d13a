package entity

import "time"

// LogType is the coarse outcome persisted in the activity log.
type LogType string

const (
	LogTypeSuccess LogType = "success"
	LogTypeError   LogType = "error"
)

// OutcomeKind classifies the final state of a delivery attempt.
type OutcomeKind string

const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomeNotConfigured  OutcomeKind = "not-configured"
	OutcomeInvalidURL     OutcomeKind = "invalid-url"
	OutcomeTransportError OutcomeKind = "transport-error"
	OutcomeHTTPError      OutcomeKind = "http-error"
	OutcomeException      OutcomeKind = "exception"
)

// LogType maps the outcome kind onto the persisted success/error type.
func (k OutcomeKind) LogType() LogType {
	if k == OutcomeSuccess {
		return LogTypeSuccess
	}
	return LogTypeError
}

// Outcome is the result of one Deliver call.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Detail  string
	// StatusCode is set for http-error outcomes and successful sends.
	StatusCode int
	// Attempts is the number of HTTP requests issued (0, 1 or 2).
	Attempts int
}

// Success reports whether the message reached the webhook.
func (o Outcome) Success() bool {
	return o.Kind == OutcomeSuccess
}

// LogEntry is one append-only activity log row. Entries are never edited;
// they are only removed by a bulk clear.
type LogEntry struct {
	ID        int64
	Type      LogType
	Kind      OutcomeKind
	Message   string
	Details   string
	Timestamp time.Time
	// ActorID is the platform user that triggered the delivery, if any.
	ActorID *int64
}

// LogStats summarizes the activity log for the settings screen.
type LogStats struct {
	Total   int64
	Success int64
	Error   int64
}
