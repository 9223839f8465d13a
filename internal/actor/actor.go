// Package actor carries the platform user that caused an event or admin action.
package actor

import "context"

type contextKey string

const actorKey contextKey = "actor_id"

// WithID returns a context carrying the acting user id.
func WithID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, actorKey, id)
}

// FromContext returns the acting user id, or nil when the action was not
// attributable to a user (cron, anonymous visitor).
func FromContext(ctx context.Context) *int64 {
	if id, ok := ctx.Value(actorKey).(int64); ok {
		return &id
	}
	return nil
}
