// Package events turns raw platform hook notifications into deliveries.
//
// A Registry maps each event tag to an Adapter that resolves display data
// through read-only lookups. The Dispatcher runs extract, format, load
// config and deliver for one event without waiting on anything else.
package events

import "errors"

// ErrUnresolved means the event's entity could not be resolved or is
// filtered out (wrong post type). Such events are skipped silently.
var ErrUnresolved = errors.New("event entity unresolved")
