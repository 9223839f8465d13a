// Package metrics provides the relay's Prometheus collectors.
//
// All collectors are registered on the default registry via promauto and
// exposed at /metrics. Callers use the Record* helpers rather than touching
// the vectors directly.
package metrics
