package metrics

import "time"

// RecordDelivery records the final outcome of one Deliver call.
func RecordDelivery(kind string, duration time.Duration) {
	DeliveryTotal.WithLabelValues(kind).Inc()
	DeliveryDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordDeliveryRetry records that the transport retry was attempted.
func RecordDeliveryRetry() {
	DeliveryRetriesTotal.Inc()
}

// RecordEventDispatched records how an ingested event was handled.
func RecordEventDispatched(eventType, status string) {
	EventsDispatchedTotal.WithLabelValues(eventType, status).Inc()
}

// RecordActivityLogAppendFailure records a dropped activity log row.
func RecordActivityLogAppendFailure() {
	ActivityLogAppendFailures.Inc()
}

// RecordPlatformLookup records one platform API lookup.
func RecordPlatformLookup(resource, result string) {
	PlatformLookupsTotal.WithLabelValues(resource, result).Inc()
}
