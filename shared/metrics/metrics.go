package metrics

import "time"

// Recorder records service-level counters and latencies
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}

// Metric names recorded by the checkout service
const (
	CheckoutsStarted       = "checkouts_started_total"
	PaymentsProcessed      = "payments_processed_total"
	NotificationsProcessed = "notifications_processed_total"
	CheckoutsRepeated      = "checkouts_repeated_total"
	GatewayLatency         = "gateway_request_duration_seconds"
)
