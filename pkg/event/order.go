package event

import "time"

const (
	OrdersPaidTopic = "orders.paid"
	EventOrderPaid  = "order.paid"
)

// OrderPaidEvent is published when a poll notices that active orders were settled.
// Several orders paid within one poll interval share a single event.
type OrderPaidEvent struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	View       string    `json:"view"`
	OrderIDs   []string  `json:"order_ids"`
}
