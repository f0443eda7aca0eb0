package orders

import (
	"context"
	"encoding/json"

	"github.com/appetiteclub/apt"
	"github.com/ramtechno90/Menu-app/pkg/event"
)

// Publisher delivers raw messages to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg []byte) error
}

// PaidNotifier forwards paid notifications to the event bus so other consumers
// (printers, loyalty, analytics) can react. A nil publisher turns it into a no-op.
type PaidNotifier struct {
	publisher Publisher
	logger    apt.Logger
}

func NewPaidNotifier(publisher Publisher, logger apt.Logger) *PaidNotifier {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &PaidNotifier{publisher: publisher, logger: logger}
}

// Notify publishes n for the given view. Publishing failures are logged, never returned:
// the banner state is already updated and must not depend on the bus.
func (p *PaidNotifier) Notify(ctx context.Context, view string, n *PaidNotification) {
	if p == nil || p.publisher == nil || n == nil {
		return
	}

	payload, err := json.Marshal(event.OrderPaidEvent{
		EventType:  event.EventOrderPaid,
		OccurredAt: n.ObservedAt,
		View:       view,
		OrderIDs:   n.OrderIDs,
	})
	if err != nil {
		p.logger.Error("cannot encode paid event", "error", err)
		return
	}

	if err := p.publisher.Publish(ctx, event.OrdersPaidTopic, payload); err != nil {
		p.logger.Error("cannot publish paid event", "view", view, "error", err)
		return
	}

	p.logger.Debug("paid event published", "view", view, "orders", len(n.OrderIDs))
}
