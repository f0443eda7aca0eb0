package orders

import (
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/ramtechno90/Menu-app/pkg/enums/orderstatus"
)

// PaidNotification is raised when orders that were active at the previous poll
// are now reported as Paid. Orders paid within the same interval share one notification.
type PaidNotification struct {
	OrderIDs   []string
	ObservedAt time.Time
}

// Watcher tracks the active order ids between polls and raises the payment banner
// when an active order disappears because it was paid.
type Watcher struct {
	mu       sync.RWMutex
	previous map[string]struct{}
	primed   bool
	banner   bool
	now      func() time.Time
	logger   apt.Logger
}

// NewWatcher creates a watcher in the unknown state: its first observation never notifies.
func NewWatcher(logger apt.Logger) *Watcher {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Watcher{
		now:    time.Now,
		logger: logger,
	}
}

// Observe compares the active ids of orders with the ones seen at the previous
// observation and returns a notification when at least one vanished id is now Paid.
// The active set is replaced whether or not a notification is returned.
func (w *Watcher) Observe(orders []Order) *PaidNotification {
	current := activeIDs(orders)

	w.mu.Lock()
	defer w.mu.Unlock()

	previous, primed := w.previous, w.primed
	w.previous = current
	w.primed = true

	if !primed {
		w.logger.Debug("transition watcher primed", "active", len(current))
		return nil
	}

	var paid []string
	for id := range previous {
		if _, still := current[id]; still {
			continue
		}
		o, ok := findOrder(orders, id)
		if !ok {
			w.logger.Debug("active order vanished from collection", "order_id", id)
			continue
		}
		if o.Status == orderstatus.Statuses.Paid {
			paid = append(paid, id)
		}
	}

	if len(paid) == 0 {
		return nil
	}

	w.banner = true
	w.logger.Info("orders paid since last poll", "count", len(paid))

	return &PaidNotification{
		OrderIDs:   sortedIDs(paid),
		ObservedAt: w.now(),
	}
}

// BannerVisible reports whether the payment banner should be shown.
func (w *Watcher) BannerVisible() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.banner
}

// Dismiss hides the payment banner until the next payment is observed.
func (w *Watcher) Dismiss() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.banner = false
}

// Reset discards the active set and the banner; the next observation primes again.
func (w *Watcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.previous = nil
	w.primed = false
	w.banner = false
}

// ActiveIDs returns a copy of the active ids recorded at the last observation.
func (w *Watcher) ActiveIDs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ids := make([]string, 0, len(w.previous))
	for id := range w.previous {
		ids = append(ids, id)
	}
	return sortedIDs(ids)
}

func activeIDs(orders []Order) map[string]struct{} {
	ids := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if o.Status.IsActive() {
			ids[o.ID] = struct{}{}
		}
	}
	return ids
}
