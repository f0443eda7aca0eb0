package orders

import (
	"sort"
	"time"

	"github.com/ramtechno90/Menu-app/pkg/enums/orderstatus"
)

// PaidHistory returns the paid orders, newest first.
func PaidHistory(orders []Order) []Order {
	paid := make([]Order, 0)
	for _, o := range orders {
		if o.Status == orderstatus.Statuses.Paid {
			paid = append(paid, o)
		}
	}
	newestFirst(paid)
	return paid
}

// RecentlyPaid returns paid orders whose status changed within the visibility window,
// most recently paid first.
func RecentlyPaid(orders []Order, now time.Time, window time.Duration) []Order {
	recent := make([]Order, 0)
	if window <= 0 {
		return recent
	}

	cutoff := now.Add(-window)
	for _, o := range orders {
		if o.Status != orderstatus.Statuses.Paid {
			continue
		}
		if o.StatusUpdatedAt.After(cutoff) {
			recent = append(recent, o)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].StatusUpdatedAt.After(recent[j].StatusUpdatedAt)
	})
	return recent
}

// CanModify reports whether a customer may still delete or recart the order.
func CanModify(o Order, cfg Config, now time.Time) bool {
	if o.Status != orderstatus.Statuses.Pending {
		return false
	}
	return now.Sub(o.Timestamp) < cfg.CancellationCutoff()
}

func sortedIDs(ids []string) []string {
	sort.Strings(ids)
	return ids
}
