package orders

import (
	"sort"

	"github.com/ramtechno90/Menu-app/pkg/enums/orderstatus"
)

// Buckets partitions the active orders by status for the order boards.
type Buckets struct {
	Pending   []Order `json:"pending"`
	Accepted  []Order `json:"accepted"`
	Completed []Order `json:"completed"`
}

// For returns the bucket holding the given status, or nil for statuses that are not bucketed.
func (b Buckets) For(status orderstatus.Status) []Order {
	switch status {
	case orderstatus.Statuses.Pending:
		return b.Pending
	case orderstatus.Statuses.Accepted:
		return b.Accepted
	case orderstatus.Statuses.Completed:
		return b.Completed
	default:
		return nil
	}
}

// Len returns the number of orders across all buckets.
func (b Buckets) Len() int {
	return len(b.Pending) + len(b.Accepted) + len(b.Completed)
}

// Classify splits orders into the Pending, Accepted and Completed buckets, newest first.
// Rejected and Paid orders are left out. Orders with equal timestamps keep their input order.
func Classify(orders []Order) Buckets {
	b := Buckets{
		Pending:   make([]Order, 0),
		Accepted:  make([]Order, 0),
		Completed: make([]Order, 0),
	}

	for _, o := range orders {
		switch o.Status {
		case orderstatus.Statuses.Pending:
			b.Pending = append(b.Pending, o)
		case orderstatus.Statuses.Accepted:
			b.Accepted = append(b.Accepted, o)
		case orderstatus.Statuses.Completed:
			b.Completed = append(b.Completed, o)
		}
	}

	newestFirst(b.Pending)
	newestFirst(b.Accepted)
	newestFirst(b.Completed)

	return b
}

func newestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Timestamp.After(orders[j].Timestamp)
	})
}
