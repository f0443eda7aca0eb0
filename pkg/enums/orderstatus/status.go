package orderstatus

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is the lifecycle state of an order as reported by the order store.
type Status string

func (s Status) Code() string {
	return string(s)
}

func (s Status) Label() string {
	return cases.Title(language.English).String(string(s))
}

// IsActive reports whether the order still needs attention (not paid, not rejected).
func (s Status) IsActive() bool {
	return s == Statuses.Pending || s == Statuses.Accepted || s == Statuses.Completed
}

// IsTerminal reports whether no further transition is expected.
func (s Status) IsTerminal() bool {
	return s == Statuses.Paid || s == Statuses.Rejected
}

type Enum struct {
	Pending   Status
	Accepted  Status
	Completed Status
	Rejected  Status
	Paid      Status
}

var Statuses = Enum{
	Pending:   "Pending",
	Accepted:  "Accepted",
	Completed: "Completed",
	Rejected:  "Rejected",
	Paid:      "Paid",
}

var All = []Status{
	Statuses.Pending,
	Statuses.Accepted,
	Statuses.Completed,
	Statuses.Rejected,
	Statuses.Paid,
}

// Active lists the statuses shown on the live order boards, in board order.
var Active = []Status{
	Statuses.Pending,
	Statuses.Accepted,
	Statuses.Completed,
}

// transitions holds the only edges a client may request.
var transitions = map[Status][]Status{
	Statuses.Pending:   {Statuses.Accepted, Statuses.Rejected},
	Statuses.Accepted:  {Statuses.Completed, Statuses.Rejected},
	Statuses.Completed: {Statuses.Paid},
}

// CanTransition reports whether moving an order from one status to another is a valid edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Next returns the statuses reachable from s in one step.
func Next(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if string(s) == name {
			return &s
		}
	}
	return nil
}
