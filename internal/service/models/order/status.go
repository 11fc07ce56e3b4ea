package order

import "github.com/gebeta/delivery/internal/service/models/apperr"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// statusRank orders the forward chain. Cancelled sits outside the chain and
// is reachable from any non-terminal state.
var statusRank = map[Status]int{
	StatusPending:        0,
	StatusConfirmed:      1,
	StatusPreparing:      2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return s, nil
	default:
		return "", apperr.Validation("invalid order status %q", raw)
	}
}

// Terminal reports whether no further transitions are defined from s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether an order in state s may move to next.
// Re-setting the current status is allowed (the write is idempotent);
// terminal states are never left; cancellation is reachable from any
// non-terminal state; otherwise only forward moves along the chain.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return statusRank[next] > statusRank[s]
}

// Ongoing reports whether the order is still in flight. The client's
// "ongoing" and "past" views are derived from this, not stored.
func (s Status) Ongoing() bool {
	return !s.Terminal()
}

// OngoingStatuses returns the states that make up the "ongoing" view.
func OngoingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery}
}

// PastStatuses returns the states that make up the "past" view.
func PastStatuses() []Status {
	return []Status{StatusDelivered, StatusCancelled}
}
