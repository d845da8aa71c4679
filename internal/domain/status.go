// backend-go/internal/domain/status.go
package domain

// OrderStatus is a point in the order lifecycle. The chain is linear:
// Created -> Approved -> Packed -> Dispatched -> Received. A received
// quantity short of the ordered quantity is a recorded discrepancy, not a
// separate state, and does not block completion.
type OrderStatus string

const (
	StatusCreated    OrderStatus = "CREATED"
	StatusApproved   OrderStatus = "APPROVED"
	StatusPacked     OrderStatus = "PACKED"
	StatusDispatched OrderStatus = "DISPATCHED"
	StatusReceived   OrderStatus = "RECEIVED"
)

// next maps each status to its single legal successor. Received is terminal.
var next = map[OrderStatus]OrderStatus{
	StatusCreated:    StatusApproved,
	StatusApproved:   StatusPacked,
	StatusPacked:     StatusDispatched,
	StatusDispatched: StatusReceived,
}

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusCreated, StatusApproved, StatusPacked, StatusDispatched, StatusReceived:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusReceived
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	return next[s] == to
}

// StatusOf derives the current lifecycle position from the header's stamped
// markers. The markers are authoritative; there is no separate status column
// on the local header.
func StatusOf(o *Order) OrderStatus {
	switch {
	case o.ReceivedDate != nil:
		return StatusReceived
	case o.DispatchedDate != nil:
		return StatusDispatched
	case o.PackedDate != nil:
		return StatusPacked
	case o.ApprovedDate != nil:
		return StatusApproved
	default:
		return StatusCreated
	}
}
