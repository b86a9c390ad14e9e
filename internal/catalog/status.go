package catalog

import "strings"

// OrderStatus is the closed order lifecycle enumeration. Forward
// transitions run Pending → Confirmed → Processed → Delivered;
// Cancelled is reachable from any non-terminal status.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusConfirmed OrderStatus = "Confirmed"
	StatusProcessed OrderStatus = "Processed"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
	StatusUnknown   OrderStatus = ""
)

var forwardOrder = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusProcessed,
	StatusDelivered,
}

// ParseOrderStatus folds case and maps legacy backend spellings
// ("Processing", "Shipped") onto the closed enumeration.
func ParseOrderStatus(value string) OrderStatus {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending":
		return StatusPending
	case "confirmed":
		return StatusConfirmed
	case "processed", "processing", "shipped":
		return StatusProcessed
	case "delivered":
		return StatusDelivered
	case "cancelled", "canceled":
		return StatusCancelled
	}
	return StatusUnknown
}

// Terminal reports whether no further transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next returns the forward transition target, or the status itself when
// it is terminal or unknown.
func (s OrderStatus) Next() OrderStatus {
	for i, status := range forwardOrder {
		if s == status && i+1 < len(forwardOrder) {
			return forwardOrder[i+1]
		}
	}
	return s
}

// CanTransition reports whether moving from s to target is legal:
// exactly one forward step, or cancellation of a non-terminal order.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	if target == StatusCancelled {
		return !s.Terminal() && s != StatusUnknown
	}
	return !s.Terminal() && s.Next() == target && target != s
}

// String returns the wire spelling.
func (s OrderStatus) String() string {
	return string(s)
}
