package orders

import (
	"strings"
	"time"
)

// Status is the server-owned lifecycle state of an order. The client never
// sets it directly; it only requests transitions (cancel) that the backend
// applies.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus normalizes a backend status value. Absent or unrecognized
// values default to pending.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "processing":
		return StatusProcessing
	case "shipped":
		return StatusShipped
	case "delivered":
		return StatusDelivered
	case "cancelled", "canceled":
		return StatusCancelled
	default:
		return StatusPending
	}
}

// Cancellable reports whether an order in this status may still be cancelled.
func (s Status) Cancellable() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusShipped:
		return false
	}
	return true
}

type Item struct {
	ProductTitle string
	Quantity     int
	UnitPrice    float64
}

func (i Item) LineTotal() float64 {
	if i.Quantity <= 0 || i.UnitPrice <= 0 {
		return 0
	}
	return i.UnitPrice * float64(i.Quantity)
}

type Order struct {
	ID          string
	Number      string // optional display number; falls back to ID
	Status      Status
	CreatedAt   time.Time // zero when the backend omitted it
	TotalAmount float64
	Items       []Item
}

// DisplayNumber is the order number shown to the user.
func (o Order) DisplayNumber() string {
	if o.Number != "" {
		return o.Number
	}
	return o.ID
}

// Amount is the sort/display amount: the backend total when present,
// otherwise the sum of line totals. Missing values count as 0.
func (o Order) Amount() float64 {
	if o.TotalAmount > 0 {
		return o.TotalAmount
	}
	var sum float64
	for _, it := range o.Items {
		sum += it.LineTotal()
	}
	return sum
}

func CanCancel(o Order) bool { return o.Status.Cancellable() }
