package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/imrishuroy/novamart/internal/cart"
	"github.com/shopspring/decimal"
)

// Status is the fulfilment state of an order.
type Status string

// Order statuses
const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrUnknownStatus = errors.New("unknown order status")
	ErrNotFound      = errors.New("order not found")
)

// Statuses lists every settable status.
func Statuses() []Status {
	return []Status{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// ParseStatus validates s against the enumerated statuses.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// GuestUserID is recorded on orders placed without a signed-in user.
const GuestUserID = "guest"

// User is the shopper owning a session.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// DefaultUser is the demo account new sessions start with.
func DefaultUser() User {
	return User{ID: "u1", Name: "Admin User", Email: "admin@novamart.com", IsAdmin: true}
}

// Order is an immutable snapshot of a checked-out cart. Only Status changes afterwards.
type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Items          []cart.Line     `json:"items"`
	Total          decimal.Decimal `json:"total"`
	Status         Status          `json:"status"`
	Date           time.Time       `json:"date"`
	TrackingNumber string          `json:"tracking_number"`
}

// Clone returns a copy of o that shares no item storage with it.
func (o Order) Clone() Order {
	o.Items = cart.Clone(o.Items)
	return o
}
