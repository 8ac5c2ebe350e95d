package orders

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imrishuroy/novamart/internal/cart"
)

const trackingTokenLen = 10

// Factory turns carts into orders.
type Factory struct {
	nowFunc  func() time.Time
	newToken func() string
}

// NewFactory returns a Factory stamping orders with the wall clock and uuid-derived ids.
func NewFactory() *Factory {
	return &Factory{
		nowFunc:  time.Now,
		newToken: uuid.NewString,
	}
}

// Checkout snapshots lines into a new Processing order. It refuses an empty cart
// with ErrEmptyCart. The caller records the order and clears the cart together.
func (f *Factory) Checkout(lines []cart.Line, user *User) (Order, error) {
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	userID := GuestUserID
	if user != nil && user.ID != "" {
		userID = user.ID
	}

	items := cart.Clone(lines)
	return Order{
		ID:             "ord-" + f.newToken(),
		UserID:         userID,
		Items:          items,
		Total:          cart.Subtotal(items),
		Status:         StatusProcessing,
		Date:           f.nowFunc().UTC(),
		TrackingNumber: f.trackingNumber(),
	}, nil
}

func (f *Factory) trackingNumber() string {
	token := strings.ToUpper(strings.ReplaceAll(f.newToken(), "-", ""))
	if len(token) > trackingTokenLen {
		token = token[:trackingTokenLen]
	}
	return "TX" + token
}

// SetStatus returns a new slice with the matching order's status replaced.
// Any status may follow any other. The bool reports whether id was found.
func SetStatus(list []Order, id string, status Status) ([]Order, bool) {
	out := make([]Order, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i].Status = status
			return out, true
		}
	}
	return list, false
}

// Find returns the order with the given id.
func Find(list []Order, id string) (Order, bool) {
	for _, o := range list {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return Order{}, false
}
