// Package cart implements the shopping cart as pure reducers over a slice of lines.
// No function here mutates its input; each returns the next cart.
package cart

import (
	"math"

	"github.com/imrishuroy/novamart/internal/catalog"
	"github.com/shopspring/decimal"
)

// Line is a product snapshot plus a quantity. Quantity is always >= 1.
type Line struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// LineTotal is price × quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// AddItem increments the line for p, or appends a new line with quantity 1.
func AddItem(lines []Line, p catalog.Product) []Line {
	out := make([]Line, len(lines), len(lines)+1)
	copy(out, lines)
	for i := range out {
		if out[i].ID == p.ID {
			out[i].Quantity++
			return out
		}
	}
	return append(out, Line{Product: p, Quantity: 1})
}

// ChangeQuantity adds delta to the line's quantity, clamped to a minimum of 1.
// The sum saturates at math.MaxInt. Unknown ids leave the cart unchanged.
func ChangeQuantity(lines []Line, id string, delta int) []Line {
	idx := indexOf(lines, id)
	if idx < 0 {
		return lines
	}
	out := Clone(lines)
	out[idx].Quantity = max(1, addQuantity(out[idx].Quantity, delta))
	return out
}

// addQuantity adds delta to q (q >= 1) without wrapping. A negative delta
// cannot underflow because q is positive.
func addQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}
	return q + delta
}

// RemoveItem drops the line with the given id. Unknown ids leave the cart unchanged.
func RemoveItem(lines []Line, id string) []Line {
	idx := indexOf(lines, id)
	if idx < 0 {
		return lines
	}
	out := make([]Line, 0, len(lines)-1)
	out = append(out, lines[:idx]...)
	return append(out, lines[idx+1:]...)
}

// Subtotal sums price × quantity across all lines.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Count is the total number of units in the cart.
func Count(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// Clone returns an independent copy of lines.
func Clone(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

func indexOf(lines []Line, id string) int {
	for i, l := range lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}
