package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Category is one of the fixed storefront departments.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryHome        Category = "Home & Living"
	CategorySports      Category = "Sports"
	CategoryBeauty      Category = "Beauty"
)

// All is the filter sentinel matching every category. It is never a valid product category.
const All Category = "All"

var categories = []Category{
	CategoryElectronics,
	CategoryFashion,
	CategoryHome,
	CategorySports,
	CategoryBeauty,
}

// Categories returns the enumerated categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the enumerated product categories.
func (c Category) Valid() bool {
	for _, k := range categories {
		if c == k {
			return true
		}
	}
	return false
}

// ParseCategory accepts an enumerated category or the All sentinel.
// An empty string is treated as All.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if s == "" || c == All {
		return All, nil
	}
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Product is a catalog entry.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating"`
}
