package admin

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/imrishuroy/novamart/internal/catalog"
	"github.com/shopspring/decimal"
)

// ErrInvalidDraft is wrapped by every draft validation failure.
var ErrInvalidDraft = errors.New("invalid product draft")

// Draft is the admin form for a new product.
type Draft struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Price       decimal.Decimal  `json:"price" validate:"required,gt=0"`
	Category    catalog.Category `json:"category" validate:"category"`
	Stock       int              `json:"stock" validate:"gte=0"`
	Rating      float64          `json:"rating" validate:"gte=0,lte=5"`
}

// NewDraft returns a draft pre-filled with the form defaults.
func NewDraft() Draft {
	return Draft{
		Category: catalog.CategoryElectronics,
		Stock:    10,
		Rating:   5.0,
	}
}

func (d Draft) normalized() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	return d
}

// DraftError lists the offending fields of a refused draft.
type DraftError struct {
	Fields map[string]string
}

func (e *DraftError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s: %s", ErrInvalidDraft, strings.Join(names, ", "))
}

func (e *DraftError) Unwrap() error { return ErrInvalidDraft }
