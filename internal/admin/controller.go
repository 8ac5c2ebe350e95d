// Package admin holds the inventory and order operations behind the admin panel.
//
// The capability check is the session user's IsAdmin flag. It is a stand-in for
// real authorization and is enforced here, at the controller boundary, only.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/imrishuroy/novamart/internal/catalog"
	"github.com/imrishuroy/novamart/internal/orders"
	"github.com/imrishuroy/novamart/internal/validation"
	"github.com/rs/zerolog"
)

var (
	ErrForbidden    = errors.New("admin capability required")
	ErrNameRequired = errors.New("enter a product name first")
)

// Describer writes product copy. Failures come back as fallback text.
type Describer interface {
	DescribeProduct(ctx context.Context, name, category string) string
}

// Controller performs admin mutations. It holds no session state.
type Controller struct {
	validate  *validatorv10.Validate
	describer Describer
	newID     func() string
	log       zerolog.Logger
}

// NewController returns a Controller delegating generated copy to describer.
func NewController(describer Describer, log zerolog.Logger) *Controller {
	return &Controller{
		validate:  validation.New(),
		describer: describer,
		newID:     uuid.NewString,
		log:       log,
	}
}

func (c *Controller) authorize(u orders.User) error {
	if !u.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// AddProduct validates the draft and prepends the new product to store.
// A refused draft leaves store unchanged.
func (c *Controller) AddProduct(u orders.User, store *catalog.Store, d Draft) (catalog.Product, error) {
	if err := c.authorize(u); err != nil {
		return catalog.Product{}, err
	}

	d = d.normalized()
	if err := c.validate.Struct(d); err != nil {
		return catalog.Product{}, &DraftError{Fields: validation.FieldErrors(err)}
	}

	id := c.newID()
	p := catalog.Product{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Image:       placeholderImage(id),
		Stock:       d.Stock,
		Rating:      d.Rating,
	}
	if err := store.Prepend(p); err != nil {
		return catalog.Product{}, fmt.Errorf("add product: %w", err)
	}

	c.log.Info().Str("product_id", id).Str("name", p.Name).Msg("product added")
	return p, nil
}

// DeleteProduct removes a product. Unknown ids are a no-op and report false.
func (c *Controller) DeleteProduct(u orders.User, store *catalog.Store, id string) (bool, error) {
	if err := c.authorize(u); err != nil {
		return false, err
	}
	removed := store.Remove(id)
	if removed {
		c.log.Info().Str("product_id", id).Msg("product deleted")
	}
	return removed, nil
}

// SetOrderStatus returns the orders with id's status replaced. Transitions are
// unconstrained; the bool reports whether the order exists.
func (c *Controller) SetOrderStatus(u orders.User, list []orders.Order, id string, status orders.Status) ([]orders.Order, bool, error) {
	if err := c.authorize(u); err != nil {
		return list, false, err
	}
	if _, err := orders.ParseStatus(string(status)); err != nil {
		return list, false, err
	}
	next, ok := orders.SetStatus(list, id, status)
	if ok {
		c.log.Info().Str("order_id", id).Str("status", string(status)).Msg("order status updated")
	}
	return next, ok, nil
}

// GenerateDescription asks the describer for product copy. The result is the
// describer's text verbatim, which may be a fallback string.
func (c *Controller) GenerateDescription(ctx context.Context, u orders.User, name string, category catalog.Category) (string, error) {
	if err := c.authorize(u); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return c.describer.DescribeProduct(ctx, name, string(category)), nil
}

func placeholderImage(id string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/600/600", id)
}
