package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/imrishuroy/novamart/internal/catalog"
	"github.com/imrishuroy/novamart/internal/orders"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDescriber struct {
	calls []string
	reply string
}

func (f *fakeDescriber) DescribeProduct(ctx context.Context, name, category string) string {
	f.calls = append(f.calls, name+"|"+category)
	return f.reply
}

func newTestController(d Describer) *Controller {
	c := NewController(d, zerolog.Nop())
	c.newID = func() string { return "p-100" }
	return c
}

func validDraft() Draft {
	d := NewDraft()
	d.Name = "Desk Lamp"
	d.Description = "Warm light."
	d.Price = decimal.RequireFromString("39.90")
	d.Category = catalog.CategoryHome
	return d
}

var (
	admin = orders.DefaultUser()
	guest = orders.User{ID: "u2", Name: "Shopper"}
)

func TestAddProduct_PrependsWithIDAndPlaceholder(t *testing.T) {
	store := catalog.NewStore(catalog.SeedProducts())
	c := newTestController(&fakeDescriber{})

	p, err := c.AddProduct(admin, store, validDraft())
	require.NoError(t, err)

	assert.Equal(t, "p-100", p.ID)
	assert.Equal(t, "https://picsum.photos/seed/p-100/600/600", p.Image)
	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, 5.0, p.Rating)

	list := store.List()
	require.Len(t, list, 7)
	assert.Equal(t, "p-100", list[0].ID)
}

func TestAddProduct_MissingFieldsLeaveCatalogUnchanged(t *testing.T) {
	cases := map[string]func(*Draft){
		"name":        func(d *Draft) { d.Name = "  " },
		"description": func(d *Draft) { d.Description = "" },
		"price":       func(d *Draft) { d.Price = decimal.Zero },
		"category":    func(d *Draft) { d.Category = "Toys" },
		"rating":      func(d *Draft) { d.Rating = 7 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			store := catalog.NewStore(catalog.SeedProducts())
			before := store.List()
			d := validDraft()
			mutate(&d)

			_, err := newTestController(&fakeDescriber{}).AddProduct(admin, store, d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDraft))

			var de *DraftError
			require.True(t, errors.As(err, &de))
			assert.NotEmpty(t, de.Fields)
			assert.Equal(t, before, store.List())
		})
	}
}

func TestAddProduct_RequiresAdmin(t *testing.T) {
	store := catalog.NewStore(nil)
	_, err := newTestController(&fakeDescriber{}).AddProduct(guest, store, validDraft())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 0, store.Len())
}

func TestDeleteProduct(t *testing.T) {
	store := catalog.NewStore(catalog.SeedProducts())
	c := newTestController(&fakeDescriber{})

	removed, err := c.DeleteProduct(admin, store, "3")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 5, store.Len())

	removed, err = c.DeleteProduct(admin, store, "3")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = c.DeleteProduct(guest, store, "1")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 5, store.Len())
}

func TestSetOrderStatus_AnyTransition(t *testing.T) {
	c := newTestController(&fakeDescriber{})
	list := []orders.Order{{ID: "o1", Status: orders.StatusDelivered}}

	next, ok, err := c.SetOrderStatus(admin, list, "o1", orders.StatusProcessing)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, orders.StatusProcessing, next[0].Status)

	_, ok, err = c.SetOrderStatus(admin, list, "ghost", orders.StatusShipped)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = c.SetOrderStatus(admin, list, "o1", orders.Status("Lost"))
	assert.ErrorIs(t, err, orders.ErrUnknownStatus)

	_, _, err = c.SetOrderStatus(guest, list, "o1", orders.StatusShipped)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGenerateDescription(t *testing.T) {
	d := &fakeDescriber{reply: "Bright and warm."}
	c := newTestController(d)

	text, err := c.GenerateDescription(context.Background(), admin, " Desk Lamp ", catalog.CategoryHome)
	require.NoError(t, err)
	assert.Equal(t, "Bright and warm.", text)
	assert.Equal(t, []string{"Desk Lamp|Home & Living"}, d.calls)

	_, err = c.GenerateDescription(context.Background(), admin, "", catalog.CategoryHome)
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = c.GenerateDescription(context.Background(), guest, "Lamp", catalog.CategoryHome)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, d.calls, 1)
}
