// Package session is the explicit state container of one storefront session.
//
// A Session owns its user, catalog, cart, placed orders and assistant
// transcript. Every mutation goes through a named method that runs under the
// session lock, so an observer never sees a half-applied add, remove or checkout.
// The only background work is text generation and event delivery; neither holds
// the lock while it runs.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/imrishuroy/novamart/internal/admin"
	"github.com/imrishuroy/novamart/internal/assistant"
	"github.com/imrishuroy/novamart/internal/cart"
	"github.com/imrishuroy/novamart/internal/catalog"
	"github.com/imrishuroy/novamart/internal/orders"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("session not found")
	ErrBusy        = errors.New("description generation already in progress")
	ErrUnknownView = errors.New("unknown view")
)

// View is the storefront surface the session is looking at.
type View string

const (
	ViewShop  View = "shop"
	ViewAdmin View = "admin"
)

// EventSink receives order events after they are committed to the session.
// at is the commit time of a status change; it increases strictly per session,
// so consumers can discard events that arrive out of order.
type EventSink interface {
	OrderPlaced(ctx context.Context, sessionID string, o orders.Order) error
	OrderStatusChanged(ctx context.Context, sessionID string, o orders.Order, at time.Time) error
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) OrderPlaced(context.Context, string, orders.Order) error { return nil }
func (NopSink) OrderStatusChanged(context.Context, string, orders.Order, time.Time) error {
	return nil
}

// Deps are shared, stateless collaborators injected into every session.
type Deps struct {
	Admin        *admin.Controller
	Recommender  assistant.Recommender
	Factory      *orders.Factory
	Sink         EventSink
	Seed         func() []catalog.Product
	AsyncTimeout time.Duration
	Log          zerolog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Factory == nil {
		d.Factory = orders.NewFactory()
	}
	if d.Sink == nil {
		d.Sink = NopSink{}
	}
	if d.Seed == nil {
		d.Seed = catalog.SeedProducts
	}
	if d.AsyncTimeout <= 0 {
		d.AsyncTimeout = 5 * time.Second
	}
	return d
}

// DescriptionResult is the outcome of a generated-description request.
type DescriptionResult struct {
	Text string
	Err  error
}

// Session is one shopper's in-memory storefront state.
type Session struct {
	id        string
	createdAt time.Time
	deps      Deps
	log       zerolog.Logger
	assistant *assistant.Session

	mu          sync.Mutex
	user        orders.User
	view        View
	products    *catalog.Store
	lines       []cart.Line
	placed      []orders.Order
	describing  bool
	description string
	lastChange  time.Time
}

// New builds a session for user with a freshly seeded catalog.
func New(id string, user orders.User, deps Deps) *Session {
	deps = deps.withDefaults()
	return &Session{
		id:        id,
		createdAt: time.Now().UTC(),
		deps:      deps,
		log:       deps.Log.With().Str("session_id", id).Logger(),
		assistant: assistant.New(deps.Recommender),
		user:      user,
		view:      ViewShop,
		products:  catalog.NewStore(deps.Seed()),
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// User returns the session user.
func (s *Session) User() orders.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetView switches between the shop and admin surfaces.
func (s *Session) SetView(v View) error {
	if v != ViewShop && v != ViewAdmin {
		return fmt.Errorf("%w: %q", ErrUnknownView, v)
	}
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	return nil
}

// Products returns the filtered catalog.
func (s *Session) Products(category catalog.Category, query string) []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Filter(s.products.List(), category, query)
}

// Product looks up one catalog entry.
func (s *Session) Product(id string) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.Get(id)
}

// Cart returns a copy of the cart lines.
func (s *Session) Cart() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.Clone(s.lines)
}

// AddToCart adds one unit of a catalog product.
func (s *Session) AddToCart(productID string) ([]cart.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.products.Get(productID)
	if err != nil {
		return nil, err
	}
	s.lines = cart.AddItem(s.lines, p)
	return cart.Clone(s.lines), nil
}

// ChangeQuantity adjusts a line's quantity, never below 1. Unknown ids are ignored.
func (s *Session) ChangeQuantity(productID string, delta int) []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = cart.ChangeQuantity(s.lines, productID, delta)
	return cart.Clone(s.lines)
}

// RemoveFromCart drops a line. Unknown ids are ignored.
func (s *Session) RemoveFromCart(productID string) []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = cart.RemoveItem(s.lines, productID)
	return cart.Clone(s.lines)
}

// Checkout turns the cart into an order. Recording the order and clearing the
// cart happen in one critical section. An empty cart is refused with
// orders.ErrEmptyCart and nothing changes.
func (s *Session) Checkout() (orders.Order, error) {
	s.mu.Lock()
	user := s.user
	o, err := s.deps.Factory.Checkout(s.lines, &user)
	if err != nil {
		s.mu.Unlock()
		return orders.Order{}, err
	}
	s.placed = append([]orders.Order{o}, s.placed...)
	s.lines = nil
	// later status changes must sort after the placement time
	if o.Date.After(s.lastChange) {
		s.lastChange = o.Date
	}
	s.mu.Unlock()

	s.log.Info().
		Str("order_id", o.ID).
		Str("tracking_number", o.TrackingNumber).
		Str("total", o.Total.StringFixed(2)).
		Msg("order placed")

	placed := o.Clone()
	s.emit(o.ID, func(ctx context.Context) error {
		return s.deps.Sink.OrderPlaced(ctx, s.id, placed)
	})
	return o.Clone(), nil
}

// Orders returns placed orders, newest first.
func (s *Session) Orders() []orders.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]orders.Order, len(s.placed))
	for i, o := range s.placed {
		out[i] = o.Clone()
	}
	return out
}

// Order returns one placed order.
func (s *Session) Order(id string) (orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := orders.Find(s.placed, id)
	if !ok {
		return orders.Order{}, fmt.Errorf("%w: %s", orders.ErrNotFound, id)
	}
	return o, nil
}

// AddProduct adds a product through the admin controller.
func (s *Session) AddProduct(d admin.Draft) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deps.Admin.AddProduct(s.user, s.products, d)
}

// DeleteProduct removes a product through the admin controller. Cart lines and
// placed orders keep their snapshots.
func (s *Session) DeleteProduct(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deps.Admin.DeleteProduct(s.user, s.products, id)
}

// SetOrderStatus sets a placed order's status. The bool reports whether the order exists.
func (s *Session) SetOrderStatus(id string, status orders.Status) (orders.Order, bool, error) {
	s.mu.Lock()
	next, ok, err := s.deps.Admin.SetOrderStatus(s.user, s.placed, id, status)
	if err != nil || !ok {
		s.mu.Unlock()
		return orders.Order{}, ok, err
	}
	s.placed = next
	o, _ := orders.Find(s.placed, id)
	at := s.changeTime()
	s.mu.Unlock()

	changed := o.Clone()
	s.emit(o.ID, func(ctx context.Context) error {
		return s.deps.Sink.OrderStatusChanged(ctx, s.id, changed, at)
	})
	return o, true, nil
}

// changeTime returns a strictly increasing commit time. Callers hold s.mu.
func (s *Session) changeTime() time.Time {
	at := time.Now().UTC()
	if !at.After(s.lastChange) {
		at = s.lastChange.Add(time.Nanosecond)
	}
	s.lastChange = at
	return at
}

// GenerateDescription requests product copy in the background. Only one request
// runs at a time; a second call while one is pending gets ErrBusy. The result is
// also kept as the session's latest generated description.
func (s *Session) GenerateDescription(ctx context.Context, name string, category catalog.Category) (<-chan DescriptionResult, error) {
	s.mu.Lock()
	if s.describing {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.describing = true
	user := s.user
	s.mu.Unlock()

	done := make(chan DescriptionResult, 1)
	go func() {
		text, err := s.deps.Admin.GenerateDescription(ctx, user, name, category)

		s.mu.Lock()
		if err == nil {
			s.description = text
		}
		s.describing = false
		s.mu.Unlock()

		done <- DescriptionResult{Text: text, Err: err}
		close(done)
	}()
	return done, nil
}

// Ask forwards a question to the assistant with a summary of the current catalog.
func (s *Session) Ask(ctx context.Context, text string) (<-chan assistant.Message, error) {
	s.mu.Lock()
	summary := catalog.Summary(s.products.List())
	s.mu.Unlock()
	return s.assistant.Ask(ctx, text, summary)
}

// Transcript returns the assistant conversation.
func (s *Session) Transcript() []assistant.Message { return s.assistant.Messages() }

// AssistantPending reports whether an assistant reply is outstanding.
func (s *Session) AssistantPending() bool { return s.assistant.Pending() }

// Snapshot is a read-only summary of the session for rendering.
type Snapshot struct {
	ID               string          `json:"id"`
	User             orders.User     `json:"user"`
	View             View            `json:"view"`
	CreatedAt        time.Time       `json:"created_at"`
	ProductCount     int             `json:"product_count"`
	CartCount        int             `json:"cart_count"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	OrderCount       int             `json:"order_count"`
	Describing       bool            `json:"describing"`
	Description      string          `json:"description,omitempty"`
	AssistantPending bool            `json:"assistant_pending"`
}

// Snapshot returns the current session summary.
func (s *Session) Snapshot() Snapshot {
	pending := s.assistant.Pending()

	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:               s.id,
		User:             s.user,
		View:             s.view,
		CreatedAt:        s.createdAt,
		ProductCount:     s.products.Len(),
		CartCount:        cart.Count(s.lines),
		Subtotal:         cart.Subtotal(s.lines),
		OrderCount:       len(s.placed),
		Describing:       s.describing,
		Description:      s.description,
		AssistantPending: pending,
	}
}

func (s *Session) emit(orderID string, send func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.deps.AsyncTimeout)
		defer cancel()
		if err := send(ctx); err != nil {
			s.log.Warn().Err(err).Str("order_id", orderID).Msg("order event delivery failed")
		}
	}()
}
