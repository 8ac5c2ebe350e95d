package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrDuplicateID     = errors.New("product id already in catalog")
	ErrUnknownCategory = errors.New("unknown category")
)

// Store holds the ordered product list of one session.
// It is not safe for concurrent use; the owning session serializes access.
type Store struct {
	products []Product
}

// NewStore returns a Store seeded with a copy of seed.
func NewStore(seed []Product) *Store {
	s := &Store{products: make([]Product, len(seed))}
	copy(s.products, seed)
	return s
}

// List returns a copy of the catalog in display order.
func (s *Store) List() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len returns the number of products.
func (s *Store) Len() int { return len(s.products) }

// Get looks up a product by id.
func (s *Store) Get(id string) (Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Prepend puts p at the front of the catalog (most recent first).
func (s *Store) Prepend(p Product) error {
	for _, existing := range s.products {
		if existing.ID == p.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
	}
	next := make([]Product, 0, len(s.products)+1)
	next = append(next, p)
	s.products = append(next, s.products...)
	return nil
}

// Remove drops the product with the given id and reports whether it was present.
func (s *Store) Remove(id string) bool {
	for i, p := range s.products {
		if p.ID == id {
			next := make([]Product, 0, len(s.products)-1)
			next = append(next, s.products[:i]...)
			s.products = append(next, s.products[i+1:]...)
			return true
		}
	}
	return false
}
