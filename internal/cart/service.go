// Package cart holds the in-progress transaction: an ordered list of
// (category, rate) line items whose total is always derived, never stored.
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/varuna-collections/pos-api/internal/kv"
)

// ErrNotFound indicates the requested cart could not be located (or expired).
var ErrNotFound = errors.New("cart not found")

// LineItem is one selected (category, rate) pair.
type LineItem struct {
	Category string `json:"category"`
	Rate     int    `json:"rate"`
}

// Cart is the transaction-scoped item list.
type Cart struct {
	ID    string     `json:"id"`
	Items []LineItem `json:"items"`
}

// Total recomputes the running total from the line items.
func (c Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += int64(item.Rate)
	}
	return total
}

// Service persists carts in the KV store under a TTL: an abandoned
// transaction simply expires.
type Service struct {
	KV  *kv.Store
	TTL time.Duration
	Now func() time.Time
}

func (s *Service) ttl() time.Duration {
	if s == nil || s.TTL <= 0 {
		return 24 * time.Hour
	}
	return s.TTL
}

func cartKey(id string) string {
	return "cart:" + id
}

// Create mints a new empty cart.
func (s *Service) Create(ctx context.Context) (Cart, error) {
	if s == nil || s.KV == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	cart := Cart{ID: uuid.NewString(), Items: []LineItem{}}
	if err := s.KV.SetJSONTTL(ctx, cartKey(cart.ID), cart, s.ttl()); err != nil {
		return Cart{}, fmt.Errorf("persist cart: %w", err)
	}
	return cart, nil
}

// Get loads a cart by ID.
func (s *Service) Get(ctx context.Context, id string) (Cart, error) {
	if s == nil || s.KV == nil {
		return Cart{}, errors.New("cart service not configured")
	}
	var cart Cart
	found, err := s.KV.GetJSON(ctx, cartKey(id), &cart)
	if err != nil {
		return Cart{}, err
	}
	if !found {
		return Cart{}, ErrNotFound
	}
	return cart, nil
}

// AddItem appends a line item. The pair is not validated against the
// catalog; callers pick rates from the catalog view, so validity is their
// concern, and historical sales must not depend on the live catalog anyway.
func (s *Service) AddItem(ctx context.Context, id, category string, rate int) (Cart, error) {
	cart, err := s.Get(ctx, id)
	if err != nil {
		return Cart{}, err
	}
	cart.Items = append(cart.Items, LineItem{Category: category, Rate: rate})
	if err := s.KV.SetJSONTTL(ctx, cartKey(id), cart, s.ttl()); err != nil {
		return Cart{}, fmt.Errorf("persist cart: %w", err)
	}
	return cart, nil
}

// Clear empties the cart; the derived total returns to zero with it.
func (s *Service) Clear(ctx context.Context, id string) (Cart, error) {
	cart, err := s.Get(ctx, id)
	if err != nil {
		return Cart{}, err
	}
	cart.Items = []LineItem{}
	if err := s.KV.SetJSONTTL(ctx, cartKey(id), cart, s.ttl()); err != nil {
		return Cart{}, fmt.Errorf("persist cart: %w", err)
	}
	return cart, nil
}
