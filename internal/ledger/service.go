// Package ledger is the append-only record of completed sales. The whole
// array is rewritten to the KV store on every append, so the persisted key
// is always either fully updated or untouched.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/varuna-collections/pos-api/internal/cart"
	"github.com/varuna-collections/pos-api/internal/common"
	"github.com/varuna-collections/pos-api/internal/events"
	"github.com/varuna-collections/pos-api/internal/kv"
	"github.com/varuna-collections/pos-api/internal/obs"
)

// Service owns the sale ledger.
type Service struct {
	KV    *kv.Store
	Key   string
	Carts *cart.Service
	Bus   *events.Bus
	Now   func() time.Time

	mu    sync.Mutex
	sales []Sale
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Load initialises the in-memory ledger from the KV store; an absent key is
// an empty ledger.
func (s *Service) Load(ctx context.Context) error {
	if s == nil || s.KV == nil {
		return errors.New("ledger service not configured")
	}
	var sales []Sale
	if _, err := s.KV.GetJSON(ctx, s.Key, &sales); err != nil {
		return fmt.Errorf("load sales: %w", err)
	}
	s.mu.Lock()
	s.sales = sales
	s.mu.Unlock()
	return nil
}

// RecordSale freezes the cart into a Sale, appends it, persists the full
// ledger, and clears the cart. The ledger is left untouched when any
// precondition fails.
func (s *Service) RecordSale(ctx context.Context, cartID, phone string, method PaymentMethod) (Sale, error) {
	if s == nil || s.KV == nil || s.Carts == nil {
		return Sale{}, errors.New("ledger service not configured")
	}
	current, err := s.Carts.Get(ctx, cartID)
	if err != nil {
		return Sale{}, err
	}
	if len(current.Items) == 0 {
		return Sale{}, common.ErrEmptyCart()
	}
	if strings.TrimSpace(phone) == "" {
		return Sale{}, common.ErrMissingPhone()
	}
	if !method.Valid() {
		method = PaymentCash
	}

	items := make([]Item, len(current.Items))
	for i, item := range current.Items {
		items[i] = Item{Category: item.Category, Rate: item.Rate}
	}
	sale := Sale{
		Date:          s.now().UTC(),
		Items:         items,
		Total:         current.Total(),
		Phone:         phone,
		PaymentMethod: method,
	}

	s.mu.Lock()
	s.sales = append(s.sales, sale)
	if err := s.KV.SetJSON(ctx, s.Key, s.sales); err != nil {
		s.sales = s.sales[:len(s.sales)-1]
		s.mu.Unlock()
		return Sale{}, fmt.Errorf("persist sales: %w", err)
	}
	s.mu.Unlock()

	// The cart is cleared independently of the recorded sale; the sale
	// holds its own copy of the items.
	if _, err := s.Carts.Clear(ctx, cartID); err != nil && !errors.Is(err, cart.ErrNotFound) {
		return sale, fmt.Errorf("clear cart after sale: %w", err)
	}

	obs.IncSaleRecorded(string(method))
	if s.Bus != nil {
		_ = s.Bus.Emit(ctx, events.TopicSaleRecorded, map[string]string{
			"payment_method": string(method),
			"total":          fmt.Sprintf("%d", sale.Total),
		})
	}
	return sale, nil
}

// All returns the full ledger, oldest first.
func (s *Service) All() []Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sale{}, s.sales...)
}
