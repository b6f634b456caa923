// Package catalog owns the category-to-rates mapping. The mapping lives in
// memory and is mirrored wholesale to the key-value store on every mutation,
// the same way the original kept it in localStorage.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/varuna-collections/pos-api/internal/common"
	"github.com/varuna-collections/pos-api/internal/events"
	"github.com/varuna-collections/pos-api/internal/kv"
	"github.com/varuna-collections/pos-api/internal/obs"
)

// Catalog maps a normalized category name to its rate list.
type Catalog map[string][]int

// DefaultCatalog returns the built-in seed used when no catalog has been
// persisted yet.
func DefaultCatalog() Catalog {
	return Catalog{
		"jeans":    {110, 120, 130, 140, 150},
		"shirt":    {100, 110, 120, 130},
		"t-shirt":  {80, 90, 100, 110},
		"leggings": {90, 100, 110, 120},
	}
}

// Store owns the catalog state and its persistence.
type Store struct {
	KV  *kv.Store
	Key string
	Bus *events.Bus

	mu   sync.Mutex
	data Catalog
}

// Load initialises the in-memory catalog from the KV store, falling back to
// the built-in defaults when nothing is persisted.
func (s *Store) Load(ctx context.Context) error {
	if s == nil || s.KV == nil {
		return fmt.Errorf("catalog store not configured")
	}
	var data Catalog
	found, err := s.KV.GetJSON(ctx, s.Key, &data)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if !found {
		data = DefaultCatalog()
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// NormalizeName lowercases and trims a category name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AddCategory creates an empty category. The name is normalized first; empty
// or already-present names are rejected.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	name = NormalizeName(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		obs.IncCatalogMutation("add_category", "rejected")
		// The original flags an empty name with the same alert path as a
		// duplicate, so the code is shared.
		return common.NewAppError(common.CodeDuplicateCategory, "category name cannot be empty", http.StatusBadRequest, nil)
	}
	if _, exists := s.data[name]; exists {
		obs.IncCatalogMutation("add_category", "rejected")
		return common.ErrDuplicateCategory(name)
	}
	s.data[name] = []int{}
	if err := s.persist(ctx); err != nil {
		delete(s.data, name)
		obs.IncCatalogMutation("add_category", "error")
		return err
	}
	obs.IncCatalogMutation("add_category", "ok")
	s.emitChanged(ctx, "add_category", name)
	return nil
}

// RemoveCategory deletes the category and all its rates unconditionally.
func (s *Store) RemoveCategory(ctx context.Context, name string) error {
	name = NormalizeName(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	rates, exists := s.data[name]
	if !exists {
		return common.ErrUnknownCategory(name)
	}
	delete(s.data, name)
	if err := s.persist(ctx); err != nil {
		s.data[name] = rates
		obs.IncCatalogMutation("remove_category", "error")
		return err
	}
	obs.IncCatalogMutation("remove_category", "ok")
	s.emitChanged(ctx, "remove_category", name)
	return nil
}

// AddRate appends a rate to the category. A duplicate rate is flagged via
// the returned bool but is still inserted, matching the observed behavior of
// the system this replaces.
func (s *Store) AddRate(ctx context.Context, category string, rate int) (duplicate bool, err error) {
	category = NormalizeName(category)
	s.mu.Lock()
	defer s.mu.Unlock()
	rates, exists := s.data[category]
	if !exists {
		obs.IncCatalogMutation("add_rate", "rejected")
		return false, common.ErrUnknownCategory(category)
	}
	if rate <= 0 {
		obs.IncCatalogMutation("add_rate", "rejected")
		return false, common.ErrInvalidRate(rate)
	}
	duplicate = slices.Contains(rates, rate)
	s.data[category] = append(rates, rate)
	if err := s.persist(ctx); err != nil {
		s.data[category] = rates
		obs.IncCatalogMutation("add_rate", "error")
		return false, err
	}
	obs.IncCatalogMutation("add_rate", "ok")
	s.emitChanged(ctx, "add_rate", category)
	return duplicate, nil
}

// RemoveRate removes a rate if present; removing the last rate removes the
// category itself. Removing an absent rate is a no-op.
func (s *Store) RemoveRate(ctx context.Context, category string, rate int) error {
	category = NormalizeName(category)
	s.mu.Lock()
	defer s.mu.Unlock()
	rates, exists := s.data[category]
	if !exists {
		return common.ErrUnknownCategory(category)
	}
	idx := slices.Index(rates, rate)
	if idx >= 0 {
		updated := append(append([]int{}, rates[:idx]...), rates[idx+1:]...)
		if len(updated) == 0 {
			delete(s.data, category)
		} else {
			s.data[category] = updated
		}
		if err := s.persist(ctx); err != nil {
			s.data[category] = rates
			obs.IncCatalogMutation("remove_rate", "error")
			return err
		}
	}
	obs.IncCatalogMutation("remove_rate", "ok")
	s.emitChanged(ctx, "remove_rate", category)
	return nil
}

// CategoryView is the display-ready shape of one category.
type CategoryView struct {
	Name  string `json:"name"`
	Rates []int  `json:"rates"`
}

// Snapshot returns a sorted read view: categories by name, rates ascending.
func (s *Store) Snapshot() []CategoryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]CategoryView, 0, len(names))
	for _, name := range names {
		rates := append([]int{}, s.data[name]...)
		sort.Ints(rates)
		out = append(out, CategoryView{Name: name, Rates: rates})
	}
	return out
}

// Rates returns the raw (insertion-ordered) rate list for a category.
func (s *Store) Rates(category string) ([]int, bool) {
	category = NormalizeName(category)
	s.mu.Lock()
	defer s.mu.Unlock()
	rates, ok := s.data[category]
	if !ok {
		return nil, false
	}
	return append([]int{}, rates...), true
}

// persist rewrites the whole mapping under the configured key. Callers hold
// the mutex.
func (s *Store) persist(ctx context.Context) error {
	return s.KV.SetJSON(ctx, s.Key, s.data)
}

func (s *Store) emitChanged(ctx context.Context, op, category string) {
	if s.Bus == nil {
		return
	}
	_ = s.Bus.Emit(ctx, events.TopicCatalogChanged, map[string]string{
		"op":       op,
		"category": category,
	})
}
