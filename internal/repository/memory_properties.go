package repository

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/octobees/estate-listings/api/internal/entity"
	"github.com/octobees/estate-listings/api/internal/query"
)

// MemoryPropertyStore keeps listings in process memory. It backs local
// development (STORE_DRIVER=memory) and tests.
type MemoryPropertyStore struct {
	mu    sync.RWMutex
	items map[string]entity.Property
}

// NewMemoryPropertyStore returns an empty store.
func NewMemoryPropertyStore() *MemoryPropertyStore {
	return &MemoryPropertyStore{items: make(map[string]entity.Property)}
}

var _ PropertyStore = (*MemoryPropertyStore)(nil)

// Find filters, sorts and windows the stored listings.
func (s *MemoryPropertyStore) Find(ctx context.Context, q query.Query, order []query.SortField, skip, limit int64) ([]entity.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	matched := make([]entity.Property, 0, len(s.items))
	for _, p := range s.items {
		if query.Match(q, p) {
			matched = append(matched, cloneProperty(p))
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return less(matched[i], matched[j], order)
	})

	if skip >= int64(len(matched)) {
		return []entity.Property{}, nil
	}
	matched = matched[skip:]
	if limit > 0 && limit < int64(len(matched)) {
		matched = matched[:limit]
	}
	return matched, nil
}

// Count returns the number of listings matching q.
func (s *MemoryPropertyStore) Count(ctx context.Context, q query.Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, p := range s.items {
		if query.Match(q, p) {
			total++
		}
	}
	return total, nil
}

// FindByID returns a copy of the stored listing.
func (s *MemoryPropertyStore) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.items[id]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	clone := cloneProperty(p)
	return &clone, nil
}

// Create stores the listing, assigning an ObjectID-style hex id when missing.
func (s *MemoryPropertyStore) Create(ctx context.Context, property *entity.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if property.ID == "" {
		property.ID = primitive.NewObjectID().Hex()
	}
	s.items[property.ID] = cloneProperty(*property)
	return nil
}

// Replace overwrites an existing listing.
func (s *MemoryPropertyStore) Replace(ctx context.Context, property *entity.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[property.ID]; !ok {
		return ErrPropertyNotFound
	}
	s.items[property.ID] = cloneProperty(*property)
	return nil
}

// Delete removes a listing.
func (s *MemoryPropertyStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrPropertyNotFound
	}
	delete(s.items, id)
	return nil
}

func less(a, b entity.Property, order []query.SortField) bool {
	for _, key := range order {
		cmp := compareField(a, b, key.Field)
		if cmp == 0 {
			continue
		}
		if key.Descending {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

func compareField(a, b entity.Property, field string) int {
	switch field {
	case query.FieldCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case "_id":
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
	case query.FieldPrice:
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		}
	}
	return 0
}
