package repository

import (
	"context"
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/octobees/estate-listings/api/internal/entity"
	"github.com/octobees/estate-listings/api/internal/query"
)

// CachedPropertyStore memoises FindByID lookups in a bounded in-process LRU.
// Writes through this store evict the affected entry; searches are never cached.
type CachedPropertyStore struct {
	next  PropertyStore
	cache *ccache.Cache[entity.Property]
	ttl   time.Duration
}

// NewCachedPropertyStore wraps next with an id cache holding up to size entries.
func NewCachedPropertyStore(next PropertyStore, size int64, ttl time.Duration) *CachedPropertyStore {
	if size <= 0 {
		size = 1000
	}
	return &CachedPropertyStore{
		next:  next,
		cache: ccache.New(ccache.Configure[entity.Property]().MaxSize(size)),
		ttl:   ttl,
	}
}

var _ PropertyStore = (*CachedPropertyStore)(nil)

// Find delegates to the wrapped store.
func (s *CachedPropertyStore) Find(ctx context.Context, q query.Query, sort []query.SortField, skip, limit int64) ([]entity.Property, error) {
	return s.next.Find(ctx, q, sort, skip, limit)
}

// Count delegates to the wrapped store.
func (s *CachedPropertyStore) Count(ctx context.Context, q query.Query) (int64, error) {
	return s.next.Count(ctx, q)
}

// FindByID serves from cache, loading from the wrapped store on a miss.
func (s *CachedPropertyStore) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	item, err := s.cache.Fetch(id, s.ttl, func() (entity.Property, error) {
		p, err := s.next.FindByID(ctx, id)
		if err != nil {
			return entity.Property{}, err
		}
		return cloneProperty(*p), nil
	})
	if err != nil {
		return nil, err
	}
	p := cloneProperty(item.Value())
	return &p, nil
}

// Create delegates to the wrapped store.
func (s *CachedPropertyStore) Create(ctx context.Context, property *entity.Property) error {
	return s.next.Create(ctx, property)
}

// Replace writes through and evicts the cached copy. The entry is dropped again
// once the write lands so a lookup racing the write cannot pin the old record.
func (s *CachedPropertyStore) Replace(ctx context.Context, property *entity.Property) error {
	s.cache.Delete(property.ID)
	defer s.cache.Delete(property.ID)
	return s.next.Replace(ctx, property)
}

// Delete writes through and evicts the cached copy.
func (s *CachedPropertyStore) Delete(ctx context.Context, id string) error {
	s.cache.Delete(id)
	defer s.cache.Delete(id)
	return s.next.Delete(ctx, id)
}

// Close stops the cache's background worker.
func (s *CachedPropertyStore) Close() {
	s.cache.Stop()
}
