package repository

import (
	"context"
	"errors"

	"github.com/octobees/estate-listings/api/internal/entity"
	"github.com/octobees/estate-listings/api/internal/query"
)

// ErrPropertyNotFound is returned when no listing has the requested id.
var ErrPropertyNotFound = errors.New("property not found")

// PropertyStore describes persistence operations for listings.
type PropertyStore interface {
	// Find returns the matching listings ordered by sort. A zero limit means no limit.
	Find(ctx context.Context, q query.Query, sort []query.SortField, skip, limit int64) ([]entity.Property, error)
	Count(ctx context.Context, q query.Query) (int64, error)
	FindByID(ctx context.Context, id string) (*entity.Property, error)
	// Create stores a new listing and assigns its ID.
	Create(ctx context.Context, property *entity.Property) error
	Replace(ctx context.Context, property *entity.Property) error
	Delete(ctx context.Context, id string) error
}

func cloneProperty(p entity.Property) entity.Property {
	if p.Features != nil {
		p.Features = append([]string(nil), p.Features...)
	}
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}
