package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/octobees/estate-listings/api/internal/dto"
	"github.com/octobees/estate-listings/api/internal/entity"
	"github.com/octobees/estate-listings/api/internal/query"
	"github.com/octobees/estate-listings/api/internal/repository"
)

// PropertiesService exposes search and owner-guarded CRUD over listings.
type PropertiesService struct {
	store repository.PropertyStore
	now   func() time.Time
}

// NewPropertiesService creates a service backed by store.
func NewPropertiesService(store repository.PropertyStore) *PropertiesService {
	return &PropertiesService{store: store, now: time.Now}
}

// Search runs the filter against the store and returns the requested page
// together with the total match count.
func (s *PropertiesService) Search(ctx context.Context, filter query.Filter) (dto.PropertyPage, error) {
	page := query.NewPage(filter.Page, filter.Limit)
	q := query.Build(filter)

	items, err := s.store.Find(ctx, q, query.NewestFirst, page.Skip(), int64(page.Limit))
	if err != nil {
		return dto.PropertyPage{}, fmt.Errorf("search properties: %w", err)
	}
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return dto.PropertyPage{}, fmt.Errorf("count properties: %w", err)
	}
	if items == nil {
		items = []entity.Property{}
	}

	return dto.PropertyPage{
		Properties:      items,
		NumOfPages:      page.NumPages(total),
		CurrentPage:     page.Number,
		TotalProperties: total,
		Limit:           page.Limit,
	}, nil
}

// Get returns a single listing.
func (s *PropertiesService) Get(ctx context.Context, id string) (*entity.Property, error) {
	p, err := s.store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return p, nil
}

// ListByOwner returns every listing created by userID, newest first.
func (s *PropertiesService) ListByOwner(ctx context.Context, userID string) ([]entity.Property, error) {
	items, err := s.store.Find(ctx, query.Owner(userID), query.NewestFirst, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list owner properties: %w", err)
	}
	if items == nil {
		items = []entity.Property{}
	}
	return items, nil
}

// Create validates the payload and stores a new listing owned by userID.
func (s *PropertiesService) Create(ctx context.Context, userID string, req dto.CreatePropertyRequest) (*entity.Property, error) {
	property, err := newProperty(req)
	if err != nil {
		return nil, err
	}
	property.CreatedBy = userID
	property.Status = entity.StatusAvailable
	property.CreatedAt = s.now().UTC()

	if err := validateProperty(property); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, &property); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return &property, nil
}

// Update applies a partial patch to a listing owned by userID.
func (s *PropertiesService) Update(ctx context.Context, userID, id string, req dto.UpdatePropertyRequest) (*entity.Property, error) {
	property, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := applyPatch(property, req); err != nil {
		return nil, err
	}
	if err := validateProperty(*property); err != nil {
		return nil, err
	}

	if err := s.store.Replace(ctx, property); err != nil {
		return nil, translateStoreErr(err)
	}
	return property, nil
}

// Delete removes a listing owned by userID.
func (s *PropertiesService) Delete(ctx context.Context, userID, id string) error {
	property, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, property.ID); err != nil {
		return translateStoreErr(err)
	}
	return nil
}

// loadOwned fetches the listing and enforces that userID created it. Nothing
// is written until both checks pass.
func (s *PropertiesService) loadOwned(ctx context.Context, userID, id string) (*entity.Property, error) {
	property, err := s.store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, translateStoreErr(err)
	}
	if err := RequireOwner(property, userID); err != nil {
		return nil, err
	}
	return property, nil
}

// RequireOwner returns ErrForbidden unless userID created the listing.
func RequireOwner(property *entity.Property, userID string) error {
	if property == nil {
		return ErrPropertyNotFound
	}
	if userID == "" || property.CreatedBy != userID {
		return ErrForbidden
	}
	return nil
}

func translateStoreErr(err error) error {
	if errors.Is(err, repository.ErrPropertyNotFound) {
		return ErrPropertyNotFound
	}
	return fmt.Errorf("property store: %w", err)
}
