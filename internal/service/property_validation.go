package service

import (
	"math"
	"strings"

	"github.com/octobees/estate-listings/api/internal/dto"
	"github.com/octobees/estate-listings/api/internal/entity"
	"github.com/octobees/estate-listings/api/internal/query"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 1000
	minImages            = 1
	maxImages            = 6
)

// newProperty converts a create payload, reporting the first missing field.
func newProperty(req dto.CreatePropertyRequest) (entity.Property, error) {
	if req.Size == nil || req.Size.Value == nil {
		return entity.Property{}, invalid("size", "Please provide property size")
	}
	if req.Price == nil {
		return entity.Property{}, invalid("price", "Please provide property price")
	}
	if req.Location == nil {
		return entity.Property{}, invalid("location", "Please provide property location")
	}
	if req.Bedrooms == nil {
		return entity.Property{}, invalid("bedrooms", "Please provide number of bedrooms")
	}
	if req.Bathrooms == nil {
		return entity.Property{}, invalid("bathrooms", "Please provide number of bathrooms")
	}

	p := entity.Property{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Price:       *req.Price,
		Location:    locationFromInput(*req.Location),
		Bedrooms:    *req.Bedrooms,
		Bathrooms:   *req.Bathrooms,
		Features:    cleanList(req.Features),
		Images:      cleanList(req.Images),
	}

	var err error
	if p.PropertyType, err = propertyTypeFromInput(req.PropertyType); err != nil {
		return entity.Property{}, err
	}
	if p.Purpose, err = purposeFromInput(req.Purpose); err != nil {
		return entity.Property{}, err
	}
	if p.Size, err = sizeFromInput(*req.Size); err != nil {
		return entity.Property{}, err
	}
	p.MainImage = mainImage(p.Images)
	return p, nil
}

// applyPatch copies the present fields of req onto p.
func applyPatch(p *entity.Property, req dto.UpdatePropertyRequest) error {
	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.PropertyType != nil {
		t, err := propertyTypeFromInput(*req.PropertyType)
		if err != nil {
			return err
		}
		p.PropertyType = t
	}
	if req.Purpose != nil {
		purpose, err := purposeFromInput(*req.Purpose)
		if err != nil {
			return err
		}
		p.Purpose = purpose
	}
	if req.Size != nil {
		if req.Size.Value == nil {
			return invalid("size", "Please provide property size")
		}
		size, err := sizeFromInput(*req.Size)
		if err != nil {
			return err
		}
		p.Size = size
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Location != nil {
		p.Location = locationFromInput(*req.Location)
	}
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = *req.Bathrooms
	}
	if req.Features != nil {
		p.Features = cleanList(*req.Features)
	}
	if req.Images != nil {
		p.Images = cleanList(*req.Images)
		p.MainImage = mainImage(p.Images)
	}
	if req.Status != nil {
		status := entity.Status(strings.ToLower(strings.TrimSpace(*req.Status)))
		if !status.Valid() {
			return invalid("status", "status must be one of available, sold, rented")
		}
		p.Status = status
	}
	return nil
}

// validateProperty checks the content rules shared by create and update.
func validateProperty(p entity.Property) error {
	switch {
	case p.Title == "":
		return invalid("title", "Please provide property title")
	case len([]rune(p.Title)) > maxTitleLength:
		return invalid("title", "title must not exceed 100 characters")
	case p.Description == "":
		return invalid("description", "Please provide property description")
	case len([]rune(p.Description)) > maxDescriptionLength:
		return invalid("description", "description must not exceed 1000 characters")
	case !p.PropertyType.Valid():
		return invalid("propertyType", "Please specify property type")
	case !validAmount(p.Size.Value):
		return invalid("size", "size must be a non-negative number")
	case !p.Size.Unit.Valid():
		return invalid("size.unit", "Please provide size unit")
	case !validAmount(p.Price):
		return invalid("price", "price must be a non-negative number")
	case !p.Purpose.Valid():
		return invalid("purpose", "Please specify if property is for sale or rent")
	case p.Location.City == "":
		return invalid("location.city", "Please provide city")
	case p.Location.Area == "":
		return invalid("location.area", "Please provide area")
	case p.Location.Address == "":
		return invalid("location.address", "Please provide complete address")
	case p.Bedrooms < 0:
		return invalid("bedrooms", "bedrooms must not be negative")
	case p.Bathrooms < 0:
		return invalid("bathrooms", "bathrooms must not be negative")
	case len(p.Images) < minImages || len(p.Images) > maxImages:
		return invalid("images", "Upload minimum 1 and maximum 6 images")
	case p.Status != "" && !p.Status.Valid():
		return invalid("status", "status must be one of available, sold, rented")
	}
	return nil
}

func propertyTypeFromInput(raw string) (entity.PropertyType, error) {
	t, ok := query.ParsePropertyType(raw)
	if !ok {
		return "", invalid("propertyType", "Please specify property type")
	}
	return t, nil
}

func purposeFromInput(raw string) (entity.Purpose, error) {
	p, ok := query.ParsePurpose(raw)
	if !ok {
		return "", invalid("purpose", "Please specify if property is for sale or rent")
	}
	return p, nil
}

func sizeFromInput(in dto.SizeInput) (entity.Size, error) {
	unit, ok := query.ParseSizeUnit(in.Unit)
	if !ok {
		return entity.Size{}, invalid("size.unit", "Please provide size unit")
	}
	return entity.Size{Value: *in.Value, Unit: unit}, nil
}

func locationFromInput(in dto.LocationInput) entity.Location {
	return entity.Location{
		City:    strings.TrimSpace(in.City),
		Area:    strings.TrimSpace(in.Area),
		Address: strings.TrimSpace(in.Address),
	}
}

func mainImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
