package dto

import "github.com/octobees/estate-listings/api/internal/entity"

// SizeInput carries the size of a listing in request bodies.
type SizeInput struct {
	Value *float64 `json:"value"`
	Unit  string   `json:"unit"`
}

// LocationInput carries the location of a listing in request bodies.
type LocationInput struct {
	City    string `json:"city"`
	Area    string `json:"area"`
	Address string `json:"address"`
}

// CreatePropertyRequest is the payload of POST /properties.
type CreatePropertyRequest struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	PropertyType string         `json:"propertyType"`
	Size         *SizeInput     `json:"size"`
	Price        *float64       `json:"price"`
	Purpose      string         `json:"purpose"`
	Location     *LocationInput `json:"location"`
	Bedrooms     *int           `json:"bedrooms"`
	Bathrooms    *int           `json:"bathrooms"`
	Features     []string       `json:"features"`
	Images       []string       `json:"images"`
}

// UpdatePropertyRequest is the payload of PATCH /properties/:id. Nil fields
// are left untouched; nested objects replace the stored value wholesale.
type UpdatePropertyRequest struct {
	Title        *string        `json:"title,omitempty"`
	Description  *string        `json:"description,omitempty"`
	PropertyType *string        `json:"propertyType,omitempty"`
	Size         *SizeInput     `json:"size,omitempty"`
	Price        *float64       `json:"price,omitempty"`
	Purpose      *string        `json:"purpose,omitempty"`
	Location     *LocationInput `json:"location,omitempty"`
	Bedrooms     *int           `json:"bedrooms,omitempty"`
	Bathrooms    *int           `json:"bathrooms,omitempty"`
	Features     *[]string      `json:"features,omitempty"`
	Images       *[]string      `json:"images,omitempty"`
	Status       *string        `json:"status,omitempty"`
}

// PropertyPage is one window of search results.
type PropertyPage struct {
	Properties      []entity.Property `json:"properties"`
	NumOfPages      int               `json:"numOfPages"`
	CurrentPage     int               `json:"currentPage"`
	TotalProperties int64             `json:"totalProperties"`

	// Limit is the page size actually applied after clamping. It travels in
	// the X-Page-Limit header so the body keeps its established shape.
	Limit int `json:"-"`
}

// UploadedImages lists the public URLs of freshly uploaded images.
type UploadedImages struct {
	Images []string `json:"images"`
}
