package entity

import "time"

// PropertyType enumerates the kinds of listings accepted by the marketplace.
type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "House"
	PropertyTypeApartment PropertyType = "Apartment"
)

// Purpose states whether a listing is offered for sale or for rent.
type Purpose string

const (
	PurposeSale Purpose = "Sale"
	PurposeRent Purpose = "Rent"
)

// SizeUnit is the land measurement unit used for the size value.
type SizeUnit string

const (
	SizeUnitMarla SizeUnit = "Marla"
	SizeUnitKanal SizeUnit = "Kanal"
)

// Status tracks listing availability.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusRented    Status = "rented"
)

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	return t == PropertyTypeHouse || t == PropertyTypeApartment
}

// Valid reports whether p is a known purpose.
func (p Purpose) Valid() bool {
	return p == PurposeSale || p == PurposeRent
}

// Valid reports whether u is a known size unit.
func (u SizeUnit) Valid() bool {
	return u == SizeUnitMarla || u == SizeUnitKanal
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusRented:
		return true
	}
	return false
}

// Size is the plot size of a listing.
type Size struct {
	Value float64  `json:"value"`
	Unit  SizeUnit `json:"unit"`
}

// Location is where a listing sits.
type Location struct {
	City    string `json:"city"`
	Area    string `json:"area"`
	Address string `json:"address"`
}

// Property is a marketplace listing.
type Property struct {
	ID           string       `json:"_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	PropertyType PropertyType `json:"propertyType"`
	Size         Size         `json:"size"`
	Price        float64      `json:"price"`
	Purpose      Purpose      `json:"purpose"`
	Location     Location     `json:"location"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	Features     []string     `json:"features"`
	Images       []string     `json:"images"`
	MainImage    string       `json:"mainImage"`
	CreatedBy    string       `json:"createdBy"`
	Status       Status       `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}
