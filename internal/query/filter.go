package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/octobees/estate-listings/api/internal/entity"
)

// Filter is the typed form of the listing search parameters.
// Nil pointers and empty strings mean the filter is absent.
type Filter struct {
	Page         int
	Limit        int
	Search       string
	PropertyType entity.PropertyType
	Purpose      entity.Purpose
	City         string
	MinSize      *float64
	MaxSize      *float64
	SizeUnit     entity.SizeUnit
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *int
	Bathrooms    *int
}

// ParseFilter converts raw query parameters into a Filter. Values that do not
// parse, are negative or name an unknown enum member are dropped instead of
// failing the whole request.
func ParseFilter(values url.Values) Filter {
	return Filter{
		Page:         parsePositiveInt(values.Get("page"), DefaultPage),
		Limit:        parsePositiveInt(values.Get("limit"), DefaultLimit),
		Search:       strings.TrimSpace(values.Get("search")),
		PropertyType: parsePropertyType(values.Get("propertyType")),
		Purpose:      parsePurpose(values.Get("purpose")),
		City:         strings.TrimSpace(values.Get("city")),
		MinSize:      parseNumber(values.Get("minSize")),
		MaxSize:      parseNumber(values.Get("maxSize")),
		SizeUnit:     parseSizeUnit(values.Get("sizeUnit")),
		MinPrice:     parseNumber(values.Get("minPrice")),
		MaxPrice:     parseNumber(values.Get("maxPrice")),
		Bedrooms:     parseCount(values.Get("bedrooms")),
		Bathrooms:    parseCount(values.Get("bathrooms")),
	}
}

func parsePositiveInt(input string, fallback int) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return fallback
	}
	value, err := strconv.Atoi(input)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseNumber(input string) *float64 {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	value, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return nil
	}
	return &value
}

func parseCount(input string) *int {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	value, err := strconv.Atoi(input)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}

// ParsePropertyType resolves a case-insensitive property type name.
func ParsePropertyType(input string) (entity.PropertyType, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "house":
		return entity.PropertyTypeHouse, true
	case "apartment":
		return entity.PropertyTypeApartment, true
	}
	return "", false
}

// ParsePurpose resolves a case-insensitive purpose name.
func ParsePurpose(input string) (entity.Purpose, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "sale":
		return entity.PurposeSale, true
	case "rent":
		return entity.PurposeRent, true
	}
	return "", false
}

// ParseSizeUnit resolves a case-insensitive size unit name.
func ParseSizeUnit(input string) (entity.SizeUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "marla":
		return entity.SizeUnitMarla, true
	case "kanal":
		return entity.SizeUnitKanal, true
	}
	return "", false
}

func parsePropertyType(input string) entity.PropertyType {
	t, _ := ParsePropertyType(input)
	return t
}

func parsePurpose(input string) entity.Purpose {
	p, _ := ParsePurpose(input)
	return p
}

func parseSizeUnit(input string) entity.SizeUnit {
	u, _ := ParseSizeUnit(input)
	return u
}
