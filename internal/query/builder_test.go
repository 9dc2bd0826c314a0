package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/estate-listings/api/internal/entity"
)

func ptr[T any](v T) *T { return &v }

func TestBuild_EmptyFilter(t *testing.T) {
	q := Build(Filter{})
	assert.True(t, q.Empty())
	assert.Nil(t, q.Terms)
	assert.Nil(t, q.Search)
}

func TestBuild_ExactFilters(t *testing.T) {
	q := Build(Filter{PropertyType: entity.PropertyTypeHouse, City: "Lahore"})

	assert.Empty(t, q.Search)
	assert.Equal(t, []Term{
		{Field: FieldPropertyType, Op: OpEq, Value: "House"},
		{Field: FieldCity, Op: OpEq, Value: "Lahore"},
	}, q.Terms)
}

func TestBuild_SearchGroup(t *testing.T) {
	q := Build(Filter{Search: "villa"})

	require.Len(t, q.Search, len(SearchFields))
	for i, field := range SearchFields {
		assert.Equal(t, Term{Field: field, Op: OpContains, Value: "villa"}, q.Search[i])
	}
	assert.Empty(t, q.Terms)
}

func TestBuild_Ranges(t *testing.T) {
	tests := map[string]struct {
		filter Filter
		expect []Term
	}{
		"min price only": {
			filter: Filter{MinPrice: ptr(1000000.0)},
			expect: []Term{{Field: FieldPrice, Op: OpGte, Value: 1000000.0}},
		},
		"max price only": {
			filter: Filter{MaxPrice: ptr(5000000.0)},
			expect: []Term{{Field: FieldPrice, Op: OpLte, Value: 5000000.0}},
		},
		"both price bounds": {
			filter: Filter{MinPrice: ptr(1.0), MaxPrice: ptr(2.0)},
			expect: []Term{
				{Field: FieldPrice, Op: OpGte, Value: 1.0},
				{Field: FieldPrice, Op: OpLte, Value: 2.0},
			},
		},
		"size with unit": {
			filter: Filter{MinSize: ptr(5.0), SizeUnit: entity.SizeUnitMarla},
			expect: []Term{
				{Field: FieldSizeUnit, Op: OpEq, Value: "Marla"},
				{Field: FieldSizeValue, Op: OpGte, Value: 5.0},
			},
		},
		"unit without size bounds is ignored": {
			filter: Filter{SizeUnit: entity.SizeUnitKanal},
			expect: nil,
		},
		"minimum counts": {
			filter: Filter{Bedrooms: ptr(3), Bathrooms: ptr(0)},
			expect: []Term{
				{Field: FieldBedrooms, Op: OpGte, Value: 3},
				{Field: FieldBathrooms, Op: OpGte, Value: 0},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Build(tt.filter).Terms)
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	f := Filter{
		Search:       "garden",
		PropertyType: entity.PropertyTypeApartment,
		Purpose:      entity.PurposeRent,
		City:         "Karachi",
		MinSize:      ptr(3.0),
		MaxSize:      ptr(10.0),
		SizeUnit:     entity.SizeUnitMarla,
		MinPrice:     ptr(20000.0),
		MaxPrice:     ptr(80000.0),
		Bedrooms:     ptr(2),
		Bathrooms:    ptr(1),
	}
	assert.Equal(t, Build(f), Build(f))
}

func TestBuild_ParamOrderDoesNotMatter(t *testing.T) {
	a, err := url.ParseQuery("city=Lahore&purpose=Sale&minPrice=10&bedrooms=2")
	require.NoError(t, err)
	b, err := url.ParseQuery("bedrooms=2&minPrice=10&purpose=Sale&city=Lahore")
	require.NoError(t, err)

	assert.Equal(t, Build(ParseFilter(a)), Build(ParseFilter(b)))
}

func TestBuild_EveryPresentFieldContributesOneTerm(t *testing.T) {
	fields := []struct {
		name  string
		apply func(*Filter)
	}{
		{"propertyType", func(f *Filter) { f.PropertyType = entity.PropertyTypeHouse }},
		{"purpose", func(f *Filter) { f.Purpose = entity.PurposeSale }},
		{"city", func(f *Filter) { f.City = "Lahore" }},
		{"minSize", func(f *Filter) { f.MinSize = ptr(1.0) }},
		{"maxSize", func(f *Filter) { f.MaxSize = ptr(9.0) }},
		{"minPrice", func(f *Filter) { f.MinPrice = ptr(1.0) }},
		{"maxPrice", func(f *Filter) { f.MaxPrice = ptr(9.0) }},
		{"bedrooms", func(f *Filter) { f.Bedrooms = ptr(1) }},
		{"bathrooms", func(f *Filter) { f.Bathrooms = ptr(1) }},
	}

	// every subset of the fields above
	for mask := 0; mask < 1<<len(fields); mask++ {
		var f Filter
		want := 0
		for i, field := range fields {
			if mask&(1<<i) != 0 {
				field.apply(&f)
				want++
			}
		}
		assert.Len(t, Build(f).Terms, want, "mask %b", mask)
	}
}
