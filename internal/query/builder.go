package query

// Persisted field paths referenced by predicate terms.
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldPropertyType = "propertyType"
	FieldPurpose      = "purpose"
	FieldCity         = "location.city"
	FieldArea         = "location.area"
	FieldAddress      = "location.address"
	FieldSizeValue    = "size.value"
	FieldSizeUnit     = "size.unit"
	FieldPrice        = "price"
	FieldBedrooms     = "bedrooms"
	FieldBathrooms    = "bathrooms"
	FieldCreatedBy    = "createdBy"
	FieldCreatedAt    = "createdAt"
)

// Op is a comparison applied by a single term.
type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
	OpLte Op = "lte"
	// OpContains is a case-insensitive literal substring match on text fields.
	OpContains Op = "contains"
)

// Term is one field-level condition.
type Term struct {
	Field string
	Op    Op
	Value any
}

// Query is a conjunction of Terms plus an optional disjunctive Search group.
// A record matches when every term in Terms holds and, if Search is not
// empty, at least one term in Search holds.
type Query struct {
	Terms  []Term
	Search []Term
}

// Empty reports whether the query matches every record.
func (q Query) Empty() bool {
	return len(q.Terms) == 0 && len(q.Search) == 0
}

// SearchFields lists the text fields scanned by the free-text search.
var SearchFields = []string{FieldTitle, FieldDescription, FieldCity, FieldArea, FieldAddress}

// Build folds the present filters of f into a Query. Terms are emitted in a
// fixed order so identical filters always produce identical queries.
func Build(f Filter) Query {
	var q Query

	if f.Search != "" {
		q.Search = make([]Term, 0, len(SearchFields))
		for _, field := range SearchFields {
			q.Search = append(q.Search, Term{Field: field, Op: OpContains, Value: f.Search})
		}
	}

	if f.PropertyType != "" {
		q.Terms = append(q.Terms, Term{Field: FieldPropertyType, Op: OpEq, Value: string(f.PropertyType)})
	}
	if f.Purpose != "" {
		q.Terms = append(q.Terms, Term{Field: FieldPurpose, Op: OpEq, Value: string(f.Purpose)})
	}
	if f.City != "" {
		q.Terms = append(q.Terms, Term{Field: FieldCity, Op: OpEq, Value: f.City})
	}

	if f.MinSize != nil || f.MaxSize != nil {
		// the unit only narrows results when a size bound is given
		if f.SizeUnit != "" {
			q.Terms = append(q.Terms, Term{Field: FieldSizeUnit, Op: OpEq, Value: string(f.SizeUnit)})
		}
		q.Terms = appendRange(q.Terms, FieldSizeValue, f.MinSize, f.MaxSize)
	}

	q.Terms = appendRange(q.Terms, FieldPrice, f.MinPrice, f.MaxPrice)

	if f.Bedrooms != nil {
		q.Terms = append(q.Terms, Term{Field: FieldBedrooms, Op: OpGte, Value: *f.Bedrooms})
	}
	if f.Bathrooms != nil {
		q.Terms = append(q.Terms, Term{Field: FieldBathrooms, Op: OpGte, Value: *f.Bathrooms})
	}

	return q
}

// Owner returns the query selecting every listing created by userID.
func Owner(userID string) Query {
	return Query{Terms: []Term{{Field: FieldCreatedBy, Op: OpEq, Value: userID}}}
}

func appendRange(terms []Term, field string, min, max *float64) []Term {
	if min != nil {
		terms = append(terms, Term{Field: field, Op: OpGte, Value: *min})
	}
	if max != nil {
		terms = append(terms, Term{Field: field, Op: OpLte, Value: *max})
	}
	return terms
}
