package query

import (
	"strings"

	"github.com/octobees/estate-listings/api/internal/entity"
)

// Match evaluates q against a single listing in memory. It mirrors the
// semantics the document store applies to the same query.
func Match(q Query, p entity.Property) bool {
	for _, term := range q.Terms {
		if !matchTerm(term, p) {
			return false
		}
	}
	if len(q.Search) == 0 {
		return true
	}
	for _, term := range q.Search {
		if matchTerm(term, p) {
			return true
		}
	}
	return false
}

func matchTerm(t Term, p entity.Property) bool {
	switch t.Op {
	case OpEq:
		if text, ok := textField(p, t.Field); ok {
			want, ok := t.Value.(string)
			return ok && text == want
		}
		if n, ok := numberField(p, t.Field); ok {
			want, ok := toFloat(t.Value)
			return ok && n == want
		}
	case OpGte, OpLte:
		n, ok := numberField(p, t.Field)
		if !ok {
			return false
		}
		bound, ok := toFloat(t.Value)
		if !ok {
			return false
		}
		if t.Op == OpGte {
			return n >= bound
		}
		return n <= bound
	case OpContains:
		text, ok := textField(p, t.Field)
		if !ok {
			return false
		}
		needle, ok := t.Value.(string)
		return ok && strings.Contains(strings.ToLower(text), strings.ToLower(needle))
	}
	return false
}

func textField(p entity.Property, field string) (string, bool) {
	switch field {
	case FieldTitle:
		return p.Title, true
	case FieldDescription:
		return p.Description, true
	case FieldPropertyType:
		return string(p.PropertyType), true
	case FieldPurpose:
		return string(p.Purpose), true
	case FieldCity:
		return p.Location.City, true
	case FieldArea:
		return p.Location.Area, true
	case FieldAddress:
		return p.Location.Address, true
	case FieldSizeUnit:
		return string(p.Size.Unit), true
	case FieldCreatedBy:
		return p.CreatedBy, true
	}
	return "", false
}

func numberField(p entity.Property, field string) (float64, bool) {
	switch field {
	case FieldSizeValue:
		return p.Size.Value, true
	case FieldPrice:
		return p.Price, true
	case FieldBedrooms:
		return float64(p.Bedrooms), true
	case FieldBathrooms:
		return float64(p.Bathrooms), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
