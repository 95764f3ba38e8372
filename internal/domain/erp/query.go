package erp

import (
	"fmt"
	"strconv"

	"github.com/erp/bcadapter/internal/domain/shared"
)

// Field names accepted in equality queries
const (
	FieldNumber       = "Number"
	FieldFileName     = "FileName"
	FieldParentNumber = "ParentNumber"
	FieldPosition     = "Position"
	FieldChildNumber  = "ChildNumber"
)

// Condition is one "field equals value" term
type Condition struct {
	Field string
	Value string
}

// Query is a conjunction of equality conditions. An empty query selects everything.
type Query struct {
	Conditions []Condition
}

// Where builds a query from field/value pairs
func Where(field, value string, more ...string) Query {
	q := Query{Conditions: []Condition{{Field: field, Value: value}}}
	for i := 0; i+1 < len(more); i += 2 {
		q.Conditions = append(q.Conditions, Condition{Field: more[i], Value: more[i+1]})
	}
	return q
}

// IsEmpty reports whether the query has no conditions
func (q Query) IsEmpty() bool {
	return len(q.Conditions) == 0
}

// Value returns the value bound to field
func (q Query) Value(field string) (string, bool) {
	for _, c := range q.Conditions {
		if c.Field == field {
			return c.Value, true
		}
	}
	return "", false
}

// Only checks that the query binds exactly the given fields, once each.
// Any other shape is reported as ErrNotSupported.
func (q Query) Only(fields ...string) error {
	if len(q.Conditions) != len(fields) {
		return q.unsupported()
	}
	seen := make(map[string]bool, len(fields))
	for _, c := range q.Conditions {
		if seen[c.Field] {
			return q.unsupported()
		}
		seen[c.Field] = true
	}
	for _, f := range fields {
		if !seen[f] {
			return q.unsupported()
		}
	}
	return nil
}

// IntValue returns the integer bound to field
func (q Query) IntValue(field string) (int, error) {
	v, ok := q.Value(field)
	if !ok {
		return 0, q.unsupported()
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", shared.ErrInvalidInput, field, v)
	}
	return n, nil
}

func (q Query) unsupported() error {
	return fmt.Errorf("%w: filter %s", shared.ErrNotSupported, q)
}

// String renders the query as "A = 'x' and B = 'y'"
func (q Query) String() string {
	if q.IsEmpty() {
		return "<all>"
	}
	s := ""
	for i, c := range q.Conditions {
		if i > 0 {
			s += " and "
		}
		s += fmt.Sprintf("%s = '%s'", c.Field, c.Value)
	}
	return s
}
