// Package criteria turns sparse per-field announcement filters into a single
// conjunctive predicate that can be rendered as SQL or evaluated in memory.
package criteria

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/noah-isme/announcement-api/internal/models"
)

// Field is a filterable announcement column.
type Field string

const (
	FieldID               Field = "id"
	FieldLanguage         Field = "language"
	FieldStartDate        Field = "start_date"
	FieldEndDate          Field = "end_date"
	FieldAnnouncementType Field = "announcement_type"
)

// Column returns the SQL column backing the field.
func (f Field) Column() string {
	return string(f)
}

var propertyFields = map[string]Field{
	"id":               FieldID,
	"language":         FieldLanguage,
	"startDate":        FieldStartDate,
	"endDate":          FieldEndDate,
	"announcementType": FieldAnnouncementType,
}

// FieldForProperty maps a JSON property name (as used in query strings) to its field.
func FieldForProperty(property string) (Field, bool) {
	f, ok := propertyFields[property]
	return f, ok
}

// Value extracts the normalised field value from a, or false when it is null.
func (f Field) Value(a *models.Announcement) (interface{}, bool) {
	switch f {
	case FieldID:
		if a.ID != nil {
			return *a.ID, true
		}
	case FieldLanguage:
		if a.Language != nil {
			return string(*a.Language), true
		}
	case FieldStartDate:
		if a.StartDate != nil {
			return a.StartDate.UTC(), true
		}
	case FieldEndDate:
		if a.EndDate != nil {
			return a.EndDate.UTC(), true
		}
	case FieldAnnouncementType:
		if a.AnnouncementType != nil {
			return string(*a.AnnouncementType), true
		}
	}
	return nil, false
}

// Operator is the closed set of comparisons a clause can apply.
type Operator string

const (
	OpEquals             Operator = "EQ"
	OpNotEquals          Operator = "NEQ"
	OpIn                 Operator = "IN"
	OpNotIn              Operator = "NOT_IN"
	OpGreaterThan        Operator = "GT"
	OpGreaterThanOrEqual Operator = "GTE"
	OpLessThan           Operator = "LT"
	OpLessThanOrEqual    Operator = "LTE"
	OpSpecified          Operator = "SPECIFIED"
	OpNotSpecified       Operator = "NOT_SPECIFIED"
)

// Clause is one field-scoped condition. Values hold int64, string or UTC time.Time.
type Clause struct {
	Field    Field
	Operator Operator
	Values   []interface{}
}

// Predicate is the conjunction of its clauses. The zero value matches everything.
type Predicate struct {
	Distinct bool
	Clauses  []Clause
}

// IsEmpty reports whether the predicate constrains nothing.
func (p Predicate) IsEmpty() bool {
	return len(p.Clauses) == 0
}

// Sqlizer renders the predicate as a squirrel expression. Callers should skip the
// WHERE clause entirely when the predicate is empty.
func (p Predicate) Sqlizer() sq.Sqlizer {
	and := make(sq.And, 0, len(p.Clauses))
	for _, c := range p.Clauses {
		and = append(and, c.sqlizer())
	}
	return and
}

func (c Clause) sqlizer() sq.Sqlizer {
	col := c.Field.Column()
	switch c.Operator {
	case OpEquals:
		return sq.Eq{col: c.Values[0]}
	case OpNotEquals:
		return sq.NotEq{col: c.Values[0]}
	case OpIn:
		return sq.Eq{col: c.Values}
	case OpNotIn:
		return sq.NotEq{col: c.Values}
	case OpGreaterThan:
		return sq.Gt{col: c.Values[0]}
	case OpGreaterThanOrEqual:
		return sq.GtOrEq{col: c.Values[0]}
	case OpLessThan:
		return sq.Lt{col: c.Values[0]}
	case OpLessThanOrEqual:
		return sq.LtOrEq{col: c.Values[0]}
	case OpSpecified:
		return sq.NotEq{col: nil}
	default:
		return sq.Eq{col: nil}
	}
}

// Matches evaluates the predicate against a single announcement using SQL null
// semantics: any comparison with a null column is false.
func (p Predicate) Matches(a *models.Announcement) bool {
	if a == nil {
		return false
	}
	for _, c := range p.Clauses {
		if !c.matches(a) {
			return false
		}
	}
	return true
}

func (c Clause) matches(a *models.Announcement) bool {
	value, present := c.Field.Value(a)
	switch c.Operator {
	case OpSpecified:
		return present
	case OpNotSpecified:
		return !present
	case OpNotIn:
		if len(c.Values) == 0 {
			return true
		}
	}
	if !present {
		return false
	}

	switch c.Operator {
	case OpEquals:
		return Compare(value, c.Values[0]) == 0
	case OpNotEquals:
		return Compare(value, c.Values[0]) != 0
	case OpIn:
		return contains(c.Values, value)
	case OpNotIn:
		return !contains(c.Values, value)
	case OpGreaterThan:
		return Compare(value, c.Values[0]) > 0
	case OpGreaterThanOrEqual:
		return Compare(value, c.Values[0]) >= 0
	case OpLessThan:
		return Compare(value, c.Values[0]) < 0
	case OpLessThanOrEqual:
		return Compare(value, c.Values[0]) <= 0
	}
	return false
}

func contains(values []interface{}, v interface{}) bool {
	for _, candidate := range values {
		if Compare(v, candidate) == 0 {
			return true
		}
	}
	return false
}

// Compare orders two normalised field values. Values of different kinds order by kind
// (int64, then string, then time.Time), so the result is antisymmetric. Any other type
// is a programming error and panics.
func Compare(a, b interface{}) int {
	ka, kb := kindRank(a), kindRank(b)
	if ka != kb {
		return cmpInt(ka, kb)
	}
	switch x := a.(type) {
	case int64:
		y := b.(int64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case string:
		return strings.Compare(x, b.(string))
	default:
		return x.(time.Time).Compare(b.(time.Time))
	}
}

func kindRank(v interface{}) int {
	switch v.(type) {
	case int64:
		return 0
	case string:
		return 1
	case time.Time:
		return 2
	}
	panic(fmt.Sprintf("criteria: unsupported value type %T", v))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
