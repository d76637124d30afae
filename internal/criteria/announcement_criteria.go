package criteria

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/announcement-api/internal/models"
)

// AnnouncementCriteria is the sparse set of filters accepted by list and count
// queries. A nil filter constrains nothing.
type AnnouncementCriteria struct {
	ID               *RangeFilter[int64]
	Language         *Filter[models.Language]
	StartDate        *RangeFilter[time.Time]
	EndDate          *RangeFilter[time.Time]
	AnnouncementType *Filter[models.AnnouncementType]
	Distinct         *bool
}

// IsDistinct defaults to true when no explicit value was supplied.
func (c *AnnouncementCriteria) IsDistinct() bool {
	if c == nil || c.Distinct == nil {
		return true
	}
	return *c.Distinct
}

// Build folds the criteria into a predicate. Distinct is resolved first and does not
// depend on the other filters; a nil criteria builds the match-all predicate.
func Build(c *AnnouncementCriteria) Predicate {
	p := Predicate{Distinct: c.IsDistinct()}
	if c == nil {
		return p
	}
	p.Clauses = c.ID.appendClauses(p.Clauses, FieldID, normInt64)
	p.Clauses = c.Language.appendClauses(p.Clauses, FieldLanguage, normLanguage)
	p.Clauses = c.StartDate.appendClauses(p.Clauses, FieldStartDate, normTime)
	p.Clauses = c.EndDate.appendClauses(p.Clauses, FieldEndDate, normTime)
	p.Clauses = c.AnnouncementType.appendClauses(p.Clauses, FieldAnnouncementType, normAnnouncementType)
	return p
}

// ActiveAt builds the predicate for announcements strictly running at date in the
// given language: start_date < date AND end_date > date AND language = language.
func ActiveAt(date time.Time, language models.Language) Predicate {
	return Predicate{
		Distinct: true,
		Clauses: []Clause{
			single(FieldStartDate, OpLessThan, normTime(date)),
			single(FieldEndDate, OpGreaterThan, normTime(date)),
			single(FieldLanguage, OpEquals, normLanguage(language)),
		},
	}
}

func (c *AnnouncementCriteria) String() string {
	if c == nil {
		return "AnnouncementCriteria{}"
	}
	parts := make([]string, 0, 6)
	p := Build(c)
	for _, clause := range p.Clauses {
		parts = append(parts, fmt.Sprintf("%s %s %v", clause.Field, clause.Operator, clause.Values))
	}
	if c.Distinct != nil {
		parts = append(parts, fmt.Sprintf("distinct=%t", *c.Distinct))
	}
	return "AnnouncementCriteria{" + strings.Join(parts, ", ") + "}"
}

func normInt64(v int64) interface{} { return v }

func normTime(v time.Time) interface{} { return v.UTC() }

func normLanguage(v models.Language) interface{} { return string(v) }

func normAnnouncementType(v models.AnnouncementType) interface{} { return string(v) }
