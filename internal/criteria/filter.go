package criteria

// Filter holds the optional conditions supported by every field.
type Filter[T any] struct {
	Equals    *T
	NotEquals *T
	In        []T
	NotIn     []T
	Specified *bool
}

// RangeFilter adds ordering comparisons for orderable fields.
type RangeFilter[T any] struct {
	Filter[T]
	GreaterThan        *T
	GreaterThanOrEqual *T
	LessThan           *T
	LessThanOrEqual    *T
}

func (f *Filter[T]) appendClauses(dst []Clause, field Field, norm func(T) interface{}) []Clause {
	if f == nil {
		return dst
	}
	if f.Equals != nil {
		dst = append(dst, single(field, OpEquals, norm(*f.Equals)))
	}
	if f.NotEquals != nil {
		dst = append(dst, single(field, OpNotEquals, norm(*f.NotEquals)))
	}
	if f.In != nil {
		dst = append(dst, Clause{Field: field, Operator: OpIn, Values: normAll(f.In, norm)})
	}
	if f.NotIn != nil {
		dst = append(dst, Clause{Field: field, Operator: OpNotIn, Values: normAll(f.NotIn, norm)})
	}
	if f.Specified != nil {
		op := OpNotSpecified
		if *f.Specified {
			op = OpSpecified
		}
		dst = append(dst, Clause{Field: field, Operator: op})
	}
	return dst
}

func (f *RangeFilter[T]) appendClauses(dst []Clause, field Field, norm func(T) interface{}) []Clause {
	if f == nil {
		return dst
	}
	dst = f.Filter.appendClauses(dst, field, norm)
	if f.GreaterThan != nil {
		dst = append(dst, single(field, OpGreaterThan, norm(*f.GreaterThan)))
	}
	if f.GreaterThanOrEqual != nil {
		dst = append(dst, single(field, OpGreaterThanOrEqual, norm(*f.GreaterThanOrEqual)))
	}
	if f.LessThan != nil {
		dst = append(dst, single(field, OpLessThan, norm(*f.LessThan)))
	}
	if f.LessThanOrEqual != nil {
		dst = append(dst, single(field, OpLessThanOrEqual, norm(*f.LessThanOrEqual)))
	}
	return dst
}

func single(field Field, op Operator, v interface{}) Clause {
	return Clause{Field: field, Operator: op, Values: []interface{}{v}}
}

func normAll[T any](values []T, norm func(T) interface{}) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, norm(v))
	}
	return out
}
