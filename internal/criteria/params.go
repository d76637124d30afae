package criteria

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/announcement-api/internal/models"
)

// Query-string suffixes understood on every filterable field.
const (
	suffixEquals             = "equals"
	suffixNotEquals          = "notEquals"
	suffixIn                 = "in"
	suffixNotIn              = "notIn"
	suffixSpecified          = "specified"
	suffixGreaterThan        = "greaterThan"
	suffixGreaterThanOrEqual = "greaterThanOrEqual"
	suffixLessThan           = "lessThan"
	suffixLessThanOrEqual    = "lessThanOrEqual"
)

// ParseAnnouncementCriteria reads `<property>.<suffix>=value` pairs plus a top-level
// `distinct` flag. Parameters that are not criteria (page, size, sort...) are ignored.
func ParseAnnouncementCriteria(values url.Values) (*AnnouncementCriteria, error) {
	c := &AnnouncementCriteria{}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := values[key]
		if key == "distinct" {
			b, err := strconv.ParseBool(last(raw))
			if err != nil {
				return nil, fmt.Errorf("distinct: %q is not a boolean", last(raw))
			}
			c.Distinct = &b
			continue
		}

		property, suffix, ok := strings.Cut(key, ".")
		if !ok {
			continue
		}

		var err error
		switch property {
		case "id":
			if c.ID == nil {
				c.ID = &RangeFilter[int64]{}
			}
			err = parseRange(c.ID, suffix, raw, parseInt64)
		case "language":
			if c.Language == nil {
				c.Language = &Filter[models.Language]{}
			}
			err = parseFilter(c.Language, suffix, raw, models.ParseLanguage)
		case "startDate":
			if c.StartDate == nil {
				c.StartDate = &RangeFilter[time.Time]{}
			}
			err = parseRange(c.StartDate, suffix, raw, ParseTime)
		case "endDate":
			if c.EndDate == nil {
				c.EndDate = &RangeFilter[time.Time]{}
			}
			err = parseRange(c.EndDate, suffix, raw, ParseTime)
		case "announcementType":
			if c.AnnouncementType == nil {
				c.AnnouncementType = &Filter[models.AnnouncementType]{}
			}
			err = parseFilter(c.AnnouncementType, suffix, raw, models.ParseAnnouncementType)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}

	return c, nil
}

// ParsePageRequest reads `page` (zero-based), `size` and repeated `sort=property,dir`.
func ParsePageRequest(values url.Values, defaultSize, maxSize int) (models.PageRequest, error) {
	req := models.PageRequest{Size: defaultSize}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return req, fmt.Errorf("page: %q is not a non-negative integer", raw)
		}
		req.Page = page
	}
	if raw := values.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return req, fmt.Errorf("size: %q is not a positive integer", raw)
		}
		req.Size = size
	}
	if maxSize > 0 && req.Size > maxSize {
		req.Size = maxSize
	}
	if req.Size > 0 && req.Page > math.MaxInt/req.Size {
		return req, fmt.Errorf("page: %d is out of range for size %d", req.Page, req.Size)
	}

	for _, raw := range values["sort"] {
		property, direction, _ := strings.Cut(raw, ",")
		property = strings.TrimSpace(property)
		if _, ok := FieldForProperty(property); !ok {
			return req, fmt.Errorf("sort: unknown property %q", property)
		}
		order := models.SortOrder{Property: property, Direction: models.SortAsc}
		switch strings.ToLower(strings.TrimSpace(direction)) {
		case "", "asc":
		case "desc":
			order.Direction = models.SortDesc
		default:
			return req, fmt.Errorf("sort: unknown direction %q", direction)
		}
		req.Sort = append(req.Sort, order)
	}

	return req, nil
}

// ParseTime accepts RFC 3339 timestamps and returns them in UTC.
func ParseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not an RFC 3339 timestamp", raw)
	}
	return t.UTC(), nil
}

func parseInt64(raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", raw)
	}
	return v, nil
}

func parseFilter[T any](f *Filter[T], suffix string, raw []string, parse func(string) (T, error)) error {
	switch suffix {
	case suffixEquals, suffixNotEquals:
		v, err := parse(last(raw))
		if err != nil {
			return err
		}
		if suffix == suffixEquals {
			f.Equals = &v
		} else {
			f.NotEquals = &v
		}
	case suffixIn, suffixNotIn:
		list, err := parseList(raw, parse)
		if err != nil {
			return err
		}
		if suffix == suffixIn {
			f.In = list
		} else {
			f.NotIn = list
		}
	case suffixSpecified:
		b, err := strconv.ParseBool(last(raw))
		if err != nil {
			return fmt.Errorf("%q is not a boolean", last(raw))
		}
		f.Specified = &b
	default:
		return fmt.Errorf("unsupported filter %q", suffix)
	}
	return nil
}

func parseRange[T any](f *RangeFilter[T], suffix string, raw []string, parse func(string) (T, error)) error {
	var target **T
	switch suffix {
	case suffixGreaterThan:
		target = &f.GreaterThan
	case suffixGreaterThanOrEqual:
		target = &f.GreaterThanOrEqual
	case suffixLessThan:
		target = &f.LessThan
	case suffixLessThanOrEqual:
		target = &f.LessThanOrEqual
	default:
		return parseFilter(&f.Filter, suffix, raw, parse)
	}
	v, err := parse(last(raw))
	if err != nil {
		return err
	}
	*target = &v
	return nil
}

func parseList[T any](raw []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, entry := range raw {
		for _, item := range strings.Split(entry, ",") {
			if strings.TrimSpace(item) == "" {
				continue
			}
			v, err := parse(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one value is required")
	}
	return out, nil
}

func last(raw []string) string {
	if len(raw) == 0 {
		return ""
	}
	return raw[len(raw)-1]
}
