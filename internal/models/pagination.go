package models

import (
	"fmt"
	"math"
	"strings"
)

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
}

// TotalPages derives the number of pages for the current page size.
func (p Pagination) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// SortDirection is either ASC or DESC.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// SortOrder orders results by one announcement property.
type SortOrder struct {
	Property  string
	Direction SortDirection
}

func (s SortOrder) String() string {
	return fmt.Sprintf("%s,%s", s.Property, strings.ToLower(string(s.Direction)))
}

// PageRequest selects a zero-based page of results with an optional sort.
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// Offset returns the number of rows skipped before the page starts. It saturates at
// math.MaxInt instead of overflowing.
func (p PageRequest) Offset() int {
	if p.Page < 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// AnnouncementPage is one page of an announcement result set.
type AnnouncementPage struct {
	Items      []Announcement
	Pagination Pagination
}
