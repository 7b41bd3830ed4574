package dto

import (
	"net/url"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageRequest is the 1-based pagination convention used across the API.
type PageRequest struct {
	PageNo   int
	PageSize int
}

// PageRequestFromQuery reads pageNo/pageSize query parameters, applying the
// default page size and clamping out-of-range values.
func PageRequestFromQuery(q url.Values) PageRequest {
	page := PageRequest{PageNo: 1, PageSize: defaultPageSize}

	if raw := q.Get("pageNo"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page.PageNo = parsed
		}
	}
	if raw := q.Get("pageSize"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page.PageSize = parsed
		}
	}
	if page.PageSize > maxPageSize {
		page.PageSize = maxPageSize
	}
	return page
}

func (p PageRequest) Offset() int {
	return (p.PageNo - 1) * p.PageSize
}

// PageInfo is the pagination envelope included in list responses.
type PageInfo struct {
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

func NewPageInfo(totalCount int64, page PageRequest) PageInfo {
	totalPages := int((totalCount + int64(page.PageSize) - 1) / int64(page.PageSize))
	return PageInfo{
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		CurrentPage: page.PageNo,
	}
}
