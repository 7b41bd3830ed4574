package dto

import (
	"net/url"
	"testing"
)

func TestPageRequestFromQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		page := PageRequestFromQuery(url.Values{})
		if page.PageNo != 1 || page.PageSize != defaultPageSize {
			t.Fatalf("defaults = %+v", page)
		}
	})

	t.Run("reads parameters", func(t *testing.T) {
		page := PageRequestFromQuery(url.Values{"pageNo": {"3"}, "pageSize": {"15"}})
		if page.PageNo != 3 || page.PageSize != 15 {
			t.Fatalf("parsed = %+v", page)
		}
		if page.Offset() != 30 {
			t.Fatalf("Offset() = %d, want 30", page.Offset())
		}
	})

	t.Run("ignores invalid values", func(t *testing.T) {
		page := PageRequestFromQuery(url.Values{"pageNo": {"0"}, "pageSize": {"abc"}})
		if page.PageNo != 1 || page.PageSize != defaultPageSize {
			t.Fatalf("fallback = %+v", page)
		}
	})

	t.Run("clamps oversized pages", func(t *testing.T) {
		page := PageRequestFromQuery(url.Values{"pageSize": {"5000"}})
		if page.PageSize != maxPageSize {
			t.Fatalf("PageSize = %d, want %d", page.PageSize, maxPageSize)
		}
	})
}

func TestNewPageInfo(t *testing.T) {
	cases := []struct {
		total     int64
		pageNo    int
		pageSize  int
		wantPages int
	}{
		{25, 2, 10, 3},
		{20, 1, 10, 2},
		{0, 1, 10, 0},
		{1, 1, 10, 1},
	}

	for _, tc := range cases {
		info := NewPageInfo(tc.total, PageRequest{PageNo: tc.pageNo, PageSize: tc.pageSize})
		if info.TotalPages != tc.wantPages {
			t.Errorf("NewPageInfo(%d, size %d).TotalPages = %d, want %d",
				tc.total, tc.pageSize, info.TotalPages, tc.wantPages)
		}
		if info.CurrentPage != tc.pageNo || info.TotalCount != tc.total {
			t.Errorf("NewPageInfo(%d) = %+v", tc.total, info)
		}
	}
}
