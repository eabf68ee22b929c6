package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestCalculateOffsetLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, size int
		offset     uint64
		limit      int
	}{
		{1, 10, 0, 10},
		{3, 20, 40, 20},
		{0, 0, 0, DefaultPageSize},
		{2, 1000, 10, DefaultPageSize},
	}
	for _, tt := range tests {
		offset, limit := CalculateOffsetLimit(tt.page, tt.size)
		if offset != tt.offset || limit != tt.limit {
			t.Fatalf("CalculateOffsetLimit(%d, %d) = %d, %d", tt.page, tt.size, offset, limit)
		}
	}
}

func TestNewPaginationInfo(t *testing.T) {
	t.Parallel()

	got := NewPaginationInfo(27, 5, 10)
	if got.TotalPages != 3 || got.CurrentPage != 3 || got.TotalItems != 27 || got.PageSize != 10 {
		t.Fatalf("unexpected pagination %+v", got)
	}
	empty := NewPaginationInfo(0, 1, 10)
	if empty.TotalPages != 1 || empty.CurrentPage != 1 {
		t.Fatalf("unexpected empty pagination %+v", empty)
	}
}

func TestCalculateSliceIndices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, size, total int
		start, end        int
	}{
		{1, 10, 25, 0, 10},
		{3, 10, 25, 20, 25},
		{4, 10, 25, 25, 25},
		{1, 10, 0, 0, 0},
	}
	for _, tt := range tests {
		start, end := CalculateSliceIndices(tt.page, tt.size, tt.total)
		if start != tt.start || end != tt.end {
			t.Fatalf("CalculateSliceIndices(%d, %d, %d) = %d, %d", tt.page, tt.size, tt.total, start, end)
		}
	}
}

func TestParsePaginationParams(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query      string
		page, size int
	}{
		{"", 1, DefaultPageSize},
		{"?page=2&size=25", 2, 25},
		{"?page=-1&size=500", 1, DefaultPageSize},
		{"?page=abc&size=x", 1, DefaultPageSize},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/notes"+tt.query, nil)
		page, size := ParsePaginationParams(c)
		if page != tt.page || size != tt.size {
			t.Fatalf("ParsePaginationParams(%q) = %d, %d", tt.query, page, size)
		}
	}
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	if got := ParseDuration("45s", time.Second); got != 45*time.Second {
		t.Fatalf("ParseDuration = %s", got)
	}
	for _, in := range []string{"", "soon", "-5s"} {
		if got := ParseDuration(in, time.Minute); got != time.Minute {
			t.Fatalf("ParseDuration(%q) = %s, want fallback", in, got)
		}
	}
}
