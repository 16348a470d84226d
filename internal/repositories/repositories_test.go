package repositories

import (
	"math"
	"testing"
)

func TestPagination_Clamp(t *testing.T) {
	cases := []struct {
		in, want Pagination
	}{
		{Pagination{}, Pagination{Page: 1, Limit: DefaultPageLimit}},
		{Pagination{Page: -3, Limit: -1}, Pagination{Page: 1, Limit: 1}},
		{Pagination{Page: 2, Limit: 500}, Pagination{Page: 2, Limit: MaxPageLimit}},
		{Pagination{Page: 4, Limit: 10}, Pagination{Page: 4, Limit: 10}},
	}

	for _, c := range cases {
		if got := c.in.Clamp(); got != c.want {
			t.Errorf("Clamp(%+v) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestPagination_Offset(t *testing.T) {
	cases := []struct {
		in   Pagination
		want int
	}{
		{Pagination{Page: 3, Limit: 10}, 20},
		{Pagination{Page: 1, Limit: 10}, 0},
		{Pagination{Page: 0, Limit: 10}, 0},
		{Pagination{Page: math.MaxInt, Limit: MaxPageLimit}, math.MaxInt},
		{Pagination{Page: 1<<62 + 1, Limit: 2}, math.MaxInt},
	}

	for _, c := range cases {
		if got := c.in.Offset(); got != c.want {
			t.Errorf("Offset(%+v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3, 4, 5}, 25, Pagination{Page: 3, Limit: 10})
	if page.TotalPages != 3 || page.Total != 25 || page.Page != 3 || page.Limit != 10 {
		t.Fatalf("unexpected page: %+v", page)
	}

	empty := NewPage[int](nil, 0, Pagination{Page: 1, Limit: 10})
	if empty.Data == nil || len(empty.Data) != 0 || empty.TotalPages != 0 {
		t.Fatalf("unexpected empty page: %+v", empty)
	}

	if got := NewPage[int](nil, 21, Pagination{Page: 1, Limit: 10}).TotalPages; got != 3 {
		t.Fatalf("got %d total pages, want 3", got)
	}
}
