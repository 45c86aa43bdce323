package query

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		name         string
		page, limit  string
		defaultLimit int
		want         Page
	}{
		{"missing", "", "", 20, Page{Page: 1, Limit: 20}},
		{"custom default", "", "", 10, Page{Page: 1, Limit: 10}},
		{"non numeric", "abc", "x", 20, Page{Page: 1, Limit: 20}},
		{"clamped low", "0", "-5", 20, Page{Page: 1, Limit: 1}},
		{"capped", "3", "1000", 20, Page{Page: 3, Limit: MaxLimit}},
		{"regular", "2", "15", 20, Page{Page: 2, Limit: 15}},
		{"huge page", strconv.Itoa(math.MaxInt), "10", 20, Page{Page: math.MaxInt / 10, Limit: 10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ParsePage(c.page, c.limit, c.defaultLimit))
		})
	}
}

func TestNewResult(t *testing.T) {
	r := newResult[int](nil, Page{Page: 2, Limit: 10}, 25)
	assert.NotNil(t, r.Items)
	assert.Equal(t, 3, r.TotalPages)
	assert.True(t, r.HasNext)
	assert.True(t, r.HasPrev)

	r = newResult([]int{1}, Page{Page: 1, Limit: 10}, 1)
	assert.Equal(t, 1, r.TotalPages)
	assert.False(t, r.HasNext)
	assert.False(t, r.HasPrev)

	r = newResult[int](nil, Page{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, r.TotalPages)
	assert.False(t, r.HasNext)
}

func TestMapKeepsMeta(t *testing.T) {
	src := newResult([]int{1, 2}, Page{Page: 1, Limit: 2}, 5)
	out := Map(src, func(i int) string { return string(rune('a' + i)) })
	assert.Equal(t, []string{"b", "c"}, out.Items)
	assert.Equal(t, src.TotalItems, out.TotalItems)
	assert.Equal(t, src.TotalPages, out.TotalPages)
	assert.True(t, out.HasNext)
}
