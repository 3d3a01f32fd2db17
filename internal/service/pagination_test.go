package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationClamp(t *testing.T) {
	tests := []struct {
		name      string
		in        Pagination
		wantPage  int
		wantLimit int
	}{
		{"zero values take defaults", Pagination{}, 1, 10},
		{"negative page floors to one", Pagination{Page: -5, Limit: 20}, 1, 20},
		{"limit capped at max", Pagination{Page: 2, Limit: 1000}, 2, 100},
		{"negative limit floors to one", Pagination{Page: 1, Limit: -1}, 1, 1},
		{"in-range passes through", Pagination{Page: 7, Limit: 25}, 7, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := tt.in.clamp()
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPageTotalPages(t *testing.T) {
	p := newPage([]int{1, 2, 3}, 31, 1, 10)
	assert.Equal(t, 4, p.TotalPages)

	p = newPage([]int{}, 0, 1, 10)
	assert.Equal(t, 0, p.TotalPages)
	assert.NotNil(t, p.Items)

	p = newPage[int](nil, 10, 1, 10)
	assert.Equal(t, 1, p.TotalPages)
	assert.NotNil(t, p.Items)
}
