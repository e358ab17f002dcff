package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"默认值", 0, 0, 1, 20, 0},
		{"正常值", 3, 10, 3, 10, 20},
		{"超过上限", 2, 500, 2, 100, 100},
		{"负数", -1, -5, 1, 20, 0},
		{"页码超过上限", int(^uint(0) >> 1), 100, MaxPage, 100, (MaxPage - 1) * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantSize, p.PageSize)
			assert.Equal(t, tt.wantOffset, p.Offset())
		})
	}
}

func TestPagination_ZeroValueLimit(t *testing.T) {
	assert.Equal(t, DefaultPageSize, Pagination{}.Limit())
	assert.Zero(t, Pagination{}.Offset())
	assert.Equal(t, (MaxPage-1)*DefaultPageSize, Pagination{Page: int(^uint(0) >> 1)}.Offset())
}
