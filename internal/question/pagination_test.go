package question

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i + 1
	}

	tests := []struct {
		name  string
		page  int
		first int
		size  int
	}{
		{"first page", 1, 1, 10},
		{"middle page", 2, 11, 10},
		{"partial last page", 3, 21, 3},
		{"past the end", 4, 0, 0},
		{"far past the end", 1000, 0, 0},
		{"zero", 0, 0, 0},
		{"negative", -2, 0, 0},
		{"overflow", math.MaxInt, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.page, items)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.size)
			if tt.size > 0 {
				assert.Equal(t, tt.first, got[0])
			}
		})
	}
}

func TestPaginateExactMultiple(t *testing.T) {
	items := make([]int, 20)
	assert.Len(t, Paginate(2, items), 10)
	assert.Empty(t, Paginate(3, items))
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("1.5"))
	assert.Equal(t, 3, ParsePage("3"))
	assert.Equal(t, 0, ParsePage("0"))
	assert.Equal(t, -1, ParsePage("-1"))
}
