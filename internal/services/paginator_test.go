package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestParsePageNumber(t *testing.T) {
	assert.Equal(t, 1, ParsePageNumber(""))
	assert.Equal(t, 1, ParsePageNumber("abc"))
	assert.Equal(t, 2, ParsePageNumber("2"))
	assert.Equal(t, -3, ParsePageNumber("-3"))
}

func TestPaginate_ThirteenItems(t *testing.T) {
	first := Paginate(seq(13), 1, PostsPerPage)
	assert.Equal(t, 10, first.Len())
	assert.Equal(t, 2, first.NumPages)
	assert.EqualValues(t, 13, first.Count)
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())

	second := Paginate(seq(13), 2, PostsPerPage)
	assert.Equal(t, 3, second.Len())
	assert.Equal(t, []int{11, 12, 13}, second.Items)
	assert.False(t, second.HasNext())
	assert.Equal(t, 1, second.PreviousNumber())
	assert.Equal(t, []int{1, 2}, second.PageRange())
}

func TestPaginate_Clamps(t *testing.T) {
	assert.Equal(t, 2, Paginate(seq(13), 99, PostsPerPage).Number)
	assert.Equal(t, 1, Paginate(seq(13), 0, PostsPerPage).Number)
	assert.Equal(t, 1, Paginate(seq(13), -5, PostsPerPage).Number)
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate([]int{}, 3, PostsPerPage)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages)
	assert.Equal(t, 0, page.Len())
	assert.False(t, page.HasNext())
}
