package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	page, size := Clamp(0, 0, 25)
	assert.Equal(t, 1, page)
	assert.Equal(t, 25, size)

	page, size = Clamp(-3, 10, 25)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	page, size = Clamp(4, 50, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 50, size)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 25))
	assert.Equal(t, 25, Offset(2, 25))
	assert.Equal(t, 125, Offset(6, 25))
}

func TestNewEnvelope(t *testing.T) {
	p := New([]int{1, 2, 3}, 1, 3, 7)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)
	assert.Equal(t, 2, p.NextPage)
	assert.Zero(t, p.PrevPage)

	p = New([]int{7}, 3, 3, 7)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.Equal(t, 2, p.PrevPage)

	// Past the data: empty but never nil, no next page.
	p = New[int](nil, 9, 3, 7)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasNext)
}
