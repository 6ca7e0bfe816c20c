package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedResponse(t *testing.T) {
	res := NewPaginatedResponse([]string{"a", "b"}, 20, 40)
	assert.Equal(t, []string{"a", "b"}, res.Data)
	assert.Equal(t, PaginationMeta{Limit: 20, Offset: 40, Count: 2}, res.Meta)

	empty := NewPaginatedResponse[int](nil, 10, 0)
	assert.NotNil(t, empty.Data)
	assert.Zero(t, empty.Meta.Count)
}
