package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePage(t *testing.T) {
	page, perPage, err := normalizePage(0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPerPage, perPage)

	page, perPage, err = normalizePage(3, 25)
	require.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, perPage)

	for _, tc := range [][2]int{{-1, 10}, {1, -5}, {1, MaxPerPage + 1}} {
		_, _, err := normalizePage(tc[0], tc[1])
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr, "page=%d perPage=%d", tc[0], tc[1])
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 4, totalPages(31, 10))
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1, 10))
	assert.Equal(t, 20, pageOffset(3, 10))
}
