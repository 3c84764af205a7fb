package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(20), limit)
}

func TestParsePaginationParamsExplicit(t *testing.T) {
	page, limit, err := parsePaginationParams("3", "50", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page)
	assert.Equal(t, int64(50), limit)
}

func TestParsePaginationParamsRejectsBadInput(t *testing.T) {
	cases := []struct{ page, limit string }{
		{"0", ""},
		{"-1", ""},
		{"abc", ""},
		{"", "0"},
		{"", "101"},
		{"", "ten"},
	}
	for _, tc := range cases {
		_, _, err := parsePaginationParams(tc.page, tc.limit, 100)
		assert.ErrorIs(t, err, errInvalidPagination, "page=%q limit=%q", tc.page, tc.limit)
	}
}

func TestPaginationEnvelope(t *testing.T) {
	env := paginationEnvelope(2, 20, 45)

	assert.Equal(t, int64(2), env["currentPage"])
	assert.Equal(t, int64(3), env["totalPages"])
	assert.Equal(t, int64(45), env["totalItems"])
	assert.Equal(t, true, env["hasNextPage"])
	assert.Equal(t, true, env["hasPrevPage"])
}

func TestPaginationEnvelopeSinglePage(t *testing.T) {
	env := paginationEnvelope(1, 20, 5)

	assert.Equal(t, int64(1), env["totalPages"])
	assert.Equal(t, false, env["hasNextPage"])
	assert.Equal(t, false, env["hasPrevPage"])
}

func TestPaginationEnvelopeEmpty(t *testing.T) {
	env := paginationEnvelope(1, 20, 0)

	assert.Equal(t, int64(0), env["totalPages"])
	assert.Equal(t, false, env["hasNextPage"])
}
