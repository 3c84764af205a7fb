package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errInvalidPagination = errors.New("invalid pagination params")

// parsePaginationParams applies page=1 limit=20 defaults and clamps limit to
// maxLimit.
func parsePaginationParams(pageStr, limitStr string, maxLimit int64) (int64, int64, error) {
	page := int64(1)
	limit := int64(20)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, errInvalidPagination
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 || l > maxLimit {
			return 0, 0, errInvalidPagination
		}
		limit = l
	}

	return page, limit, nil
}

func paginationEnvelope(page, limit, total int64) gin.H {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return gin.H{
		"currentPage": page,
		"totalPages":  totalPages,
		"totalItems":  total,
		"hasNextPage": page < totalPages,
		"hasPrevPage": page > 1,
	}
}
