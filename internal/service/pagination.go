package service

import (
	"math"

	"github.com/stemsi/rekamsehat-backend/internal/response"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
	// Keeps the offset within Firestore's int32 range.
	maxPage = math.MaxInt32 / maxPerPage
)

// normalizePage clamps page and perPage and returns the matching offset.
func normalizePage(page, perPage int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage, (page - 1) * perPage
}

func newPagination(page, perPage, total int) *response.Pagination {
	return &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
}
