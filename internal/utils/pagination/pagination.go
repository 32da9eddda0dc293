package pagination

import (
	"github.com/gofiber/fiber/v2"
)

type Pagination struct {
	Page   int
	Limit  int
	Offset int
	Total  int64
}

// ParseFromRequest reads limit plus either offset or a 1-based page from
// the query. An explicit offset wins over page. Out-of-range values are
// left for the service to normalize.
func ParseFromRequest(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if c.Query("offset") != "" {
		offset := c.QueryInt("offset", 0)
		return Pagination{Page: pageOf(offset, limit), Limit: limit, Offset: offset}
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return Pagination{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// FromOffset describes the page the service actually served.
func FromOffset(limit, offset int, total int64) Pagination {
	return Pagination{Page: pageOf(offset, limit), Limit: limit, Offset: offset, Total: total}
}

// Response creates a standardized pagination response
func Response(p Pagination, data interface{}) fiber.Map {
	var totalPages int64
	if p.Limit > 0 {
		totalPages = p.Total / int64(p.Limit)
		if p.Total%int64(p.Limit) > 0 {
			totalPages++
		}
	}

	return fiber.Map{
		"data": data,
		"meta": fiber.Map{
			"current_page": p.Page,
			"per_page":     p.Limit,
			"offset":       p.Offset,
			"total_items":  p.Total,
			"total_pages":  totalPages,
		},
	}
}

func pageOf(offset, limit int) int {
	if limit <= 0 || offset < 0 {
		return 1
	}
	return offset/limit + 1
}
