// file: internals/helpers/pagination.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Pagination type & defaults
=================================*/

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

/* ===============================
   Paging resolver (query → page/perPage/offset)
=================================*/

type Paging struct {
	Page    int
	PerPage int
	Offset  int
	Limit   int
}

// ResolvePaging membaca ?page= & ?per_page= (atau alias ?limit=) dan normalisasi.
// - defaultPerPage: fallback kalau tidak ada/invalid
// - maxPerPage: batasi per_page maksimum (0 = tanpa batas)
func ResolvePaging(c *fiber.Ctx, defaultPerPage, maxPerPage int) Paging {
	pageStr := strings.TrimSpace(c.Query("page", "1"))

	// dukung dua nama: per_page (utama) atau limit (alias lama)
	perPageStr := strings.TrimSpace(c.Query("per_page"))
	if perPageStr == "" {
		perPageStr = strings.TrimSpace(c.Query("limit", strconv.Itoa(defaultPerPage)))
	}

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(perPageStr)
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}

	offset := (page - 1) * perPage

	return Paging{
		Page:    page,
		PerPage: perPage,
		Offset:  offset,
		Limit:   perPage,
	}
}

func BuildPaginationFromPage(total int64, page, perPage int) *Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage)) // ceil
	if totalPages == 0 {
		totalPages = 1
	}
	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
