// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type PaginationParams struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Search  string `json:"search"`
}

type PaginationResult struct {
	Total       int64 `json:"total"`
	Pages       int   `json:"pages"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))

	return NormalizePagination(PaginationParams{
		Page:    page,
		PerPage: perPage,
		Search:  c.Query("search"),
	})
}

// NormalizePagination replaces out-of-range values with defaults.
func NormalizePagination(params PaginationParams) PaginationParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = DefaultPerPage
	}
	if params.PerPage > MaxPerPage {
		params.PerPage = MaxPerPage
	}
	// Keep the offset from overflowing; such a page is past the end anyway.
	if maxPage := math.MaxInt / params.PerPage; params.Page > maxPage {
		params.Page = maxPage
	}
	return params
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	offset := (params.Page - 1) * params.PerPage
	return db.Offset(offset).Limit(params.PerPage)
}

func CreatePaginationResult(total int64, params PaginationParams) PaginationResult {
	totalPages := int(math.Ceil(float64(total) / float64(params.PerPage)))

	return PaginationResult{
		Total:       total,
		Pages:       totalPages,
		CurrentPage: params.Page,
		PerPage:     params.PerPage,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.CurrentPage))
	c.Header("X-Per-Page", strconv.Itoa(result.PerPage))
	c.Header("X-Total-Pages", strconv.Itoa(result.Pages))
}
