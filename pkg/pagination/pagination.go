// Package pagination parses page/limit query parameters and shapes the
// pagination block echoed back on list responses.
package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params holds pagination parameters extracted from a request.
type Params struct {
	Page  int
	Limit int
}

// FromContext extracts pagination parameters from the echo context,
// defaulting to page 1 with 10 results.
func FromContext(c echo.Context) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = DefaultPage
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Info is the pagination block carried alongside list data.
type Info struct {
	CurrentPage    int `json:"current_page"`
	TotalPages     int `json:"total_pages"`
	TotalResults   int `json:"total_results"`
	ResultsPerPage int `json:"results_per_page"`
}

// NewInfo computes the pagination block for a list response.
func NewInfo(p Params, total int) Info {
	pages := total / p.Limit
	if total%p.Limit > 0 {
		pages++
	}
	return Info{
		CurrentPage:    p.Page,
		TotalPages:     pages,
		TotalResults:   total,
		ResultsPerPage: p.Limit,
	}
}

// HasNext reports whether results exist past the current page.
func (p Params) HasNext(total int) bool {
	return p.Offset()+p.Limit < total
}
