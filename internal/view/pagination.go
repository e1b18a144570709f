package view

import (
	"math"

	"github.com/PauloHFS/blogicum/internal/db"
)

type Pagination struct {
	CurrentPage int
	TotalItems  int
	PerPage     int
	// BaseURL recebe ?page=N nos links.
	BaseURL string
}

func NewPagination(page, total, perPage int) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return Pagination{
		CurrentPage: page,
		TotalItems:  total,
		PerPage:     perPage,
	}
}

// PaginationOf monta a navegação de uma página já recortada por db.Paginate.
func PaginationOf[T any](result db.PagedResult[T], baseURL string) Pagination {
	p := NewPagination(result.CurrentPage, result.TotalItems, result.PerPage)
	p.BaseURL = baseURL
	return p
}

func (p Pagination) TotalPages() int {
	return int(math.Ceil(float64(p.TotalItems) / float64(p.PerPage)))
}

func (p Pagination) HasPrevious() bool {
	return p.CurrentPage > 1
}

func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages()
}

func (p Pagination) PreviousPage() int {
	if p.HasPrevious() {
		return p.CurrentPage - 1
	}
	return 1
}

func (p Pagination) NextPage() int {
	if p.HasNext() {
		return p.CurrentPage + 1
	}
	return p.TotalPages()
}
