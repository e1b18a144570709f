package db

// PagingParams define os parâmetros básicos de entrada
type PagingParams struct {
	Page    int
	PerPage int
}

func (p PagingParams) Offset() int {
	if p.Page < 1 {
		p.Page = 1
	}
	return (p.Page - 1) * p.Limit()
}

func (p PagingParams) Limit() int {
	if p.PerPage < 1 {
		p.PerPage = 10
	}
	return p.PerPage
}

// PagedResult encapsula os dados e os metadados da página
type PagedResult[T any] struct {
	Items       []T
	TotalItems  int
	CurrentPage int
	PerPage     int
}

func (p PagedResult[T]) TotalPages() int {
	if p.PerPage <= 0 || p.TotalItems == 0 {
		return 0
	}
	return (p.TotalItems-1)/p.PerPage + 1
}

// Paginate recorta uma página de uma lista já filtrada e ordenada.
func Paginate[T any](items []T, p PagingParams) PagedResult[T] {
	if p.Page < 1 {
		p.Page = 1
	}
	p.PerPage = p.Limit()

	result := PagedResult[T]{
		TotalItems:  len(items),
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
	}

	// Páginas além da última voltam vazias; comparar antes de multiplicar
	// evita overflow com ?page= enorme.
	if p.Page > result.TotalPages() {
		return result
	}
	start := p.Offset()
	end := start + min(p.PerPage, len(items)-start)
	result.Items = items[start:end]
	return result
}
