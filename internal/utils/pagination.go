package utils

// PaginatedResult wraps a page of items with the metadata clients need
// to render pagers.
type PaginatedResult[T any] struct {
	Items       []T   `json:"items"`
	TotalItems  int32 `json:"totalItems"`
	TotalPages  int32 `json:"totalPages"`
	Page        int32 `json:"page"`
	PageSize    int32 `json:"pageSize"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Paginate builds the result envelope for an already-fetched page.
// totalItems is the full row count, not the slice length.
func Paginate[T any](items []T, totalItems, page, pageSize int32) PaginatedResult[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (totalItems + pageSize - 1) / pageSize
	if items == nil {
		items = []T{}
	}
	return PaginatedResult[T]{
		Items:       items,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		Page:        page,
		PageSize:    pageSize,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && totalItems > 0,
	}
}

// NormalizePageParams applies defaults and caps for list endpoints.
func NormalizePageParams(page, pageSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
