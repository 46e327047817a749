package model

// ListOptions carries raw sort and pagination parameters as received from
// the caller. The sort/page resolver normalizes them.
type ListOptions struct {
	SortBy        string
	SortDirection string
	Page          int
	Limit         int
}

// Pagination is the metadata returned alongside a task page. Total is
// computed from the same predicates as the page fetch.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPagination derives the full metadata set from the effective page,
// limit and filtered total.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
