package task

import (
	"strings"

	"github.com/CamiloBarros/todolist/internal/model"
)

// priorityRank orders priorities by severity instead of alphabetically.
const priorityRank = "CASE t.priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END"

// sortColumns is the allow-list of sortable fields. Anything else falls
// back to created_at and never reaches the query text.
var sortColumns = map[string]string{
	"created_at": "t.created_at",
	"due_date":   "t.due_date",
	"priority":   priorityRank,
	"title":      "t.title",
}

type pageSpec struct {
	page   int
	limit  int
	offset uint64
}

// resolveSort normalizes sort field and direction into an ORDER BY
// expression. Only an explicit ascending token sorts ascending.
func resolveSort(opts model.ListOptions) string {
	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = sortColumns["created_at"]
	}

	direction := "DESC"
	if strings.EqualFold(opts.SortDirection, "asc") {
		direction = "ASC"
	}

	return column + " " + direction
}

// resolvePage clamps page and limit against the configured bounds and
// derives the offset.
func resolvePage(opts model.ListOptions, limits Limits) pageSpec {
	page := opts.Page
	if page < 1 {
		page = 1
	}

	limit := opts.Limit
	if limit < 1 {
		limit = limits.DefaultPageSize
	}
	if limit > limits.MaxPageSize {
		limit = limits.MaxPageSize
	}

	return pageSpec{
		page:   page,
		limit:  limit,
		offset: uint64(page-1) * uint64(limit),
	}
}
