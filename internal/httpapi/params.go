package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/CamiloBarros/todolist/internal/model"
	"github.com/CamiloBarros/todolist/internal/store"
)

// pathID parses the {id} path segment as a positive integer.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, store.Validationf("params", "invalid id %q", raw)
	}
	return id, nil
}

// parseTaskFilter reads the optional list filters from the query string.
// Malformed values are rejected here, before reaching the core.
func parseTaskFilter(r *http.Request) (model.TaskFilter, error) {
	var filter model.TaskFilter
	q := r.URL.Query()

	if raw := q.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, store.Validationf("params", "invalid completed value %q", raw)
		}
		filter.Completed = &completed
	}

	if raw := q.Get("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return filter, store.Validationf("params", "invalid category id %q", raw)
		}
		filter.CategoryID = &id
	}

	if raw := q.Get("priority"); raw != "" {
		priority, err := model.ParsePriority(raw)
		if err != nil {
			return filter, store.Validationf("params", "invalid priority %q", raw)
		}
		filter.Priority = &priority
	}

	if raw := q.Get("due_date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, store.Validationf("params", "invalid due_date %q, expected YYYY-MM-DD", raw)
		}
		filter.DueDate = &day
	}

	filter.Search = strings.TrimSpace(q.Get("search"))

	if raw := q.Get("tags"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id < 1 {
				return filter, store.Validationf("params", "invalid tag id %q", part)
			}
			filter.TagIDs = append(filter.TagIDs, id)
		}
	}

	return filter, nil
}

// parseListOptions reads raw sort and pagination parameters. Normalization
// happens in the sort/page resolver.
func parseListOptions(r *http.Request) model.ListOptions {
	q := r.URL.Query()
	opts := model.ListOptions{
		SortBy:        q.Get("sort_by"),
		SortDirection: q.Get("sort_direction"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = limit
	}
	return opts
}

// parseForce reads the force-delete flag.
func parseForce(r *http.Request) bool {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	return force
}
