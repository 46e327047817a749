package model

import "math"

// Statistics is the aggregate view for one user.
type Statistics struct {
	Summary        StatsSummary      `json:"summary"`
	ByPriority     []PriorityStats   `json:"by_priority"`
	ByCategory     []CategoryStats   `json:"by_category"`
	RecentActivity []DailyCompletion `json:"recent_activity"`
	PopularTags    []TagUsage        `json:"popular_tags"`
}

// StatsSummary holds the headline counts.
type StatsSummary struct {
	Total               int64 `db:"total" json:"total"`
	Completed           int64 `db:"completed" json:"completed"`
	Pending             int64 `db:"pending" json:"pending"`
	Overdue             int64 `db:"overdue" json:"overdue"`
	DueSoon             int64 `db:"due_soon" json:"due_soon"`
	CompletedPercentage int   `db:"-" json:"completed_percentage"`
}

// PriorityStats is the per-priority breakdown, ordered high to low.
type PriorityStats struct {
	Priority            Priority `db:"priority" json:"priority"`
	Total               int64    `db:"total" json:"total"`
	Completed           int64    `db:"completed" json:"completed"`
	Pending             int64    `db:"pending" json:"pending"`
	CompletedPercentage int      `db:"-" json:"completed_percentage"`
}

// CategoryStats is the per-category breakdown. Tasks without a category
// form their own bucket with a nil CategoryID.
type CategoryStats struct {
	CategoryID          *int64  `db:"category_id" json:"category_id"`
	Name                string  `db:"-" json:"name"`
	Color               *string `db:"color" json:"color"`
	Total               int64   `db:"total" json:"total"`
	Completed           int64   `db:"completed" json:"completed"`
	Pending             int64   `db:"pending" json:"pending"`
	CompletedPercentage int     `db:"-" json:"completed_percentage"`
}

// DailyCompletion is one day's completion count within the recent window.
// Only days with at least one completion appear.
type DailyCompletion struct {
	Day       string `db:"day" json:"day"`
	Completed int64  `db:"completed" json:"completed"`
}

// TagUsage is one entry of the most-associated-tags ranking.
type TagUsage struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Color string `db:"color" json:"color"`
	Count int64  `db:"usage_count" json:"count"`
}

// CompletionPercentage computes round(completed/total*100), with a zero
// total yielding 0.
func CompletionPercentage(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
