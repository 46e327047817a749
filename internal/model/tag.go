package model

import "time"

// Tag labels tasks through the task_tags join table. Name is unique per
// owner.
type Tag struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// UsageCount is populated by list queries.
	UsageCount int64 `db:"usage_count" json:"usage_count"`
}

// TagSummary is the shape embedded in a hydrated task.
type TagSummary struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Color string `db:"color" json:"color"`
}

// TagDraft is the input shape for creating or updating a tag.
type TagDraft struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
