package model

import "time"

// Category groups tasks. Name is unique per owner.
type Category struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Color       string    `db:"color" json:"color"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// TaskCount is populated by list queries.
	TaskCount int64 `db:"task_count" json:"task_count"`
}

// CategorySummary is the shape embedded in a hydrated task.
type CategorySummary struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Color string `db:"color" json:"color"`
}

// CategoryDraft is the input shape for creating or updating a category.
type CategoryDraft struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}
