package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Priority represents the priority level of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority validates a raw priority string.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q", s)
	}
	return p, nil
}

// Task represents a task row, optionally hydrated with its category
// summary and full tag list.
type Task struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	CategoryID  *int64     `db:"category_id" json:"category_id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	Completed   bool       `db:"completed" json:"completed"`
	Priority    Priority   `db:"priority" json:"priority"`
	DueDate     *time.Time `db:"due_date" json:"due_date"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	Category *CategorySummary `db:"-" json:"category,omitempty"`
	Tags     []TagSummary     `db:"-" json:"tags"`
}

// TaskFilter carries the optional list filters. A nil/zero field adds no
// constraint.
type TaskFilter struct {
	Completed  *bool
	CategoryID *int64
	Priority   *Priority
	DueDate    *time.Time
	Search     string
	TagIDs     []int64
}

// TaskDraft is the input shape for creating a task.
type TaskDraft struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	CategoryID  *int64     `json:"category_id"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	TagIDs      []int64    `json:"tags"`
}

// Optional distinguishes an absent JSON field from an explicit null.
// Set is true once the key appeared in the payload; Value stays nil for
// an explicit null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON is only invoked for keys present in the payload, which is
// what makes absent and null distinguishable.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// TaskPatch is the partial-update shape. Nil pointer fields (and Optional
// fields with Set false) leave the corresponding column untouched. TagIDs
// nil leaves associations untouched; an empty non-nil slice clears them.
type TaskPatch struct {
	Title       *string             `json:"title"`
	Description Optional[string]    `json:"description"`
	CategoryID  Optional[int64]     `json:"category_id"`
	Priority    *Priority           `json:"priority"`
	DueDate     Optional[time.Time] `json:"due_date"`
	Completed   *bool               `json:"completed"`
	TagIDs      *[]int64            `json:"tags"`
}

// Empty reports whether the patch carries no fields at all.
func (p *TaskPatch) Empty() bool {
	return p.Title == nil &&
		!p.Description.Set &&
		!p.CategoryID.Set &&
		p.Priority == nil &&
		!p.DueDate.Set &&
		p.Completed == nil &&
		p.TagIDs == nil
}

// HasScalarFields reports whether the patch touches any task column
// (as opposed to only the tag association set).
func (p *TaskPatch) HasScalarFields() bool {
	return p.Title != nil ||
		p.Description.Set ||
		p.CategoryID.Set ||
		p.Priority != nil ||
		p.DueDate.Set ||
		p.Completed != nil
}
