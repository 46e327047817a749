// Package task implements the task query-and-mutation engine: predicate
// composition for filtered listing, sort/page normalization, hydrated page
// fetches with lock-step counts, and transactional create/update/delete
// with cross-entity ownership checks.
package task

import (
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/CamiloBarros/todolist/internal/logger"
	"github.com/CamiloBarros/todolist/internal/store"
)

// Limits bounds pagination.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultLimits returns the built-in pagination bounds.
func DefaultLimits() Limits {
	return Limits{DefaultPageSize: 10, MaxPageSize: 100}
}

// Service is the owner-scoped task engine. Reads go straight to the pool;
// writes run through the transaction manager.
type Service struct {
	db     *sqlx.DB
	tx     *store.TransactionManager
	limits Limits
	log    *slog.Logger
}

// NewService creates a task service.
func NewService(db *sqlx.DB, limits Limits) *Service {
	if limits.DefaultPageSize <= 0 {
		limits.DefaultPageSize = DefaultLimits().DefaultPageSize
	}
	if limits.MaxPageSize <= 0 {
		limits.MaxPageSize = DefaultLimits().MaxPageSize
	}
	return &Service{
		db:     db,
		tx:     store.NewTransactionManager(db),
		limits: limits,
		log:    logger.Task(),
	}
}
