package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Error taxonomy. Handlers map these onto HTTP status codes; services wrap
// them with operation context.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// Error provides detailed error information
type Error struct {
	Op     string // Operation that failed
	Entity string // Entity involved
	Err    error  // Underlying error
	Detail string // Human-readable detail, safe to expose to callers
}

func (e *Error) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("store: %s", e.Op))

	if e.Entity != "" {
		parts = append(parts, fmt.Sprintf("entity=%s", e.Entity))
	}

	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports an absent or foreign-owned entity. Ownership mismatches
// are indistinguishable from absence.
func NotFound(op, entity string) error {
	return &Error{Op: op, Entity: entity, Err: ErrNotFound}
}

// Validationf reports malformed or policy-violating input.
func Validationf(op, format string, args ...interface{}) error {
	return &Error{Op: op, Err: ErrValidation, Detail: fmt.Sprintf(format, args...)}
}

// Conflictf reports an operation blocked by existing state.
func Conflictf(op, format string, args ...interface{}) error {
	return &Error{Op: op, Err: ErrConflict, Detail: fmt.Sprintf(format, args...)}
}

// WrapDBError converts database errors into the taxonomy. Unique violations
// become conflicts, foreign key and check violations become validation
// failures, sql.ErrNoRows becomes not found. Anything else is internal.
func WrapDBError(err error, op, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Op: op, Entity: entity, Err: ErrNotFound}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return &Error{Op: op, Entity: entity, Err: ErrConflict, Detail: fmt.Sprintf("duplicate value for constraint %s", pqErr.Constraint)}
		case "23503": // foreign_key_violation
			return &Error{Op: op, Entity: entity, Err: ErrValidation, Detail: fmt.Sprintf("invalid reference (constraint %s)", pqErr.Constraint)}
		case "23514": // check_violation
			return &Error{Op: op, Entity: entity, Err: ErrValidation, Detail: fmt.Sprintf("value rejected by constraint %s", pqErr.Constraint)}
		case "23502": // not_null_violation
			return &Error{Op: op, Entity: entity, Err: ErrValidation, Detail: fmt.Sprintf("column %s must not be null", pqErr.Column)}
		}
	}

	return &Error{Op: op, Entity: entity, Err: fmt.Errorf("%w: %v", ErrInternal, err)}
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
