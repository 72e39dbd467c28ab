package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrValidation         = errors.New("validation failed")
	ErrServiceUnavailable = errors.New("service unavailable") // e.g. queue unreachable
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgUndefinedTable      = "42P01"
	pgUndefinedColumn     = "42703"
)

// BatchError reports a row-level failure inside a batch write. Rows before
// Index were already committed; rows from Index on were not attempted.
type BatchError struct {
	Op      string
	Index   int
	Applied []int64
	Err     error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s: row %d (after %d applied): %v", e.Op, e.Index, len(e.Applied), e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// FailedRow returns the index of the row that aborted a batch, if err came
// from a batch write.
func FailedRow(err error) (int, bool) {
	var batchErr *BatchError
	if errors.As(err, &batchErr) {
		return batchErr.Index, true
	}
	return 0, false
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// IsSchemaMismatch reports whether err means the expected tables or columns
// are missing, which is an operator problem rather than a data problem.
func IsSchemaMismatch(err error) bool {
	code := pgCode(err)
	return code == pgUndefinedTable || code == pgUndefinedColumn
}

// IsDataError reports whether the database rejected the row itself.
func IsDataError(err error) bool {
	switch pgCode(err) {
	case pgUniqueViolation, pgForeignKeyViolation, pgNotNullViolation:
		return true
	}
	var pgErr *pgconn.PgError
	// Class 22: data exception (bad casts, out of range values)
	return errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "22"
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrServiceUnavailable) {
		return http.StatusServiceUnavailable
	}
	if IsUniqueViolation(err) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
