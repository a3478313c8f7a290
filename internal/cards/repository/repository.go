// Package repository implements card record persistence.
//
// Three backends satisfy the same contract: PostgreSQL, MySQL (database/sql)
// and MongoDB. The single atomicity primitive every caller depends on is
// CommitIfUnchanged: a compare-and-swap write that replaces the whole record
// only while the stored version still equals the version the caller read.
package repository

import (
	"context"
	"database/sql/driver"
	"errors"

	apperrors "github.com/ratt/validator/internal/errors"
)

// classifyStorageErr wraps failures from the underlying driver, surfacing
// timeouts and connection loss as ErrStorageUnavailable so callers never
// confuse an unreachable store with a decided outcome.
func classifyStorageErr(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, message+": "+err.Error())
	}
	return apperrors.Wrap(err, message)
}
